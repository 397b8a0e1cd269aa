package common

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBaseUnits(t *testing.T) {
	cases := []struct {
		in       string
		decimals int
		want     string
	}{
		{"1", 18, "1000000000000000000"},
		{"0.024981836", 9, "24981836"},
		{" 2.5 ", 6, "2500000"},
		{"0", 18, "0"},
	}
	for _, c := range cases {
		got, err := ToBaseUnits(c.in, c.decimals)
		require.NoError(t, err, c.in)
		assert.Equal(t, c.want, got.String(), c.in)
	}
}

func TestToBaseUnitsRejects(t *testing.T) {
	for _, in := range []string{"", "abc", "-1", "0.0000000001"} {
		_, err := ToBaseUnits(in, 9)
		assert.Error(t, err, in)
	}
}

func TestFromBaseUnits(t *testing.T) {
	assert.Equal(t, "0.024981836", FromBaseUnits(big.NewInt(24981836), 9))
	assert.Equal(t, "1", FromBaseUnits(big.NewInt(1_000_000), 6))
	assert.Equal(t, "0", FromBaseUnits(nil, 6))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.500000 ETH", FormatAmount(big.NewInt(5e17), 18, "ETH"))
	assert.Equal(t, "12.0000 SOL", FormatAmount(big.NewInt(12e9), 9, "SOL"))
	assert.Equal(t, "0 BNB", FormatAmount(nil, 18, "BNB"))
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x1234...cdef", ShortAddress("0x1234567890abcdef", 6, 4))
	assert.Equal(t, "0x12", ShortAddress("0x12", 6, 4))
}
