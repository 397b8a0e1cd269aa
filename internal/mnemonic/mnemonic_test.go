package mnemonic

import (
	"errors"
	"strings"
	"testing"

	"github.com/AlexZinkM/multichain-wallet/internal/model"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyler-smith/go-bip39"
)

const abandonPhrase = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestGenerate(t *testing.T) {
	phrase, err := Generate()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), WordCount)
	assert.True(t, bip39.IsMnemonicValid(phrase))
	assert.NoError(t, Validate(phrase))

	other, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, phrase, other)
}

func TestGenerateFallsBack(t *testing.T) {
	orig := entropySource
	t.Cleanup(func() { entropySource = orig })
	entropySource = func(int) ([]byte, error) { return nil, errors.New("entropy unavailable") }

	phrase, err := Generate()
	require.NoError(t, err)
	assert.NoError(t, Validate(phrase))
}

func TestGenerateRejectsBadEntropy(t *testing.T) {
	orig := entropySource
	t.Cleanup(func() { entropySource = orig })
	// wrong size entropy cannot be encoded, so the fallback path is used
	entropySource = func(int) ([]byte, error) { return []byte{1, 2, 3}, nil }

	phrase, err := Generate()
	require.NoError(t, err)
	assert.Len(t, strings.Fields(phrase), WordCount)
}

func TestDeriveIdentityKnownVector(t *testing.T) {
	id, err := DeriveIdentity(abandonPhrase)
	require.NoError(t, err)
	assert.Equal(t, "0x9858EfFD232B4033E47d90003D41EC34EcaEda94", id.Address)
	assert.Len(t, id.PrivateKey, 64)
}

func TestDeriveIdentityDeterministic(t *testing.T) {
	phrase, err := Generate()
	require.NoError(t, err)

	a, err := DeriveIdentity(phrase)
	require.NoError(t, err)
	b, err := DeriveIdentity(phrase)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.True(t, common.IsHexAddress(a.Address))

	// whitespace and case do not change the identity
	c, err := DeriveIdentity("  " + strings.ToUpper(phrase) + " ")
	require.NoError(t, err)
	assert.Equal(t, a, c)
}

func TestDeriveIdentityInvalid(t *testing.T) {
	cases := []string{
		"",
		"abandon abandon abandon",
		"one two three four five six seven eight nine ten eleven twelve",
		// bad checksum
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon",
	}
	for _, c := range cases {
		_, err := DeriveIdentity(c)
		assert.ErrorIs(t, err, model.ErrInvalidMnemonic, c)
	}
}

func TestImportPrivateKey(t *testing.T) {
	derived, err := DeriveIdentity(abandonPhrase)
	require.NoError(t, err)

	imported, err := ImportPrivateKey("0x" + derived.PrivateKey)
	require.NoError(t, err)
	assert.Equal(t, derived, imported)

	_, err = ImportPrivateKey("not-hex")
	assert.ErrorIs(t, err, model.ErrInvalidPrivateKey)
}

func TestDeriveSolanaKey(t *testing.T) {
	a, err := DeriveSolanaKey(abandonPhrase)
	require.NoError(t, err)
	b, err := DeriveSolanaKey(abandonPhrase)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, []byte(a), 64)
	assert.NotEmpty(t, a.PublicKey().String())

	_, err = DeriveSolanaKey("one two three")
	assert.ErrorIs(t, err, model.ErrInvalidMnemonic)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  A\tb \n C "))
}
