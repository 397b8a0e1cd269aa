package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errEmptyAmount    = errors.New("empty amount")
	errNegativeAmount = errors.New("amount must not be negative")
	errTooPrecise     = errors.New("amount has more decimals than the network supports")
)

// ToBaseUnits converts a decimal string ("0.25") to integer base units (wei, lamports).
// Digits beyond the network's precision are rejected rather than silently truncated.
func ToBaseUnits(amount string, decimals int) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, errEmptyAmount
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse amount '%s': %w", amount, err)
	}
	if d.IsNegative() {
		return nil, errNegativeAmount
	}

	// Shift decimal point right by the network precision
	shifted := d.Shift(int32(decimals))
	if !shifted.Equal(shifted.Truncate(0)) {
		return nil, errTooPrecise
	}

	return shifted.BigInt(), nil
}

// FromBaseUnits converts integer base units to a decimal string without float precision loss
// Example: FromBaseUnits(24981836, 9) = "0.024981836"
func FromBaseUnits(value *big.Int, decimals int) string {
	if value == nil {
		return "0"
	}
	return decimal.NewFromBigInt(value, int32(-decimals)).String()
}

// FormatAmount renders an amount with a symbol, picking precision by magnitude
func FormatAmount(value *big.Int, decimals int, symbol string) string {
	d := decimal.NewFromBigInt(new(big.Int).Set(orZero(value)), int32(-decimals))

	var s string
	switch {
	case d.IsZero():
		s = "0"
	case d.LessThan(decimal.New(1, -4)):
		f, _ := d.Float64()
		s = fmt.Sprintf("%.4e", f)
	case d.LessThan(decimal.NewFromInt(1)):
		s = d.StringFixed(6)
	case d.LessThan(decimal.NewFromInt(1000)):
		s = d.StringFixed(4)
	default:
		s = d.StringFixed(2)
	}

	return s + " " + symbol
}

// MultiplyRate returns amount*rate rounded to 2 places (fiat display only)
func MultiplyRate(amount, rate string) (string, error) {
	a, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("failed to parse amount '%s': %w", amount, err)
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return "", fmt.Errorf("failed to parse rate '%s': %w", rate, err)
	}
	return a.Mul(r).StringFixed(2), nil
}

// ShortAddress shortens an address for display: 0x1234...abcd
func ShortAddress(address string, startChars, endChars int) string {
	if len(address) < startChars+endChars+3 {
		return address
	}
	return address[:startChars] + "..." + address[len(address)-endChars:]
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
