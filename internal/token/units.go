package token

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrConversion is returned when a numeric string cannot be converted
// exactly into on-chain units.
var ErrConversion = errors.New("conversion error")

// ParseUnits converts a decimal string into its integer smallest-unit value
// with the given number of decimals. It never rounds: more fractional digits
// than decimals allows is an error.
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.Trim(s, "0123456789.") != "" || strings.Count(s, ".") > 1 {
		return nil, fmt.Errorf("%w: %q is not a number", ErrConversion, s)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrConversion, s, err)
	}
	scaled := d.Shift(int32(decimals))
	if !scaled.IsInteger() {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrConversion, s, decimals)
	}
	return scaled.BigInt(), nil
}

// PercentToBasisPoints converts a percent with one decimal place into the
// integer hundredths-of-a-percent the factory expects: 2.5 → 250.
// Halves round away from zero.
func PercentToBasisPoints(rate float64) *big.Int {
	return decimal.NewFromFloat(rate).Shift(2).Round(0).BigInt()
}
