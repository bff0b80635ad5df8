// Package money converts between decimal stablecoin strings and the
// fixed-point integer units the ledger works in.
package money

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimals is the number of fractional digits of the stablecoin (USDC convention).
const Decimals = 6

var (
	ErrEmpty       = errors.New("amount is empty")
	ErrNotNumeric  = errors.New("amount is not a decimal number")
	ErrNegative    = errors.New("amount must not be negative")
	ErrTooPrecise  = fmt.Errorf("amount has more than %d fractional digits", Decimals)
	ErrOutOfRange  = errors.New("amount is out of range")
	ErrNotPositive = errors.New("amount must be greater than zero")

	unitsPerCoin = decimal.New(1, Decimals)
	maxUnits     = fromUnits(math.MaxInt64)
)

// Parse converts a decimal string such as "12.5" into smallest units (12500000).
// Zero is accepted; use ParsePositive for amounts that must move funds.
// Values above math.MaxInt64 units fail with ErrOutOfRange.
func Parse(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmpty
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrNotNumeric
	}
	if d.IsNegative() {
		return 0, ErrNegative
	}
	units := d.Mul(unitsPerCoin)
	if !units.Equal(units.Truncate(0)) {
		return 0, ErrTooPrecise
	}
	if units.GreaterThan(maxUnits) {
		return 0, ErrOutOfRange
	}
	return units.BigInt().Uint64(), nil
}

// ParsePositive is Parse with an additional > 0 check.
func ParsePositive(s string) (uint64, error) {
	v, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, ErrNotPositive
	}
	return v, nil
}

// Format renders smallest units as a decimal string with exactly Decimals digits.
func Format(units uint64) string {
	return fromUnits(units).Shift(-Decimals).StringFixed(Decimals)
}

func fromUnits(units uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(units), 0)
}
