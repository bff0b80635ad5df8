package domain

import (
	"errors"
	"math"

	"aura-ledger/pkg/money"
)

var (
	// ErrAmountOverflow is returned when a sum exceeds the uint64 range.
	ErrAmountOverflow = errors.New("amount overflow")
	// ErrAmountUnderflow is returned when a subtraction would go below zero.
	ErrAmountUnderflow = errors.New("amount underflow")
)

// Amount is a non-negative stablecoin quantity in smallest units (10^-6).
type Amount uint64

// MaxAmount is the largest amount one journal entry can record (BIGINT).
// Running balances may exceed it; a single operation may not.
const MaxAmount Amount = math.MaxInt64

// Add returns a+b, failing instead of wrapping.
func (a Amount) Add(b Amount) (Amount, error) {
	if b > math.MaxUint64-a {
		return 0, ErrAmountOverflow
	}
	return a + b, nil
}

// Sub returns a-b, failing instead of going negative.
func (a Amount) Sub(b Amount) (Amount, error) {
	if b > a {
		return 0, ErrAmountUnderflow
	}
	return a - b, nil
}

// String renders the amount as a 6-decimal string.
func (a Amount) String() string {
	return money.Format(uint64(a))
}
