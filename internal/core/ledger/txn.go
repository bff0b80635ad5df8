package ledger

import (
	"time"

	"aura-ledger/internal/core/domain"
)

// txn collects undo steps for one critical section. Every mutation made
// through it can be reverted, which keeps multi-step operations all-or-nothing.
type txn struct {
	now  time.Time
	undo []func()
}

func newTxn(now time.Time) *txn {
	return &txn{now: now}
}

func (t *txn) onRollback(f func()) {
	t.undo = append(t.undo, f)
}

func (t *txn) rollback() {
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}

// setAmount assigns v to *dst and records the previous value for rollback.
func (t *txn) setAmount(dst *domain.Amount, v domain.Amount) {
	prev := *dst
	*dst = v
	t.onRollback(func() { *dst = prev })
}
