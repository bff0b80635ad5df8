package ledger

import (
	"errors"
	"fmt"

	"aura-ledger/internal/core/domain"
)

// ErrCorruptJournal is returned when a journal entry cannot be replayed as recorded.
var ErrCorruptJournal = errors.New("corrupt journal")

// Replay re-applies committed entries in Seq order. Entries must continue the
// ledger's sequence without gaps. Recorded receipt ids, nonces and timestamps
// are reused, and every draw's id is recomputed and compared. Authorization
// and credit limits are not re-evaluated; they held when the entry committed.
func (l *Ledger) Replay(entries []domain.JournalEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, e := range entries {
		if e.Seq != l.seq+1 {
			return fmt.Errorf("%w: expected seq %d, got %d", ErrCorruptJournal, l.seq+1, e.Seq)
		}
		entry := e
		_, err := l.applyLocked(e.CreatedAt.UTC(), func(tx *txn) (domain.JournalEntry, error) {
			return entry, l.replayEntry(tx, entry)
		})
		if err != nil {
			return fmt.Errorf("replay seq %d (%s): %w", e.Seq, e.Op, err)
		}
	}
	return nil
}

func (l *Ledger) replayEntry(tx *txn, e domain.JournalEntry) error {
	switch e.Op {
	case domain.OpProvide:
		return l.pool.provide(tx, e.Principal, e.Amount)

	case domain.OpWithdraw:
		return l.pool.withdraw(tx, e.Principal, e.Principal, e.Amount)

	case domain.OpLockFunds:
		if len(e.ReceiptIDs) != 1 {
			return fmt.Errorf("%w: draw carries %d receipt ids", ErrCorruptJournal, len(e.ReceiptIDs))
		}
		rec := &domain.Receipt{
			ID:        e.ReceiptIDs[0],
			Merchant:  e.Counterparty,
			Borrower:  e.Principal,
			Amount:    e.Amount,
			Nonce:     e.Nonce,
			CreatedAt: tx.now,
		}
		if want := domain.ComputeReceiptID(rec.Merchant, rec.Borrower, rec.Amount, rec.Nonce, rec.CreatedAt); want != rec.ID {
			return fmt.Errorf("%w: receipt %s does not match its fields", ErrCorruptJournal, rec.ID)
		}
		if err := l.credit.restoreDraw(tx, rec); err != nil {
			return err
		}
		l.rememberDrawKey(tx, e.IdempotencyKey, rec.ID)
		return nil

	case domain.OpRepay:
		return l.credit.repay(tx, e.Principal, e.Amount)

	case domain.OpSettle, domain.OpClaimAll:
		var total domain.Amount
		for _, id := range e.ReceiptIDs {
			rec, err := l.settlement.settle(tx, e.Principal, id)
			if err != nil {
				return err
			}
			if total, err = total.Add(rec.Amount); err != nil {
				return err
			}
		}
		if total != e.Amount || len(e.ReceiptIDs) == 0 {
			return fmt.Errorf("%w: settled %s, journal recorded %s", ErrCorruptJournal, total, e.Amount)
		}
		return nil

	case domain.OpWithdrawClaimable:
		paid, err := l.settlement.withdrawClaimable(tx, e.Principal)
		if err != nil {
			return err
		}
		if paid != e.Amount {
			return fmt.Errorf("%w: paid out %s, journal recorded %s", ErrCorruptJournal, paid, e.Amount)
		}
		return nil

	case domain.OpSetCreditLimit:
		if e.Counterparty.IsZero() {
			return fmt.Errorf("%w: credit limit without borrower", ErrCorruptJournal)
		}
		l.credit.setLimit(tx, e.Counterparty, e.Amount)
		return nil
	}
	return fmt.Errorf("%w: unknown operation %q", ErrCorruptJournal, e.Op)
}
