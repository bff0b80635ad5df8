package ledger

import (
	"errors"
	"fmt"

	"aura-ledger/internal/core/domain"
)

// InvariantViolation is a fatal inconsistency. Returning one from an apply
// body halts the ledger.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "ledger invariant violated: " + e.Reason
}

func violation(format string, args ...any) error {
	return &InvariantViolation{Reason: fmt.Sprintf(format, args...)}
}

// CheckInvariants verifies the global accounting identities and returns every
// violation found, joined. It never mutates state.
func (l *Ledger) CheckInvariants() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.checkLocked()
}

func (l *Ledger) checkLocked() error {
	var errs []error
	sum := func(ns domain.Namespace) domain.Amount {
		total, err := l.book.Sum(ns)
		if err != nil {
			errs = append(errs, violation("sum of %s overflows", ns))
		}
		return total
	}

	lenders := sum(domain.NamespaceLenderBalance)
	due := sum(domain.NamespaceBorrowerDue)
	claimable := sum(domain.NamespaceMerchantClaimable)

	var unsettled, settled domain.Amount
	var overflow bool
	l.receipts.each(func(rec *domain.Receipt) {
		var err error
		if rec.Settled {
			settled, err = settled.Add(rec.Amount)
		} else {
			unsettled, err = unsettled.Add(rec.Amount)
		}
		overflow = overflow || err != nil
	})
	if overflow {
		errs = append(errs, violation("receipt amounts overflow"))
	}

	p := l.pool
	if owned, err := lenders.Add(p.repaidToPool); err != nil || owned != p.totalLent {
		errs = append(errs, violation("total lent %s != lender balances %s + repaid %s", p.totalLent, lenders, p.repaidToPool))
	}
	if p.totalLocked != unsettled {
		errs = append(errs, violation("total locked %s != unsettled receipts %s", p.totalLocked, unsettled))
	}
	if p.totalLocked > p.totalLent {
		errs = append(errs, violation("total locked %s exceeds total lent %s", p.totalLocked, p.totalLent))
	}
	if outstanding, err := l.credit.drawn.Sub(l.credit.repaid); err != nil || outstanding != due {
		errs = append(errs, violation("borrower due %s != drawn %s - repaid %s", due, l.credit.drawn, l.credit.repaid))
	}
	if held, err := l.settlement.settled.Sub(l.settlement.paidOut); err != nil || held != claimable {
		errs = append(errs, violation("merchant claimable %s != settled %s - paid out %s", claimable, l.settlement.settled, l.settlement.paidOut))
	}
	if l.settlement.settled != settled {
		errs = append(errs, violation("settled total %s != settled receipts %s", l.settlement.settled, settled))
	}
	return errors.Join(errs...)
}

// Halt stops all further writes. The first reason wins.
func (l *Ledger) Halt(reason error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.haltLocked(reason)
}

func (l *Ledger) haltLocked(reason error) {
	if l.halted != nil {
		return
	}
	if reason == nil {
		reason = errors.New("halted")
	}
	l.halted = reason
}

// Halted returns the halt reason, or nil while the ledger accepts writes.
func (l *Ledger) Halted() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.halted
}
