package ledger

import (
	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// AccountBook holds per-principal balances in each namespace. It applies no
// policy beyond refusing to let a balance go negative.
type AccountBook struct {
	balances map[domain.Namespace]map[domain.Principal]domain.Amount
}

// NewAccountBook creates an empty book.
func NewAccountBook() *AccountBook {
	b := &AccountBook{balances: make(map[domain.Namespace]map[domain.Principal]domain.Amount, len(domain.Namespaces))}
	for _, ns := range domain.Namespaces {
		b.balances[ns] = make(map[domain.Principal]domain.Amount)
	}
	return b
}

// Balance returns the balance of p in ns; unknown principals have zero.
func (b *AccountBook) Balance(p domain.Principal, ns domain.Namespace) domain.Amount {
	return b.balances[ns][p]
}

// Credit adds amount to p's balance in ns, creating the entry on first use.
func (b *AccountBook) Credit(tx *txn, p domain.Principal, ns domain.Namespace, amount domain.Amount) error {
	m := b.balances[ns]
	prev, existed := m[p]
	next, err := prev.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow().With("namespace", string(ns))
	}
	m[p] = next
	tx.onRollback(func() {
		if existed {
			m[p] = prev
		} else {
			delete(m, p)
		}
	})
	return nil
}

// Debit removes amount from p's balance in ns. Entries are zeroed, never deleted.
func (b *AccountBook) Debit(tx *txn, p domain.Principal, ns domain.Namespace, amount domain.Amount) error {
	m := b.balances[ns]
	prev := m[p]
	next, err := prev.Sub(amount)
	if err != nil {
		return apperror.ErrInsufficientBalance(string(ns), uint64(amount), uint64(prev))
	}
	_, existed := m[p]
	m[p] = next
	tx.onRollback(func() {
		if existed {
			m[p] = prev
		} else {
			delete(m, p)
		}
	})
	return nil
}

// Sum totals every balance in ns.
func (b *AccountBook) Sum(ns domain.Namespace) (domain.Amount, error) {
	var total domain.Amount
	for _, v := range b.balances[ns] {
		var err error
		if total, err = total.Add(v); err != nil {
			return 0, err
		}
	}
	return total, nil
}
