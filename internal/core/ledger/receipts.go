package ledger

import (
	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// ReceiptRegistry is the append-only store of draws. Receipts are never
// removed; the only transition is unsettled -> settled.
type ReceiptRegistry struct {
	byID       map[domain.ReceiptID]*domain.Receipt
	byMerchant map[domain.Principal][]domain.ReceiptID
	nonce      uint64
}

func newReceiptRegistry() *ReceiptRegistry {
	return &ReceiptRegistry{
		byID:       make(map[domain.ReceiptID]*domain.Receipt),
		byMerchant: make(map[domain.Principal][]domain.ReceiptID),
	}
}

// mint assigns the next nonce and stores a new unsettled receipt.
func (r *ReceiptRegistry) mint(tx *txn, merchant, borrower domain.Principal, amount domain.Amount) (*domain.Receipt, error) {
	nonce := r.nonce + 1
	rec := &domain.Receipt{
		ID:        domain.ComputeReceiptID(merchant, borrower, amount, nonce, tx.now),
		Merchant:  merchant,
		Borrower:  borrower,
		Amount:    amount,
		Nonce:     nonce,
		CreatedAt: tx.now,
	}
	if err := r.insert(tx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// insert stores rec and advances the nonce to at least rec.Nonce.
func (r *ReceiptRegistry) insert(tx *txn, rec *domain.Receipt) error {
	if _, dup := r.byID[rec.ID]; dup {
		return violation("duplicate receipt id %s", rec.ID)
	}
	if rec.Nonce <= r.nonce {
		return violation("receipt nonce %d does not advance past %d", rec.Nonce, r.nonce)
	}

	prevNonce := r.nonce
	prevIDs := r.byMerchant[rec.Merchant]
	r.byID[rec.ID] = rec
	r.byMerchant[rec.Merchant] = append(prevIDs, rec.ID)
	r.nonce = rec.Nonce

	tx.onRollback(func() {
		delete(r.byID, rec.ID)
		if len(prevIDs) == 0 {
			delete(r.byMerchant, rec.Merchant)
		} else {
			r.byMerchant[rec.Merchant] = prevIDs
		}
		r.nonce = prevNonce
	})
	return nil
}

func (r *ReceiptRegistry) get(id domain.ReceiptID) (*domain.Receipt, error) {
	rec, ok := r.byID[id]
	if !ok {
		return nil, apperror.ErrNotFound("Receipt").With("receipt_id", id.Hex())
	}
	return rec, nil
}

func (r *ReceiptRegistry) markSettled(tx *txn, id domain.ReceiptID) (*domain.Receipt, error) {
	rec, err := r.get(id)
	if err != nil {
		return nil, err
	}
	if rec.Settled {
		return nil, apperror.ErrAlreadySettled(id.Hex())
	}
	at := tx.now
	rec.Settled = true
	rec.SettledAt = &at
	tx.onRollback(func() {
		rec.Settled = false
		rec.SettledAt = nil
	})
	return rec, nil
}

// unsettledFor returns the merchant's open receipts in mint order.
func (r *ReceiptRegistry) unsettledFor(merchant domain.Principal) []*domain.Receipt {
	var out []*domain.Receipt
	for _, id := range r.byMerchant[merchant] {
		if rec := r.byID[id]; !rec.Settled {
			out = append(out, rec)
		}
	}
	return out
}

// listFor copies every receipt of the merchant in mint order.
func (r *ReceiptRegistry) listFor(merchant domain.Principal) []domain.Receipt {
	ids := r.byMerchant[merchant]
	out := make([]domain.Receipt, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyReceipt(r.byID[id]))
	}
	return out
}

func (r *ReceiptRegistry) each(fn func(*domain.Receipt)) {
	for _, rec := range r.byID {
		fn(rec)
	}
}

func (r *ReceiptRegistry) count() int { return len(r.byID) }

// copyReceipt detaches a receipt from registry storage.
func copyReceipt(rec *domain.Receipt) domain.Receipt {
	out := *rec
	if rec.SettledAt != nil {
		at := *rec.SettledAt
		out.SettledAt = &at
	}
	return out
}
