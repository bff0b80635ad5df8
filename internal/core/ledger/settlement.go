package ledger

import (
	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// SettlementEngine moves escrowed receipt amounts into merchant claimable
// balances and pays those balances out.
type SettlementEngine struct {
	pool     *LiquidityPool
	book     *AccountBook
	receipts *ReceiptRegistry

	settled domain.Amount
	paidOut domain.Amount
}

func newSettlementEngine(pool *LiquidityPool, book *AccountBook, receipts *ReceiptRegistry) *SettlementEngine {
	return &SettlementEngine{pool: pool, book: book, receipts: receipts}
}

func (s *SettlementEngine) verify(id domain.ReceiptID) (domain.ReceiptVerification, error) {
	rec, err := s.receipts.get(id)
	if err != nil {
		return domain.ReceiptVerification{}, err
	}
	return domain.ReceiptVerification{
		Merchant:  rec.Merchant,
		Amount:    rec.Amount,
		Claimable: rec.IsClaimable(),
	}, nil
}

// settle checks NotFound, then Unauthorized, then AlreadySettled.
func (s *SettlementEngine) settle(tx *txn, caller domain.Principal, id domain.ReceiptID) (*domain.Receipt, error) {
	rec, err := s.receipts.get(id)
	if err != nil {
		return nil, err
	}
	if !CanSettle(caller, rec) {
		return nil, apperror.ErrUnauthorized("settle")
	}
	if rec.Settled {
		return nil, apperror.ErrAlreadySettled(id.Hex())
	}

	settled, err := s.settled.Add(rec.Amount)
	if err != nil {
		return nil, apperror.ErrAmountOverflow()
	}
	if err := s.pool.release(tx, rec.Amount); err != nil {
		return nil, err
	}
	if err := s.book.Credit(tx, rec.Merchant, domain.NamespaceMerchantClaimable, rec.Amount); err != nil {
		return nil, err
	}
	if _, err := s.receipts.markSettled(tx, id); err != nil {
		return nil, err
	}
	tx.setAmount(&s.settled, settled)
	return rec, nil
}

// claimAll settles every open receipt of caller as one batch.
func (s *SettlementEngine) claimAll(tx *txn, caller domain.Principal) (domain.Amount, []domain.ReceiptID, error) {
	open := s.receipts.unsettledFor(caller)
	if len(open) == 0 {
		return 0, nil, apperror.ErrNoClaimableFunds(caller.String())
	}

	var total domain.Amount
	ids := make([]domain.ReceiptID, 0, len(open))
	for _, rec := range open {
		if _, err := s.settle(tx, caller, rec.ID); err != nil {
			return 0, nil, err
		}
		next, err := total.Add(rec.Amount)
		if err != nil {
			return 0, nil, apperror.ErrAmountOverflow()
		}
		total = next
		ids = append(ids, rec.ID)
	}
	return total, ids, nil
}

// withdrawClaimable pays out the merchant's whole claimable balance.
func (s *SettlementEngine) withdrawClaimable(tx *txn, merchant domain.Principal) (domain.Amount, error) {
	balance := s.book.Balance(merchant, domain.NamespaceMerchantClaimable)
	if balance == 0 {
		return 0, apperror.ErrNoClaimableFunds(merchant.String())
	}
	paid, err := s.paidOut.Add(balance)
	if err != nil {
		return 0, apperror.ErrAmountOverflow()
	}
	if err := s.book.Debit(tx, merchant, domain.NamespaceMerchantClaimable, balance); err != nil {
		return 0, err
	}
	tx.setAmount(&s.paidOut, paid)
	return balance, nil
}
