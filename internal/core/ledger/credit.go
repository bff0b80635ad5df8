package ledger

import (
	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// CreditEngine turns draws into escrowed receipts and records repayments.
type CreditEngine struct {
	pool     *LiquidityPool
	book     *AccountBook
	receipts *ReceiptRegistry

	limits       map[domain.Principal]domain.Amount
	defaultLimit *domain.Amount

	drawn  domain.Amount
	repaid domain.Amount
}

func newCreditEngine(pool *LiquidityPool, book *AccountBook, receipts *ReceiptRegistry, defaultLimit *domain.Amount) *CreditEngine {
	return &CreditEngine{
		pool:         pool,
		book:         book,
		receipts:     receipts,
		limits:       make(map[domain.Principal]domain.Amount),
		defaultLimit: defaultLimit,
	}
}

// limitFor returns the borrower's effective limit; nil means unlimited.
func (c *CreditEngine) limitFor(borrower domain.Principal) *domain.Amount {
	if l, ok := c.limits[borrower]; ok {
		return &l
	}
	if c.defaultLimit != nil {
		l := *c.defaultLimit
		return &l
	}
	return nil
}

func (c *CreditEngine) checkDraw(borrower, merchant domain.Principal, amount domain.Amount) error {
	if amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	if borrower.IsZero() || merchant.IsZero() {
		return apperror.Validation("borrower and merchant are required")
	}
	if borrower == merchant {
		return apperror.Validation("borrower and merchant must differ")
	}
	if avail := c.pool.Available(); amount > avail {
		return apperror.ErrInsolvent(uint64(amount), uint64(avail))
	}
	return nil
}

func (c *CreditEngine) checkLimit(borrower domain.Principal, amount domain.Amount) error {
	if limit := c.limitFor(borrower); limit != nil {
		due := c.book.Balance(borrower, domain.NamespaceBorrowerDue)
		next, err := due.Add(amount)
		if err != nil || next > *limit {
			return apperror.ErrCreditLimitExceeded(uint64(amount), uint64(due), uint64(*limit))
		}
	}
	return nil
}

// lockFunds escrows amount for merchant and charges it to borrower.
func (c *CreditEngine) lockFunds(tx *txn, borrower, merchant domain.Principal, amount domain.Amount) (*domain.Receipt, error) {
	if err := c.checkDraw(borrower, merchant, amount); err != nil {
		return nil, err
	}
	if err := c.checkLimit(borrower, amount); err != nil {
		return nil, err
	}
	if err := c.charge(tx, borrower, amount); err != nil {
		return nil, err
	}
	rec, err := c.receipts.mint(tx, merchant, borrower, amount)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// restoreDraw re-applies a journaled draw with its recorded receipt. Limits
// are policy at draw time and are not re-evaluated.
func (c *CreditEngine) restoreDraw(tx *txn, rec *domain.Receipt) error {
	if err := c.checkDraw(rec.Borrower, rec.Merchant, rec.Amount); err != nil {
		return err
	}
	if err := c.charge(tx, rec.Borrower, rec.Amount); err != nil {
		return err
	}
	return c.receipts.insert(tx, rec)
}

func (c *CreditEngine) charge(tx *txn, borrower domain.Principal, amount domain.Amount) error {
	drawn, err := c.drawn.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow()
	}
	if err := c.pool.lock(tx, amount); err != nil {
		return err
	}
	if err := c.book.Credit(tx, borrower, domain.NamespaceBorrowerDue, amount); err != nil {
		return err
	}
	tx.setAmount(&c.drawn, drawn)
	return nil
}

// repay lowers the borrower's due and returns the funds to the shared pool.
// Escrowed funds stay locked until their receipts are settled.
func (c *CreditEngine) repay(tx *txn, borrower domain.Principal, amount domain.Amount) error {
	if amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	repaid, err := c.repaid.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow()
	}
	if err := c.book.Debit(tx, borrower, domain.NamespaceBorrowerDue, amount); err != nil {
		return err
	}
	if err := c.pool.returnRepayment(tx, amount); err != nil {
		return err
	}
	tx.setAmount(&c.repaid, repaid)
	return nil
}

func (c *CreditEngine) setLimit(tx *txn, borrower domain.Principal, limit domain.Amount) {
	prev, existed := c.limits[borrower]
	c.limits[borrower] = limit
	tx.onRollback(func() {
		if existed {
			c.limits[borrower] = prev
		} else {
			delete(c.limits, borrower)
		}
	})
}
