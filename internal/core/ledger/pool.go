package ledger

import (
	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// LiquidityPool tracks lender deposits against funds locked in receipts.
// TotalLent - TotalLocked is the liquidity available for new draws and withdrawals.
type LiquidityPool struct {
	book *AccountBook

	totalLent   domain.Amount
	totalLocked domain.Amount
	// repaidToPool is the part of totalLent that came back through repayments
	// and therefore has no lender position behind it.
	repaidToPool domain.Amount
}

func newLiquidityPool(book *AccountBook) *LiquidityPool {
	return &LiquidityPool{book: book}
}

// Available returns totalLent - totalLocked.
func (p *LiquidityPool) Available() domain.Amount {
	avail, err := p.totalLent.Sub(p.totalLocked)
	if err != nil {
		return 0
	}
	return avail
}

func (p *LiquidityPool) snapshot() domain.PoolSnapshot {
	return domain.PoolSnapshot{
		TotalLent:    p.totalLent,
		TotalLocked:  p.totalLocked,
		Available:    p.Available(),
		RepaidToPool: p.repaidToPool,
	}
}

func (p *LiquidityPool) provide(tx *txn, lender domain.Principal, amount domain.Amount) error {
	if amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	lent, err := p.totalLent.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow()
	}
	if err := p.book.Credit(tx, lender, domain.NamespaceLenderBalance, amount); err != nil {
		return err
	}
	tx.setAmount(&p.totalLent, lent)
	return nil
}

func (p *LiquidityPool) withdraw(tx *txn, caller, lender domain.Principal, amount domain.Amount) error {
	if amount == 0 {
		return apperror.ErrInvalidAmount()
	}
	position := domain.LenderPosition{Owner: lender, Balance: p.book.Balance(lender, domain.NamespaceLenderBalance)}
	if !CanWithdraw(caller, position) {
		return apperror.ErrUnauthorized("withdraw")
	}
	if amount > position.Balance {
		return apperror.ErrInsufficientBalance(string(domain.NamespaceLenderBalance), uint64(amount), uint64(position.Balance))
	}
	if amount > p.Available() {
		return apperror.ErrInsolvent(uint64(amount), uint64(p.Available()))
	}
	if err := p.book.Debit(tx, lender, domain.NamespaceLenderBalance, amount); err != nil {
		return err
	}
	lent, err := p.totalLent.Sub(amount)
	if err != nil {
		return violation("total lent %s below lender withdrawal %s", p.totalLent, amount)
	}
	tx.setAmount(&p.totalLent, lent)
	return nil
}

// lock moves amount from available liquidity into escrow.
func (p *LiquidityPool) lock(tx *txn, amount domain.Amount) error {
	if amount > p.Available() {
		return apperror.ErrInsolvent(uint64(amount), uint64(p.Available()))
	}
	locked, err := p.totalLocked.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow()
	}
	tx.setAmount(&p.totalLocked, locked)
	return nil
}

// release takes a settled receipt's amount out of escrow.
func (p *LiquidityPool) release(tx *txn, amount domain.Amount) error {
	locked, err := p.totalLocked.Sub(amount)
	if err != nil {
		return violation("total locked %s below released amount %s", p.totalLocked, amount)
	}
	tx.setAmount(&p.totalLocked, locked)
	return nil
}

// returnRepayment adds repaid funds back to the shared pool without
// attributing them to any lender and without unlocking escrow.
func (p *LiquidityPool) returnRepayment(tx *txn, amount domain.Amount) error {
	lent, err := p.totalLent.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow()
	}
	repaid, err := p.repaidToPool.Add(amount)
	if err != nil {
		return apperror.ErrAmountOverflow()
	}
	tx.setAmount(&p.totalLent, lent)
	tx.setAmount(&p.repaidToPool, repaid)
	return nil
}
