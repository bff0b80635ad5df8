// Package ledger is the in-memory escrow and settlement core. All state sits
// behind one mutex; every write runs as a single all-or-nothing critical
// section and produces the journal entry that describes it. The package does
// no I/O.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
)

// Options configures a new Ledger.
type Options struct {
	// Operators may set credit limits.
	Operators []domain.Principal
	// DefaultCreditLimit applies to borrowers without an explicit limit. Nil = unlimited.
	DefaultCreditLimit *domain.Amount
	// VerifyInvariants re-checks the global invariants after every commit.
	VerifyInvariants bool
	Clock            func() time.Time
}

// Ledger aggregates the account book, pool, receipts, credit and settlement.
type Ledger struct {
	mu sync.Mutex

	book       *AccountBook
	pool       *LiquidityPool
	receipts   *ReceiptRegistry
	credit     *CreditEngine
	settlement *SettlementEngine

	operators map[domain.Principal]struct{}
	verify    bool
	clock     func() time.Time

	// drawKeys maps a scoped idempotency key to the receipt it produced.
	drawKeys map[string]domain.ReceiptID

	seq    uint64
	halted error
}

// New creates an empty ledger.
func New(opts Options) *Ledger {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	ops := make(map[domain.Principal]struct{}, len(opts.Operators))
	for _, p := range opts.Operators {
		if !p.IsZero() {
			ops[p] = struct{}{}
		}
	}

	book := NewAccountBook()
	pool := newLiquidityPool(book)
	receipts := newReceiptRegistry()
	return &Ledger{
		book:       book,
		pool:       pool,
		receipts:   receipts,
		credit:     newCreditEngine(pool, book, receipts, opts.DefaultCreditLimit),
		settlement: newSettlementEngine(pool, book, receipts),
		operators:  ops,
		verify:     opts.VerifyInvariants,
		clock:      clock,
		drawKeys:   make(map[string]domain.ReceiptID),
	}
}

// LockResult is the outcome of a draw. Replayed results carry the receipt of
// an earlier draw with the same idempotency key and no journal entry.
type LockResult struct {
	Receipt  domain.Receipt
	Event    domain.FundsLocked
	Entry    domain.JournalEntry
	Replayed bool
}

// SettleResult is the outcome of a committed settlement.
type SettleResult struct {
	Receipt domain.Receipt
	Entry   domain.JournalEntry
}

// ClaimResult is the outcome of a committed claimAll batch.
type ClaimResult struct {
	Total      domain.Amount
	ReceiptIDs []domain.ReceiptID
	Entry      domain.JournalEntry
}

// apply runs body as one critical section stamped at the current clock.
func (l *Ledger) apply(body func(tx *txn) (domain.JournalEntry, error)) (domain.JournalEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.applyLocked(l.now(), body)
}

// now keeps microsecond precision so timestamps survive a timestamptz round trip.
func (l *Ledger) now() time.Time {
	return l.clock().UTC().Truncate(time.Microsecond)
}

// applyLocked commits body or reverts every mutation it made. Fatal failures
// halt the ledger.
func (l *Ledger) applyLocked(now time.Time, body func(tx *txn) (domain.JournalEntry, error)) (domain.JournalEntry, error) {
	if l.halted != nil {
		return domain.JournalEntry{}, apperror.ErrLedgerHalted(l.halted)
	}

	tx := newTxn(now)
	entry, err := body(tx)
	if err != nil {
		tx.rollback()
		var iv *InvariantViolation
		if errors.As(err, &iv) {
			l.haltLocked(err)
			return domain.JournalEntry{}, apperror.ErrLedgerHalted(err)
		}
		return domain.JournalEntry{}, err
	}
	// An entry the journal cannot store would halt the ledger at append time.
	if entry.Amount > domain.MaxAmount {
		tx.rollback()
		return domain.JournalEntry{}, apperror.ErrAmountOverflow().With("max", fmt.Sprint(uint64(domain.MaxAmount)))
	}
	if l.verify {
		if err := l.checkLocked(); err != nil {
			tx.rollback()
			l.haltLocked(err)
			return domain.JournalEntry{}, apperror.ErrLedgerHalted(err)
		}
	}

	l.seq++
	entry.Seq = l.seq
	entry.CreatedAt = now
	return entry, nil
}

// Provide deposits amount into the pool on behalf of lender.
func (l *Ledger) Provide(lender domain.Principal, amount domain.Amount) (domain.JournalEntry, error) {
	if lender.IsZero() {
		return domain.JournalEntry{}, apperror.Validation("lender is required")
	}
	return l.apply(func(tx *txn) (domain.JournalEntry, error) {
		if err := l.pool.provide(tx, lender, amount); err != nil {
			return domain.JournalEntry{}, err
		}
		return domain.JournalEntry{Op: domain.OpProvide, Principal: lender, Amount: amount}, nil
	})
}

// Withdraw returns amount of lender's position to the caller, who must be the lender.
func (l *Ledger) Withdraw(caller, lender domain.Principal, amount domain.Amount) (domain.JournalEntry, error) {
	return l.apply(func(tx *txn) (domain.JournalEntry, error) {
		if err := l.pool.withdraw(tx, caller, lender, amount); err != nil {
			return domain.JournalEntry{}, err
		}
		return domain.JournalEntry{Op: domain.OpWithdraw, Principal: lender, Amount: amount}, nil
	})
}

// LockFunds draws amount from the pool into a receipt payable to merchant.
// A non-empty idempotencyKey that already produced a receipt returns that
// receipt instead of drawing again.
func (l *Ledger) LockFunds(borrower, merchant domain.Principal, amount domain.Amount, idempotencyKey string) (LockResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// The draw that caused a halt may still hold its key without being journaled.
	if l.halted != nil {
		return LockResult{}, apperror.ErrLedgerHalted(l.halted)
	}
	if id, ok := l.drawKeys[idempotencyKey]; ok && idempotencyKey != "" {
		prev := l.receipts.byID[id]
		if prev.Borrower != borrower || prev.Merchant != merchant || prev.Amount != amount {
			return LockResult{}, apperror.ErrIdempotencyKeyReused(idempotencyKey)
		}
		rec := copyReceipt(prev)
		return LockResult{Receipt: rec, Event: fundsLocked(rec), Replayed: true}, nil
	}

	var rec domain.Receipt
	entry, err := l.applyLocked(l.now(), func(tx *txn) (domain.JournalEntry, error) {
		minted, err := l.credit.lockFunds(tx, borrower, merchant, amount)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		l.rememberDrawKey(tx, idempotencyKey, minted.ID)
		rec = copyReceipt(minted)
		return domain.JournalEntry{
			Op:             domain.OpLockFunds,
			Principal:      borrower,
			Counterparty:   merchant,
			Amount:         amount,
			ReceiptIDs:     []domain.ReceiptID{minted.ID},
			Nonce:          minted.Nonce,
			IdempotencyKey: idempotencyKey,
		}, nil
	})
	if err != nil {
		return LockResult{}, err
	}
	return LockResult{Receipt: rec, Event: fundsLocked(rec), Entry: entry}, nil
}

func (l *Ledger) rememberDrawKey(tx *txn, key string, id domain.ReceiptID) {
	if key == "" {
		return
	}
	l.drawKeys[key] = id
	tx.onRollback(func() { delete(l.drawKeys, key) })
}

func fundsLocked(rec domain.Receipt) domain.FundsLocked {
	return domain.FundsLocked{
		ReceiptID: rec.ID,
		Merchant:  rec.Merchant,
		Borrower:  rec.Borrower,
		Amount:    rec.Amount,
		CreatedAt: rec.CreatedAt,
	}
}

// Repay reduces borrower's due by amount.
func (l *Ledger) Repay(borrower domain.Principal, amount domain.Amount) (domain.JournalEntry, error) {
	return l.apply(func(tx *txn) (domain.JournalEntry, error) {
		if err := l.credit.repay(tx, borrower, amount); err != nil {
			return domain.JournalEntry{}, err
		}
		return domain.JournalEntry{Op: domain.OpRepay, Principal: borrower, Amount: amount}, nil
	})
}

// VerifyReceipt reports a receipt's merchant, amount and claimability.
func (l *Ledger) VerifyReceipt(id domain.ReceiptID) (domain.ReceiptVerification, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.settlement.verify(id)
}

// SettleReceipt credits a receipt's amount to its merchant, who must be the caller.
func (l *Ledger) SettleReceipt(caller domain.Principal, id domain.ReceiptID) (SettleResult, error) {
	var rec domain.Receipt
	entry, err := l.apply(func(tx *txn) (domain.JournalEntry, error) {
		settled, err := l.settlement.settle(tx, caller, id)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		rec = copyReceipt(settled)
		return domain.JournalEntry{
			Op:         domain.OpSettle,
			Principal:  caller,
			Amount:     settled.Amount,
			ReceiptIDs: []domain.ReceiptID{id},
		}, nil
	})
	if err != nil {
		return SettleResult{}, err
	}
	return SettleResult{Receipt: rec, Entry: entry}, nil
}

// ClaimAll settles every open receipt of caller in one batch.
func (l *Ledger) ClaimAll(caller domain.Principal) (ClaimResult, error) {
	var res ClaimResult
	entry, err := l.apply(func(tx *txn) (domain.JournalEntry, error) {
		total, ids, err := l.settlement.claimAll(tx, caller)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		res.Total, res.ReceiptIDs = total, ids
		return domain.JournalEntry{
			Op:         domain.OpClaimAll,
			Principal:  caller,
			Amount:     total,
			ReceiptIDs: ids,
		}, nil
	})
	if err != nil {
		return ClaimResult{}, err
	}
	res.Entry = entry
	return res, nil
}

// WithdrawClaimable pays out the merchant's entire claimable balance.
func (l *Ledger) WithdrawClaimable(merchant domain.Principal) (domain.JournalEntry, error) {
	return l.apply(func(tx *txn) (domain.JournalEntry, error) {
		amount, err := l.settlement.withdrawClaimable(tx, merchant)
		if err != nil {
			return domain.JournalEntry{}, err
		}
		return domain.JournalEntry{Op: domain.OpWithdrawClaimable, Principal: merchant, Amount: amount}, nil
	})
}

// SetCreditLimit sets borrower's limit. Only operators may call it.
func (l *Ledger) SetCreditLimit(caller, borrower domain.Principal, limit domain.Amount) (domain.JournalEntry, error) {
	if borrower.IsZero() {
		return domain.JournalEntry{}, apperror.Validation("borrower is required")
	}
	return l.apply(func(tx *txn) (domain.JournalEntry, error) {
		if !CanAdminister(caller, l.operators) {
			return domain.JournalEntry{}, apperror.ErrUnauthorized("set_credit_limit")
		}
		l.credit.setLimit(tx, borrower, limit)
		return domain.JournalEntry{
			Op:           domain.OpSetCreditLimit,
			Principal:    caller,
			Counterparty: borrower,
			Amount:       limit,
		}, nil
	})
}

// ---- Reads ----

// LenderBalance returns the lender's position balance.
func (l *Ledger) LenderBalance(lender domain.Principal) domain.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Balance(lender, domain.NamespaceLenderBalance)
}

// Pool returns a consistent snapshot of the pool totals.
func (l *Ledger) Pool() domain.PoolSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pool.snapshot()
}

// TotalLent returns the pool's total lent.
func (l *Ledger) TotalLent() domain.Amount { return l.Pool().TotalLent }

// TotalLocked returns the amount escrowed in unsettled receipts.
func (l *Ledger) TotalLocked() domain.Amount { return l.Pool().TotalLocked }

// BorrowerDue returns the borrower's outstanding debt.
func (l *Ledger) BorrowerDue(borrower domain.Principal) domain.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Balance(borrower, domain.NamespaceBorrowerDue)
}

// Borrower returns the borrower's due together with the effective credit limit.
func (l *Ledger) Borrower(borrower domain.Principal) domain.BorrowerAccount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return domain.BorrowerAccount{
		Borrower: borrower,
		Due:      l.book.Balance(borrower, domain.NamespaceBorrowerDue),
		Limit:    l.credit.limitFor(borrower),
	}
}

// CreditLimit returns the borrower's effective limit; nil means unlimited.
func (l *Ledger) CreditLimit(borrower domain.Principal) *domain.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.credit.limitFor(borrower)
}

// MerchantClaimable returns the merchant's settled, unpaid balance.
func (l *Ledger) MerchantClaimable(merchant domain.Principal) domain.Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.book.Balance(merchant, domain.NamespaceMerchantClaimable)
}

// Receipt returns a copy of the receipt.
func (l *Ledger) Receipt(id domain.ReceiptID) (domain.Receipt, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec, err := l.receipts.get(id)
	if err != nil {
		return domain.Receipt{}, err
	}
	return copyReceipt(rec), nil
}

// MerchantReceipts lists every receipt of the merchant in mint order.
func (l *Ledger) MerchantReceipts(merchant domain.Principal) []domain.Receipt {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.receipts.listFor(merchant)
}

// ReceiptCount returns the number of receipts ever minted.
func (l *Ledger) ReceiptCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.receipts.count()
}

// Operators returns a copy of the configured operator set.
func (l *Ledger) Operators() map[domain.Principal]struct{} {
	out := make(map[domain.Principal]struct{}, len(l.operators))
	for p := range l.operators {
		out[p] = struct{}{}
	}
	return out
}

// Seq returns the sequence number of the last committed operation.
func (l *Ledger) Seq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seq
}
