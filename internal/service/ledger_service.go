package service

import (
	"context"
	"fmt"
	"time"

	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ledger"
	"aura-ledger/internal/core/ports"
	"aura-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour
	restorePageSize       = 500
)

// LedgerServiceImpl implements ports.LedgerService on top of the in-memory
// ledger. Everything that does I/O runs after the ledger's critical section:
// journaling, idempotency caching, event publishing and logging.
type LedgerServiceImpl struct {
	ledger     *ledger.Ledger
	journal    ports.JournalRepository // nil = memory only
	writer     *journalWriter
	idempCache ports.IdempotencyCache // nil = no fast path
	publishers []ports.EventPublisher
	idempTTL   time.Duration
	log        zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl. journal and idempCache may be nil.
func NewLedgerService(
	l *ledger.Ledger,
	journal ports.JournalRepository,
	idempCache ports.IdempotencyCache,
	publishers []ports.EventPublisher,
	idempTTL time.Duration,
	log zerolog.Logger,
) *LedgerServiceImpl {
	if idempTTL <= 0 {
		idempTTL = defaultIdempotencyTTL
	}
	s := &LedgerServiceImpl{
		ledger:     l,
		journal:    journal,
		idempCache: idempCache,
		publishers: publishers,
		idempTTL:   idempTTL,
		log:        log,
	}
	if journal != nil {
		s.writer = newJournalWriter(journal, l.Seq()+1)
	}
	return s
}

// Restore replays the persisted journal into the ledger. It must run before
// the service accepts requests.
func (s *LedgerServiceImpl) Restore(ctx context.Context) error {
	if s.journal == nil {
		return nil
	}
	start := time.Now()
	after := s.ledger.Seq()
	for {
		page, err := s.journal.List(ctx, after, restorePageSize)
		if err != nil {
			return fmt.Errorf("load journal after seq %d: %w", after, err)
		}
		if len(page) == 0 {
			break
		}
		if err := s.ledger.Replay(page); err != nil {
			return err
		}
		after = page[len(page)-1].Seq
	}

	last, err := s.journal.LastSeq(ctx)
	if err != nil {
		return fmt.Errorf("read last journal seq: %w", err)
	}
	if last != s.ledger.Seq() {
		return fmt.Errorf("%w: journal ends at seq %d, replay reached %d", ledger.ErrCorruptJournal, last, s.ledger.Seq())
	}
	if err := s.ledger.CheckInvariants(); err != nil {
		return fmt.Errorf("restored ledger is inconsistent: %w", err)
	}
	s.writer.reset(s.ledger.Seq() + 1)

	s.log.Info().
		Uint64("seq", s.ledger.Seq()).
		Int("receipts", s.ledger.ReceiptCount()).
		Dur("took", time.Since(start)).
		Msg("ledger restored from journal")
	return nil
}

// commit persists a committed entry. A failed append halts the ledger: the
// operation is applied in memory but cannot be made durable.
func (s *LedgerServiceImpl) commit(ctx context.Context, entry domain.JournalEntry) error {
	if s.writer == nil {
		return nil
	}
	if err := s.writer.append(context.WithoutCancel(ctx), entry); err != nil {
		s.ledger.Halt(err)
		s.log.Error().Err(err).
			Uint64("seq", entry.Seq).
			Str("op", string(entry.Op)).
			Msg("journal append failed, ledger halted")
		return apperror.ErrLedgerHalted(err)
	}
	return nil
}

// Provide implements ports.LedgerService.
func (s *LedgerServiceImpl) Provide(ctx context.Context, lender domain.Principal, amount domain.Amount) (domain.LenderPosition, error) {
	entry, err := s.ledger.Provide(lender, amount)
	if err != nil {
		return domain.LenderPosition{}, err
	}
	if err := s.commit(ctx, entry); err != nil {
		return domain.LenderPosition{}, err
	}

	s.log.Info().
		Uint64("seq", entry.Seq).
		Str("principal", lender.String()).
		Str("amount", amount.String()).
		Msg("liquidity provided")
	return domain.LenderPosition{Owner: lender, Balance: s.ledger.LenderBalance(lender)}, nil
}

// Withdraw implements ports.LedgerService.
func (s *LedgerServiceImpl) Withdraw(ctx context.Context, caller, lender domain.Principal, amount domain.Amount) (domain.LenderPosition, error) {
	entry, err := s.ledger.Withdraw(caller, lender, amount)
	if err != nil {
		return domain.LenderPosition{}, err
	}
	if err := s.commit(ctx, entry); err != nil {
		return domain.LenderPosition{}, err
	}

	s.log.Info().
		Uint64("seq", entry.Seq).
		Str("principal", lender.String()).
		Str("amount", amount.String()).
		Msg("liquidity withdrawn")
	return domain.LenderPosition{Owner: lender, Balance: s.ledger.LenderBalance(lender)}, nil
}

// LockFunds implements ports.LedgerService. With an idempotency key the
// draw happens at most once per borrower and key.
func (s *LedgerServiceImpl) LockFunds(ctx context.Context, req ports.LockFundsRequest) (*domain.Receipt, error) {
	var idempKey string
	if req.IdempotencyKey != "" {
		idempKey = domain.BuildLockIdempotencyKey(req.Borrower, req.IdempotencyKey)

		// Layer 1: Redis idempotency check. A halted ledger answers every
		// draw itself so no cached receipt is served as durable.
		if s.ledger.Halted() != nil {
			return nil, apperror.ErrLedgerHalted(s.ledger.Halted())
		}
		if rec := s.cachedReceipt(ctx, idempKey); rec != nil {
			if rec.Merchant != req.Merchant || rec.Amount != req.Amount {
				return nil, apperror.ErrIdempotencyKeyReused(idempKey)
			}
			return rec, nil
		}
	}

	// Layer 2: the ledger deduplicates under its own lock.
	res, err := s.ledger.LockFunds(req.Borrower, req.Merchant, req.Amount, idempKey)
	if err != nil {
		return nil, err
	}
	if res.Replayed {
		s.log.Debug().Str("key", idempKey).Str("receipt_id", res.Receipt.ID.Hex()).Msg("idempotent draw replayed")
		s.cacheReceipt(ctx, idempKey, &res.Receipt)
		return &res.Receipt, nil
	}
	if err := s.commit(ctx, res.Entry); err != nil {
		return nil, err
	}

	s.cacheReceipt(ctx, idempKey, &res.Receipt)
	s.publish(ctx, res.Event)

	s.log.Info().
		Uint64("seq", res.Entry.Seq).
		Str("receipt_id", res.Receipt.ID.Hex()).
		Str("borrower", req.Borrower.String()).
		Str("merchant", req.Merchant.String()).
		Str("amount", req.Amount.String()).
		Msg("funds locked")
	return &res.Receipt, nil
}

func (s *LedgerServiceImpl) cachedReceipt(ctx context.Context, key string) *domain.Receipt {
	if s.idempCache == nil {
		return nil
	}
	cached, err := s.idempCache.Lookup(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, falling through to ledger")
		return nil
	}
	if cached == nil {
		return nil
	}
	// The cache can outlive the ledger state, e.g. a memory-only restart.
	rec, err := s.ledger.Receipt(cached.ID)
	if err != nil {
		s.log.Warn().Str("key", key).Str("receipt_id", cached.ID.Hex()).Msg("cached receipt unknown to ledger, ignoring")
		return nil
	}
	return &rec
}

// cacheReceipt stores the draw response (best-effort).
func (s *LedgerServiceImpl) cacheReceipt(ctx context.Context, key string, rec *domain.Receipt) {
	if s.idempCache == nil || key == "" {
		return
	}
	if err := s.idempCache.Remember(ctx, key, rec, s.idempTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotency in redis")
	}
}

// publish fans the event out to every publisher; failures are only logged.
func (s *LedgerServiceImpl) publish(ctx context.Context, event domain.FundsLocked) {
	for _, p := range s.publishers {
		if err := p.PublishFundsLocked(context.WithoutCancel(ctx), event); err != nil {
			s.log.Warn().Err(err).Str("receipt_id", event.ReceiptID.Hex()).Msg("failed to publish FundsLocked")
		}
	}
}

// Repay implements ports.LedgerService.
func (s *LedgerServiceImpl) Repay(ctx context.Context, borrower domain.Principal, amount domain.Amount) (domain.BorrowerAccount, error) {
	entry, err := s.ledger.Repay(borrower, amount)
	if err != nil {
		return domain.BorrowerAccount{}, err
	}
	if err := s.commit(ctx, entry); err != nil {
		return domain.BorrowerAccount{}, err
	}

	s.log.Info().
		Uint64("seq", entry.Seq).
		Str("principal", borrower.String()).
		Str("amount", amount.String()).
		Msg("repayment received")
	return s.ledger.Borrower(borrower), nil
}

// VerifyReceipt implements ports.LedgerService.
func (s *LedgerServiceImpl) VerifyReceipt(_ context.Context, id domain.ReceiptID) (domain.ReceiptVerification, error) {
	return s.ledger.VerifyReceipt(id)
}

// SettleReceipt implements ports.LedgerService.
func (s *LedgerServiceImpl) SettleReceipt(ctx context.Context, caller domain.Principal, id domain.ReceiptID) (*domain.Receipt, error) {
	res, err := s.ledger.SettleReceipt(caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, res.Entry); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint64("seq", res.Entry.Seq).
		Str("receipt_id", id.Hex()).
		Str("merchant", caller.String()).
		Str("amount", res.Receipt.Amount.String()).
		Msg("receipt settled")
	return &res.Receipt, nil
}

// ClaimAll implements ports.LedgerService.
func (s *LedgerServiceImpl) ClaimAll(ctx context.Context, caller domain.Principal) (*ports.ClaimResult, error) {
	res, err := s.ledger.ClaimAll(caller)
	if err != nil {
		return nil, err
	}
	if err := s.commit(ctx, res.Entry); err != nil {
		return nil, err
	}

	s.log.Info().
		Uint64("seq", res.Entry.Seq).
		Str("merchant", caller.String()).
		Int("receipts", len(res.ReceiptIDs)).
		Str("total", res.Total.String()).
		Msg("receipts claimed")
	return &ports.ClaimResult{Total: res.Total, ReceiptIDs: res.ReceiptIDs}, nil
}

// WithdrawClaimable implements ports.LedgerService.
func (s *LedgerServiceImpl) WithdrawClaimable(ctx context.Context, merchant domain.Principal) (domain.Amount, error) {
	entry, err := s.ledger.WithdrawClaimable(merchant)
	if err != nil {
		return 0, err
	}
	if err := s.commit(ctx, entry); err != nil {
		return 0, err
	}

	s.log.Info().
		Uint64("seq", entry.Seq).
		Str("merchant", merchant.String()).
		Str("amount", entry.Amount.String()).
		Msg("claimable balance paid out")
	return entry.Amount, nil
}

// SetCreditLimit implements ports.LedgerService.
func (s *LedgerServiceImpl) SetCreditLimit(ctx context.Context, caller, borrower domain.Principal, limit domain.Amount) (domain.BorrowerAccount, error) {
	entry, err := s.ledger.SetCreditLimit(caller, borrower, limit)
	if err != nil {
		return domain.BorrowerAccount{}, err
	}
	if err := s.commit(ctx, entry); err != nil {
		return domain.BorrowerAccount{}, err
	}

	s.log.Info().
		Uint64("seq", entry.Seq).
		Str("operator", caller.String()).
		Str("borrower", borrower.String()).
		Str("limit", limit.String()).
		Msg("credit limit set")
	return s.ledger.Borrower(borrower), nil
}

// LenderBalance implements ports.LedgerService.
func (s *LedgerServiceImpl) LenderBalance(_ context.Context, lender domain.Principal) (domain.LenderPosition, error) {
	return domain.LenderPosition{Owner: lender, Balance: s.ledger.LenderBalance(lender)}, nil
}

// Pool implements ports.LedgerService.
func (s *LedgerServiceImpl) Pool(_ context.Context) (domain.PoolSnapshot, error) {
	return s.ledger.Pool(), nil
}

// Borrower implements ports.LedgerService.
func (s *LedgerServiceImpl) Borrower(_ context.Context, borrower domain.Principal) (domain.BorrowerAccount, error) {
	return s.ledger.Borrower(borrower), nil
}

// MerchantClaimable implements ports.LedgerService.
func (s *LedgerServiceImpl) MerchantClaimable(_ context.Context, merchant domain.Principal) (domain.MerchantClaimable, error) {
	return domain.MerchantClaimable{Merchant: merchant, Balance: s.ledger.MerchantClaimable(merchant)}, nil
}

// Receipt implements ports.LedgerService.
func (s *LedgerServiceImpl) Receipt(_ context.Context, id domain.ReceiptID) (*domain.Receipt, error) {
	rec, err := s.ledger.Receipt(id)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// MerchantReceipts implements ports.LedgerService.
func (s *LedgerServiceImpl) MerchantReceipts(_ context.Context, merchant domain.Principal) ([]domain.Receipt, error) {
	return s.ledger.MerchantReceipts(merchant), nil
}

// CheckInvariants implements ports.LedgerService.
func (s *LedgerServiceImpl) CheckInvariants(_ context.Context) error {
	if err := s.ledger.Halted(); err != nil {
		return apperror.ErrLedgerHalted(err)
	}
	if err := s.ledger.CheckInvariants(); err != nil {
		return apperror.InternalError(err)
	}
	return nil
}

// Halted returns the reason the ledger stopped accepting writes, or nil.
func (s *LedgerServiceImpl) Halted() error {
	return s.ledger.Halted()
}
