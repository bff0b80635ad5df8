package ports

import (
	"context"
	"time"

	"aura-ledger/internal/core/domain"
)

// SignatureService signs outgoing webhook bodies so receivers can
// authenticate them. The timestamp is part of the signed material.
type SignatureService interface {
	Sign(secret string, timestamp int64, body []byte) string
	Verify(secret string, timestamp int64, body []byte, signature string) bool
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(principal domain.Principal) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Principal domain.Principal
}

// IdempotencyCache remembers the receipt issued for a scoped idempotency
// key so replays skip the ledger lock. Lookup returns nil, nil on a miss.
// The ledger stays authoritative: a cache outage only costs the fast path.
type IdempotencyCache interface {
	Lookup(ctx context.Context, key string) (*domain.Receipt, error)
	Remember(ctx context.Context, key string, rec *domain.Receipt, ttl time.Duration) error
}

// EventPublisher delivers ledger events to external consumers. Delivery is
// best effort and never affects the ledger.
type EventPublisher interface {
	PublishFundsLocked(ctx context.Context, event domain.FundsLocked) error
}

// AuditService records audit entries asynchronously.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// --- Service Ports (Business Logic) ---

// LedgerService is the boundary to the escrow ledger.
type LedgerService interface {
	Provide(ctx context.Context, lender domain.Principal, amount domain.Amount) (domain.LenderPosition, error)
	Withdraw(ctx context.Context, caller, lender domain.Principal, amount domain.Amount) (domain.LenderPosition, error)
	LockFunds(ctx context.Context, req LockFundsRequest) (*domain.Receipt, error)
	Repay(ctx context.Context, borrower domain.Principal, amount domain.Amount) (domain.BorrowerAccount, error)
	VerifyReceipt(ctx context.Context, id domain.ReceiptID) (domain.ReceiptVerification, error)
	SettleReceipt(ctx context.Context, caller domain.Principal, id domain.ReceiptID) (*domain.Receipt, error)
	ClaimAll(ctx context.Context, caller domain.Principal) (*ClaimResult, error)
	WithdrawClaimable(ctx context.Context, merchant domain.Principal) (domain.Amount, error)
	SetCreditLimit(ctx context.Context, caller, borrower domain.Principal, limit domain.Amount) (domain.BorrowerAccount, error)

	LenderBalance(ctx context.Context, lender domain.Principal) (domain.LenderPosition, error)
	Pool(ctx context.Context) (domain.PoolSnapshot, error)
	Borrower(ctx context.Context, borrower domain.Principal) (domain.BorrowerAccount, error)
	MerchantClaimable(ctx context.Context, merchant domain.Principal) (domain.MerchantClaimable, error)
	Receipt(ctx context.Context, id domain.ReceiptID) (*domain.Receipt, error)
	MerchantReceipts(ctx context.Context, merchant domain.Principal) ([]domain.Receipt, error)
	CheckInvariants(ctx context.Context) error
}

// LockFundsRequest holds validated input for a draw.
type LockFundsRequest struct {
	Borrower       domain.Principal
	Merchant       domain.Principal
	Amount         domain.Amount
	IdempotencyKey string // Optional, caller-supplied
}

// ClaimResult summarizes a claimAll batch.
type ClaimResult struct {
	Total      domain.Amount
	ReceiptIDs []domain.ReceiptID
}
