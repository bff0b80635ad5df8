package domain

import "time"

// Operation names a committed ledger mutation.
type Operation string

const (
	OpProvide           Operation = "PROVIDE"
	OpWithdraw          Operation = "WITHDRAW"
	OpLockFunds         Operation = "LOCK_FUNDS"
	OpRepay             Operation = "REPAY"
	OpSettle            Operation = "SETTLE"
	OpClaimAll          Operation = "CLAIM_ALL"
	OpWithdrawClaimable Operation = "WITHDRAW_CLAIMABLE"
	OpSetCreditLimit    Operation = "SET_CREDIT_LIMIT"
)

// JournalEntry is the append-only record of one committed ledger operation.
// Replaying every entry in Seq order onto an empty ledger reproduces its state.
type JournalEntry struct {
	Seq            uint64      `json:"seq"`
	Op             Operation   `json:"op"`
	Principal      Principal   `json:"principal"`              // Acting lender, borrower or merchant
	Counterparty   Principal   `json:"counterparty,omitempty"` // Merchant of a draw
	Amount         Amount      `json:"amount"`
	ReceiptIDs     []ReceiptID `json:"receipt_ids,omitempty"`
	Nonce          uint64      `json:"nonce,omitempty"`
	IdempotencyKey string      `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

