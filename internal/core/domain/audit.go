package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionProvide           AuditAction = "PROVIDE"
	AuditActionWithdraw          AuditAction = "WITHDRAW"
	AuditActionLockFunds         AuditAction = "LOCK_FUNDS"
	AuditActionRepay             AuditAction = "REPAY"
	AuditActionSettle            AuditAction = "SETTLE"
	AuditActionClaimAll          AuditAction = "CLAIM_ALL"
	AuditActionWithdrawClaimable AuditAction = "WITHDRAW_CLAIMABLE"
	AuditActionSetCreditLimit    AuditAction = "SET_CREDIT_LIMIT"
)

// AuditLog records a single audited request in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Principal    *Principal  `json:"principal,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
