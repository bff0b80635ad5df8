package service

import "context"

// LedgerHealthChecker reports the ledger unhealthy once it has halted or its
// invariants no longer hold.
type LedgerHealthChecker struct {
	svc *LedgerServiceImpl
}

// NewLedgerHealthChecker creates a ports.HealthChecker for the ledger.
func NewLedgerHealthChecker(svc *LedgerServiceImpl) *LedgerHealthChecker {
	return &LedgerHealthChecker{svc: svc}
}

func (h *LedgerHealthChecker) Ping(ctx context.Context) error {
	return h.svc.CheckInvariants(ctx)
}

func (h *LedgerHealthChecker) Name() string {
	return "ledger"
}
