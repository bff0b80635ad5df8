package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const probeTimeout = 2 * time.Second

// ErrJournalMissing is returned by the probe when the database answers but
// the journal table has not been migrated.
var ErrJournalMissing = errors.New("ledger_journal table missing")

// JournalProbe reports PostgreSQL healthy only when the journal table is
// reachable, so a fresh database without migrations fails /health.
type JournalProbe struct {
	pool    Pool
	timeout time.Duration
}

// NewJournalProbe creates a ports.HealthChecker backed by the journal table.
func NewJournalProbe(pool Pool) *JournalProbe {
	return &JournalProbe{pool: pool, timeout: probeTimeout}
}

func (p *JournalProbe) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var present bool
	if err := p.pool.QueryRow(ctx, `SELECT to_regclass('ledger_journal') IS NOT NULL`).Scan(&present); err != nil {
		return fmt.Errorf("probing journal: %w", err)
	}
	if !present {
		return ErrJournalMissing
	}
	return nil
}

func (p *JournalProbe) Name() string {
	return "postgresql"
}
