package ports

import (
	"context"

	"aura-ledger/internal/core/domain"
)

// JournalRepository is the append-only store of committed ledger operations.
type JournalRepository interface {
	// Append persists one entry. Entries arrive in strictly increasing Seq order.
	Append(ctx context.Context, entry domain.JournalEntry) error
	// List returns up to limit entries with Seq > afterSeq, ordered by Seq.
	List(ctx context.Context, afterSeq uint64, limit int) ([]domain.JournalEntry, error)
	// LastSeq returns the highest persisted Seq, or 0 for an empty journal.
	LastSeq(ctx context.Context) (uint64, error)
}

// AuditRepository persists audit logs.
type AuditRepository interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}
