package integration

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"aura-ledger/internal/core/domain"
)

// --- In-Memory Journal Repo ---

type inMemoryJournalRepo struct {
	mu      sync.RWMutex
	entries []domain.JournalEntry
}

func newInMemoryJournalRepo() *inMemoryJournalRepo {
	return &inMemoryJournalRepo{}
}

func (r *inMemoryJournalRepo) Append(_ context.Context, entry domain.JournalEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n := len(r.entries); n > 0 && entry.Seq <= r.entries[n-1].Seq {
		return fmt.Errorf("seq %d out of order after %d", entry.Seq, r.entries[n-1].Seq)
	}
	entry.ReceiptIDs = append([]domain.ReceiptID(nil), entry.ReceiptIDs...)
	r.entries = append(r.entries, entry)
	return nil
}

func (r *inMemoryJournalRepo) List(_ context.Context, afterSeq uint64, limit int) ([]domain.JournalEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	start := sort.Search(len(r.entries), func(i int) bool { return r.entries[i].Seq > afterSeq })
	end := start + limit
	if end > len(r.entries) {
		end = len(r.entries)
	}
	out := make([]domain.JournalEntry, end-start)
	copy(out, r.entries[start:end])
	return out, nil
}

func (r *inMemoryJournalRepo) LastSeq(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.entries) == 0 {
		return 0, nil
	}
	return r.entries[len(r.entries)-1].Seq, nil
}

func (r *inMemoryJournalRepo) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu   sync.Mutex
	logs []domain.AuditLog
}

func newInMemoryAuditRepo() *inMemoryAuditRepo {
	return &inMemoryAuditRepo{}
}

func (r *inMemoryAuditRepo) Create(_ context.Context, entry *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *inMemoryAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.logs))
	for _, l := range r.logs {
		out = append(out, l.Action)
	}
	return out
}
