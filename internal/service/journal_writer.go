package service

import (
	"context"
	"fmt"
	"sync"

	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"
)

// journalWriter appends committed entries in strict Seq order. Operations
// commit in the ledger in Seq order but reach the writer from concurrent
// requests, so each append waits for its predecessor.
type journalWriter struct {
	repo ports.JournalRepository

	mu   sync.Mutex
	cond *sync.Cond
	next uint64
	err  error
}

func newJournalWriter(repo ports.JournalRepository, next uint64) *journalWriter {
	w := &journalWriter{repo: repo, next: next}
	w.cond = sync.NewCond(&w.mu)
	return w
}

func (w *journalWriter) reset(next uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.next = next
	w.err = nil
}

func (w *journalWriter) append(ctx context.Context, entry domain.JournalEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for w.err == nil && w.next != entry.Seq {
		w.cond.Wait()
	}
	if w.err != nil {
		return fmt.Errorf("journal closed after seq %d: %w", w.next-1, w.err)
	}

	if err := w.repo.Append(ctx, entry); err != nil {
		w.err = fmt.Errorf("append seq %d: %w", entry.Seq, err)
		w.cond.Broadcast()
		return w.err
	}
	w.next++
	w.cond.Broadcast()
	return nil
}
