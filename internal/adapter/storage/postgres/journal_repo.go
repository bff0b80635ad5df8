package postgres

import (
	"context"
	"fmt"
	"math"

	"aura-ledger/internal/core/domain"
)

const journalColumns = `seq, op, principal, counterparty, amount, receipt_ids, nonce, idempotency_key, created_at`

// JournalRepo implements ports.JournalRepository on the ledger_journal table.
type JournalRepo struct {
	pool Pool
}

// NewJournalRepo creates a new JournalRepo.
func NewJournalRepo(pool Pool) *JournalRepo {
	return &JournalRepo{pool: pool}
}

// Append inserts one committed entry. A duplicate seq violates the primary key.
func (r *JournalRepo) Append(ctx context.Context, e domain.JournalEntry) error {
	seq, err := toInt64("seq", e.Seq)
	if err != nil {
		return err
	}
	amount, err := toInt64("amount", uint64(e.Amount))
	if err != nil {
		return err
	}
	nonce, err := toInt64("nonce", e.Nonce)
	if err != nil {
		return err
	}

	ids := make([]string, len(e.ReceiptIDs))
	for i, id := range e.ReceiptIDs {
		ids[i] = id.Hex()
	}

	query := `INSERT INTO ledger_journal (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err = r.pool.Exec(ctx, query,
		seq, string(e.Op), string(e.Principal), string(e.Counterparty),
		amount, ids, nonce, e.IdempotencyKey, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert journal entry %d: %w", e.Seq, err)
	}
	return nil
}

// List returns up to limit entries after afterSeq in seq order.
func (r *JournalRepo) List(ctx context.Context, afterSeq uint64, limit int) ([]domain.JournalEntry, error) {
	after, err := toInt64("seq", afterSeq)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + journalColumns + ` FROM ledger_journal WHERE seq > $1 ORDER BY seq LIMIT $2`
	rows, err := r.pool.Query(ctx, query, after, limit)
	if err != nil {
		return nil, fmt.Errorf("list journal: %w", err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		var (
			e                           domain.JournalEntry
			seq, amount, nonce          int64
			op, principal, counterparty string
			ids                         []string
		)
		if err := rows.Scan(&seq, &op, &principal, &counterparty, &amount, &ids, &nonce, &e.IdempotencyKey, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		if seq < 0 || amount < 0 || nonce < 0 {
			return nil, fmt.Errorf("journal entry %d has negative fields", seq)
		}
		e.Seq = uint64(seq)
		e.Op = domain.Operation(op)
		e.Principal = domain.Principal(principal)
		e.Counterparty = domain.Principal(counterparty)
		e.Amount = domain.Amount(amount)
		e.Nonce = uint64(nonce)
		e.CreatedAt = e.CreatedAt.UTC()
		for _, raw := range ids {
			id, err := domain.ParseReceiptID(raw)
			if err != nil {
				return nil, fmt.Errorf("journal entry %d: %w", seq, err)
			}
			e.ReceiptIDs = append(e.ReceiptIDs, id)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal rows: %w", err)
	}
	return entries, nil
}

// LastSeq returns the highest persisted seq, 0 when the journal is empty.
func (r *JournalRepo) LastSeq(ctx context.Context) (uint64, error) {
	var last int64
	if err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) FROM ledger_journal`).Scan(&last); err != nil {
		return 0, fmt.Errorf("last journal seq: %w", err)
	}
	return uint64(last), nil
}

// toInt64 maps a uint64 onto a BIGINT column.
func toInt64(field string, v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("%s %d exceeds BIGINT range", field, v)
	}
	return int64(v), nil
}
