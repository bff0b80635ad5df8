package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"aura-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	principal := domain.Principal("0xmerchant")
	log := &domain.AuditLog{
		ID:           uuid.New(),
		Principal:    &principal,
		Action:       domain.AuditActionSettle,
		ResourceType: "receipt",
		ResourceID:   "0xabc",
		Details:      `{"status":200}`,
		IPAddress:    "10.0.0.1",
		CreatedAt:    time.Now().UTC(),
	}

	p := "0xmerchant"
	details := `{"status":200}`
	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(log.ID, &p, "SETTLE", "receipt", "0xabc", &details, "10.0.0.1", log.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), log))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepo_Create_Anonymous(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAuditRepo(mock)
	log := &domain.AuditLog{
		ID:           uuid.New(),
		Action:       domain.AuditActionProvide,
		ResourceType: "pool",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(log.ID, (*string)(nil), "PROVIDE", "pool", "", (*string)(nil), "", log.CreatedAt).
		WillReturnError(errors.New("relation does not exist"))

	err = repo.Create(context.Background(), log)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert audit log")
}
