package handler

import (
	"errors"
	"net/http"
	"time"

	"aura-ledger/internal/adapter/http/dto"
	"aura-ledger/internal/adapter/http/middleware"
	"aura-ledger/internal/core/domain"
	"aura-ledger/pkg/apperror"
	"aura-ledger/pkg/money"

	"github.com/gin-gonic/gin"
)

// caller returns the principal authenticated by JWTAuth.
func caller(c *gin.Context) (domain.Principal, bool) {
	return middleware.Principal(c)
}

// principalParam reads and normalizes the :principal path parameter.
func principalParam(c *gin.Context) (domain.Principal, error) {
	raw := c.Param("principal")
	if !dto.ValidPrincipal(raw) {
		return "", apperror.Validation("invalid principal")
	}
	return domain.NormalizePrincipal(raw), nil
}

// receiptIDParam reads the :id path parameter.
func receiptIDParam(c *gin.Context) (domain.ReceiptID, error) {
	id, err := domain.ParseReceiptID(c.Param("id"))
	if err != nil {
		return id, apperror.Validation("invalid receipt id")
	}
	return id, nil
}

// bindJSON decodes the request body into dst. A body cut off by
// middleware.RequestBodyLimit maps to REQ_002, anything else to REQ_001.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperror.ErrBodyTooLarge(tooLarge.Limit)
	}
	return apperror.Validation(err.Error())
}

// parseAmount converts a validated decimal string to smallest units.
func parseAmount(s string, allowZero bool) (domain.Amount, error) {
	var (
		units uint64
		err   error
	)
	if allowZero {
		units, err = money.Parse(s)
	} else {
		units, err = money.ParsePositive(s)
	}
	if err != nil {
		return 0, apperror.Validation("amount: " + err.Error())
	}
	return domain.Amount(units), nil
}

func formatAmount(a domain.Amount) string {
	return money.Format(uint64(a))
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toPositionResponse(p domain.LenderPosition) dto.PositionResponse {
	return dto.PositionResponse{Owner: p.Owner.String(), Balance: formatAmount(p.Balance)}
}

func toPoolResponse(s domain.PoolSnapshot) dto.PoolResponse {
	return dto.PoolResponse{
		TotalLent:    formatAmount(s.TotalLent),
		TotalLocked:  formatAmount(s.TotalLocked),
		Available:    formatAmount(s.Available),
		RepaidToPool: formatAmount(s.RepaidToPool),
	}
}

func toBorrowerResponse(a domain.BorrowerAccount) dto.BorrowerResponse {
	resp := dto.BorrowerResponse{Borrower: a.Borrower.String(), Due: formatAmount(a.Due)}
	if a.Limit != nil {
		limit := formatAmount(*a.Limit)
		resp.Limit = &limit
	}
	return resp
}

func toReceiptResponse(r *domain.Receipt) dto.ReceiptResponse {
	resp := dto.ReceiptResponse{
		ID:        r.ID.Hex(),
		Merchant:  r.Merchant.String(),
		Borrower:  r.Borrower.String(),
		Amount:    formatAmount(r.Amount),
		Nonce:     r.Nonce,
		Settled:   r.Settled,
		CreatedAt: formatTime(r.CreatedAt),
	}
	if r.SettledAt != nil {
		settledAt := formatTime(*r.SettledAt)
		resp.SettledAt = &settledAt
	}
	return resp
}
