package handler

import (
	"strings"

	"aura-ledger/internal/adapter/http/dto"
	"aura-ledger/internal/adapter/http/middleware"
	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"
	"aura-ledger/pkg/apperror"
	"aura-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// CreditHandler handles borrower endpoints.
type CreditHandler struct {
	ledgerSvc ports.LedgerService
}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler(ledgerSvc ports.LedgerService) *CreditHandler {
	return &CreditHandler{ledgerSvc: ledgerSvc}
}

// LockFunds handles POST /api/v1/credit/lock. The caller is the borrower.
func (h *CreditHandler) LockFunds(c *gin.Context) {
	borrower, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	idemKey := strings.TrimSpace(c.GetHeader(middleware.HeaderIdempotencyKey))
	if idemKey != "" && !dto.ValidIdempotencyKey(idemKey) {
		response.Error(c, apperror.Validation("invalid Idempotency-Key header"))
		return
	}

	var req dto.LockFundsRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount(req.Amount, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	rec, err := h.ledgerSvc.LockFunds(c.Request.Context(), ports.LockFundsRequest{
		Borrower:       borrower,
		Merchant:       domain.NormalizePrincipal(req.Merchant),
		Amount:         amount,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toReceiptResponse(rec))
}

// Repay handles POST /api/v1/credit/repay. The caller is the borrower.
func (h *CreditHandler) Repay(c *gin.Context) {
	borrower, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.RepayRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	dto.SanitizeStruct(&req)

	amount, err := parseAmount(req.Amount, false)
	if err != nil {
		response.Error(c, err)
		return
	}

	account, err := h.ledgerSvc.Repay(c.Request.Context(), borrower, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBorrowerResponse(account))
}

// Due handles GET /api/v1/credit/due/:principal.
func (h *CreditHandler) Due(c *gin.Context) {
	borrower, err := principalParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	account, err := h.ledgerSvc.Borrower(c.Request.Context(), borrower)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBorrowerResponse(account))
}

// SetLimit handles PUT /api/v1/credit/limits/:principal (operators only).
func (h *CreditHandler) SetLimit(c *gin.Context) {
	operator, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	borrower, err := principalParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SetCreditLimitRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}
	dto.SanitizeStruct(&req)

	limit, err := parseAmount(req.Limit, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	account, err := h.ledgerSvc.SetCreditLimit(c.Request.Context(), operator, borrower, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toBorrowerResponse(account))
}
