package handler

import (
	"aura-ledger/internal/adapter/http/dto"
	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"
	"aura-ledger/pkg/apperror"
	"aura-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// LiquidityHandler handles lender and pool endpoints.
type LiquidityHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLiquidityHandler creates a new LiquidityHandler.
func NewLiquidityHandler(ledgerSvc ports.LedgerService) *LiquidityHandler {
	return &LiquidityHandler{ledgerSvc: ledgerSvc}
}

// Provide handles POST /api/v1/liquidity/provide.
func (h *LiquidityHandler) Provide(c *gin.Context) {
	lender, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.ProvideRequest
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

	position, err := h.ledgerSvc.Provide(c.Request.Context(), lender, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toPositionResponse(position))
}

// Withdraw handles POST /api/v1/liquidity/withdraw. The lender defaults to
// the caller; naming another lender is refused by the ledger.
func (h *LiquidityHandler) Withdraw(c *gin.Context) {
	me, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawRequest
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
	lender := me
	if req.Lender != "" {
		lender = domain.NormalizePrincipal(req.Lender)
	}

	position, err := h.ledgerSvc.Withdraw(c.Request.Context(), me, lender, amount)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toPositionResponse(position))
}

// Position handles GET /api/v1/liquidity/positions/:principal.
func (h *LiquidityHandler) Position(c *gin.Context) {
	lender, err := principalParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	position, err := h.ledgerSvc.LenderBalance(c.Request.Context(), lender)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toPositionResponse(position))
}

// Pool handles GET /api/v1/pool.
func (h *LiquidityHandler) Pool(c *gin.Context) {
	snapshot, err := h.ledgerSvc.Pool(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toPoolResponse(snapshot))
}
