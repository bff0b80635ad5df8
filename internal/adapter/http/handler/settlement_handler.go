package handler

import (
	"aura-ledger/internal/adapter/http/dto"
	"aura-ledger/internal/core/ports"
	"aura-ledger/pkg/apperror"
	"aura-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// SettlementHandler handles receipt and merchant endpoints.
type SettlementHandler struct {
	ledgerSvc ports.LedgerService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(ledgerSvc ports.LedgerService) *SettlementHandler {
	return &SettlementHandler{ledgerSvc: ledgerSvc}
}

// VerifyReceipt handles GET /api/v1/receipts/:id.
func (h *SettlementHandler) VerifyReceipt(c *gin.Context) {
	id, err := receiptIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	v, err := h.ledgerSvc.VerifyReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.VerifyReceiptResponse{
		ID:        id.Hex(),
		Merchant:  v.Merchant.String(),
		Amount:    formatAmount(v.Amount),
		Claimable: v.Claimable,
	})
}

// Settle handles POST /api/v1/receipts/:id/settle. Only the receipt's
// merchant may settle it.
func (h *SettlementHandler) Settle(c *gin.Context) {
	merchant, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	id, err := receiptIDParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rec, err := h.ledgerSvc.SettleReceipt(c.Request.Context(), merchant, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toReceiptResponse(rec))
}

// ClaimAll handles POST /api/v1/settlements/claim-all.
func (h *SettlementHandler) ClaimAll(c *gin.Context) {
	merchant, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	result, err := h.ledgerSvc.ClaimAll(c.Request.Context(), merchant)
	if err != nil {
		response.Error(c, err)
		return
	}

	ids := make([]string, len(result.ReceiptIDs))
	for i, id := range result.ReceiptIDs {
		ids[i] = id.Hex()
	}
	response.OK(c, dto.ClaimAllResponse{Total: formatAmount(result.Total), ReceiptIDs: ids})
}

// WithdrawClaimable handles POST /api/v1/settlements/withdraw.
func (h *SettlementHandler) WithdrawClaimable(c *gin.Context) {
	merchant, ok := caller(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	amount, err := h.ledgerSvc.WithdrawClaimable(c.Request.Context(), merchant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.WithdrawClaimableResponse{Merchant: merchant.String(), Amount: formatAmount(amount)})
}

// Claimable handles GET /api/v1/merchants/:principal/claimable.
func (h *SettlementHandler) Claimable(c *gin.Context) {
	merchant, err := principalParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	mc, err := h.ledgerSvc.MerchantClaimable(c.Request.Context(), merchant)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.ClaimableResponse{Merchant: mc.Merchant.String(), Balance: formatAmount(mc.Balance)})
}

// MerchantReceipts handles GET /api/v1/merchants/:principal/receipts.
func (h *SettlementHandler) MerchantReceipts(c *gin.Context) {
	merchant, err := principalParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	receipts, err := h.ledgerSvc.MerchantReceipts(c.Request.Context(), merchant)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ReceiptResponse, len(receipts))
	for i := range receipts {
		items[i] = toReceiptResponse(&receipts[i])
	}
	response.OK(c, dto.ReceiptListResponse{Items: items, Total: len(items)})
}
