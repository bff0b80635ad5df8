package handler

import (
	"net/http"

	"aura-ledger/internal/adapter/http/dto"
	"aura-ledger/internal/core/ports"
	"aura-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles operator endpoints.
type AdminHandler struct {
	ledgerSvc ports.LedgerService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(ledgerSvc ports.LedgerService) *AdminHandler {
	return &AdminHandler{ledgerSvc: ledgerSvc}
}

// CheckInvariants handles GET /api/v1/ledger/invariants.
func (h *AdminHandler) CheckInvariants(c *gin.Context) {
	if err := h.ledgerSvc.CheckInvariants(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.InvariantsResponse{Status: "ok"})
}

// HealthCheck handles GET /health. Every dependency is pinged and any
// failure reports the service as degraded.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
