package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records successful write operations after the handler ran.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType := mapPathToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var principal *domain.Principal
		if p, ok := Principal(c); ok {
			principal = &p
		}

		resourceID := c.Param("id")
		if resourceID == "" {
			resourceID = c.Param("principal")
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"request_id": c.GetString(CtxRequestID),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Principal:    principal,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now().UTC(),
		})
	}
}

// mapPathToAction maps a route template to its audit action.
func mapPathToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/liquidity/provide" && method == http.MethodPost:
		return domain.AuditActionProvide, "lender_position"
	case route == "/api/v1/liquidity/withdraw" && method == http.MethodPost:
		return domain.AuditActionWithdraw, "lender_position"
	case route == "/api/v1/credit/lock" && method == http.MethodPost:
		return domain.AuditActionLockFunds, "receipt"
	case route == "/api/v1/credit/repay" && method == http.MethodPost:
		return domain.AuditActionRepay, "borrower"
	case route == "/api/v1/credit/limits/:principal" && method == http.MethodPut:
		return domain.AuditActionSetCreditLimit, "borrower"
	case route == "/api/v1/receipts/:id/settle" && method == http.MethodPost:
		return domain.AuditActionSettle, "receipt"
	case route == "/api/v1/settlements/claim-all" && method == http.MethodPost:
		return domain.AuditActionClaimAll, "merchant"
	case route == "/api/v1/settlements/withdraw" && method == http.MethodPost:
		return domain.AuditActionWithdrawClaimable, "merchant"
	}
	return "", ""
}
