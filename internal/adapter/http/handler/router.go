package handler

import (
	"aura-ledger/internal/adapter/http/middleware"
	redisStore "aura-ledger/internal/adapter/storage/redis"
	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	TokenSvc       ports.TokenService
	Operators      map[domain.Principal]struct{}
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.RequestBodyLimit(middleware.DefaultBodyLimit))

	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	docs := r.Group("/swagger")
	{
		docs.GET("", APIDocs)
		docs.GET("/spec", APISpec)
	}

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	operatorOnly := middleware.RequireOperator(deps.Operators)

	liquidity := NewLiquidityHandler(deps.LedgerSvc)
	credit := NewCreditHandler(deps.LedgerSvc)
	settlement := NewSettlementHandler(deps.LedgerSvc)
	admin := NewAdminHandler(deps.LedgerSvc)

	v1 := r.Group("/api/v1")

	v1.GET("/pool", rl("query"), liquidity.Pool)
	v1.GET("/liquidity/positions/:principal", rl("query"), liquidity.Position)
	v1.GET("/credit/due/:principal", rl("query"), credit.Due)
	v1.GET("/receipts/:id", rl("query"), settlement.VerifyReceipt)
	v1.GET("/merchants/:principal/claimable", rl("query"), settlement.Claimable)
	v1.GET("/merchants/:principal/receipts", rl("query"), settlement.MerchantReceipts)

	authed := v1.Group("", jwtAuth)
	{
		authed.POST("/liquidity/provide", rl("liquidity"), liquidity.Provide)
		authed.POST("/liquidity/withdraw", rl("liquidity"), liquidity.Withdraw)

		authed.POST("/credit/lock", rl("credit"), credit.LockFunds)
		authed.POST("/credit/repay", rl("credit"), credit.Repay)

		authed.POST("/receipts/:id/settle", rl("settlement"), settlement.Settle)
		authed.POST("/settlements/claim-all", rl("settlement"), settlement.ClaimAll)
		authed.POST("/settlements/withdraw", rl("settlement"), settlement.WithdrawClaimable)

		// SetCreditLimit is also refused by the ledger for non-operators.
		authed.PUT("/credit/limits/:principal", rl("admin"), operatorOnly, credit.SetLimit)
		authed.GET("/ledger/invariants", rl("admin"), operatorOnly, admin.CheckInvariants)
	}

	return r
}
