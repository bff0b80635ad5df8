package middleware

import (
	"net/http"
	"strings"
	"time"

	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ledger"
	"aura-ledger/internal/core/ports"
	"aura-ledger/pkg/apperror"
	"aura-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID      = "X-Request-ID"
	HeaderIdempotencyKey = "Idempotency-Key"

	// Context keys
	CtxPrincipal = "principal"
	CtxRequestID = "request_id"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth validates the bearer token and stores its subject as the caller.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || !strings.EqualFold(authHeader[:7], "Bearer ") {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("rejected bearer token")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxPrincipal, claims.Principal)
		c.Next()
	}
}

// RequireOperator admits only authenticated callers listed as operators.
// It must run after JWTAuth.
func RequireOperator(operators map[domain.Principal]struct{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := Principal(c)
		if !ok {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}
		if !ledger.CanAdminister(caller, operators) {
			response.Error(c, apperror.ErrUnauthorized("administer"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated caller set by JWTAuth.
func Principal(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(CtxPrincipal)
	if !exists {
		return "", false
	}
	p, ok := v.(domain.Principal)
	return p, ok && !p.IsZero()
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		if p, ok := Principal(c); ok {
			event = event.Str("principal", p.String())
		}
		if last := c.Errors.Last(); last != nil {
			event = event.AnErr("error", last.Err)
		}
		event.
			Str("request_id", c.GetString(CtxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().
					Interface("panic", r).
					Str("request_id", c.GetString(CtxRequestID)).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				response.Error(c, apperror.New(apperror.CodeInternal, "Internal server error", http.StatusInternalServerError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
