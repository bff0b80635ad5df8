package middleware

import (
	"net/http"

	"aura-ledger/pkg/apperror"
	"aura-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// DefaultBodyLimit caps ledger request bodies. Every write is a small JSON object.
const DefaultBodyLimit int64 = 64 << 10

// RequestBodyLimit rejects a declared Content-Length over limit with REQ_002
// before any handler runs. Bodies of unknown length are cut off at limit
// while being read.
func RequestBodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			response.Error(c, apperror.ErrBodyTooLarge(limit))
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}
