package response

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"aura-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HaltedRetryAfter is the Retry-After hint (seconds) sent with 503 responses.
const HaltedRetryAfter = 30

// SuccessResponse is the standard success envelope.
type SuccessResponse struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id"`
	Timestamp string      `json:"timestamp"`
}

// ErrorResponse is the standard error envelope. Details carries the failing
// amounts and limits of ledger errors.
type ErrorResponse struct {
	ErrorCode string            `json:"error_code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id"`
	Timestamp string            `json:"timestamp"`
}

// OK sends a 200 response with data.
func OK(c *gin.Context, data interface{}) {
	success(c, http.StatusOK, data)
}

// Created sends a 201 response with data.
func Created(c *gin.Context, data interface{}) {
	success(c, http.StatusCreated, data)
}

// Error sends the error envelope for err. Errors that are not an
// *apperror.AppError become SYS_001. The original error is attached to the
// gin context so the request logger can report it.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	appErr := AsAppError(err)
	if appErr.HTTPStatus == http.StatusServiceUnavailable {
		c.Header("Retry-After", strconv.Itoa(HaltedRetryAfter))
	}
	c.JSON(appErr.HTTPStatus, ErrorResponse{
		ErrorCode: appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

// AsAppError returns the AppError in err's chain, or wraps err as an internal error.
func AsAppError(err error) *apperror.AppError {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.InternalError(err)
}

func success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{
		Data:      data,
		RequestID: requestID(c),
		Timestamp: timestamp(),
	})
}

// requestID retrieves the request ID set by the RequestID middleware, or generates one.
func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	return uuid.New().String()
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
