package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string            `json:"error_code"`
	Message    string            `json:"message"`
	HTTPStatus int               `json:"-"`
	Details    map[string]string `json:"details,omitempty"` // Failing amounts/limits for the caller
	Err        error             `json:"-"`                 // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// With attaches a detail key/value and returns the same error for chaining.
func (e *AppError) With(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the AppError code found in err's chain, or "" if none.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Error codes. Ledger kinds are stable across the HTTP boundary.
const (
	CodeInsufficientBalance = "LED_001"
	CodeInsolvent           = "LED_002"
	CodeNoClaimableFunds    = "LED_003"
	CodeUnauthorized        = "LED_004"
	CodeAlreadySettled      = "LED_005"
	CodeNotFound            = "LED_006"
	CodeCreditLimitExceeded = "LED_007"
	CodeInvalidAmount       = "LED_008"
	CodeAmountOverflow      = "LED_009"

	CodeInvalidToken     = "AUTH_001"
	CodeIdempotencyReuse = "IDEMP_001"
	CodeRateLimited      = "RATE_001"
	CodeInternal         = "SYS_001"
	CodeLedgerHalted     = "SYS_004"
	CodeValidationFailed = "REQ_001"
	CodeBodyTooLarge     = "REQ_002"
)

// ---- Ledger (LED) ----

func ErrInsufficientBalance(namespace string, requested, available uint64) *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance", http.StatusUnprocessableEntity).
		With("namespace", namespace).
		With("requested", fmt.Sprint(requested)).
		With("available", fmt.Sprint(available))
}

func ErrInsolvent(requested, available uint64) *AppError {
	return New(CodeInsolvent, "Pool liquidity is insufficient", http.StatusConflict).
		With("requested", fmt.Sprint(requested)).
		With("available", fmt.Sprint(available))
}

func ErrNoClaimableFunds(merchant string) *AppError {
	return New(CodeNoClaimableFunds, "No claimable funds", http.StatusNotFound).
		With("merchant", merchant)
}

func ErrUnauthorized(action string) *AppError {
	return New(CodeUnauthorized, "Caller is not authorized for this action", http.StatusForbidden).
		With("action", action)
}

func ErrAlreadySettled(receiptID string) *AppError {
	return New(CodeAlreadySettled, "Receipt already settled", http.StatusConflict).
		With("receipt_id", receiptID)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

func ErrCreditLimitExceeded(requested, due, limit uint64) *AppError {
	return New(CodeCreditLimitExceeded, "Credit limit exceeded", http.StatusUnprocessableEntity).
		With("requested", fmt.Sprint(requested)).
		With("due", fmt.Sprint(due)).
		With("limit", fmt.Sprint(limit))
}

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Amount must be greater than zero", http.StatusBadRequest)
}

func ErrAmountOverflow() *AppError {
	return New(CodeAmountOverflow, "Amount exceeds the representable range", http.StatusBadRequest)
}

// ---- Authentication (AUTH) ----

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Idempotency (IDEMP) ----

func ErrIdempotencyKeyReused(key string) *AppError {
	return New(CodeIdempotencyReuse, "Idempotency key was already used with different parameters", http.StatusUnprocessableEntity).
		With("idempotency_key", key)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

// ErrLedgerHalted is returned for every write once the ledger has stopped accepting them.
func ErrLedgerHalted(reason error) *AppError {
	return Wrap(CodeLedgerHalted, "Ledger halted, writes are disabled", http.StatusServiceUnavailable, reason)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a request validation error.
func Validation(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}

// ErrBodyTooLarge reports a request body over the configured byte limit.
func ErrBodyTooLarge(limit int64) *AppError {
	return New(CodeBodyTooLarge, "Request body too large", http.StatusRequestEntityTooLarge).
		With("limit_bytes", strconv.FormatInt(limit, 10))
}
