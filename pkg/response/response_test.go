package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aura-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(requestID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	if requestID != "" {
		c.Set("request_id", requestID)
	}
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccessEnvelope(t *testing.T) {
	tests := []struct {
		name   string
		write  func(*gin.Context, interface{})
		status int
	}{
		{"ok", OK, http.StatusOK},
		{"created", Created, http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("req-" + tt.name)
			tt.write(c, map[string]string{"available": "600.000000"})

			assert.Equal(t, tt.status, w.Code)
			var body struct {
				Data      map[string]string `json:"data"`
				RequestID string            `json:"request_id"`
				Timestamp string            `json:"timestamp"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "600.000000", body.Data["available"])
			assert.Equal(t, "req-"+tt.name, body.RequestID)
			_, err := time.Parse(time.RFC3339, body.Timestamp)
			assert.NoError(t, err)
		})
	}
}

func TestSuccessEnvelope_FreshRequestID(t *testing.T) {
	c, w := testContext("")
	OK(c, nil)

	var body SuccessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	_, err := uuid.Parse(body.RequestID)
	assert.NoError(t, err)
}

func TestErrorEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		status     int
		code       string
		details    map[string]string
		retryAfter string
	}{
		{
			name:    "insolvent pool",
			err:     apperror.ErrInsolvent(1000, 600),
			status:  http.StatusConflict,
			code:    "LED_002",
			details: map[string]string{"requested": "1000", "available": "600"},
		},
		{
			name:   "wrapped",
			err:    fmt.Errorf("settle: %w", apperror.ErrUnauthorized("settle")),
			status: http.StatusForbidden,
			code:   "LED_004",
		},
		{
			name:   "already settled",
			err:    apperror.ErrAlreadySettled("0xabc"),
			status: http.StatusConflict,
			code:   apperror.CodeOf(apperror.ErrAlreadySettled("0xabc")),
		},
		{
			name:       "halted",
			err:        apperror.ErrLedgerHalted(errors.New("journal: disk full")),
			status:     http.StatusServiceUnavailable,
			code:       "SYS_004",
			retryAfter: "30",
		},
		{
			name:   "plain error",
			err:    errors.New("pq: connection reset"),
			status: http.StatusInternalServerError,
			code:   "SYS_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext("req-1")
			Error(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.retryAfter, w.Header().Get("Retry-After"))

			body := decodeError(t, w)
			assert.Equal(t, tt.code, body.ErrorCode)
			assert.NotEmpty(t, body.Message)
			assert.Equal(t, "req-1", body.RequestID)
			for k, v := range tt.details {
				assert.Equal(t, v, body.Details[k], k)
			}

			require.Len(t, c.Errors, 1)
			assert.Same(t, tt.err, c.Errors.Last().Err)
		})
	}
}

func TestErrorEnvelope_HidesInternalCause(t *testing.T) {
	c, w := testContext("")
	Error(c, errors.New("dial tcp 10.0.0.7:5432: refused"))

	assert.NotContains(t, w.Body.String(), "10.0.0.7")
	assert.Equal(t, "Internal server error", decodeError(t, w).Message)
}

func TestAsAppError(t *testing.T) {
	known := apperror.ErrNotFound("Receipt")
	assert.Same(t, known, AsAppError(fmt.Errorf("lookup: %w", known)))

	internal := AsAppError(errors.New("boom"))
	assert.Equal(t, apperror.CodeInternal, internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
}
