package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"aura-ledger/internal/adapter/http/middleware"
	"aura-ledger/internal/core/domain"
	"aura-ledger/internal/core/ports"
	"aura-ledger/internal/core/ports/mocks"
	"aura-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newContext builds a test context. An empty principal leaves the request unauthenticated.
func newContext(method, path string, body interface{}, principal domain.Principal, params ...gin.Param) (*gin.Context, *httptest.ResponseRecorder) {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	if principal != "" {
		c.Set(middleware.CtxPrincipal, principal)
	}
	return c, w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp["data"].(map[string]interface{})
	require.True(t, ok, "response has no data: %s", w.Body.String())
	return data
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

var testReceiptID = domain.ComputeReceiptID("0xmerchant", "0xborrower", 400_000_000, 1, time.Unix(1_800_000_000, 0))

func testReceipt() *domain.Receipt {
	return &domain.Receipt{
		ID:        testReceiptID,
		Merchant:  "0xmerchant",
		Borrower:  "0xborrower",
		Amount:    400_000_000,
		Nonce:     1,
		CreatedAt: time.Unix(1_800_000_000, 0).UTC(),
	}
}

// --- Liquidity ---

func TestProvide_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewLiquidityHandler(svc)

	svc.EXPECT().Provide(gomock.Any(), domain.Principal("0xlender"), domain.Amount(1_000_000_000)).
		Return(domain.LenderPosition{Owner: "0xlender", Balance: 1_000_000_000}, nil)

	c, w := newContext(http.MethodPost, "/api/v1/liquidity/provide", map[string]string{"amount": "1000"}, "0xlender")
	h.Provide(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "0xlender", data["owner"])
	assert.Equal(t, "1000.000000", data["balance"])
}

func TestProvide_Unauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewLiquidityHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "1"}, "")
	h.Provide(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProvide_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewLiquidityHandler(mocks.NewMockLedgerService(ctrl))

	for _, amount := range []string{"", "0", "-5", "1.0000001", "abc"} {
		c, w := newContext(http.MethodPost, "/", map[string]string{"amount": amount}, "0xlender")
		h.Provide(c)
		assert.Equal(t, http.StatusBadRequest, w.Code, "amount %q", amount)
	}
}

func TestProvide_BodyOverLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewLiquidityHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "1000"}, "0xlender")
	c.Request.Body = http.MaxBytesReader(w, c.Request.Body, 8)
	h.Provide(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, apperror.CodeBodyTooLarge, resp["error_code"])
}

func TestWithdraw_DefaultsToCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewLiquidityHandler(svc)

	svc.EXPECT().Withdraw(gomock.Any(), domain.Principal("0xlender"), domain.Principal("0xlender"), domain.Amount(600_000_000)).
		Return(domain.LenderPosition{Owner: "0xlender", Balance: 400_000_000}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "600"}, "0xlender")
	h.Withdraw(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "400.000000", decodeData(t, w)["balance"])
}

func TestWithdraw_OtherLenderIsForwarded(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewLiquidityHandler(svc)

	svc.EXPECT().Withdraw(gomock.Any(), domain.Principal("0xmallory"), domain.Principal("0xlender"), domain.Amount(1_000_000)).
		Return(domain.LenderPosition{}, apperror.ErrUnauthorized("withdraw"))

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "1", "lender": "0xLENDER"}, "0xmallory")
	h.Withdraw(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "LED_004", decodeError(t, w)["error_code"])
}

func TestWithdraw_Insolvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewLiquidityHandler(svc)

	svc.EXPECT().Withdraw(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.LenderPosition{}, apperror.ErrInsolvent(1_000_000_000, 600_000_000))

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "1000"}, "0xlender")
	h.Withdraw(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "LED_002", resp["error_code"])
	details := resp["details"].(map[string]interface{})
	assert.Equal(t, "600000000", details["available"])
}

func TestPosition_And_Pool(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewLiquidityHandler(svc)

	svc.EXPECT().LenderBalance(gomock.Any(), domain.Principal("0xlender")).
		Return(domain.LenderPosition{Owner: "0xlender", Balance: 5}, nil)
	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "principal", Value: "0xLender"})
	h.Position(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.000005", decodeData(t, w)["balance"])

	svc.EXPECT().Pool(gomock.Any()).Return(domain.PoolSnapshot{
		TotalLent: 1_000_000_000, TotalLocked: 400_000_000, Available: 600_000_000,
	}, nil)
	c, w = newContext(http.MethodGet, "/", nil, "")
	h.Pool(c)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "1000.000000", data["total_lent"])
	assert.Equal(t, "400.000000", data["total_locked"])
	assert.Equal(t, "600.000000", data["available"])
	assert.Equal(t, "0.000000", data["repaid_to_pool"])
}

func TestPosition_InvalidPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewLiquidityHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "principal", Value: "bad principal"})
	h.Position(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Credit ---

func TestLockFunds_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewCreditHandler(svc)

	svc.EXPECT().LockFunds(gomock.Any(), ports.LockFundsRequest{
		Borrower:       "0xborrower",
		Merchant:       "0xmerchant",
		Amount:         400_000_000,
		IdempotencyKey: "order-1",
	}).Return(testReceipt(), nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"merchant": "0xMerchant", "amount": "400"}, "0xborrower")
	c.Request.Header.Set(middleware.HeaderIdempotencyKey, "order-1")
	h.LockFunds(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, testReceiptID.Hex(), data["id"])
	assert.Equal(t, "400.000000", data["amount"])
	assert.Equal(t, false, data["settled"])
	assert.Nil(t, data["settled_at"])
}

func TestLockFunds_InvalidIdempotencyKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewCreditHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodPost, "/", map[string]string{"merchant": "0xm", "amount": "1"}, "0xborrower")
	c.Request.Header.Set(middleware.HeaderIdempotencyKey, "has spaces in it")
	h.LockFunds(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLockFunds_LedgerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"insolvent", apperror.ErrInsolvent(400, 100), http.StatusConflict, "LED_002"},
		{"credit limit", apperror.ErrCreditLimitExceeded(400, 0, 100), http.StatusUnprocessableEntity, "LED_007"},
		{"key reused", apperror.ErrIdempotencyKeyReused("0xb:lock:k"), http.StatusUnprocessableEntity, "IDEMP_001"},
		{"halted", apperror.ErrLedgerHalted(errors.New("disk full")), http.StatusServiceUnavailable, "SYS_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockLedgerService(ctrl)
			h := NewCreditHandler(svc)
			svc.EXPECT().LockFunds(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			c, w := newContext(http.MethodPost, "/", map[string]string{"merchant": "0xm", "amount": "400"}, "0xborrower")
			h.LockFunds(c)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeError(t, w)["error_code"])
		})
	}
}

func TestRepay_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewCreditHandler(svc)

	svc.EXPECT().Repay(gomock.Any(), domain.Principal("0xborrower"), domain.Amount(100_000_000)).
		Return(domain.BorrowerAccount{Borrower: "0xborrower", Due: 300_000_000}, nil)

	c, w := newContext(http.MethodPost, "/", map[string]string{"amount": "100"}, "0xborrower")
	h.Repay(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "300.000000", data["due"])
	assert.Nil(t, data["limit"])
}

func TestDue_WithLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewCreditHandler(svc)

	limit := domain.Amount(500_000_000)
	svc.EXPECT().Borrower(gomock.Any(), domain.Principal("0xborrower")).
		Return(domain.BorrowerAccount{Borrower: "0xborrower", Due: 400_000_000, Limit: &limit}, nil)

	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "principal", Value: "0xborrower"})
	h.Due(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "400.000000", data["due"])
	assert.Equal(t, "500.000000", data["limit"])
}

func TestSetLimit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewCreditHandler(svc)

	zero := domain.Amount(0)
	svc.EXPECT().SetCreditLimit(gomock.Any(), domain.Principal("0xoracle"), domain.Principal("0xborrower"), domain.Amount(0)).
		Return(domain.BorrowerAccount{Borrower: "0xborrower", Limit: &zero}, nil)

	c, w := newContext(http.MethodPut, "/", map[string]string{"limit": "0"}, "0xoracle",
		gin.Param{Key: "principal", Value: "0xborrower"})
	h.SetLimit(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.000000", decodeData(t, w)["limit"])
}

// --- Settlement ---

func TestVerifyReceipt(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().VerifyReceipt(gomock.Any(), testReceiptID).
		Return(domain.ReceiptVerification{Merchant: "0xmerchant", Amount: 400_000_000, Claimable: true}, nil)

	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "id", Value: testReceiptID.Hex()})
	h.VerifyReceipt(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "0xmerchant", data["merchant"])
	assert.Equal(t, true, data["claimable"])
}

func TestVerifyReceipt_BadID(t *testing.T) {
	ctrl := gomock.NewController(t)
	h := NewSettlementHandler(mocks.NewMockLedgerService(ctrl))

	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "id", Value: "0x1234"})
	h.VerifyReceipt(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyReceipt_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().VerifyReceipt(gomock.Any(), testReceiptID).Return(domain.ReceiptVerification{}, apperror.ErrNotFound("Receipt"))

	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "id", Value: testReceiptID.Hex()})
	h.VerifyReceipt(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSettle_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	rec := testReceipt()
	settledAt := rec.CreatedAt.Add(time.Minute)
	rec.Settled = true
	rec.SettledAt = &settledAt
	svc.EXPECT().SettleReceipt(gomock.Any(), domain.Principal("0xmerchant"), testReceiptID).Return(rec, nil)

	c, w := newContext(http.MethodPost, "/", nil, "0xmerchant", gin.Param{Key: "id", Value: testReceiptID.Hex()})
	h.Settle(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, true, data["settled"])
	assert.Equal(t, "2027-01-15T08:01:00Z", data["settled_at"])
}

func TestSettle_AlreadySettled(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().SettleReceipt(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrAlreadySettled(testReceiptID.Hex()))

	c, w := newContext(http.MethodPost, "/", nil, "0xmerchant", gin.Param{Key: "id", Value: testReceiptID.Hex()})
	h.Settle(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "LED_005", decodeError(t, w)["error_code"])
}

func TestClaimAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().ClaimAll(gomock.Any(), domain.Principal("0xmerchant")).
		Return(&ports.ClaimResult{Total: 400_000_000, ReceiptIDs: []domain.ReceiptID{testReceiptID}}, nil)

	c, w := newContext(http.MethodPost, "/", nil, "0xmerchant")
	h.ClaimAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "400.000000", data["total"])
	assert.Equal(t, []interface{}{testReceiptID.Hex()}, data["receipt_ids"])
}

func TestClaimAll_NothingToClaim(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().ClaimAll(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrNoClaimableFunds("0xmerchant"))

	c, w := newContext(http.MethodPost, "/", nil, "0xmerchant")
	h.ClaimAll(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWithdrawClaimable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().WithdrawClaimable(gomock.Any(), domain.Principal("0xmerchant")).Return(domain.Amount(400_000_000), nil)

	c, w := newContext(http.MethodPost, "/", nil, "0xmerchant")
	h.WithdrawClaimable(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "400.000000", decodeData(t, w)["amount"])
}

func TestClaimable_And_MerchantReceipts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewSettlementHandler(svc)

	svc.EXPECT().MerchantClaimable(gomock.Any(), domain.Principal("0xmerchant")).
		Return(domain.MerchantClaimable{Merchant: "0xmerchant", Balance: 1}, nil)
	c, w := newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "principal", Value: "0xmerchant"})
	h.Claimable(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0.000001", decodeData(t, w)["balance"])

	svc.EXPECT().MerchantReceipts(gomock.Any(), domain.Principal("0xmerchant")).
		Return([]domain.Receipt{*testReceipt()}, nil)
	c, w = newContext(http.MethodGet, "/", nil, "", gin.Param{Key: "principal", Value: "0xmerchant"})
	h.MerchantReceipts(c)
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, float64(1), data["total"])
	items := data["items"].([]interface{})
	assert.Equal(t, testReceiptID.Hex(), items[0].(map[string]interface{})["id"])
}

// --- Admin & health ---

func TestCheckInvariants(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockLedgerService(ctrl)
	h := NewAdminHandler(svc)

	svc.EXPECT().CheckInvariants(gomock.Any()).Return(nil)
	c, w := newContext(http.MethodGet, "/", nil, "0xoracle")
	h.CheckInvariants(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeData(t, w)["status"])

	svc.EXPECT().CheckInvariants(gomock.Any()).Return(apperror.ErrLedgerHalted(errors.New("drift")))
	c, w = newContext(http.MethodGet, "/", nil, "0xoracle")
	h.CheckInvariants(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)

	healthy := mocks.NewMockHealthChecker(ctrl)
	healthy.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()
	healthy.EXPECT().Name().Return("ledger").AnyTimes()

	c, w := newContext(http.MethodGet, "/health", nil, "")
	HealthCheck(healthy)(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decodeError(t, w)["status"])

	broken := mocks.NewMockHealthChecker(ctrl)
	broken.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
	broken.EXPECT().Name().Return("postgresql")

	c, w = newContext(http.MethodGet, "/health", nil, "")
	HealthCheck(healthy, broken)(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	assert.Equal(t, "unhealthy", deps["postgresql"].(map[string]interface{})["status"])
}

func TestAPIDocs(t *testing.T) {
	c, w := newContext(http.MethodGet, "/swagger", nil, "")
	APIDocs(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "/swagger/spec")

	assert.Contains(t, w.Body.String(), "<title>Aura Ledger API</title>")

	c, w = newContext(http.MethodGet, "/swagger/spec", nil, "")
	APISpec(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/credit/lock")
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	c, w = newContext(http.MethodGet, "/swagger/spec", nil, "")
	c.Request.Header.Set("If-None-Match", etag)
	APISpec(c)
	assert.Equal(t, http.StatusNotModified, c.Writer.Status())
	assert.Empty(t, w.Body.String())
}
