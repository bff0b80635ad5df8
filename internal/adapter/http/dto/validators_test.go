package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeStruct_TrimsWhitespace(t *testing.T) {
	req := LockFundsRequest{
		Merchant: "  0xmerchant  ",
		Amount:   " 12.5 ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "0xmerchant", req.Merchant)
	assert.Equal(t, "12.5", req.Amount)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := WithdrawRequest{Amount: "1", Lender: "<script>x</script>"}
	SanitizeStruct(&req)

	assert.Contains(t, req.Lender, "&lt;script&gt;")
	assert.NotContains(t, req.Lender, "<script>")
}

func TestSanitizeStruct_HandlesPointerString(t *testing.T) {
	limit := "  100  "
	resp := BorrowerResponse{Borrower: "0xb", Due: "0", Limit: &limit}
	SanitizeStruct(&resp)
	assert.Equal(t, "100", *resp.Limit)

	resp = BorrowerResponse{Borrower: "0xb"}
	SanitizeStruct(&resp)
	assert.Nil(t, resp.Limit)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	SanitizeStruct("hello")
}

func TestValidPrincipal(t *testing.T) {
	valid := []string{"0xAbC123", "lender-1", "acct_2", "ns:user.3"}
	for _, tc := range valid {
		assert.True(t, ValidPrincipal(tc), "expected valid: %s", tc)
	}

	invalid := []string{"", "   ", "has space", "ref<001>", "semi;colon", "line\nbreak"}
	for _, tc := range invalid {
		assert.False(t, ValidPrincipal(tc), "expected invalid: %q", tc)
	}
}

func TestBindingValidators(t *testing.T) {
	tests := []struct {
		name  string
		req   interface{}
		valid bool
	}{
		{"provide ok", &ProvideRequest{Amount: "1000"}, true},
		{"provide zero", &ProvideRequest{Amount: "0"}, false},
		{"provide too precise", &ProvideRequest{Amount: "0.0000001"}, false},
		{"provide not numeric", &ProvideRequest{Amount: "ten"}, false},
		{"withdraw default lender", &WithdrawRequest{Amount: "5"}, true},
		{"withdraw bad lender", &WithdrawRequest{Amount: "5", Lender: "a b"}, false},
		{"lock ok", &LockFundsRequest{Merchant: "0xm", Amount: "400"}, true},
		{"lock missing merchant", &LockFundsRequest{Amount: "400"}, false},
		{"limit zero", &SetCreditLimitRequest{Limit: "0"}, true},
		{"limit negative", &SetCreditLimitRequest{Limit: "-1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
