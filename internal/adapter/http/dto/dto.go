package dto

// Amounts cross the API as decimal strings in whole coins ("12.5"). They are
// converted to smallest units with pkg/money.

// ProvideRequest is the request body for POST /liquidity/provide.
type ProvideRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// WithdrawRequest is the request body for POST /liquidity/withdraw.
// Lender defaults to the caller.
type WithdrawRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
	Lender string `json:"lender,omitempty" binding:"omitempty,principal"`
}

// LockFundsRequest is the request body for POST /credit/lock.
type LockFundsRequest struct {
	Merchant string `json:"merchant" binding:"required,principal"`
	Amount   string `json:"amount" binding:"required,amount"`
}

// RepayRequest is the request body for POST /credit/repay.
type RepayRequest struct {
	Amount string `json:"amount" binding:"required,amount"`
}

// SetCreditLimitRequest is the request body for PUT /credit/limits/:principal.
// Zero is a valid limit and blocks further draws.
type SetCreditLimitRequest struct {
	Limit string `json:"limit" binding:"required,amount_or_zero"`
}

// PositionResponse is a lender's pool share.
type PositionResponse struct {
	Owner   string `json:"owner"`
	Balance string `json:"balance"`
}

// PoolResponse is the pool aggregate.
type PoolResponse struct {
	TotalLent    string `json:"total_lent"`
	TotalLocked  string `json:"total_locked"`
	Available    string `json:"available"`
	RepaidToPool string `json:"repaid_to_pool"`
}

// BorrowerResponse is a borrower's debt and limit. Limit is omitted when unlimited.
type BorrowerResponse struct {
	Borrower string  `json:"borrower"`
	Due      string  `json:"due"`
	Limit    *string `json:"limit,omitempty"`
}

// ReceiptResponse is a single draw record.
type ReceiptResponse struct {
	ID        string  `json:"id"`
	Merchant  string  `json:"merchant"`
	Borrower  string  `json:"borrower"`
	Amount    string  `json:"amount"`
	Nonce     uint64  `json:"nonce"`
	Settled   bool    `json:"settled"`
	CreatedAt string  `json:"created_at"`
	SettledAt *string `json:"settled_at,omitempty"`
}

// VerifyReceiptResponse is what a merchant checks before settling.
type VerifyReceiptResponse struct {
	ID        string `json:"id"`
	Merchant  string `json:"merchant"`
	Amount    string `json:"amount"`
	Claimable bool   `json:"claimable"`
}

// ClaimAllResponse summarizes a claim-all batch.
type ClaimAllResponse struct {
	Total      string   `json:"total"`
	ReceiptIDs []string `json:"receipt_ids"`
}

// ClaimableResponse is a merchant's settled, unpaid balance.
type ClaimableResponse struct {
	Merchant string `json:"merchant"`
	Balance  string `json:"balance"`
}

// WithdrawClaimableResponse is the amount paid out to the merchant.
type WithdrawClaimableResponse struct {
	Merchant string `json:"merchant"`
	Amount   string `json:"amount"`
}

// ReceiptListResponse wraps a merchant's receipts.
type ReceiptListResponse struct {
	Items []ReceiptResponse `json:"items"`
	Total int               `json:"total"`
}

// InvariantsResponse reports a passing invariant check.
type InvariantsResponse struct {
	Status string `json:"status"`
}
