package domain

// Namespace separates the balance kinds kept per principal.
type Namespace string

const (
	NamespaceLenderBalance     Namespace = "lender_balance"
	NamespaceMerchantClaimable Namespace = "merchant_claimable"
	NamespaceBorrowerDue       Namespace = "borrower_due"
)

// Namespaces lists every balance namespace.
var Namespaces = []Namespace{
	NamespaceLenderBalance,
	NamespaceMerchantClaimable,
	NamespaceBorrowerDue,
}

// LenderPosition is a lender's share of the pool.
type LenderPosition struct {
	Owner   Principal `json:"owner"`
	Balance Amount    `json:"balance"`
}

// MerchantClaimable is the settled amount a merchant may pay out.
type MerchantClaimable struct {
	Merchant Principal `json:"merchant"`
	Balance  Amount    `json:"balance"`
}

// BorrowerAccount is a borrower's outstanding debt and optional credit limit.
type BorrowerAccount struct {
	Borrower Principal `json:"borrower"`
	Due      Amount    `json:"due"`
	Limit    *Amount   `json:"limit,omitempty"` // nil = unlimited
}

// PoolSnapshot is a consistent view of the pool aggregate.
type PoolSnapshot struct {
	TotalLent    Amount `json:"total_lent"`
	TotalLocked  Amount `json:"total_locked"`
	Available    Amount `json:"available"`
	RepaidToPool Amount `json:"repaid_to_pool"`
}
