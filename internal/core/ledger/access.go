package ledger

import "aura-ledger/internal/core/domain"

// CanWithdraw reports whether p may withdraw from position.
func CanWithdraw(p domain.Principal, position domain.LenderPosition) bool {
	return !p.IsZero() && p == position.Owner
}

// CanSettle reports whether p may settle receipt.
func CanSettle(p domain.Principal, receipt *domain.Receipt) bool {
	return receipt != nil && !p.IsZero() && p == receipt.Merchant
}

// CanAdminister reports whether p is one of the configured operators.
func CanAdminister(p domain.Principal, operators map[domain.Principal]struct{}) bool {
	if p.IsZero() {
		return false
	}
	_, ok := operators[p]
	return ok
}
