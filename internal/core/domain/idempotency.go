package domain

// BuildLockIdempotencyKey scopes a caller-supplied key to the borrower, so two
// borrowers can never collide on the same key.
func BuildLockIdempotencyKey(borrower Principal, key string) string {
	return string(borrower) + ":lock:" + key
}
