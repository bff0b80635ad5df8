package domain

import "strings"

// Principal is an opaque account identifier (a wallet address in practice).
type Principal string

// NormalizePrincipal trims and lower-cases raw input so that equal addresses
// compare equal regardless of checksum casing.
func NormalizePrincipal(raw string) Principal {
	return Principal(strings.ToLower(strings.TrimSpace(raw)))
}

func (p Principal) String() string { return string(p) }

// IsZero reports whether p is empty.
func (p Principal) IsZero() bool { return p == "" }
