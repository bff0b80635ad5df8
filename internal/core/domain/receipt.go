package domain

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidReceiptID is returned when a receipt id is not 32 bytes of hex.
var ErrInvalidReceiptID = errors.New("invalid receipt id")

// ReceiptID is the content-derived Keccak-256 identity of a receipt.
type ReceiptID [32]byte

// ComputeReceiptID hashes the draw fields together with the registry nonce.
// The nonce is strictly increasing, so two draws never share an id even when
// every other field and the timestamp coincide.
func ComputeReceiptID(merchant, borrower Principal, amount Amount, nonce uint64, createdAt time.Time) ReceiptID {
	h := sha3.NewLegacyKeccak256()
	writeField(h, []byte(merchant))
	writeField(h, []byte(borrower))

	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(amount))
	binary.BigEndian.PutUint64(buf[8:16], nonce)
	binary.BigEndian.PutUint64(buf[16:24], uint64(createdAt.UnixNano()))
	h.Write(buf[:])

	var id ReceiptID
	copy(id[:], h.Sum(nil))
	return id
}

// writeField length-prefixes b so adjacent fields cannot be shifted into each other.
func writeField(h interface{ Write([]byte) (int, error) }, b []byte) {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(b)))
	h.Write(l[:])
	h.Write(b)
}

// ParseReceiptID accepts a 64-digit hex string with or without a 0x prefix.
func ParseReceiptID(s string) (ReceiptID, error) {
	var id ReceiptID
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	if len(s) != 64 {
		return id, ErrInvalidReceiptID
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, ErrInvalidReceiptID
	}
	return id, nil
}

// Hex returns the 0x-prefixed lower-case hex form.
func (id ReceiptID) Hex() string {
	return "0x" + hex.EncodeToString(id[:])
}

func (id ReceiptID) String() string { return id.Hex() }

// IsZero reports whether id is the zero value.
func (id ReceiptID) IsZero() bool { return id == ReceiptID{} }

// MarshalText implements encoding.TextMarshaler.
func (id ReceiptID) MarshalText() ([]byte, error) {
	return []byte(id.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ReceiptID) UnmarshalText(b []byte) error {
	parsed, err := ParseReceiptID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Receipt records a single draw. Only Settled (and SettledAt) ever change.
type Receipt struct {
	ID        ReceiptID  `json:"id"`
	Merchant  Principal  `json:"merchant"`
	Borrower  Principal  `json:"borrower"`
	Amount    Amount     `json:"amount"`
	Nonce     uint64     `json:"nonce"`
	Settled   bool       `json:"settled"`
	CreatedAt time.Time  `json:"created_at"`
	SettledAt *time.Time `json:"settled_at,omitempty"`
}

// IsClaimable returns true while the receipt awaits settlement.
func (r *Receipt) IsClaimable() bool {
	return !r.Settled
}

// ReceiptVerification is the read-only answer a merchant checks before settling.
type ReceiptVerification struct {
	Merchant  Principal `json:"merchant"`
	Amount    Amount    `json:"amount"`
	Claimable bool      `json:"claimable"`
}
