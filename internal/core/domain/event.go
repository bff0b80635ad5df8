package domain

import "time"

// EventFundsLocked is the event type name carried on the wire.
const EventFundsLocked = "FundsLocked"

// FundsLocked is emitted after every successful draw.
type FundsLocked struct {
	ReceiptID ReceiptID `json:"receipt_id"`
	Merchant  Principal `json:"merchant"`
	Borrower  Principal `json:"borrower"`
	Amount    Amount    `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}
