package models

import "github.com/shopspring/decimal"

// Transfer is one recorded payment between participants. Recording it adds
// Amount to the settlement record at [DebtorID][CreditorID]; nothing moves
// money.
type Transfer struct {
	// ID is the unique identifier for the transfer (UUID format).
	ID string

	// DebtorID is the participant who paid (debtor settling up).
	DebtorID string

	// CreditorID is the participant who received the payment.
	CreditorID string

	// Amount is the payment amount. Always positive.
	Amount decimal.Decimal

	// RecordedAt is the Unix timestamp when the transfer was recorded.
	RecordedAt int64
}
