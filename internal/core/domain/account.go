package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PinAuthState is a custom type for the withdrawal authorization state machine.
type PinAuthState string

const (
	PinAwaitingEntry PinAuthState = "awaiting_pin"
	PinVerified      PinAuthState = "verified"
	PinRejected      PinAuthState = "rejected"
)

// Account is the per-user financial record. All monetary fields are exact
// decimal amounts in Naira; the store keeps them as NUMERIC(20,2).
type Account struct {
	ID                     uuid.UUID
	UserID                 string // external auth subject
	AvailableForWithdrawal decimal.Decimal
	TotalEarnings          decimal.Decimal
	PendingEarnings        decimal.Decimal
	BonusEarnings          decimal.Decimal
	TotalFundedAmount      decimal.Decimal
	TransactionPinHash     *string // Nullable, bcrypt hash
	Version                int64   // Optimistic concurrency token
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// HasTransactionPin reports whether a withdrawal PIN has been set.
func (a *Account) HasTransactionPin() bool {
	return a.TransactionPinHash != nil && *a.TransactionPinHash != ""
}
