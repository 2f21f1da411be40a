package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WithdrawalTicket is the admin-visible payout request. This core only ever
// writes pending tickets; the review process owns every later transition,
// including crediting the amount back on rejection.
type WithdrawalTicket struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	UserID        string
	Amount        decimal.Decimal
	BankName      string
	BankCode      string
	AccountNumber string
	AccountName   string
	Status        TransactionStatus
	CreatedAt     time.Time
}
