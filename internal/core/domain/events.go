package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event bus topics published by the ledger service.
const (
	TopicWithdrawalRequested = "withdrawal.requested"
	TopicAccountFunded       = "account.funded"
)

// WithdrawalRequestedEvent is published after a withdrawal ticket has been
// accepted and queued for review.
type WithdrawalRequestedEvent struct {
	TicketID      uuid.UUID
	UserID        string
	Amount        decimal.Decimal
	BankName      string
	AccountNumber string
	AccountName   string
	RequestedAt   time.Time
}

// AccountFundedEvent is published after a verified deposit has been credited.
type AccountFundedEvent struct {
	AccountID uuid.UUID
	UserID    string
	Amount    decimal.Decimal
	Reference string
	FundedAt  time.Time
}
