package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionKind is a custom type for our transaction ENUM.
type TransactionKind string

const (
	KindDeposit    TransactionKind = "deposit"
	KindWithdrawal TransactionKind = "withdrawal"
	KindInterest   TransactionKind = "interest"
	KindBonus      TransactionKind = "bonus"
)

// TransactionStatus is a custom type for the record lifecycle ENUM.
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// TransactionRecord is one append-only ledger entry. Deposits are written
// as completed (the gateway has already confirmed payment); withdrawals are
// written as pending and transitioned out-of-band by the review process.
type TransactionRecord struct {
	ID          uuid.UUID
	AccountID   uuid.UUID
	Kind        TransactionKind
	Amount      decimal.Decimal
	Status      TransactionStatus
	Description string
	Reference   *string // Nullable, external payment reference
	CreatedAt   time.Time
}
