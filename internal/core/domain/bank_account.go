package domain

import (
	"time"

	"github.com/google/uuid"
)

// BankAccount holds one validated payout destination for an account.
// AccountName is the holder name returned by the external resolution step,
// never user input.
type BankAccount struct {
	ID            uuid.UUID
	AccountID     uuid.UUID
	BankName      string
	BankCode      string
	AccountNumber string
	AccountName   string
	CreatedAt     time.Time
}

// SameDestination reports whether two entries point at the same payout
// destination. Uniqueness within an account is keyed on this pair.
func (b *BankAccount) SameDestination(bankCode, accountNumber string) bool {
	return b.BankCode == bankCode && b.AccountNumber == accountNumber
}
