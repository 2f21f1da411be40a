package ports

import (
	"PoundsBosses/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// BankAccountRepository defines persistence for payout destinations.
type BankAccountRepository interface {
	// Create saves a new bank account. Returns ErrDuplicate when the
	// (account, bank code, account number) pair already exists.
	Create(ctx context.Context, acct *domain.BankAccount) error

	// GetByAccountID finds all bank accounts for a given account.
	GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]*domain.BankAccount, error)

	// GetByID finds one bank account scoped to its owning account.
	// Returns ErrNotFound when absent.
	GetByID(ctx context.Context, id, accountID uuid.UUID) (*domain.BankAccount, error)

	// Delete removes a bank account by id. Returns ErrNotFound when the
	// id does not belong to the account.
	Delete(ctx context.Context, id, accountID uuid.UUID) error
}
