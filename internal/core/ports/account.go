package ports

import (
	"PoundsBosses/internal/core/domain"
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the persistence operations for Accounts and
// their embedded transaction log.
type AccountRepository interface {
	// Create saves a new account.
	Create(ctx context.Context, acct *domain.Account) error

	// GetByUserID finds an account by the external auth subject.
	// Returns (nil, nil) when no account exists.
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)

	// UpdateBalances writes the balance fields conditionally on
	// acct.Version and bumps the version on success. Returns
	// ErrVersionConflict when the row changed underneath the caller.
	UpdateBalances(ctx context.Context, acct *domain.Account) error

	// SetTransactionPin stores a new bcrypt PIN hash.
	SetTransactionPin(ctx context.Context, accountID uuid.UUID, pinHash string) error

	// AppendTransaction appends one ledger entry.
	AppendTransaction(ctx context.Context, rec *domain.TransactionRecord) error

	// ListTransactions returns the account's ledger entries, newest first.
	ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*domain.TransactionRecord, error)

	Delete(ctx context.Context, id uuid.UUID) error
}
