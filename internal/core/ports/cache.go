package ports

import (
	"PoundsBosses/internal/core/domain"
	"context"
)

// AccountCache is a read-through snapshot cache for account documents.
// The ledger deletes the snapshot after every mutation so a stale local
// copy can never survive a balance change.
type AccountCache interface {
	// Get returns the cached snapshot, or (nil, nil) on a miss.
	Get(ctx context.Context, userID string) (*domain.Account, error)

	// Set stores a snapshot.
	Set(ctx context.Context, acct *domain.Account) error

	// Invalidate drops the snapshot for a user.
	Invalidate(ctx context.Context, userID string) error
}
