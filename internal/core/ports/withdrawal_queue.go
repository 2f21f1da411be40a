package ports

import (
	"PoundsBosses/internal/core/domain"
	"context"
)

// WithdrawalQueue is the write-only boundary to the admin review queue.
// The consumer side lives outside this core.
type WithdrawalQueue interface {
	// Enqueue inserts one pending ticket for review.
	Enqueue(ctx context.Context, ticket *domain.WithdrawalTicket) error
}
