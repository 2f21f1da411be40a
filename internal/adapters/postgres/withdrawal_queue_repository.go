package postgres

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"

	"github.com/rs/zerolog"
)

var _ ports.WithdrawalQueue = (*withdrawalQueueRepository)(nil) // Ensure compliance

type withdrawalQueueRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewWithdrawalQueueRepository creates the durable review queue. Tickets
// land here already debited; the admin review tooling works the queue.
func NewWithdrawalQueueRepository(db *DB, baseLogger *zerolog.Logger) ports.WithdrawalQueue {
	return &withdrawalQueueRepository{
		db:  db,
		log: baseLogger.With().Str("component", "withdrawal_queue_repo").Logger(),
	}
}

// Enqueue saves a pending withdrawal ticket with its bank snapshot. The
// snapshot is denormalized on purpose: deleting the bank account later
// must not orphan a ticket under review.
func (r *withdrawalQueueRepository) Enqueue(ctx context.Context, ticket *domain.WithdrawalTicket) error {
	query := `
		INSERT INTO withdrawal_tickets (
			id, account_id, user_id, amount, bank_name, bank_code,
			account_number, account_name, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.pool.Exec(ctx, query,
		ticket.ID,
		ticket.AccountID,
		ticket.UserID,
		ticket.Amount,
		ticket.BankName,
		ticket.BankCode,
		ticket.AccountNumber,
		ticket.AccountName,
		ticket.Status,
		ticket.CreatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("user_id", ticket.UserID).Msg("Failed to enqueue withdrawal ticket")
	}
	return err
}
