package postgres

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type accountRepository struct {
	db  *DB
	log zerolog.Logger
}

var _ ports.AccountRepository = (*accountRepository)(nil) // Ensure compliance

// NewAccountRepository creates a new repository for ledger account operations.
func NewAccountRepository(db *DB, baseLogger *zerolog.Logger) ports.AccountRepository {
	return &accountRepository{
		db:  db,
		log: baseLogger.With().Str("component", "account_repo").Logger(),
	}
}

const accountQueryCols = `
	id, user_id, available_for_withdrawal, total_earnings, pending_earnings,
	bonus_earnings, total_funded_amount, transaction_pin_hash, version,
	created_at, updated_at
`

// Create saves a new account with zeroed balances at version 1. A second
// row for the same user trips the unique index on user_id and reports
// ports.ErrDuplicate.
func (r *accountRepository) Create(ctx context.Context, acct *domain.Account) error {
	query := `
		INSERT INTO accounts (
			id, user_id, available_for_withdrawal, total_earnings, pending_earnings,
			bonus_earnings, total_funded_amount, transaction_pin_hash, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.pool.Exec(ctx, query,
		acct.ID,
		acct.UserID,
		acct.AvailableForWithdrawal,
		acct.TotalEarnings,
		acct.PendingEarnings,
		acct.BonusEarnings,
		acct.TotalFundedAmount,
		acct.TransactionPinHash,
		acct.Version,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicate
		}
		r.log.Error().Err(err).Str("user_id", acct.UserID).Msg("Failed to insert new account")
	}
	return err
}

// scanAccount is a helper to scan a row into an Account struct.
func (r *accountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var acct domain.Account
	err := row.Scan(
		&acct.ID,
		&acct.UserID,
		&acct.AvailableForWithdrawal,
		&acct.TotalEarnings,
		&acct.PendingEarnings,
		&acct.BonusEarnings,
		&acct.TotalFundedAmount,
		&acct.TransactionPinHash,
		&acct.Version,
		&acct.CreatedAt,
		&acct.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan account row")
		return nil, err
	}
	return &acct, nil
}

// GetByUserID finds an account by the owning user's external id.
func (r *accountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	query := `SELECT ` + accountQueryCols + ` FROM accounts WHERE user_id = $1`

	row := r.db.pool.QueryRow(ctx, query, userID)
	acct, err := r.scanAccount(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.log.Info().Str("user_id", userID).Msg("Account not found")
			return nil, nil // Return nil, nil for "not found"
		}
		return nil, err
	}
	return acct, nil
}

// UpdateBalances writes the five balance columns guarded by the row version.
// A stale version matches no row and reports ports.ErrVersionConflict; on
// success the in-memory version is bumped to match the row.
func (r *accountRepository) UpdateBalances(ctx context.Context, acct *domain.Account) error {
	query := `
		UPDATE accounts
		SET available_for_withdrawal = $1,
			total_earnings = $2,
			pending_earnings = $3,
			bonus_earnings = $4,
			total_funded_amount = $5,
			version = version + 1,
			updated_at = NOW()
		WHERE id = $6 AND version = $7
	`
	tag, err := r.db.pool.Exec(ctx, query,
		acct.AvailableForWithdrawal,
		acct.TotalEarnings,
		acct.PendingEarnings,
		acct.BonusEarnings,
		acct.TotalFundedAmount,
		acct.ID,
		acct.Version,
	)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", acct.ID.String()).Msg("Failed to update balances")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrVersionConflict
	}
	acct.Version++
	return nil
}

// SetTransactionPin stores the bcrypt hash of the withdrawal PIN.
func (r *accountRepository) SetTransactionPin(ctx context.Context, accountID uuid.UUID, pinHash string) error {
	query := `UPDATE accounts SET transaction_pin_hash = $1, updated_at = NOW() WHERE id = $2`

	tag, err := r.db.pool.Exec(ctx, query, pinHash, accountID)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to store transaction pin")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// AppendTransaction saves a new ledger entry.
func (r *accountRepository) AppendTransaction(ctx context.Context, rec *domain.TransactionRecord) error {
	query := `
		INSERT INTO transactions (
			id, account_id, kind, amount, status, description, reference, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.pool.Exec(ctx, query,
		rec.ID,
		rec.AccountID,
		rec.Kind,
		rec.Amount,
		rec.Status,
		rec.Description,
		rec.Reference,
		rec.CreatedAt,
	)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", rec.AccountID.String()).Msg("Failed to insert transaction record")
	}
	return err
}

// ListTransactions returns all ledger entries for an account, newest first.
func (r *accountRepository) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*domain.TransactionRecord, error) {
	query := `
		SELECT id, account_id, kind, amount, status, description, reference, created_at
		FROM transactions
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.pool.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to query transactions")
		return nil, err
	}
	defer rows.Close()

	var records []*domain.TransactionRecord
	for rows.Next() {
		var rec domain.TransactionRecord
		err := rows.Scan(
			&rec.ID,
			&rec.AccountID,
			&rec.Kind,
			&rec.Amount,
			&rec.Status,
			&rec.Description,
			&rec.Reference,
			&rec.CreatedAt,
		)
		if err != nil {
			r.log.Error().Err(err).Msg("Failed to scan transaction row")
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

// Delete removes an account and, via ON DELETE CASCADE, its ledger entries.
func (r *accountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", id.String()).Msg("Failed to delete account")
	}
	return err
}
