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

var _ ports.BankAccountRepository = (*bankAccountRepository)(nil) // Ensure compliance

type bankAccountRepository struct {
	db  *DB
	log zerolog.Logger
}

// NewBankAccountRepository creates a new repo for payout destination operations.
func NewBankAccountRepository(db *DB, baseLogger *zerolog.Logger) ports.BankAccountRepository {
	return &bankAccountRepository{
		db:  db,
		log: baseLogger.With().Str("component", "bank_account_repo").Logger(),
	}
}

// uniqueViolation is the Postgres error code raised by the
// (account_id, bank_code, account_number) unique index.
const uniqueViolation = "23505"

// Create saves a new payout destination. A duplicate destination for the
// same account reports ports.ErrDuplicate.
func (r *bankAccountRepository) Create(ctx context.Context, acct *domain.BankAccount) error {
	query := `
		INSERT INTO bank_accounts (
			id, account_id, bank_name, bank_code, account_number, account_name, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.pool.Exec(ctx, query,
		acct.ID,
		acct.AccountID,
		acct.BankName,
		acct.BankCode,
		acct.AccountNumber,
		acct.AccountName,
		acct.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ports.ErrDuplicate
		}
		r.log.Error().Err(err).Str("account_id", acct.AccountID.String()).Msg("Failed to insert bank account")
		return err
	}
	return nil
}

const bankAccountQueryCols = `
	id, account_id, bank_name, bank_code, account_number, account_name, created_at
`

func (r *bankAccountRepository) scanBankAccount(row pgx.Row) (*domain.BankAccount, error) {
	var acct domain.BankAccount
	err := row.Scan(
		&acct.ID,
		&acct.AccountID,
		&acct.BankName,
		&acct.BankCode,
		&acct.AccountNumber,
		&acct.AccountName,
		&acct.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		r.log.Error().Err(err).Msg("Failed to scan bank account row")
		return nil, err
	}
	return &acct, nil
}

// GetByAccountID finds all payout destinations for a ledger account.
func (r *bankAccountRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountQueryCols + `
		FROM bank_accounts
		WHERE account_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.pool.Query(ctx, query, accountID)
	if err != nil {
		r.log.Error().Err(err).Str("account_id", accountID.String()).Msg("Failed to query bank accounts")
		return nil, err
	}
	defer rows.Close()

	var accts []*domain.BankAccount
	for rows.Next() {
		acct, err := r.scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		accts = append(accts, acct)
	}
	return accts, rows.Err()
}

// GetByID finds one destination scoped to its owning account. A miss, or
// an id owned by another account, reports ports.ErrNotFound.
func (r *bankAccountRepository) GetByID(ctx context.Context, id, accountID uuid.UUID) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountQueryCols + ` FROM bank_accounts WHERE id = $1 AND account_id = $2`

	acct, err := r.scanBankAccount(r.db.pool.QueryRow(ctx, query, id, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return acct, nil
}

// Delete removes a destination scoped to its owning account.
func (r *bankAccountRepository) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	tag, err := r.db.pool.Exec(ctx,
		`DELETE FROM bank_accounts WHERE id = $1 AND account_id = $2`, id, accountID)
	if err != nil {
		r.log.Error().Err(err).Str("bank_account_id", id.String()).Msg("Failed to delete bank account")
		return err
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}
