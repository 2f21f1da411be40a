package ledger

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BankAccountInput is a candidate payout destination before resolution.
type BankAccountInput struct {
	BankName      string
	BankCode      string
	AccountNumber string
}

// AddBankAccount resolves the holder name externally and saves the
// destination. Two entries may never share (bankCode, accountNumber)
// within one account.
func (s *Service) AddBankAccount(ctx context.Context, userID string, input BankAccountInput) (*domain.BankAccount, error) {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	name, err := s.resolver.ResolveAccountName(ctx, input.AccountNumber, input.BankCode)
	if err != nil {
		s.log.Error().Err(err).Str("bank_code", input.BankCode).Msg("Bank account resolution call failed")
		return nil, fmt.Errorf("resolve account name: %w", err)
	}
	if strings.TrimSpace(name) == "" {
		return nil, ErrAccountNameUnresolved
	}

	existing, err := s.banks.GetByAccountID(ctx, acct.ID)
	if err != nil {
		return nil, fmt.Errorf("list bank accounts: %w", err)
	}
	for _, b := range existing {
		if b.SameDestination(input.BankCode, input.AccountNumber) {
			return nil, ErrDuplicateBankAccount
		}
	}

	bank := &domain.BankAccount{
		ID:            uuid.New(),
		AccountID:     acct.ID,
		BankName:      input.BankName,
		BankCode:      input.BankCode,
		AccountNumber: input.AccountNumber,
		AccountName:   name,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.banks.Create(ctx, bank); err != nil {
		// The unique index closes the check-then-insert race.
		if errors.Is(err, ports.ErrDuplicate) {
			return nil, ErrDuplicateBankAccount
		}
		return nil, fmt.Errorf("save bank account: %w", err)
	}

	s.log.Info().
		Str("user_id", userID).
		Str("bank_name", bank.BankName).
		Msg("Bank account added")
	return bank, nil
}

// RemoveBankAccount deletes a payout destination by id.
func (s *Service) RemoveBankAccount(ctx context.Context, userID string, id uuid.UUID) error {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.banks.Delete(ctx, id, acct.ID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ErrBankAccountNotFound
		}
		return fmt.Errorf("delete bank account: %w", err)
	}
	s.log.Info().Str("user_id", userID).Str("bank_account_id", id.String()).Msg("Bank account removed")
	return nil
}

// ListBankAccounts returns every payout destination for the user.
func (s *Service) ListBankAccounts(ctx context.Context, userID string) ([]*domain.BankAccount, error) {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.banks.GetByAccountID(ctx, acct.ID)
}
