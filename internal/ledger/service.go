package ledger

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Balance writes are conditional on the account version; a proper loser of
// the race reloads and retries with linear backoff.
const (
	balanceWriteAttempts = 3
	retryBackoff         = 50 * time.Millisecond
)

// Limits holds the configurable thresholds for the balance update service.
type Limits struct {
	MinFunding        decimal.Decimal // e.g. 100 NGN
	MinWithdrawal     decimal.Decimal // e.g. 1000 NGN
	DailyInterestRate decimal.Decimal // e.g. 0.025
}

// Deps bundles the ports the service drives.
type Deps struct {
	Accounts ports.AccountRepository
	Banks    ports.BankAccountRepository
	Queue    ports.WithdrawalQueue
	Gateway  ports.PaymentGateway
	Resolver ports.BankResolver
	Pins     ports.PinHasher
	Cache    ports.AccountCache // optional
	Bus      ports.EventBus     // optional
}

// Service implements the balance update workflow: funding, withdrawal
// requests, interest/bonus accrual and the bank account registry.
type Service struct {
	accounts ports.AccountRepository
	banks    ports.BankAccountRepository
	queue    ports.WithdrawalQueue
	gateway  ports.PaymentGateway
	resolver ports.BankResolver
	pins     ports.PinHasher
	cache    ports.AccountCache
	bus      ports.EventBus
	limits   Limits
	log      zerolog.Logger
}

// NewService creates a new ledger service.
func NewService(deps Deps, limits Limits, baseLogger *zerolog.Logger) *Service {
	return &Service{
		accounts: deps.Accounts,
		banks:    deps.Banks,
		queue:    deps.Queue,
		gateway:  deps.Gateway,
		resolver: deps.Resolver,
		pins:     deps.Pins,
		cache:    deps.Cache,
		bus:      deps.Bus,
		limits:   limits,
		log:      baseLogger.With().Str("component", "ledger_service").Logger(),
	}
}

// Fund credits a verified deposit. The payment gateway is consulted first;
// only a confirmed reference moves any balance. Note there is deliberately
// no duplicate-reference guard here: a reference verified twice credits
// twice, matching the upstream behavior this module reproduces.
func (s *Service) Fund(ctx context.Context, userID string, amount decimal.Decimal, txRef string) (*domain.TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if amount.LessThan(s.limits.MinFunding) {
		return nil, ErrFundingBelowMinimum
	}

	verdict, err := s.gateway.VerifyPayment(ctx, txRef, userID)
	if err != nil {
		s.log.Error().Err(err).Str("tx_ref", txRef).Msg("Payment verification call failed")
		return nil, fmt.Errorf("verify payment: %w", err)
	}
	if !verdict.Success {
		s.log.Warn().Str("tx_ref", txRef).Str("user_id", userID).Msg("Gateway declined payment reference")
		return nil, ErrPaymentNotVerified
	}

	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.mutateAccount(ctx, acct, func(a *domain.Account) error {
		a.AvailableForWithdrawal = a.AvailableForWithdrawal.Add(amount)
		a.TotalEarnings = a.TotalEarnings.Add(amount)
		a.TotalFundedAmount = a.TotalFundedAmount.Add(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	ref := txRef
	rec := &domain.TransactionRecord{
		ID:          uuid.New(),
		AccountID:   acct.ID,
		Kind:        domain.KindDeposit,
		Amount:      amount,
		Status:      domain.StatusCompleted,
		Description: "Account funding",
		Reference:   &ref,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.accounts.AppendTransaction(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to append deposit record")
		return nil, fmt.Errorf("append deposit record: %w", err)
	}

	s.invalidate(ctx, userID)
	s.publish(ctx, domain.TopicAccountFunded, domain.AccountFundedEvent{
		AccountID: acct.ID,
		UserID:    userID,
		Amount:    amount,
		Reference: txRef,
		FundedAt:  rec.CreatedAt,
	})

	s.log.Info().
		Str("user_id", userID).
		Str("amount", amount.String()).
		Str("tx_ref", txRef).
		Msg("Account funded")
	return rec, nil
}

// RequestWithdrawal debits the available balance immediately on acceptance
// and queues a pending ticket for review. A rejected ticket is credited
// back by the review process, not by this core.
func (s *Service) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal, bankAccountID uuid.UUID, pin []byte) (*domain.WithdrawalTicket, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if amount.LessThan(s.limits.MinWithdrawal) {
		return nil, ErrWithdrawalBelowMinimum
	}

	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if acct.AvailableForWithdrawal.LessThan(amount) {
		return nil, ErrInsufficientBalance
	}
	if !acct.HasTransactionPin() {
		// The caller redirects to PIN setup; the rejection itself is
		// part of the contract.
		return nil, ErrPinNotSet
	}

	auth := NewAuthorization()
	if err := auth.Verify(s.pins, *acct.TransactionPinHash, pin); err != nil {
		s.log.Warn().Str("user_id", userID).Str("auth_state", string(auth.State())).Msg("Withdrawal authorization rejected")
		return nil, err
	}

	bank, err := s.banks.GetByID(ctx, bankAccountID, acct.ID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, ErrBankAccountNotFound
		}
		return nil, fmt.Errorf("load bank account: %w", err)
	}

	err = s.mutateAccount(ctx, acct, func(a *domain.Account) error {
		if a.AvailableForWithdrawal.LessThan(amount) {
			return ErrInsufficientBalance
		}
		a.AvailableForWithdrawal = a.AvailableForWithdrawal.Sub(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rec := &domain.TransactionRecord{
		ID:          uuid.New(),
		AccountID:   acct.ID,
		Kind:        domain.KindWithdrawal,
		Amount:      amount,
		Status:      domain.StatusPending,
		Description: fmt.Sprintf("Withdrawal to %s - %s", bank.BankName, bank.AccountNumber),
		CreatedAt:   now,
	}
	if err := s.accounts.AppendTransaction(ctx, rec); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to append withdrawal record")
		return nil, fmt.Errorf("append withdrawal record: %w", err)
	}

	ticket := &domain.WithdrawalTicket{
		ID:            uuid.New(),
		AccountID:     acct.ID,
		UserID:        userID,
		Amount:        amount,
		BankName:      bank.BankName,
		BankCode:      bank.BankCode,
		AccountNumber: bank.AccountNumber,
		AccountName:   bank.AccountName,
		Status:        domain.StatusPending,
		CreatedAt:     now,
	}
	if err := s.queue.Enqueue(ctx, ticket); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to enqueue withdrawal ticket")
		return nil, fmt.Errorf("enqueue withdrawal ticket: %w", err)
	}

	s.invalidate(ctx, userID)
	s.publish(ctx, domain.TopicWithdrawalRequested, domain.WithdrawalRequestedEvent{
		TicketID:      ticket.ID,
		UserID:        userID,
		Amount:        amount,
		BankName:      bank.BankName,
		AccountNumber: bank.AccountNumber,
		AccountName:   bank.AccountName,
		RequestedAt:   now,
	})

	s.log.Info().
		Str("user_id", userID).
		Str("amount", amount.String()).
		Str("ticket_id", ticket.ID.String()).
		Msg("Withdrawal request accepted")
	return ticket, nil
}

// SetTransactionPin hashes and stores a new 4-digit withdrawal PIN.
func (s *Service) SetTransactionPin(ctx context.Context, userID string, pin []byte) error {
	defer wipe(pin)
	if !validPinFormat(pin) {
		return ErrInvalidPinFormat
	}

	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return err
	}
	hash, err := s.pins.Hash(pin)
	if err != nil {
		return fmt.Errorf("hash transaction pin: %w", err)
	}
	if err := s.accounts.SetTransactionPin(ctx, acct.ID, hash); err != nil {
		return fmt.Errorf("store transaction pin: %w", err)
	}
	s.invalidate(ctx, userID)
	s.log.Info().Str("user_id", userID).Msg("Transaction PIN updated")
	return nil
}

// AccrueDailyInterest credits one day of interest on the funded amount to
// the available balance. Returns (nil, nil) when nothing accrues.
func (s *Service) AccrueDailyInterest(ctx context.Context, userID string) (*domain.TransactionRecord, error) {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	interest := acct.TotalFundedAmount.Mul(s.limits.DailyInterestRate).Round(2)
	if interest.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}

	err = s.mutateAccount(ctx, acct, func(a *domain.Account) error {
		a.AvailableForWithdrawal = a.AvailableForWithdrawal.Add(interest)
		a.TotalEarnings = a.TotalEarnings.Add(interest)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec := &domain.TransactionRecord{
		ID:          uuid.New(),
		AccountID:   acct.ID,
		Kind:        domain.KindInterest,
		Amount:      interest,
		Status:      domain.StatusCompleted,
		Description: "Daily interest",
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.accounts.AppendTransaction(ctx, rec); err != nil {
		return nil, fmt.Errorf("append interest record: %w", err)
	}
	s.invalidate(ctx, userID)
	return rec, nil
}

// CreditReferralBonus credits a referral payout to both the bonus and
// available balances.
func (s *Service) CreditReferralBonus(ctx context.Context, userID string, amount decimal.Decimal, description string) (*domain.TransactionRecord, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrAmountNotPositive
	}
	if description == "" {
		description = "Referral bonus"
	}

	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = s.mutateAccount(ctx, acct, func(a *domain.Account) error {
		a.BonusEarnings = a.BonusEarnings.Add(amount)
		a.AvailableForWithdrawal = a.AvailableForWithdrawal.Add(amount)
		return nil
	})
	if err != nil {
		return nil, err
	}

	rec := &domain.TransactionRecord{
		ID:          uuid.New(),
		AccountID:   acct.ID,
		Kind:        domain.KindBonus,
		Amount:      amount,
		Status:      domain.StatusCompleted,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.accounts.AppendTransaction(ctx, rec); err != nil {
		return nil, fmt.Errorf("append bonus record: %w", err)
	}
	s.invalidate(ctx, userID)
	return rec, nil
}

// Account returns the account snapshot, served read-through from the
// cache. A first-time caller gets a zero-balance account provisioned on
// the spot; every other operation can then assume the row exists.
func (s *Service) Account(ctx context.Context, userID string) (*domain.Account, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, userID); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Account cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	acct, err := s.ensureAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, acct); err != nil {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("Account cache write failed")
		}
	}
	return acct, nil
}

// ListTransactions returns the account's ledger entries, newest first.
func (s *Service) ListTransactions(ctx context.Context, userID string) ([]*domain.TransactionRecord, error) {
	acct, err := s.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.accounts.ListTransactions(ctx, acct.ID)
}

func (s *Service) loadAccount(ctx context.Context, userID string) (*domain.Account, error) {
	acct, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acct == nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

// ensureAccount loads the account, provisioning a zero-balance row for a
// first-time user. The unique index on user_id closes the race between
// two concurrent first requests; the loser re-reads the winner's row.
func (s *Service) ensureAccount(ctx context.Context, userID string) (*domain.Account, error) {
	acct, err := s.accounts.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acct != nil {
		return acct, nil
	}

	now := time.Now().UTC()
	acct = &domain.Account{
		ID:                     uuid.New(),
		UserID:                 userID,
		AvailableForWithdrawal: decimal.Zero,
		TotalEarnings:          decimal.Zero,
		PendingEarnings:        decimal.Zero,
		BonusEarnings:          decimal.Zero,
		TotalFundedAmount:      decimal.Zero,
		Version:                1,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.accounts.Create(ctx, acct); err != nil {
		if errors.Is(err, ports.ErrDuplicate) {
			return s.loadAccount(ctx, userID)
		}
		return nil, fmt.Errorf("provision account: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("Account provisioned")
	return acct, nil
}

// mutateAccount applies a balance mutation under the optimistic version
// guard. On a version conflict it reloads the row and re-applies, so the
// mutation function must re-check its own invariants against fresh state.
func (s *Service) mutateAccount(ctx context.Context, acct *domain.Account, apply func(*domain.Account) error) error {
	for attempt := 1; ; attempt++ {
		if err := apply(acct); err != nil {
			return err
		}

		err := s.accounts.UpdateBalances(ctx, acct)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ports.ErrVersionConflict) || attempt == balanceWriteAttempts {
			return fmt.Errorf("update account balances: %w", err)
		}

		s.log.Warn().
			Str("user_id", acct.UserID).
			Int("attempt", attempt).
			Msg("Balance write lost version race, retrying")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}

		fresh, err := s.loadAccount(ctx, acct.UserID)
		if err != nil {
			return err
		}
		*acct = *fresh
	}
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("Account cache invalidation failed")
	}
}

func (s *Service) publish(ctx context.Context, topic string, payload interface{}) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, topic, payload); err != nil {
		s.log.Warn().Err(err).Str("topic", topic).Msg("Event publish failed")
	}
}
