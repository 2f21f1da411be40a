package ledger

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

// MockAccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, acct *domain.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}
func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountRepository) UpdateBalances(ctx context.Context, acct *domain.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}
func (m *MockAccountRepository) SetTransactionPin(ctx context.Context, accountID uuid.UUID, pinHash string) error {
	args := m.Called(ctx, accountID, pinHash)
	return args.Error(0)
}
func (m *MockAccountRepository) AppendTransaction(ctx context.Context, rec *domain.TransactionRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockAccountRepository) ListTransactions(ctx context.Context, accountID uuid.UUID) ([]*domain.TransactionRecord, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TransactionRecord), args.Error(1)
}
func (m *MockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBankAccountRepository
type MockBankAccountRepository struct {
	mock.Mock
}

func (m *MockBankAccountRepository) Create(ctx context.Context, acct *domain.BankAccount) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}
func (m *MockBankAccountRepository) GetByAccountID(ctx context.Context, accountID uuid.UUID) ([]*domain.BankAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepository) GetByID(ctx context.Context, id, accountID uuid.UUID) (*domain.BankAccount, error) {
	args := m.Called(ctx, id, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountRepository) Delete(ctx context.Context, id, accountID uuid.UUID) error {
	args := m.Called(ctx, id, accountID)
	return args.Error(0)
}

// MockWithdrawalQueue
type MockWithdrawalQueue struct {
	mock.Mock
}

func (m *MockWithdrawalQueue) Enqueue(ctx context.Context, ticket *domain.WithdrawalTicket) error {
	args := m.Called(ctx, ticket)
	return args.Error(0)
}

// MockPaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) VerifyPayment(ctx context.Context, txRef, userID string) (*ports.PaymentVerification, error) {
	args := m.Called(ctx, txRef, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ports.PaymentVerification), args.Error(1)
}

// MockBankResolver
type MockBankResolver struct {
	mock.Mock
}

func (m *MockBankResolver) ResolveAccountName(ctx context.Context, accountNumber, bankCode string) (string, error) {
	args := m.Called(ctx, accountNumber, bankCode)
	return args.String(0), args.Error(1)
}

// MockAccountCache
type MockAccountCache struct {
	mock.Mock
}

func (m *MockAccountCache) Get(ctx context.Context, userID string) (*domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountCache) Set(ctx context.Context, acct *domain.Account) error {
	args := m.Called(ctx, acct)
	return args.Error(0)
}
func (m *MockAccountCache) Invalidate(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockEventBus
type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, topic string, payload interface{}) error {
	args := m.Called(ctx, topic, payload)
	return args.Error(0)
}
func (m *MockEventBus) Subscribe(topic string, handler ports.EventHandler) {
	m.Called(topic, handler)
}

// fakePinHasher is deterministic so tests don't pay the bcrypt cost.
type fakePinHasher struct{}

func (fakePinHasher) Hash(pin []byte) (string, error) {
	return "hash:" + string(pin), nil
}
func (fakePinHasher) Compare(storedHash string, pin []byte) error {
	if storedHash != "hash:"+string(pin) {
		return errors.New("pin mismatch")
	}
	return nil
}
