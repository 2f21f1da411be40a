package postgres

import (
	"PoundsBosses/internal/core/domain"
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var testDB *DB

// TestMain connects to the test database named by DATABASE_URL. When the
// variable is unset the integration tests are skipped, so the unit suites
// still run on machines without Postgres.
func TestMain(m *testing.M) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Println("DATABASE_URL not set; skipping postgres integration tests")
		os.Exit(0)
	}

	nopLogger := zerolog.Nop()
	var err error
	testDB, err = NewDB(context.Background(), url, &nopLogger)
	if err != nil {
		log.Fatalf("TestMain: Failed to connect to test database: %v", err)
	}

	code := m.Run()

	testDB.Close()
	os.Exit(code)
}

// Helper to create a ledger account for testing.
func createTestAccount(t *testing.T, available int64) *domain.Account {
	t.Helper()
	nopLogger := zerolog.Nop()
	repo := NewAccountRepository(testDB, &nopLogger)

	acct := &domain.Account{
		ID:                     uuid.New(),
		UserID:                 fmt.Sprintf("user_test_%d", time.Now().UnixNano()),
		AvailableForWithdrawal: decimal.NewFromInt(available),
		TotalEarnings:          decimal.NewFromInt(available),
		PendingEarnings:        decimal.Zero,
		BonusEarnings:          decimal.Zero,
		TotalFundedAmount:      decimal.Zero,
		Version:                1,
	}
	if err := repo.Create(context.Background(), acct); err != nil {
		t.Fatalf("createTestAccount failed: %v", err)
	}
	t.Cleanup(func() { cleanupTestAccount(t, acct.ID) })
	return acct
}

// Helper to clean up an account (cascades to transactions).
func cleanupTestAccount(t *testing.T, id uuid.UUID) {
	_, err := testDB.pool.Exec(context.Background(), "DELETE FROM accounts WHERE id = $1", id)
	if err != nil {
		t.Logf("Warning: Failed to cleanup account %s: %v", id, err)
	}
}

// Helper to clean up a withdrawal ticket.
func cleanupTestTicket(t *testing.T, id uuid.UUID) {
	_, err := testDB.pool.Exec(context.Background(), "DELETE FROM withdrawal_tickets WHERE id = $1", id)
	if err != nil {
		t.Logf("Warning: Failed to cleanup withdrawal ticket %s: %v", id, err)
	}
}
