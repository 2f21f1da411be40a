package rediscache

import (
	"PoundsBosses/internal/core/domain"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// newTestCache connects to the Redis named by REDIS_URL, or skips.
func newTestCache(t *testing.T) *accountCache {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set; skipping redis integration tests")
	}

	nopLogger := zerolog.Nop()
	cache, err := NewAccountCache(context.Background(), url, time.Minute, &nopLogger)
	if err != nil {
		t.Fatalf("Failed to connect to test redis: %v", err)
	}
	return cache.(*accountCache)
}

func testSnapshot() *domain.Account {
	return &domain.Account{
		ID:                     uuid.New(),
		UserID:                 fmt.Sprintf("user_cache_%d", time.Now().UnixNano()),
		AvailableForWithdrawal: decimal.NewFromInt(5000),
		TotalEarnings:          decimal.NewFromInt(5000),
		TotalFundedAmount:      decimal.NewFromInt(5000),
		Version:                3,
	}
}

func TestAccountCache_SetGetRoundtrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	acct := testSnapshot()
	defer cache.Invalidate(ctx, acct.UserID)

	if err := cache.Set(ctx, acct); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	found, err := cache.Get(ctx, acct.UserID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if found == nil {
		t.Fatalf("Get: snapshot not found, but should exist")
	}
	if found.ID != acct.ID {
		t.Errorf("ID mismatch: got %v, want %v", found.ID, acct.ID)
	}
	if !found.AvailableForWithdrawal.Equal(acct.AvailableForWithdrawal) {
		t.Errorf("balance mismatch: got %s, want %s", found.AvailableForWithdrawal, acct.AvailableForWithdrawal)
	}
	if found.Version != acct.Version {
		t.Errorf("version mismatch: got %d, want %d", found.Version, acct.Version)
	}
}

func TestAccountCache_MissReturnsNilNil(t *testing.T) {
	cache := newTestCache(t)

	found, err := cache.Get(context.Background(), "user_never_cached")
	if err != nil {
		t.Fatalf("Get on a miss returned an error: %v", err)
	}
	if found != nil {
		t.Fatalf("Get on a miss: expected nil, got %+v", found)
	}
}

func TestAccountCache_InvalidateDropsSnapshot(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	acct := testSnapshot()

	if err := cache.Set(ctx, acct); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cache.Invalidate(ctx, acct.UserID); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	found, err := cache.Get(ctx, acct.UserID)
	if err != nil {
		t.Fatalf("Get after invalidate failed: %v", err)
	}
	if found != nil {
		t.Fatalf("snapshot survived invalidation: %+v", found)
	}
}

func TestAccountCache_CorruptEntryBehavesLikeMiss(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	userID := fmt.Sprintf("user_corrupt_%d", time.Now().UnixNano())

	if err := cache.client.Set(ctx, cacheKey(userID), "{not json", time.Minute).Err(); err != nil {
		t.Fatalf("Failed to plant corrupt entry: %v", err)
	}

	found, err := cache.Get(ctx, userID)
	if err != nil {
		t.Fatalf("Get on corrupt entry returned an error: %v", err)
	}
	if found != nil {
		t.Fatalf("corrupt entry decoded to %+v", found)
	}
}
