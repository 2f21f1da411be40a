package rediscache

import (
	"PoundsBosses/internal/core/domain"
	"PoundsBosses/internal/core/ports"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultTTL = 5 * time.Minute

type accountCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

var _ ports.AccountCache = (*accountCache)(nil) // Ensure compliance

// NewAccountCache creates the Redis-backed account snapshot cache. Pass
// ttl 0 to use the default. The TTL is only a backstop: the ledger
// invalidates after every balance mutation, so a live entry is either
// current or at most one crash away from expiring.
func NewAccountCache(ctx context.Context, redisURL string, ttl time.Duration, baseLogger *zerolog.Logger) (ports.AccountCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if ttl == 0 {
		ttl = defaultTTL
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log := baseLogger.With().Str("component", "account_cache").Logger()
	log.Info().Dur("ttl", ttl).Msg("Account cache connected")

	return &accountCache{client: client, ttl: ttl, log: log}, nil
}

func cacheKey(userID string) string {
	return "account:" + userID
}

// Get returns the cached snapshot, or (nil, nil) on a miss.
func (c *accountCache) Get(ctx context.Context, userID string) (*domain.Account, error) {
	data, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var acct domain.Account
	if err := json.Unmarshal(data, &acct); err != nil {
		// A corrupt entry behaves like a miss; the next Set replaces it.
		c.log.Warn().Err(err).Str("user_id", userID).Msg("Dropping undecodable cache entry")
		c.client.Del(ctx, cacheKey(userID))
		return nil, nil
	}
	return &acct, nil
}

// Set stores a snapshot under the backstop TTL.
func (c *accountCache) Set(ctx context.Context, acct *domain.Account) error {
	data, err := json.Marshal(acct)
	if err != nil {
		return fmt.Errorf("encode account snapshot: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(acct.UserID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Invalidate drops the snapshot for a user.
func (c *accountCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}
