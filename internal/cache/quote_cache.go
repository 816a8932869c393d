// Package cache provides the optional Redis read cache for latest quotes.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/evetabi/betboard/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrMiss is returned when the cache holds no entry for a game.
var ErrMiss = errors.New("quote cache miss")

// ConnectRedis dials Redis and verifies the connection.
func ConnectRedis(addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}

// QuoteCache keeps the latest quote per game in Redis so read-heavy endpoints
// skip the history query. All methods are safe on a nil receiver: a nil cache
// simply always misses, which keeps the cache strictly optional.
type QuoteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewQuoteCache wraps a connected Redis client.
func NewQuoteCache(rdb *redis.Client, ttl time.Duration) *QuoteCache {
	return &QuoteCache{rdb: rdb, ttl: ttl}
}

func quoteKey(gameID uuid.UUID) string {
	return "quote:latest:" + gameID.String()
}

// SetLatest stores q as the authoritative quote for its game.
func (c *QuoteCache) SetLatest(ctx context.Context, q *domain.Quote) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("quote_cache.SetLatest: marshal: %w", err)
	}
	if err := c.rdb.Set(ctx, quoteKey(q.GameID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("quote_cache.SetLatest: %w", err)
	}
	return nil
}

// GetLatest returns the cached quote for a game, or ErrMiss.
func (c *QuoteCache) GetLatest(ctx context.Context, gameID uuid.UUID) (*domain.Quote, error) {
	if c == nil || c.rdb == nil {
		return nil, ErrMiss
	}
	payload, err := c.rdb.Get(ctx, quoteKey(gameID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, fmt.Errorf("quote_cache.GetLatest: %w", err)
	}
	var q domain.Quote
	if err := json.Unmarshal(payload, &q); err != nil {
		return nil, fmt.Errorf("quote_cache.GetLatest: unmarshal: %w", err)
	}
	return &q, nil
}
