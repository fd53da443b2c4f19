// Package cache stores upstream API responses in Redis as JSON.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sidelines/sidelines/internal/metrics"
)

const keyPrefix = "sidelines:"

// Store is a JSON cache keyed by string. A nil *Redis is a valid Store that
// never hits, so callers do not branch on whether Redis is configured.
type Store interface {
	Get(ctx context.Context, key string, dst any) bool
	Set(ctx context.Context, key string, value any)
}

// Connect opens a Redis client and pings it.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return rdb, nil
}

// Redis is a Store backed by a go-redis client.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// New returns a Store writing entries with ttl (0 means no expiry). A nil
// client yields a nil *Redis.
func New(client *redis.Client, ttl time.Duration) *Redis {
	if client == nil {
		return nil
	}
	return &Redis{client: client, ttl: ttl}
}

// Get unmarshals the cached value for key into dst. Misses, Redis errors and
// undecodable entries all report false.
func (c *Redis) Get(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err)
		}
		metrics.IncCache("miss")
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		slog.Warn("cache entry undecodable", "key", key, "error", err)
		metrics.IncCache("miss")
		return false
	}
	metrics.IncCache("hit")
	return true
}

// Set stores value under key. Write failures are logged, not returned.
func (c *Redis) Set(ctx context.Context, key string, value any) {
	if c == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

// Delete removes key.
func (c *Redis) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		slog.Warn("cache delete failed", "key", key, "error", err)
	}
}

// Ping reports whether Redis is reachable. A nil cache is always healthy.
func (c *Redis) Ping(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.client.Ping(ctx).Err()
}
