package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"bevin/internal/model"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "bevin:chat:"

// ReplyCache stores whole chat responses keyed by the normalized request,
// so repeated identical prompts against an unchanged store return the same
// picks without re-running the cascade. Best-effort: any Redis failure is
// logged and treated as a miss.
type ReplyCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewReplyCache creates a reply cache backed by the given Redis address.
func NewReplyCache(addr, password string, db int, ttl time.Duration, logger *zap.Logger) *ReplyCache {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return NewReplyCacheWithClient(client, ttl, logger)
}

// NewReplyCacheWithClient wraps an existing Redis client (used by tests).
func NewReplyCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *ReplyCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReplyCache{client: client, ttl: ttl, logger: logger}
}

// Ping tests the Redis connection
func (c *ReplyCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close closes the Redis connection
func (c *ReplyCache) Close() error {
	return c.client.Close()
}

// Key derives the cache key from everything that influences the picks:
// the clipped message, the limit, and the explicit filter overrides.
func Key(message string, limit int, filters *model.ChatFilters) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|", message, limit)
	if filters != nil {
		payload, _ := json.Marshal(filters)
		h.Write(payload)
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached response for key, or (nil, false) on a miss.
func (c *ReplyCache) Get(ctx context.Context, key string) (*model.ChatResponse, bool) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("reply cache get failed", zap.Error(err))
		return nil, false
	}

	var resp model.ChatResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		c.logger.Warn("reply cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return &resp, true
}

// Set stores a response under key with the configured TTL.
func (c *ReplyCache) Set(ctx context.Context, key string, resp *model.ChatResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		c.logger.Warn("reply cache marshal failed", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("reply cache set failed", zap.Error(err))
	}
}
