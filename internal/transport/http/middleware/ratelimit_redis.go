package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore keeps fixed-window counters in Redis so every replica
// enforces the same budget.
type RedisRateLimitStore struct {
	client    redis.Cmdable
	keyPrefix string
}

func NewRedisRateLimitStore(client redis.Cmdable) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client, keyPrefix: "lexlaboral:ratelimit:"}
}

func (s *RedisRateLimitStore) Hit(ctx context.Context, key string, window time.Duration) (int, time.Duration, error) {
	fullKey := s.keyPrefix + key
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, fullKey)
	ttl := pipe.PTTL(ctx, fullKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, err
	}

	count := int(incr.Val())
	remaining := ttl.Val()
	// A fresh counter, or one that lost its expiry, starts a new window.
	if count == 1 || remaining < 0 {
		if err := s.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return 0, 0, err
		}
		remaining = window
	}
	return count, remaining, nil
}
