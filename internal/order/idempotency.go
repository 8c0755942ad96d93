package order

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// IdempotencyStore reserves placement keys so a double-submitted order
// is only written once.
type IdempotencyStore interface {
	// Reserve returns false if the key was already used recently.
	Reserve(ctx context.Context, key string) (bool, error)
}

const idempotencyTTL = 24 * time.Hour

// RedisIdempotency backs IdempotencyStore with SETNX and a TTL.
type RedisIdempotency struct {
	rdb *redis.Client
}

func NewRedisIdempotency(rdb *redis.Client) *RedisIdempotency {
	return &RedisIdempotency{rdb: rdb}
}

func (s *RedisIdempotency) Reserve(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, "order:idem:"+key, 1, idempotencyTTL).Result()
}
