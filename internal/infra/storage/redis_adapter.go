package storage

import (
	"context"
	"errors"
	"time"

	"github.com/DioGolang/GoBank/internal/domain/entity"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "idem:"

// RedisIdempotencyStore shares keys between instances. Expiry is delegated
// to Redis, so an expired key is simply gone.
type RedisIdempotencyStore struct {
	client redis.Cmdable
	prefix string
}

func NewRedisIdempotencyStore(c redis.Cmdable, prefix string) *RedisIdempotencyStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisIdempotencyStore{client: c, prefix: prefix}
}

func (r *RedisIdempotencyStore) TryStart(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	// Redis cannot hold a key for less than a millisecond; such a key
	// would already be expired on the next read.
	if ttl < time.Millisecond {
		return true, nil
	}
	return r.client.SetNX(ctx, r.prefix+key, entity.IdempotencyInProgress.String(), ttl).Result()
}

func (r *RedisIdempotencyStore) Complete(ctx context.Context, key string) error {
	err := r.client.SetArgs(ctx, r.prefix+key, entity.IdempotencyCompleted.String(), redis.SetArgs{
		Mode:    "XX",
		KeepTTL: true,
	}).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}

func (r *RedisIdempotencyStore) GetStatus(ctx context.Context, key string) (entity.IdempotencyStatus, error) {
	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return entity.IdempotencyNone, nil
	}
	if err != nil {
		return entity.IdempotencyNone, err
	}
	return entity.ParseIdempotencyStatus(v), nil
}
