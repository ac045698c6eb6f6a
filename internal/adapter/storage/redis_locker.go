package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// runLockTTL bounds how long a crashed run can hold the lock.
const runLockTTL = 30 * time.Minute

// RedisLocker serializes batch runs across processes with a SET NX
// lease.
type RedisLocker struct {
	client *redis.Client
}

func NewRedisLocker(client *redis.Client) *RedisLocker {
	return &RedisLocker{client: client}
}

func (r *RedisLocker) Acquire(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, 1, runLockTTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

func (r *RedisLocker) Release(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
