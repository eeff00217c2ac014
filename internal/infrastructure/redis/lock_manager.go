package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockManager hands out per-key OwnerLocks and runs critical sections
// under them.
type LockManager struct {
	client     *redis.Client
	ttl        time.Duration
	maxRetries int
	retryDelay time.Duration
}

func NewLockManager(client *redis.Client, ttl time.Duration) *LockManager {
	return &LockManager{
		client:     client,
		ttl:        ttl,
		maxRetries: 50,
		retryDelay: 100 * time.Millisecond,
	}
}

// WithLock runs fn while holding the lock for key. The lock is
// released even when fn's context is already cancelled.
func (m *LockManager) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	lock := NewOwnerLock(m.client, key, m.ttl)
	if err := lock.AcquireWithRetry(ctx, m.maxRetries, m.retryDelay); err != nil {
		return err
	}
	defer lock.Release(context.WithoutCancel(ctx))

	return fn(ctx)
}
