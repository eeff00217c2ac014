package service

import "context"

// TransactionManager runs fn inside a database transaction propagated
// through the context.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker serializes a critical section on a named key across service
// instances. Primary-flag changes take a per-owner lock so two
// concurrent requests cannot both end up primary.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}

// Cache is a small JSON cache used for VPA verification results.
// Implementations must treat failures as misses; callers never fail a
// request on a cache error.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
}
