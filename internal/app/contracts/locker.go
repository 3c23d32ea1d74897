package contracts

import (
	"context"
	"time"
)

type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
	// Refresh extends the TTL of a lock if owned by lockValue
	Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error
	// WithLock runs fn while holding key. It reports false without calling fn
	// when the lock is held elsewhere.
	WithLock(ctx context.Context, key string, expiration time.Duration, fn func(ctx context.Context) error) (bool, error)
}
