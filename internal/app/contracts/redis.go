package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Ping(ctx context.Context) error
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// DeleteIfEqual removes key only while it still holds value, atomically
	DeleteIfEqual(ctx context.Context, key string, value interface{}) (bool, error)
	// ExpireIfEqual resets the TTL of key only while it still holds value
	ExpireIfEqual(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
