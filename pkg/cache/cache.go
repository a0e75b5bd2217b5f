package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: key not found")

// Store is the cache surface used across the service. Values are
// JSON-encoded on Set and decoded into dest on Get.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
	Close() error
}

// Get retrieves and decodes a value of type T.
func Get[T any](ctx context.Context, s Store, key string) (T, error) {
	var v T
	err := s.Get(ctx, key, &v)
	return v, err
}

// Key joins parts into a cache key, e.g. Key("consensus", "BTCUSDT", "15m").
func Key(parts ...interface{}) string {
	key := ""
	for i, p := range parts {
		if i > 0 {
			key += ":"
		}
		key += fmt.Sprintf("%v", p)
	}
	return key
}
