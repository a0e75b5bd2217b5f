package cache

import (
	"context"
	"encoding/json"
	"time"
)

// Layered is a two-level Store: in-process memory in front of Redis.
// Reads fall through to Redis on a memory miss; writes go to both.
type Layered struct {
	l1 *Memory
	l2 *Redis
}

// NewLayered creates a layered cache over an existing Redis store.
func NewLayered(l2 *Redis, opts ...MemoryOption) *Layered {
	return &Layered{
		l1: NewMemory(opts...),
		l2: l2,
	}
}

func (c *Layered) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if err := c.l2.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	_ = c.l1.Set(ctx, key, value, ttl)
	return nil
}

func (c *Layered) Get(ctx context.Context, key string, dest interface{}) error {
	if err := c.l1.Get(ctx, key, dest); err == nil {
		return nil
	}

	if err := c.l2.Get(ctx, key, dest); err != nil {
		return err
	}

	// Backfill L1. dest is a pointer; round-trip through JSON keeps
	// the stored form identical to a direct Set.
	if data, err := json.Marshal(dest); err == nil {
		var raw json.RawMessage = data
		_ = c.l1.Set(ctx, key, raw, 0)
	}
	return nil
}

func (c *Layered) Delete(ctx context.Context, keys ...string) error {
	_ = c.l1.Delete(ctx, keys...)
	return c.l2.Delete(ctx, keys...)
}

func (c *Layered) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := c.l1.Exists(ctx, key); ok {
		return true, nil
	}
	return c.l2.Exists(ctx, key)
}

func (c *Layered) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.l2.TryLock(ctx, key, ttl)
}

func (c *Layered) Unlock(ctx context.Context, key string) error {
	return c.l2.Unlock(ctx, key)
}

// Close closes both layers.
func (c *Layered) Close() error {
	_ = c.l1.Close()
	return c.l2.Close()
}
