package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements Store on top of go-redis with a key prefix.
type Redis struct {
	client *redis.Client
	prefix string
}

// RedisOption configures Redis.
type RedisOption func(*redis.Options, *Redis)

// WithRedisAddr sets the server address.
func WithRedisAddr(addr string) RedisOption {
	return func(o *redis.Options, _ *Redis) { o.Addr = addr }
}

// WithRedisAuth sets password and database.
func WithRedisAuth(password string, db int) RedisOption {
	return func(o *redis.Options, _ *Redis) {
		o.Password = password
		o.DB = db
	}
}

// WithRedisPrefix sets the key namespace.
func WithRedisPrefix(prefix string) RedisOption {
	return func(_ *redis.Options, r *Redis) { r.prefix = prefix }
}

// NewRedis connects to Redis and verifies the connection with a ping.
func NewRedis(opts ...RedisOption) (*Redis, error) {
	options := &redis.Options{
		Addr:         "localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
	}
	r := &Redis{prefix: "tradepulse"}
	for _, opt := range opts {
		opt(options, r)
	}

	r.client = redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return r, nil
}

func (r *Redis) key(key string) string {
	return r.prefix + ":" + key
}

func (r *Redis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(key), data, ttl).Err()
}

func (r *Redis) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrMiss
		}
		return err
	}
	return json.Unmarshal(data, dest)
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = r.key(k)
	}
	return r.client.Unlink(ctx, wrapped...).Err()
}

func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Redis) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.key(key), "1", ttl).Result()
}

func (r *Redis) Unlock(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close closes the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
