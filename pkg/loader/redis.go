package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheAPI is the subset of the Redis client used by Cache.
type CacheAPI interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Cache is a read-through Redis cache in front of a text loader.
//
// Cache failures never fail a load: a Redis error counts as a miss and a
// failed write is dropped.
type Cache struct {
	client CacheAPI
	prefix string
	ttl    time.Duration
}

// NewCache wraps client. Keys are stored under prefix and expire after ttl
// (0 = never).
func NewCache(client CacheAPI, prefix string, ttl time.Duration) *Cache {
	return &Cache{client: client, prefix: prefix, ttl: ttl}
}

// NewRedisCache dials addr with go-redis.
func NewRedisCache(addr, password string, db int, prefix string, ttl time.Duration) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewCache(client, prefix, ttl)
}

// Lookup returns the cached value for key. ok is false on a miss.
func (c *Cache) Lookup(ctx context.Context, key string) (value string, ok bool, err error) {
	value, err = c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// Store caches value under key.
func (c *Cache) Store(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Invalidate drops keys from the cache.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

// Wrap returns a loader that serves key from the cache and falls back to
// load on a miss, caching its result. Errors from load are not cached. A
// nil Cache returns load unchanged.
//
// Example:
//
//	page := resource.New(scope, slug, cache.Wrap(store.Text))
func (c *Cache) Wrap(load func(context.Context, string) (string, error)) func(context.Context, string) (string, error) {
	if c == nil {
		return load
	}
	return func(ctx context.Context, key string) (string, error) {
		if v, ok, err := c.Lookup(ctx, key); err == nil && ok {
			return v, nil
		}
		v, err := load(ctx, key)
		if err != nil {
			return "", err
		}
		_ = c.Store(ctx, key, v)
		return v, nil
	}
}
