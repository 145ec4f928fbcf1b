package daemon

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is the ResultCache backed by a Redis instance. It is the only
// place in the daemon that persists a computed result; the MCIS core
// itself remains free of any caching concern.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache dials addr and returns a RedisCache namespacing every key
// under "mcis:runs:".
func NewRedisCache(addr string) *RedisCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisCache{client: client, prefix: "mcis:runs:"}
}

// Get returns the cached value for key, or hit=false if absent.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// Set stores value under key with the given TTL.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, c.prefix+key, value, ttl).Err()
}

// Close releases the underlying Redis connection pool.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
