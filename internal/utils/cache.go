package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // redis.Nil matching
	"fmt"           // Error wrapping
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// JSONCache stores JSON values in Redis under a fixed key prefix
type JSONCache struct {
	rdb    redis.Cmdable
	prefix string
}

// NewJSONCache creates a cache whose keys all start with prefix
func NewJSONCache(rdb redis.Cmdable, prefix string) *JSONCache {
	return &JSONCache{rdb: rdb, prefix: prefix}
}

// Key returns the full Redis key for id
func (c *JSONCache) Key(id string) string {
	return c.prefix + id
}

// Get unmarshals the value stored for id into dest and reports whether it existed
func (c *JSONCache) Get(ctx context.Context, id string, dest any) (bool, error) {
	val, err := c.rdb.Get(ctx, c.Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil // Missing or expired
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", c.Key(id), err)
	}
	return true, nil
}

// Set stores value for id. A zero ttl is rejected so no entry lives forever.
func (c *JSONCache) Set(ctx context.Context, id string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("set %s: ttl must be positive", c.Key(id))
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, c.Key(id), b, ttl).Err()
}

// Delete removes id and reports whether anything was removed
func (c *JSONCache) Delete(ctx context.Context, id string) (bool, error) {
	n, err := c.rdb.Del(ctx, c.Key(id)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
