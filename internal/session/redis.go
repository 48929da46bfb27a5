package session

import (
	"budget_tracker/internal/domain" // Importing domain models
	"budget_tracker/internal/utils"  // Redis JSON helpers
	"context"                        // Context for Redis operations
	"fmt"                            // Error wrapping
	"time"                           // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

const redisKeyPrefix = "session:"

type redisSession struct {
	UserID uint `json:"user_id"`
}

// RedisStore keeps sessions in Redis with a TTL per key
type RedisStore struct {
	cache *utils.JSONCache
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(rdb redis.Cmdable) *RedisStore {
	return &RedisStore{cache: utils.NewJSONCache(rdb, redisKeyPrefix)}
}

// Save stores a session that expires after ttl
func (s *RedisStore) Save(ctx context.Context, sid string, userID uint, ttl time.Duration) error {
	if err := s.cache.Set(ctx, sid, redisSession{UserID: userID}, ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the user id bound to sid
func (s *RedisStore) Load(ctx context.Context, sid string) (uint, error) {
	var v redisSession
	found, err := s.cache.Get(ctx, sid, &v)
	if err != nil {
		return 0, fmt.Errorf("load session: %w", err)
	}
	if !found || v.UserID == 0 {
		return 0, domain.ErrNotFound
	}
	return v.UserID, nil
}

// Delete removes a session
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	if _, err := s.cache.Delete(ctx, sid); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
