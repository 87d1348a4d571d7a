package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisRequestKeyPrefix = "fridge:idempotency:"

// RedisRequestIDStore keeps idempotency entries in redis so they survive a
// restart and are shared between replicas. Expiry is left to redis.
type RedisRequestIDStore struct {
	client *redis.Client
}

func NewRedisRequestIDStore(client *redis.Client) *RedisRequestIDStore {
	return &RedisRequestIDStore{client: client}
}

func (s *RedisRequestIDStore) Store(ctx context.Context, key string, response CachedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal cached response: %w", err)
	}
	if err := s.client.Set(ctx, redisRequestKeyPrefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}

func (s *RedisRequestIDStore) Get(ctx context.Context, key string) (CachedResponse, error) {
	data, err := s.client.Get(ctx, redisRequestKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return CachedResponse{}, ErrRequestIDNotFound
	}
	if err != nil {
		return CachedResponse{}, fmt.Errorf("redis get error: %w", err)
	}

	var response CachedResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return CachedResponse{}, fmt.Errorf("failed to unmarshal cached response: %w", err)
	}
	return response, nil
}
