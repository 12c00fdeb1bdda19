package middleware

import (
	"carrental/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisIdempotencyPrefix = "idempotency:"

// RedisIdempotencyStore shares cached responses between service replicas. Redis failures
// are logged and treated as cache misses.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool) {
	data, err := s.client.Get(ctx, redisIdempotencyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("Failed to read idempotency key from Redis", "error", err)
		}
		return nil, false
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		s.log.Warn("Discarding corrupt idempotency entry", "error", err)
		return nil, false
	}
	return &cached, true
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) {
	response.CreatedAt = time.Now()
	data, err := json.Marshal(response)
	if err != nil {
		s.log.Warn("Failed to encode idempotent response", "error", err)
		return
	}

	// SetNX keeps the first response when two replicas race on the same key
	if err := s.client.SetNX(ctx, redisIdempotencyPrefix+key, data, s.ttl).Err(); err != nil {
		s.log.Warn("Failed to store idempotency key in Redis", "error", err)
	}
}

// Stop is a no-op; the Redis client is closed with the rest of the clients.
func (s *RedisIdempotencyStore) Stop() {}
