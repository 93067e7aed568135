package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// Redis key prefix for cached evaluations
	evaluationKeyPrefix = "eval:id:"

	defaultCacheTTL = 15 * time.Minute
)

// RedisCache is a read-through cache for stored evaluations. It sits in
// front of the durable EvaluationStore so repeated fetches and exports of
// the same result do not hit PostgreSQL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisCacheOption configures a RedisCache instance.
type RedisCacheOption func(*RedisCache)

// WithCacheTTL overrides the default cache entry lifetime.
func WithCacheTTL(ttl time.Duration) RedisCacheOption {
	return func(c *RedisCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// NewRedisCache constructs a Redis-backed evaluation cache.
func NewRedisCache(client *redis.Client, opts ...RedisCacheOption) *RedisCache {
	cache := &RedisCache{
		client: client,
		ttl:    defaultCacheTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cache)
		}
	}
	return cache
}

// Set stores an evaluation with TTL. Serialization failures are returned
// to the caller; the cache never stores partial entries.
func (c *RedisCache) Set(ctx context.Context, eval *Evaluation) error {
	if eval == nil {
		return nil
	}
	payload, err := json.Marshal(eval)
	if err != nil {
		return err
	}
	key := evaluationKeyPrefix + eval.ID.String()
	return c.client.Set(ctx, key, payload, c.ttl).Err()
}

// Get returns the cached evaluation, or (nil, nil) on a miss so callers
// fall through to the durable store.
func (c *RedisCache) Get(ctx context.Context, id uuid.UUID) (*Evaluation, error) {
	key := evaluationKeyPrefix + id.String()
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var eval Evaluation
	if err := json.Unmarshal(payload, &eval); err != nil {
		return nil, err
	}
	return &eval, nil
}
