package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisCache keeps solved results as JSON strings under prefix+key.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *zerolog.Logger
}

func NewRedisCache(client *redis.Client, prefix string, ttl time.Duration, logger *zerolog.Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisCache) Get(ctx context.Context, key string) (models.SolveResult, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.SolveResult{}, false, nil
	}
	if err != nil {
		return models.SolveResult{}, false, fmt.Errorf("failed to read cached result: %w", err)
	}

	var result models.SolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		// A corrupt entry is treated as a miss and overwritten by the next Set.
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return models.SolveResult{}, false, nil
	}

	return result, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, result models.SolveResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store result: %w", err)
	}

	c.logger.Debug().Str("key", key).Dur("ttl", c.ttl).Msg("result cached")
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
