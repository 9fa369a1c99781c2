package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ShantamRU/extraordinary-bank/pkg/provider"
	"github.com/redis/go-redis/v9"
)

// RedisRateCache stores rate tables in Redis so several instances share one
// upstream fetch.
type RedisRateCache struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

func NewRedisRateCache(opt *redis.Options, prefix string, logger *slog.Logger) *RedisRateCache {
	return &RedisRateCache{client: redis.NewClient(opt), prefix: prefix, logger: logger}
}

func (c *RedisRateCache) key(key string) string {
	return c.prefix + key
}

func (c *RedisRateCache) Get(ctx context.Context, key string) (map[string]provider.RateInfo, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}
	var rates map[string]provider.RateInfo
	if err := json.Unmarshal([]byte(val), &rates); err != nil {
		return nil, err
	}
	c.logger.Debug("rate cache hit", "key", key, "count", len(rates))
	return rates, nil
}

func (c *RedisRateCache) Set(
	ctx context.Context,
	key string,
	rates map[string]provider.RateInfo,
	ttl time.Duration,
) error {
	data, err := json.Marshal(rates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(key), data, ttl).Err()
}

var _ provider.RateCache = (*RedisRateCache)(nil)
