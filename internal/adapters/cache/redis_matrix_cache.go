package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const matrixKeyPrefix = "dur:"

// RedisMatrixCache caches pairwise travel durations (seconds) so repeated
// planning runs for the same stops skip the external matrix call.
type RedisMatrixCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisMatrixCache(rdb *goredis.Client, ttl time.Duration) *RedisMatrixCache {
	return &RedisMatrixCache{rdb: rdb, ttl: ttl}
}

// GetMany fetches cached durations for the given pair keys. Missing keys
// are simply absent from the result.
func (c *RedisMatrixCache) GetMany(ctx context.Context, keys []string) (map[string]int, error) {
	if c == nil || c.rdb == nil {
		return nil, errors.New("matrix cache: redis client is nil")
	}
	if len(keys) == 0 {
		return map[string]int{}, nil
	}

	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = matrixKeyPrefix + k
	}

	values, err := c.rdb.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, fmt.Errorf("matrix cache: mget: %w", err)
	}

	out := make(map[string]int, len(keys))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		seconds, err := strconv.Atoi(s)
		if err != nil {
			continue
		}
		out[keys[i]] = seconds
	}
	return out, nil
}

// PutMany stores durations for the given pair keys with the cache TTL.
func (c *RedisMatrixCache) PutMany(ctx context.Context, entries map[string]int) error {
	if c == nil || c.rdb == nil {
		return errors.New("matrix cache: redis client is nil")
	}
	if len(entries) == 0 {
		return nil
	}

	pipe := c.rdb.Pipeline()
	for k, seconds := range entries {
		pipe.Set(ctx, matrixKeyPrefix+k, strconv.Itoa(seconds), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("matrix cache: pipeline set: %w", err)
	}
	return nil
}
