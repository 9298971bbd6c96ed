package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"vendepass-client/internal/platform/obs"
	"vendepass-client/internal/ports"

	"github.com/redis/go-redis/v9"
)

var _ ports.ListCache[struct{}] = (*RedisListCache[struct{}])(nil)

// Redis-backed ListCache storing each list as one JSON value. Lets several
// client processes for the same user share reads until a mutation
// invalidates them.
type RedisListCache[T any] struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisListCache[T any](client *redis.Client, prefix string, ttl time.Duration, logger *slog.Logger) *RedisListCache[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisListCache[T]{client: client, prefix: prefix, ttl: ttl, logger: logger}
}

// NewRedisClient parses url and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis cache: parse url: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 1

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis cache: ping: %w", err)
	}

	return client, nil
}

func (c *RedisListCache[T]) key(k string) string { return c.prefix + k }

func (c *RedisListCache[T]) Get(ctx context.Context, key string) (_ []T, _ bool, err error) {
	defer obs.Time(ctx, c.logger, "list.cache.Get")(&err)

	if c.client == nil {
		return nil, false, errors.New("redis cache: client is nil")
	}

	raw, err := c.client.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis cache: get %q: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("redis cache: decode %q: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}

	return items, true, nil
}

func (c *RedisListCache[T]) Set(ctx context.Context, key string, items []T) error {
	if c.client == nil {
		return errors.New("redis cache: client is nil")
	}

	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("redis cache: encode %q: %w", key, err)
	}

	if err := c.client.Set(ctx, c.key(key), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache: set %q: %w", key, err)
	}
	return nil
}

func (c *RedisListCache[T]) Invalidate(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return errors.New("redis cache: client is nil")
	}
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, c.key(k))
	}

	if err := c.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("redis cache: delete %v: %w", keys, err)
	}
	return nil
}
