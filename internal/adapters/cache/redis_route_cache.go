package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/platform/obs"
)

const routeKeyPrefix = "route:"

// RedisRouteCache stores computed route plans in Redis as JSON.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisRouteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRouteCache(rdb *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb, ttl: ttl}
}

// NewRedisRouteCacheFromURL connects to the Redis server at url (redis://...).
func NewRedisRouteCacheFromURL(url string, ttl time.Duration) (*RedisRouteCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis route cache: parse url: %w", err)
	}
	return NewRedisRouteCache(redis.NewClient(opt), ttl), nil
}

// Ping verifies the connection.
func (c *RedisRouteCache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis route cache: ping: %w", err)
	}
	return nil
}

func (c *RedisRouteCache) Close() error {
	return c.rdb.Close()
}

// Fetch the cached plan for key.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ *domain.RoutePlan, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	data, err := c.rdb.Get(ctx, routeKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: key=%s: %w", key, err)
	}

	var plan domain.RoutePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode key=%s: %w", key, err)
	}
	return &plan, true, nil
}

// Store plan under key.
func (c *RedisRouteCache) Put(ctx context.Context, key string, plan *domain.RoutePlan) error {
	if key == "" {
		return errors.New("insert route cache: key must not be empty")
	}
	if plan == nil {
		return errors.New("insert route cache: plan is nil")
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("insert route cache: encode key=%s: %w", key, err)
	}

	if err := c.rdb.Set(ctx, routeKeyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("insert route cache: key=%s: %w", key, err)
	}
	return nil
}
