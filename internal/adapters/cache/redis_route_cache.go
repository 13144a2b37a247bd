package cache

import (
	"context"
	"errors"
	"fmt"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// RedisRouteCache keeps routing payloads in Redis with native key expiry.
type RedisRouteCache struct {
	rdb *redis.Client
}

var _ ports.RouteCache = (*RedisRouteCache)(nil)

// NewRedisRouteCache connects using a redis:// url and pings the server.
func NewRedisRouteCache(ctx context.Context, url string) (*RedisRouteCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisRouteCache{rdb: rdb}, nil
}

func NewRedisRouteCacheFromClient(rdb *redis.Client) *RedisRouteCache {
	return &RedisRouteCache{rdb: rdb}
}

func (r *RedisRouteCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.redis.Get")(&err)

	if err := requireKey("get route cache", key); err != nil {
		return nil, false, err
	}

	b, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: %w", err)
	}
	return b, true, nil
}

func (r *RedisRouteCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.redis.Put")(&err)

	if err := requireKey("put route cache", key); err != nil {
		return err
	}

	// A zero expiration keeps the key forever.
	if ttl < 0 {
		ttl = 0
	}
	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("put route cache: %w", err)
	}
	return nil
}

func (r *RedisRouteCache) Close() error { return r.rdb.Close() }
