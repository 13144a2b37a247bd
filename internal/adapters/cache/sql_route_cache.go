package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"
)

// SQLRouteCache is a Postgres-backed route cache. It is the fallback when
// no Redis url is configured.
type SQLRouteCache struct {
	DB  *sql.DB
	now func() time.Time
}

var _ ports.RouteCache = (*SQLRouteCache)(nil)

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db, now: time.Now}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}
	if err := requireKey("get route cache", key); err != nil {
		return nil, false, err
	}

	var value []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT value
	FROM route_cache
	WHERE cache_key = $1
		AND (expires_at = 0 OR expires_at > $2);
	`, key, s.now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return value, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if err := requireKey("put route cache", key); err != nil {
		return err
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (cache_key, value, expires_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET value = EXCLUDED.value,
		expires_at = EXCLUDED.expires_at;
	`, key, value, ttlExpiry(s.now(), ttl))
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
