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

// SQLite backed route cache for local runs.
type SqliteRouteCache struct {
	DB  *sql.DB
	now func() time.Time
}

var _ ports.RouteCache = (*SqliteRouteCache)(nil)

func NewSqliteRouteCache(db *sql.DB) *SqliteRouteCache {
	return &SqliteRouteCache{DB: db, now: time.Now}
}

func (s *SqliteRouteCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Get")(&err)

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
	WHERE cache_key = ?
		AND (expires_at = 0 OR expires_at > ?);
	`, key, s.now().Unix()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query route_cache table: %w", err)
	}

	return value, true, nil
}

func (s *SqliteRouteCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.sqlite.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}
	if err := requireKey("put route cache", key); err != nil {
		return err
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert route cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Expired rows are swept on write so the table does not grow unbounded.
	if _, err := tx.ExecContext(ctx, `DELETE FROM route_cache WHERE expires_at != 0 AND expires_at <= ?;`, s.now().Unix()); err != nil {
		return fmt.Errorf("insert route cache: sweep expired: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
	INSERT OR REPLACE INTO route_cache (cache_key, value, expires_at)
	VALUES (?, ?, ?);
	`, key, value, ttlExpiry(s.now(), ttl)); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert route cache commit: %w", err)
	}

	return nil
}
