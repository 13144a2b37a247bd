package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the SQLite tables used for run history and the route cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	return execSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS route_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		algorithm TEXT NOT NULL,
		mode TEXT NOT NULL,
		distance_km REAL NOT NULL,
		execution_time_ms REAL NOT NULL,
		path TEXT NOT NULL,
		geometry TEXT,
		degenerate INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		expires_at INTEGER NOT NULL DEFAULT 0
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_route_cache_expires_at
	ON route_cache(expires_at);
	`,
	})
}

// InitPostgresSchema creates the same tables on Postgres.
func InitPostgresSchema(ctx context.Context, db *sql.DB) error {
	return execSchema(ctx, db, []string{
		`
	CREATE TABLE IF NOT EXISTS route_runs (
		id BIGSERIAL PRIMARY KEY,
		algorithm TEXT NOT NULL,
		mode TEXT NOT NULL,
		distance_km DOUBLE PRECISION NOT NULL,
		execution_time_ms DOUBLE PRECISION NOT NULL,
		path JSONB NOT NULL,
		geometry JSONB,
		degenerate BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`,
		`
	CREATE INDEX IF NOT EXISTS idx_route_runs_created_at
	ON route_runs(created_at DESC);
	`,
		`
	CREATE TABLE IF NOT EXISTS route_cache (
		cache_key TEXT PRIMARY KEY,
		value BYTEA NOT NULL,
		expires_at BIGINT NOT NULL DEFAULT 0
	);
	`,
	})
}

func execSchema(ctx context.Context, db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
