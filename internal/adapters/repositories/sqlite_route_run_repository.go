package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"
)

// SQLite-backed implementation of the RouteRunRepository port.
type SqliteRouteRunRepository struct {
	DB  *sql.DB
	now func() time.Time
}

var _ ports.RouteRunRepository = (*SqliteRouteRunRepository)(nil)

func NewSqliteRouteRunRepository(db *sql.DB) *SqliteRouteRunRepository {
	return &SqliteRouteRunRepository{DB: db, now: time.Now}
}

// SaveRun inserts run and returns its new id. A zero CreatedAt is stamped
// with the current time.
func (s *SqliteRouteRunRepository) SaveRun(ctx context.Context, run *domain.RouteRun) (_ int64, err error) {
	defer obs.Time(ctx, "runs.sqlite.SaveRun")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite route run repository: DB is nil")
	}
	if err := validateRun(run); err != nil {
		return 0, err
	}

	path, err := encodeCoords(run.Path)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}
	geometry, err := encodeGeometry(run.Geometry)
	if err != nil {
		return 0, fmt.Errorf("save run: %w", err)
	}

	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = s.now()
	}
	createdAt = createdAt.UTC()

	res, err := s.DB.ExecContext(ctx, `
	INSERT INTO route_runs (
		algorithm,
		mode,
		distance_km,
		execution_time_ms,
		path,
		geometry,
		degenerate,
		created_at
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`,
		string(run.Algorithm),
		string(run.Mode),
		run.DistanceKm,
		run.ExecutionTimeMs,
		path,
		geometry,
		run.Degenerate,
		createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("save run: insert route_runs: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("save run: last insert id: %w", err)
	}

	run.ID = id
	run.CreatedAt = createdAt
	return id, nil
}

// ListRuns returns a page of runs, newest first.
func (s *SqliteRouteRunRepository) ListRuns(ctx context.Context, skip, limit int) (_ []domain.RouteRun, err error) {
	defer obs.Time(ctx, "runs.sqlite.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("sqlite route run repository: DB is nil")
	}
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		id,
		algorithm,
		mode,
		distance_km,
		execution_time_ms,
		path,
		geometry,
		degenerate,
		created_at
	FROM route_runs
	ORDER BY id DESC
	LIMIT ? OFFSET ?;
	`, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list runs: query route_runs table: %w", err)
	}
	defer rows.Close()

	runs := make([]domain.RouteRun, 0, limit)
	for rows.Next() {
		var (
			run       domain.RouteRun
			alg, mode string
			path      string
			geometry  sql.NullString
			createdAt string
		)
		if err := rows.Scan(&run.ID, &alg, &mode, &run.DistanceKm, &run.ExecutionTimeMs, &path, &geometry, &run.Degenerate, &createdAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		run.Algorithm = domain.Algorithm(alg)
		run.Mode = domain.Mode(mode)

		if run.Path, err = decodeCoords(path); err != nil {
			return nil, fmt.Errorf("list runs: id=%d: %w", run.ID, err)
		}
		if geometry.Valid {
			if run.Geometry, err = decodeCoords(geometry.String); err != nil {
				return nil, fmt.Errorf("list runs: id=%d: %w", run.ID, err)
			}
		}
		if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("list runs: id=%d: parse created_at: %w", run.ID, err)
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func (s *SqliteRouteRunRepository) CountRuns(ctx context.Context) (n int, err error) {
	defer obs.Time(ctx, "runs.sqlite.CountRuns")(&err)

	if s.DB == nil {
		return 0, errors.New("sqlite route run repository: DB is nil")
	}

	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM route_runs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}
