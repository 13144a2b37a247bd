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

// SQLRouteRunRepository is the Postgres implementation of RouteRunRepository.
type SQLRouteRunRepository struct {
	DB *sql.DB
}

var _ ports.RouteRunRepository = (*SQLRouteRunRepository)(nil)

func NewSQLRouteRunRepository(db *sql.DB) *SQLRouteRunRepository {
	return &SQLRouteRunRepository{DB: db}
}

func (s *SQLRouteRunRepository) SaveRun(ctx context.Context, run *domain.RouteRun) (_ int64, err error) {
	defer obs.Time(ctx, "runs.sql.SaveRun")(&err)

	if s.DB == nil {
		return 0, errors.New("route run repository: db is nil")
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

	var createdAt sql.NullTime
	if !run.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: run.CreatedAt, Valid: true}
	}

	var (
		id      int64
		created time.Time
	)
	err = s.DB.QueryRowContext(ctx, `
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
	VALUES ($1, $2, $3, $4, $5::jsonb, $6::jsonb, $7, COALESCE($8, now()))
	RETURNING id, created_at;
	`,
		string(run.Algorithm),
		string(run.Mode),
		run.DistanceKm,
		run.ExecutionTimeMs,
		path,
		geometry,
		run.Degenerate,
		createdAt,
	).Scan(&id, &created)
	if err != nil {
		return 0, fmt.Errorf("save run: insert route_runs: %w", err)
	}

	run.ID = id
	run.CreatedAt = created
	return id, nil
}

func (s *SQLRouteRunRepository) ListRuns(ctx context.Context, skip, limit int) (_ []domain.RouteRun, err error) {
	defer obs.Time(ctx, "runs.sql.ListRuns")(&err)

	if s.DB == nil {
		return nil, errors.New("route run repository: db is nil")
	}
	if err := validatePage(skip, limit); err != nil {
		return nil, err
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, algorithm, mode, distance_km, execution_time_ms,
		path::text, geometry::text, degenerate, created_at
	FROM route_runs
	ORDER BY created_at DESC, id DESC
	LIMIT $1 OFFSET $2;
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
			geometry  *string
		)
		if err := rows.Scan(&run.ID, &alg, &mode, &run.DistanceKm, &run.ExecutionTimeMs, &path, &geometry, &run.Degenerate, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("list runs: scan row: %w", err)
		}

		run.Algorithm = domain.Algorithm(alg)
		run.Mode = domain.Mode(mode)

		if run.Path, err = decodeCoords(path); err != nil {
			return nil, fmt.Errorf("list runs: id=%d: %w", run.ID, err)
		}
		if run.Geometry, err = decodeGeometry(geometry); err != nil {
			return nil, fmt.Errorf("list runs: id=%d: %w", run.ID, err)
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: row iteration: %w", err)
	}

	return runs, nil
}

func (s *SQLRouteRunRepository) CountRuns(ctx context.Context) (n int, err error) {
	defer obs.Time(ctx, "runs.sql.CountRuns")(&err)

	if s.DB == nil {
		return 0, errors.New("route run repository: db is nil")
	}

	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM route_runs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// PruneBefore deletes runs created before cutoff and expired cache rows.
// It returns the number of runs removed.
func (s *SQLRouteRunRepository) PruneBefore(ctx context.Context, cutoff time.Time) (_ int64, err error) {
	defer obs.Time(ctx, "runs.sql.PruneBefore")(&err)

	if s.DB == nil {
		return 0, errors.New("route run repository: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM route_runs WHERE created_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM route_cache WHERE expires_at != 0 AND expires_at <= $1;`, time.Now().Unix()); err != nil {
		return 0, fmt.Errorf("prune runs: sweep route_cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs: rows affected: %w", err)
	}
	return n, nil
}
