package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Port: a boundary for persisting completed optimization runs.
type RouteRunRepository interface {
	// Store a run and return its assigned id.
	SaveRun(ctx context.Context, run *domain.RouteRun) (int64, error)
	// List runs newest first.
	ListRuns(ctx context.Context, skip, limit int) ([]domain.RouteRun, error)
	// Count all stored runs.
	CountRuns(ctx context.Context) (int, error)
}
