package ports

import (
	"context"
	"route-optimizer-service/internal/domain"
)

// Road geometry and authoritative distance for an ordered list of stops.
type RouteGeometry struct {
	Geometry   []domain.Coordinate
	DistanceKm float64
}

// Contract for a road-network routing backend.
type RoutingCostProvider interface {
	// Return the N×N directional cost matrix in kilometers. Requires at least two stops.
	CostMatrix(ctx context.Context, stops []domain.Coordinate) (domain.CostMatrix, error)
	// Return the road path and total distance for stops in visit order. Requires at least two stops.
	Geometry(ctx context.Context, ordered []domain.Coordinate) (RouteGeometry, error)
}
