package routing

import (
	"context"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"
	"sync"
)

// StaticCostProvider serves canned matrices and geometries. It records
// every call so tests can assert on the request sequence.
type StaticCostProvider struct {
	Matrix      domain.CostMatrix
	MatrixErr   error
	Route       ports.RouteGeometry
	GeometryErr error

	mu            sync.Mutex
	MatrixCalls   [][]domain.Coordinate
	GeometryCalls [][]domain.Coordinate
}

var _ ports.RoutingCostProvider = (*StaticCostProvider)(nil)

func (p *StaticCostProvider) CostMatrix(ctx context.Context, stops []domain.Coordinate) (domain.CostMatrix, error) {
	p.mu.Lock()
	p.MatrixCalls = append(p.MatrixCalls, append([]domain.Coordinate(nil), stops...))
	p.mu.Unlock()

	if p.MatrixErr != nil {
		return nil, p.MatrixErr
	}
	return p.Matrix, nil
}

func (p *StaticCostProvider) Geometry(ctx context.Context, ordered []domain.Coordinate) (ports.RouteGeometry, error) {
	p.mu.Lock()
	p.GeometryCalls = append(p.GeometryCalls, append([]domain.Coordinate(nil), ordered...))
	p.mu.Unlock()

	if p.GeometryErr != nil {
		return ports.RouteGeometry{}, p.GeometryErr
	}
	return p.Route, nil
}
