package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"time"
)

type OptimizeRequest struct {
	Stops     []domain.Coordinate
	Algorithm domain.Algorithm
	Mode      domain.Mode
}

// RouteOptimizer picks a cost source for a request and stitches the solver
// output into a SolverResult. It holds no per-request state and is safe for
// concurrent use.
type RouteOptimizer struct {
	// Provider backs matrix mode. It may be nil when only straight-line
	// mode is served.
	Provider ports.RoutingCostProvider
}

func NewRouteOptimizer(provider ports.RoutingCostProvider) *RouteOptimizer {
	return &RouteOptimizer{Provider: provider}
}

// Optimize validates the request and computes a visit order.
//
// Straight mode runs the selected heuristic on great-circle distances.
// Matrix mode asks the provider for a road cost matrix, orders the stops
// over it, then asks the provider for geometry; the provider's distance
// replaces the matrix sum. Provider failures are returned as
// *domain.ServiceUnavailableError and are not retried here.
func (o *RouteOptimizer) Optimize(ctx context.Context, req OptimizeRequest) (_ *domain.SolverResult, err error) {
	start := time.Now()
	defer func() {
		obs.OptimizeTotal.WithLabelValues(string(req.Algorithm), string(req.Mode), outcome(err)).Inc()
		obs.OptimizeDuration.WithLabelValues(string(req.Algorithm), string(req.Mode)).Observe(time.Since(start).Seconds())
	}()

	if err := validate(req); err != nil {
		return nil, err
	}

	if len(req.Stops) < 2 {
		res := trivialResult(req.Stops)
		return &res, nil
	}

	switch req.Mode {
	case domain.ModeStraight:
		res := solveStraight(req.Algorithm, req.Stops)
		return &res, nil
	case domain.ModeMatrix:
		return o.solveMatrix(ctx, req.Stops)
	}

	// validate rejects anything else.
	return nil, &domain.InvalidInputError{Field: "mode", Reason: fmt.Sprintf("unsupported mode %q", req.Mode)}
}

func validate(req OptimizeRequest) error {
	switch req.Algorithm {
	case domain.AlgorithmNearestNeighbor, domain.AlgorithmLookaheadGreedy:
	default:
		return &domain.InvalidInputError{Field: "algorithm", Reason: fmt.Sprintf("unsupported algorithm %q", req.Algorithm)}
	}

	switch req.Mode {
	case domain.ModeStraight, domain.ModeMatrix:
	default:
		return &domain.InvalidInputError{Field: "mode", Reason: fmt.Sprintf("unsupported mode %q", req.Mode)}
	}

	for i, c := range req.Stops {
		if err := c.Validate(); err != nil {
			return &domain.InvalidInputError{Field: fmt.Sprintf("locations[%d]", i), Reason: err.Error()}
		}
	}

	return nil
}

func solveStraight(alg domain.Algorithm, stops []domain.Coordinate) domain.SolverResult {
	if alg == domain.AlgorithmLookaheadGreedy {
		return LookaheadGreedyRoute(stops)
	}
	return NearestNeighborRoute(stops)
}

func (o *RouteOptimizer) solveMatrix(ctx context.Context, stops []domain.Coordinate) (*domain.SolverResult, error) {
	if o.Provider == nil {
		return nil, &domain.ServiceUnavailableError{
			Stage: domain.StageMatrix,
			Err:   errors.New("no routing provider configured"),
		}
	}

	matrix, err := o.fetchMatrix(ctx, stops)
	if err != nil {
		return nil, &domain.ServiceUnavailableError{Stage: domain.StageMatrix, Err: err}
	}

	ordered, err := MatrixOrder(matrix, 0)
	if err != nil {
		return nil, &domain.ServiceUnavailableError{Stage: domain.StageMatrix, Err: err}
	}

	path := domain.PathFromOrder(stops, ordered.Order)

	route, err := o.fetchGeometry(ctx, path.Coordinates())
	if err != nil {
		return nil, &domain.ServiceUnavailableError{Stage: domain.StageGeometry, Err: err}
	}

	return &domain.SolverResult{
		Path:            path,
		TotalKm:         route.DistanceKm,
		Geometry:        route.Geometry,
		Degenerate:      ordered.Degenerate(),
		UnreachableLegs: ordered.UnreachableLegs,
	}, nil
}

func (o *RouteOptimizer) fetchMatrix(ctx context.Context, stops []domain.Coordinate) (_ domain.CostMatrix, err error) {
	defer obs.Time(ctx, "optimize.CostMatrix")(&err)
	defer func() { obs.ProviderCalls.WithLabelValues(domain.StageMatrix, outcome(err)).Inc() }()

	m, err := o.Provider.CostMatrix(ctx, stops)
	if err != nil {
		return nil, err
	}

	if m.Size() != len(stops) || !m.IsSquare() {
		return nil, fmt.Errorf("malformed cost matrix: got %d rows for %d stops", m.Size(), len(stops))
	}

	return m, nil
}

func (o *RouteOptimizer) fetchGeometry(ctx context.Context, ordered []domain.Coordinate) (_ ports.RouteGeometry, err error) {
	defer obs.Time(ctx, "optimize.Geometry")(&err)
	defer func() { obs.ProviderCalls.WithLabelValues(domain.StageGeometry, outcome(err)).Inc() }()

	route, err := o.Provider.Geometry(ctx, ordered)
	if err != nil {
		return ports.RouteGeometry{}, err
	}

	if route.DistanceKm < 0 || math.IsNaN(route.DistanceKm) || math.IsInf(route.DistanceKm, 0) {
		return ports.RouteGeometry{}, fmt.Errorf("malformed geometry: distance %v", route.DistanceKm)
	}

	return route, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrServiceUnavailable):
		return "unavailable"
	}
	return "error"
}
