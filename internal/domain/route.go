package domain

import "time"

// A single stop in a route. Identity is the position in the request's
// location list, so two stops sharing a coordinate are still distinct.
type Stop struct {
	Index    int
	Location Coordinate
}

// Ordered visit sequence over the request's stops.
type Path []Stop

// Indices returns the input positions in visit order.
func (p Path) Indices() []int {
	out := make([]int, len(p))
	for i, s := range p {
		out[i] = s.Index
	}
	return out
}

// Coordinates returns the stop locations in visit order.
func (p Path) Coordinates() []Coordinate {
	out := make([]Coordinate, len(p))
	for i, s := range p {
		out[i] = s.Location
	}
	return out
}

// PathFromOrder builds a Path by picking coords in the given index order.
func PathFromOrder(coords []Coordinate, order []int) Path {
	path := make(Path, 0, len(order))
	for _, idx := range order {
		path = append(path, Stop{Index: idx, Location: coords[idx]})
	}
	return path
}

// Represents the outcome of one route optimization.
// TotalKm is the sum of consecutive leg costs, or the routing backend's
// authoritative distance in matrix mode. Geometry is only set in matrix mode.
//
// Degenerate is set when the matrix solver had to step onto an unreachable
// leg; TotalKm then under-reports the real cost and must not be trusted.
type SolverResult struct {
	Path            Path
	TotalKm         float64
	Geometry        []Coordinate
	Degenerate      bool
	UnreachableLegs int
}

// A persisted record of a completed optimization.
type RouteRun struct {
	ID              int64
	Algorithm       Algorithm
	Mode            Mode
	DistanceKm      float64
	ExecutionTimeMs float64
	Path            []Coordinate
	Geometry        []Coordinate
	Degenerate      bool
	CreatedAt       time.Time
}
