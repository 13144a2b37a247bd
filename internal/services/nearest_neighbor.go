package services

import (
	"math"
	"route-optimizer-service/internal/domain"
)

// Order stops using a greedy nearest-neighbor algorithm.
//
// The route starts at stops[0] and always moves to the closest unvisited
// stop by great-circle distance. Ties go to the lowest input index.
// It does not attempt global route optimization.
func NearestNeighborRoute(stops []domain.Coordinate) domain.SolverResult {
	n := len(stops)
	if n <= 1 {
		return trivialResult(stops)
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := 0
	visited[current] = true
	order = append(order, current)
	totalKm := 0.0

	for len(order) < n {
		best := -1
		bestKm := math.MaxFloat64

		// Select next stop by minimum distance (greedy step).
		// Strict comparison keeps the first index on ties.
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			d := Haversine(stops[current], stops[j])
			if best == -1 || d < bestKm {
				best = j
				bestKm = d
			}
		}

		visited[best] = true
		order = append(order, best)
		totalKm += bestKm
		current = best
	}

	return domain.SolverResult{
		Path:    domain.PathFromOrder(stops, order),
		TotalKm: totalKm,
	}
}

// trivialResult covers N <= 1: the input order with zero cost.
func trivialResult(stops []domain.Coordinate) domain.SolverResult {
	order := make([]int, len(stops))
	for i := range order {
		order[i] = i
	}
	return domain.SolverResult{
		Path:    domain.PathFromOrder(stops, order),
		TotalKm: 0,
	}
}
