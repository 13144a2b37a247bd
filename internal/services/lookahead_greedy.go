package services

import (
	"math"
	"route-optimizer-service/internal/domain"
)

// Order stops using a greedy construction with one step of lookahead.
//
// Each candidate is scored f = g + h, where g is the distance from the
// current stop and h is the distance from the candidate to its nearest
// other unvisited stop (0 when the candidate is the last one left). The
// lowest f wins, ties going to the lowest input index. Only g is added to
// the route total.
//
// The h term discourages stepping to a stop that leaves an outlier
// stranded for last. There is no backtracking and no optimality guarantee.
func LookaheadGreedyRoute(stops []domain.Coordinate) domain.SolverResult {
	n := len(stops)
	if n <= 1 {
		return trivialResult(stops)
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)

	current := 0
	visited[current] = true
	order = append(order, current)
	remaining := n - 1
	totalKm := 0.0

	for remaining > 0 {
		best := -1
		bestF := math.MaxFloat64
		bestG := 0.0

		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			g := Haversine(stops[current], stops[j])
			h := 0.0
			if remaining > 1 {
				h = nearestUnvisited(stops, visited, j)
			}

			f := g + h
			if best == -1 || f < bestF {
				best = j
				bestF = f
				bestG = g
			}
		}

		visited[best] = true
		order = append(order, best)
		totalKm += bestG
		current = best
		remaining--
	}

	return domain.SolverResult{
		Path:    domain.PathFromOrder(stops, order),
		TotalKm: totalKm,
	}
}

// nearestUnvisited returns the distance from stops[from] to the closest
// unvisited stop other than from itself.
func nearestUnvisited(stops []domain.Coordinate, visited []bool, from int) float64 {
	minKm := math.MaxFloat64
	for k := range stops {
		if k == from || visited[k] {
			continue
		}
		if d := Haversine(stops[from], stops[k]); d < minKm {
			minKm = d
		}
	}
	return minKm
}
