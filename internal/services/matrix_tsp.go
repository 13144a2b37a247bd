package services

import (
	"fmt"
	"route-optimizer-service/internal/domain"
)

// Visit order computed over a cost matrix.
type MatrixOrderResult struct {
	Order []int
	// Sum of the matrix costs of the legs taken. Legs forced through an
	// unreachable pair contribute nothing, so the total is only a real
	// distance when UnreachableLegs is zero.
	TotalKm         float64
	UnreachableLegs int
}

// Degenerate reports whether some step had no reachable candidate.
func (r MatrixOrderResult) Degenerate() bool { return r.UnreachableLegs > 0 }

// Order matrix indices using greedy nearest-neighbor from start.
//
// Absent or negative entries are never preferred over a finite one. When
// every remaining entry from the current index is unreachable the lowest
// unvisited index is taken and the step is counted in UnreachableLegs.
// Ties go to the lowest index.
func MatrixOrder(m domain.CostMatrix, start int) (MatrixOrderResult, error) {
	n := m.Size()
	if !m.IsSquare() {
		return MatrixOrderResult{}, &domain.InvalidInputError{
			Field:  "matrix",
			Reason: fmt.Sprintf("cost matrix with %d rows is not square", n),
		}
	}

	if n <= 1 {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		return MatrixOrderResult{Order: order}, nil
	}

	if start < 0 || start >= n {
		return MatrixOrderResult{}, &domain.InvalidInputError{
			Field:  "start_index",
			Reason: fmt.Sprintf("%d out of range [0, %d)", start, n),
		}
	}

	visited := make([]bool, n)
	order := make([]int, 0, n)
	order = append(order, start)
	visited[start] = true

	res := MatrixOrderResult{}
	current := start

	for len(order) < n {
		best := -1
		bestKm := 0.0
		fallback := -1

		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if fallback == -1 {
				fallback = j
			}
			c, ok := m.Cost(current, j)
			if !ok {
				continue
			}
			if best == -1 || c < bestKm {
				best = j
				bestKm = c
			}
		}

		if best == -1 {
			// Every remaining pair is unreachable; keep going so the
			// caller still gets a full permutation.
			best = fallback
			res.UnreachableLegs++
		} else {
			res.TotalKm += bestKm
		}

		visited[best] = true
		order = append(order, best)
		current = best
	}

	res.Order = order
	return res, nil
}
