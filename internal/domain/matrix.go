package domain

import "math"

// CostMatrix is an N×N table of directional travel costs in kilometers,
// indexed [from][to]. A nil entry means the pair is unreachable.
type CostMatrix [][]*float64

// Size returns N.
func (m CostMatrix) Size() int { return len(m) }

// Cost returns the usable cost from i to j. Absent, negative and
// non-finite entries report ok=false.
func (m CostMatrix) Cost(i, j int) (cost float64, ok bool) {
	if i < 0 || i >= len(m) || j < 0 || j >= len(m[i]) {
		return 0, false
	}
	p := m[i][j]
	if p == nil {
		return 0, false
	}
	v := *p
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// IsSquare reports whether every row has exactly Size() columns.
func (m CostMatrix) IsSquare() bool {
	for _, row := range m {
		if len(row) != len(m) {
			return false
		}
	}
	return true
}

// NewCostMatrix converts a dense table into a CostMatrix where every
// entry is present.
func NewCostMatrix(rows [][]float64) CostMatrix {
	out := make(CostMatrix, len(rows))
	for i, row := range rows {
		out[i] = make([]*float64, len(row))
		for j := range row {
			v := row[j]
			out[i][j] = &v
		}
	}
	return out
}
