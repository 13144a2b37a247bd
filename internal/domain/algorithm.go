package domain

import "strings"

// Algorithm selects the straight-line ordering heuristic.
type Algorithm string

const (
	AlgorithmNearestNeighbor Algorithm = "nearest_neighbor"
	AlgorithmLookaheadGreedy Algorithm = "lookahead_greedy"
)

// Mode selects the cost source.
type Mode string

const (
	ModeStraight Mode = "straight"
	ModeMatrix   Mode = "matrix"
)

// ParseAlgorithm maps a user supplied name onto a known Algorithm.
// An empty name selects nearest-neighbor.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "nearest_neighbor", "nearest-neighbor", "nn", "dijkstra":
		return AlgorithmNearestNeighbor, nil
	case "lookahead_greedy", "lookahead-greedy", "astar", "a*":
		return AlgorithmLookaheadGreedy, nil
	}
	return "", &InvalidInputError{Field: "algorithm", Reason: "unknown algorithm " + quote(name)}
}

// ParseMode maps a user supplied name onto a known Mode.
// An empty name selects straight-line mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "straight":
		return ModeStraight, nil
	case "matrix", "matrix-backed", "drive", "road":
		return ModeMatrix, nil
	}
	return "", &InvalidInputError{Field: "mode", Reason: "unknown mode " + quote(name)}
}

func quote(s string) string { return `"` + s + `"` }
