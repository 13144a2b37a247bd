package services

import (
	"math/rand"
	"route-optimizer-service/internal/domain"
	"testing"
)

var (
	newYork    = domain.Coordinate{Lat: 40.7128, Lng: -74.0060}
	losAngeles = domain.Coordinate{Lat: 34.0522, Lng: -118.2437}
	chicago    = domain.Coordinate{Lat: 41.8781, Lng: -87.6298}
)

// randomStops returns n reproducible coordinates spread over the globe.
func randomStops(seed int64, n int) []domain.Coordinate {
	r := rand.New(rand.NewSource(seed))
	out := make([]domain.Coordinate, n)
	for i := range out {
		out[i] = domain.Coordinate{
			Lat: r.Float64()*180 - 90,
			Lng: r.Float64()*360 - 180,
		}
	}
	return out
}

// assertPermutation fails unless order holds every index in [0,n) exactly once.
func assertPermutation(t *testing.T, order []int, n int) {
	t.Helper()

	if len(order) != n {
		t.Fatalf("order length = %d, want %d", len(order), n)
	}
	seen := make([]bool, n)
	for _, idx := range order {
		if idx < 0 || idx >= n {
			t.Fatalf("index %d out of range [0,%d)", idx, n)
		}
		if seen[idx] {
			t.Fatalf("index %d visited twice in %v", idx, order)
		}
		seen[idx] = true
	}
}
