package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestCoordinateValidate(t *testing.T) {
	ok := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 90, Lng: 180},
		{Lat: -90, Lng: -180},
		{Lat: 40.7128, Lng: -74.0060},
	}
	for _, c := range ok {
		if err := c.Validate(); err != nil {
			t.Errorf("Validate(%v) = %v, want nil", c, err)
		}
	}

	bad := []Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.Inf(1)},
	}
	for _, c := range bad {
		if err := c.Validate(); err == nil {
			t.Errorf("Validate(%v) = nil, want error", c)
		}
	}
}

func TestCoordsToListIsLonLat(t *testing.T) {
	got := Coordinate{Lat: 1.5, Lng: -2.5}.CoordsToList()
	if len(got) != 2 || got[0] != -2.5 || got[1] != 1.5 {
		t.Fatalf("CoordsToList = %v, want [-2.5 1.5]", got)
	}
}

func TestCostMatrixCost(t *testing.T) {
	neg, nan := -1.0, math.NaN()
	m := NewCostMatrix([][]float64{{0, 2}, {3, 0}})
	m[1][1] = nil
	m[0][0] = &neg

	if v, ok := m.Cost(0, 1); !ok || v != 2 {
		t.Fatalf("Cost(0,1) = %v,%v want 2,true", v, ok)
	}
	if _, ok := m.Cost(1, 1); ok {
		t.Fatal("nil entry should be unreachable")
	}
	if _, ok := m.Cost(0, 0); ok {
		t.Fatal("negative entry should be unreachable")
	}
	m[1][0] = &nan
	if _, ok := m.Cost(1, 0); ok {
		t.Fatal("NaN entry should be unreachable")
	}
	if _, ok := m.Cost(2, 0); ok {
		t.Fatal("out of range should be unreachable")
	}
	if !m.IsSquare() || m.Size() != 2 {
		t.Fatalf("expected square 2x2 matrix")
	}
	if (CostMatrix{{nil, nil}, {nil}}).IsSquare() {
		t.Fatal("ragged matrix reported square")
	}
}

func TestPathFromOrder(t *testing.T) {
	coords := []Coordinate{{Lat: 1}, {Lat: 2}, {Lat: 1}}
	p := PathFromOrder(coords, []int{2, 0, 1})

	idx := p.Indices()
	if fmt.Sprint(idx) != "[2 0 1]" {
		t.Fatalf("Indices = %v", idx)
	}
	locs := p.Coordinates()
	if locs[0] != coords[2] || locs[2] != coords[1] {
		t.Fatalf("Coordinates = %v", locs)
	}
}

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"":                 AlgorithmNearestNeighbor,
		"nearest_neighbor": AlgorithmNearestNeighbor,
		"Dijkstra":         AlgorithmNearestNeighbor,
		" nn ":             AlgorithmNearestNeighbor,
		"lookahead_greedy": AlgorithmLookaheadGreedy,
		"astar":            AlgorithmLookaheadGreedy,
		"A*":               AlgorithmLookaheadGreedy,
	}
	for in, want := range cases {
		got, err := ParseAlgorithm(in)
		if err != nil || got != want {
			t.Errorf("ParseAlgorithm(%q) = %q,%v want %q", in, got, err, want)
		}
	}

	_, err := ParseAlgorithm("tsp_matrix")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"":         ModeStraight,
		"straight": ModeStraight,
		"matrix":   ModeMatrix,
		"ROAD":     ModeMatrix,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %q,%v want %q", in, got, err, want)
		}
	}

	_, err := ParseMode("air")
	var iie *InvalidInputError
	if !errors.As(err, &iie) || iie.Field != "mode" {
		t.Fatalf("expected InvalidInputError on mode, got %v", err)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	sue := fmt.Errorf("optimize: %w", &ServiceUnavailableError{Stage: StageGeometry, Err: inner})

	if !errors.Is(sue, ErrServiceUnavailable) {
		t.Fatal("wrapped ServiceUnavailableError should match ErrServiceUnavailable")
	}
	if errors.Is(sue, ErrInvalidInput) {
		t.Fatal("ServiceUnavailableError must not match ErrInvalidInput")
	}
	if !errors.Is(sue, inner) {
		t.Fatal("cause should be reachable through Unwrap")
	}

	iie := &InvalidInputError{Field: "locations[0]", Reason: "bad"}
	if !errors.Is(iie, ErrInvalidInput) || errors.Is(iie, ErrServiceUnavailable) {
		t.Fatal("InvalidInputError matched the wrong sentinel")
	}
}
