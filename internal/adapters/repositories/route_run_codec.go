package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"route-optimizer-service/internal/domain"
)

// Coordinates are stored as [[lat,lng],...] JSON arrays.
func encodeCoords(coords []domain.Coordinate) (string, error) {
	pairs := make([][2]float64, len(coords))
	for i, c := range coords {
		pairs[i] = [2]float64{c.Lat, c.Lng}
	}
	b, err := json.Marshal(pairs)
	if err != nil {
		return "", fmt.Errorf("encode coordinates: %w", err)
	}
	return string(b), nil
}

func decodeCoords(raw string) ([]domain.Coordinate, error) {
	var pairs [][2]float64
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, fmt.Errorf("decode coordinates: %w", err)
	}
	out := make([]domain.Coordinate, len(pairs))
	for i, p := range pairs {
		out[i] = domain.Coordinate{Lat: p[0], Lng: p[1]}
	}
	return out, nil
}

// encodeGeometry keeps "no geometry" (straight mode) distinct from an empty line.
func encodeGeometry(coords []domain.Coordinate) (*string, error) {
	if coords == nil {
		return nil, nil
	}
	s, err := encodeCoords(coords)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func decodeGeometry(raw *string) ([]domain.Coordinate, error) {
	if raw == nil {
		return nil, nil
	}
	return decodeCoords(*raw)
}

func validateRun(run *domain.RouteRun) error {
	if run == nil {
		return errors.New("save run: run is nil")
	}
	if run.Algorithm == "" || run.Mode == "" {
		return errors.New("save run: algorithm and mode are required")
	}
	return nil
}

func validatePage(skip, limit int) error {
	if skip < 0 {
		return fmt.Errorf("list runs: skip must be >= 0, got %d", skip)
	}
	if limit <= 0 {
		return fmt.Errorf("list runs: limit must be > 0, got %d", limit)
	}
	return nil
}
