package dto

import "time"

type Location struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type OptimizeRequest struct {
	Locations []Location `json:"locations"`
	Algorithm string     `json:"algorithm"`
	Mode      string     `json:"mode"`
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type OptimizeResponse struct {
	Path            []Point `json:"path"`
	Order           []int   `json:"order"`
	DistanceKm      float64 `json:"distance_km"`
	ExecutionTimeMs float64 `json:"execution_time_ms"`
	Geometry        []Point `json:"geometry,omitempty"`
	Degenerate      bool    `json:"degenerate"`
	UnreachableLegs int     `json:"unreachable_legs"`
}

type RouteRunResponse struct {
	ID              int64     `json:"id"`
	Algorithm       string    `json:"algorithm"`
	Mode            string    `json:"mode"`
	DistanceKm      float64   `json:"distance_km"`
	ExecutionTimeMs float64   `json:"execution_time_ms"`
	Path            []Point   `json:"path"`
	Geometry        []Point   `json:"geometry,omitempty"`
	Degenerate      bool      `json:"degenerate"`
	CreatedAt       time.Time `json:"created_at"`
}

type HistoryResponse struct {
	Total  int                `json:"total"`
	Routes []RouteRunResponse `json:"routes"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
