package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/ports"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type routeResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Routes  []struct {
		Distance float64           `json:"distance"`
		Geometry *geojson.Geometry `json:"geometry"`
	} `json:"routes"`
}

// fetchRoute retrieves the driving route through ordered stops with a full
// GeoJSON overview.
func (o *OSRMProvider) fetchRoute(ctx context.Context, ordered []domain.Coordinate) (ports.RouteGeometry, error) {
	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=full&geometries=geojson",
		o.baseURL, o.profile, encodeCoordinates(ordered),
	)

	resp, err := o.getWithRetry(ctx, endpoint)
	if err != nil {
		return ports.RouteGeometry{}, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var rr routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return ports.RouteGeometry{}, fmt.Errorf("decode route response: %w", err)
	}

	if rr.Code != "Ok" {
		return ports.RouteGeometry{}, fmt.Errorf("route service returned code=%q message=%q", rr.Code, rr.Message)
	}
	if len(rr.Routes) == 0 {
		return ports.RouteGeometry{}, fmt.Errorf("route service returned no routes")
	}

	route := rr.Routes[0]
	if route.Distance < 0 || math.IsNaN(route.Distance) {
		return ports.RouteGeometry{}, fmt.Errorf("route service returned invalid distance %v", route.Distance)
	}

	var line orb.LineString
	if route.Geometry != nil {
		ls, ok := route.Geometry.Geometry().(orb.LineString)
		if !ok {
			return ports.RouteGeometry{}, fmt.Errorf("route geometry is %s, want LineString", route.Geometry.Type)
		}
		line = ls
	}

	// GeoJSON points are [lon, lat].
	geometry := make([]domain.Coordinate, 0, len(line))
	for _, p := range line {
		geometry = append(geometry, domain.Coordinate{Lat: p.Lat(), Lng: p.Lon()})
	}

	return ports.RouteGeometry{
		Geometry:   geometry,
		DistanceKm: route.Distance / 1000.0,
	}, nil
}
