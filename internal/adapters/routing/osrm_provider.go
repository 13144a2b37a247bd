package routing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// OSRMOptions configures an OSRMProvider. Zero values fall back to defaults.
type OSRMOptions struct {
	BaseURL         string
	Profile         string
	RatePerSec      float64
	MatrixTimeout   time.Duration
	GeometryTimeout time.Duration
	HTTPClient      *http.Client
}

// OSRMProvider implements RoutingCostProvider using an OSRM server.
//
// It coordinates:
//   - /table requests for the N×N distance matrix
//   - /route requests for GeoJSON geometry and total distance
//   - Client-side rate limiting (the public demo server throttles hard)
//   - Retry with backoff for transient failures
//
// The provider is safe for concurrent use.
type OSRMProvider struct {
	session         *http.Client
	baseURL         string
	profile         string
	limiter         *rate.Limiter
	matrixTimeout   time.Duration
	geometryTimeout time.Duration
	backoff         time.Duration
}

var _ ports.RoutingCostProvider = (*OSRMProvider)(nil)

func NewOSRMProvider(opts OSRMOptions) (*OSRMProvider, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("OSRM base url is empty")
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("OSRM base url %q is not an absolute url", base)
	}

	profile := opts.Profile
	if profile == "" {
		profile = "driving"
	}

	matrixTimeout := opts.MatrixTimeout
	if matrixTimeout <= 0 {
		matrixTimeout = 30 * time.Second
	}
	geometryTimeout := opts.GeometryTimeout
	if geometryTimeout <= 0 {
		geometryTimeout = 60 * time.Second
	}

	client := opts.HTTPClient
	if client == nil {
		// Per-call deadlines come from the context; this is only a backstop.
		client = &http.Client{Timeout: max(matrixTimeout, geometryTimeout)}
	}

	var limiter *rate.Limiter
	if opts.RatePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSec), 1)
	}

	return &OSRMProvider{
		session:         client,
		baseURL:         base,
		profile:         profile,
		limiter:         limiter,
		matrixTimeout:   matrixTimeout,
		geometryTimeout: geometryTimeout,
		backoff:         200 * time.Millisecond,
	}, nil
}

// CostMatrix fetches driving distances between every pair of stops.
// Unroutable pairs come back as nil entries.
func (o *OSRMProvider) CostMatrix(
	ctx context.Context,
	stops []domain.Coordinate,
) (_ domain.CostMatrix, err error) {
	defer obs.Time(ctx, "osrm.CostMatrix")(&err)

	if len(stops) < 2 {
		return nil, fmt.Errorf("osrm cost matrix: need at least 2 stops, got %d", len(stops))
	}

	ctx, cancel := context.WithTimeout(ctx, o.matrixTimeout)
	defer cancel()

	return o.fetchTable(ctx, stops)
}

// Geometry fetches the road path through ordered stops.
func (o *OSRMProvider) Geometry(
	ctx context.Context,
	ordered []domain.Coordinate,
) (_ ports.RouteGeometry, err error) {
	defer obs.Time(ctx, "osrm.Geometry")(&err)

	if len(ordered) < 2 {
		return ports.RouteGeometry{}, fmt.Errorf("osrm geometry: need at least 2 stops, got %d", len(ordered))
	}

	ctx, cancel := context.WithTimeout(ctx, o.geometryTimeout)
	defer cancel()

	return o.fetchRoute(ctx, ordered)
}

// encodeCoordinates renders stops as OSRM's "lon,lat;lon,lat" path segment.
func encodeCoordinates(stops []domain.Coordinate) string {
	parts := make([]string, len(stops))
	for i, s := range stops {
		parts[i] = fmt.Sprintf("%.6f,%.6f", s.Lng, s.Lat)
	}
	return strings.Join(parts, ";")
}
