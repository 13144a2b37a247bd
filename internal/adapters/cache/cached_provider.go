package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/obs"
	"route-optimizer-service/internal/ports"
	"strconv"
	"strings"
	"time"
)

const (
	matrixKeyPrefix   = "route:matrix:"
	geometryKeyPrefix = "route:geometry:"
)

// CachedCostProvider wraps a RoutingCostProvider with a read-through cache.
//
// Cache failures never fail a request: read errors fall through to the
// wrapped provider and write errors are only logged. Provider errors are
// returned unchanged and never stored.
type CachedCostProvider struct {
	Inner ports.RoutingCostProvider
	Cache ports.RouteCache
	TTL   time.Duration
}

var _ ports.RoutingCostProvider = (*CachedCostProvider)(nil)

func NewCachedCostProvider(inner ports.RoutingCostProvider, cache ports.RouteCache, ttl time.Duration) *CachedCostProvider {
	return &CachedCostProvider{Inner: inner, Cache: cache, TTL: ttl}
}

func (c *CachedCostProvider) CostMatrix(ctx context.Context, stops []domain.Coordinate) (domain.CostMatrix, error) {
	key := matrixKeyPrefix + coordinateKey(stops)

	if raw, ok := c.lookup(ctx, key); ok {
		var m domain.CostMatrix
		if err := json.Unmarshal(raw, &m); err == nil && m.Size() == len(stops) && m.IsSquare() {
			return m, nil
		}
		log.Printf("req_id=%s op=cache.CostMatrix key=%s msg=\"discarding malformed entry\"", obs.RequestID(ctx), key)
	}

	m, err := c.Inner.CostMatrix(ctx, stops)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(m); err == nil {
		c.store(ctx, key, raw)
	}

	return m, nil
}

type cachedGeometry struct {
	DistanceKm float64      `json:"distance_km"`
	Geometry   [][2]float64 `json:"geometry"`
}

func (c *CachedCostProvider) Geometry(ctx context.Context, ordered []domain.Coordinate) (ports.RouteGeometry, error) {
	key := geometryKeyPrefix + coordinateKey(ordered)

	if raw, ok := c.lookup(ctx, key); ok {
		var cg cachedGeometry
		if err := json.Unmarshal(raw, &cg); err == nil {
			out := ports.RouteGeometry{
				DistanceKm: cg.DistanceKm,
				Geometry:   make([]domain.Coordinate, len(cg.Geometry)),
			}
			for i, p := range cg.Geometry {
				out.Geometry[i] = domain.Coordinate{Lat: p[0], Lng: p[1]}
			}
			return out, nil
		}
		log.Printf("req_id=%s op=cache.Geometry key=%s msg=\"discarding malformed entry\"", obs.RequestID(ctx), key)
	}

	route, err := c.Inner.Geometry(ctx, ordered)
	if err != nil {
		return ports.RouteGeometry{}, err
	}

	cg := cachedGeometry{
		DistanceKm: route.DistanceKm,
		Geometry:   make([][2]float64, len(route.Geometry)),
	}
	for i, p := range route.Geometry {
		cg.Geometry[i] = [2]float64{p.Lat, p.Lng}
	}
	if raw, err := json.Marshal(cg); err == nil {
		c.store(ctx, key, raw)
	}

	return route, nil
}

func (c *CachedCostProvider) lookup(ctx context.Context, key string) ([]byte, bool) {
	raw, ok, err := c.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("req_id=%s op=cache.Get key=%s err=%v", obs.RequestID(ctx), key, err)
		return nil, false
	}
	return raw, ok
}

func (c *CachedCostProvider) store(ctx context.Context, key string, raw []byte) {
	if err := c.Cache.Put(ctx, key, raw, c.TTL); err != nil {
		log.Printf("req_id=%s op=cache.Put key=%s err=%v", obs.RequestID(ctx), key, err)
	}
}

// coordinateKey hashes the ordered coordinate list. Order matters: the
// matrix rows and the route both depend on it.
func coordinateKey(stops []domain.Coordinate) string {
	var b strings.Builder
	for i, s := range stops {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(strconv.FormatFloat(s.Lat, 'f', 6, 64))
		b.WriteByte(',')
		b.WriteString(strconv.FormatFloat(s.Lng, 'f', 6, 64))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// ttlExpiry returns the unix expiry for a TTL, or 0 for entries that never expire.
func ttlExpiry(now time.Time, ttl time.Duration) int64 {
	if ttl <= 0 {
		return 0
	}
	return now.Add(ttl).Unix()
}

func requireKey(op, key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%s: key must not be empty", op)
	}
	return nil
}
