package cache

import (
	"context"
	"database/sql"
	"errors"
	"route-optimizer-service/internal/adapters/repositories"
	"route-optimizer-service/internal/adapters/routing"
	"route-optimizer-service/internal/domain"
	"route-optimizer-service/internal/platform/db"
	"route-optimizer-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var stops = []domain.Coordinate{
	{Lat: 40.7128, Lng: -74.0060},
	{Lat: 41.8781, Lng: -87.6298},
}

func newRedisCache(t *testing.T) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedisRouteCache(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func newSqliteCache(t *testing.T) *SqliteRouteCache {
	t.Helper()

	conn, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, repositories.InitSchema(context.Background(), conn))

	return NewSqliteRouteCache(conn)
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newRedisCache(t)

	_, ok, err := c.Get(ctx, "route:matrix:missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "route:matrix:abc", []byte(`[[0]]`), time.Minute))

	got, ok, err := c.Get(ctx, "route:matrix:abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[[0]]`, string(got))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "route:matrix:abc")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, c.Put(ctx, " ", []byte("x"), time.Minute))
}

func TestNewRedisRouteCacheRejectsBadURL(t *testing.T) {
	_, err := NewRedisRouteCache(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestSqliteRouteCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	require.NoError(t, c.Put(ctx, "k1", []byte("v1"), time.Hour))
	require.NoError(t, c.Put(ctx, "forever", []byte("v2"), 0))

	got, ok, err := c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", string(got))

	now = now.Add(2 * time.Hour)

	_, ok, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	assert.True(t, ok)

	// Overwrite refreshes the value and expiry.
	require.NoError(t, c.Put(ctx, "k1", []byte("v3"), time.Hour))
	got, ok, err = c.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v3", string(got))
}

func TestSqliteRouteCacheNilDB(t *testing.T) {
	c := NewSqliteRouteCache((*sql.DB)(nil))
	_, _, err := c.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestCachedProviderServesRepeatsFromCache(t *testing.T) {
	ctx := context.Background()
	rc, _ := newRedisCache(t)

	inner := &routing.StaticCostProvider{
		Matrix: domain.CostMatrix{{km(0), nil}, {km(1.5), km(0)}},
		Route: ports.RouteGeometry{
			DistanceKm: 1290.4,
			Geometry:   []domain.Coordinate{stops[0], {Lat: 41.1, Lng: -80}, stops[1]},
		},
	}
	p := NewCachedCostProvider(inner, rc, time.Hour)

	for i := 0; i < 3; i++ {
		m, err := p.CostMatrix(ctx, stops)
		require.NoError(t, err)
		assert.Equal(t, inner.Matrix, m)

		route, err := p.Geometry(ctx, stops)
		require.NoError(t, err)
		assert.Equal(t, inner.Route, route)
	}

	assert.Len(t, inner.MatrixCalls, 1)
	assert.Len(t, inner.GeometryCalls, 1)

	// A different visit order is a different key.
	reversed := []domain.Coordinate{stops[1], stops[0]}
	_, err := p.Geometry(ctx, reversed)
	require.NoError(t, err)
	assert.Len(t, inner.GeometryCalls, 2)
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	ctx := context.Background()
	c := newSqliteCache(t)

	inner := &routing.StaticCostProvider{MatrixErr: errors.New("osrm down")}
	p := NewCachedCostProvider(inner, c, time.Hour)

	_, err := p.CostMatrix(ctx, stops)
	require.Error(t, err)

	inner.MatrixErr = nil
	inner.Matrix = domain.NewCostMatrix([][]float64{{0, 2}, {2, 0}})

	m, err := p.CostMatrix(ctx, stops)
	require.NoError(t, err)
	assert.Equal(t, inner.Matrix, m)
	assert.Len(t, inner.MatrixCalls, 2)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection reset")
}

func (brokenCache) Put(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection reset")
}

func TestCachedProviderFallsThroughOnCacheErrors(t *testing.T) {
	inner := &routing.StaticCostProvider{
		Matrix: domain.NewCostMatrix([][]float64{{0, 2}, {2, 0}}),
		Route:  ports.RouteGeometry{DistanceKm: 4},
	}
	p := NewCachedCostProvider(inner, brokenCache{}, time.Hour)

	_, err := p.CostMatrix(context.Background(), stops)
	require.NoError(t, err)
	route, err := p.Geometry(context.Background(), stops)
	require.NoError(t, err)
	assert.Equal(t, 4.0, route.DistanceKm)
}

func TestCachedProviderDiscardsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	rc, mr := newRedisCache(t)

	require.NoError(t, mr.Set(matrixKeyPrefix+coordinateKey(stops), `[[0]]`))

	inner := &routing.StaticCostProvider{Matrix: domain.NewCostMatrix([][]float64{{0, 2}, {2, 0}})}
	p := NewCachedCostProvider(inner, rc, time.Hour)

	m, err := p.CostMatrix(ctx, stops)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
	assert.Len(t, inner.MatrixCalls, 1)
}

func TestCoordinateKeyIsOrderSensitive(t *testing.T) {
	a := coordinateKey(stops)
	b := coordinateKey([]domain.Coordinate{stops[1], stops[0]})
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 64)
	assert.Equal(t, a, coordinateKey(append([]domain.Coordinate(nil), stops...)))
}

func km(v float64) *float64 { return &v }

