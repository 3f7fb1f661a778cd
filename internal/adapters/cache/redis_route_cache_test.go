package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex-coverage-planner/internal/domain"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewRedisRouteCache(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func samplePlan() *domain.RoutePlan {
	return &domain.RoutePlan{
		RunID:     "run-1",
		VehicleID: 2,
		Route:     domain.Route{2, 1, 4},
		Stops: []domain.RouteStop{
			{Seq: 1, CellID: 2, Position: domain.Position{X: 10, Y: 0}, Priority: 5},
			{Seq: 2, CellID: 1, Position: domain.Position{X: 0, Y: 0}, Priority: 1, LegDistance: 10},
			{Seq: 3, CellID: 4, Position: domain.Position{X: 0, Y: 10}, Priority: 1, LegDistance: 10},
		},
		TotalDistance: 20,
	}
}

func TestRedisRouteCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, c.Ping(ctx))

	_, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "abc", samplePlan()))
	assert.True(t, mr.Exists("route:abc"))

	got, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, samplePlan(), got)
}

func TestRedisRouteCache_Expires(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, time.Minute)

	require.NoError(t, c.Put(ctx, "abc", samplePlan()))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisRouteCache_Errors(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t, 0)

	_, _, err := c.Get(ctx, "")
	assert.Error(t, err)
	assert.Error(t, c.Put(ctx, "", samplePlan()))
	assert.Error(t, c.Put(ctx, "k", nil))

	require.NoError(t, mr.Set("route:bad", "{not json"))
	_, _, err = c.Get(ctx, "bad")
	assert.Error(t, err)

	mr.Close()
	_, _, err = c.Get(ctx, "abc")
	assert.Error(t, err)
}

func TestNewRedisRouteCacheFromURL(t *testing.T) {
	_, err := NewRedisRouteCacheFromURL("not a url", time.Minute)
	assert.Error(t, err)

	mr := miniredis.RunT(t)
	c, err := NewRedisRouteCacheFromURL("redis://"+mr.Addr(), time.Minute)
	require.NoError(t, err)
	defer c.Close()
	assert.NoError(t, c.Ping(context.Background()))
}
