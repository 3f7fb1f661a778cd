package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex-coverage-planner/internal/services"
)

var envKeys = []string{
	"CONFIG_PATH", "PORT", "DATABASE_URL", "REDIS_URL", "ROUTE_CACHE_TTL", "VEHICLE_COUNT",
	"DISTANCE_METRIC", "START_POLICY", "TIE_BREAK", "PRIORITY_WEIGHT", "PLAN_WORKERS",
	"PLAN_VEHICLE_TIMEOUT", "GRID_RADIUS", "HEX_SIZE", "PRIORITY_CLUSTERS", "MAX_PRIORITY",
	"GRID_SEED", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST",
}

// clearEnv isolates Load from the caller's environment and working directory.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
}

func TestGet(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "")
	assert.Equal(t, "fallback", Get("CFG_TEST_KEY", "fallback"))

	t.Setenv("CFG_TEST_KEY", "value")
	assert.Equal(t, "value", Get("CFG_TEST_KEY", "fallback"))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9000"
vehicle_count: 5
route_cache_ttl: 10m
planner:
  metric: manhattan
  priority_weight: 0.6
  vehicle_timeout: 2s
grid:
  radius: 6
  seed: 42
`), 0o600))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("VEHICLE_COUNT", "7")
	t.Setenv("TIE_BREAK", "largest-id")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 7, cfg.VehicleCount)
	assert.Equal(t, 10*time.Minute, cfg.RouteCacheTTL)
	assert.Equal(t, "manhattan", cfg.Planner.Metric)
	assert.Equal(t, "largest-id", cfg.Planner.TieBreak)
	assert.InDelta(t, 0.6, cfg.Planner.PriorityWeight, 1e-12)
	assert.Equal(t, 2*time.Second, cfg.Planner.VehicleTimeout)
	assert.Equal(t, 6, cfg.Grid.Radius)
	assert.Equal(t, int64(42), cfg.Grid.Seed)
	// Untouched keys keep their defaults.
	assert.Equal(t, 5, cfg.Grid.MaxPriority)
	assert.Equal(t, "max-priority", cfg.Planner.StartPolicy)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_PATH", "")
	t.Setenv("PLAN_WORKERS", "many")
	_, err = Load()
	assert.ErrorContains(t, err, "PLAN_WORKERS")
}

func TestPlanner_PlanOptions(t *testing.T) {
	p := Default().Planner
	p.Metric = "manhattan"
	p.TieBreak = "largest-id"
	p.StartPolicy = "max-priority-largest-id"

	opts, err := p.PlanOptions()
	require.NoError(t, err)
	assert.Equal(t, services.Manhattan, opts.Metric)
	assert.Equal(t, services.LargestID, opts.Route.TieBreak)
	assert.Equal(t, services.MaxPriorityLargestIDStart, opts.Route.Start)

	for _, bad := range []Planner{
		{Metric: "chebyshev"},
		{StartPolicy: "random"},
		{TieBreak: "coin-flip"},
		{PriorityWeight: -1},
	} {
		_, err := bad.PlanOptions()
		assert.Error(t, err, "%+v", bad)
	}
}

func TestPlanner_FleetRequest(t *testing.T) {
	p := Default().Planner
	p.VehicleTimeout = time.Second

	req, err := p.FleetRequest(true)
	require.NoError(t, err)
	assert.Equal(t, 4, req.Workers)
	assert.Equal(t, time.Second, req.VehicleTimeout)
	assert.True(t, req.SkipFailed)

	p.Workers = -1
	_, err = p.FleetRequest(false)
	assert.Error(t, err)
}

func TestGrid_HexGrid(t *testing.T) {
	g := Default().Grid.HexGrid()
	assert.Equal(t, 4, g.Radius)
	assert.Equal(t, 1.0, g.Size)
	assert.Equal(t, 3, g.Clusters)
	assert.Equal(t, 5, g.MaxPriority)
}

func TestGrid_GenerateIsSeeded(t *testing.T) {
	g := Default().Grid
	a, err := g.Generate()
	require.NoError(t, err)
	b, err := g.Generate()
	require.NoError(t, err)
	assert.Equal(t, a.Hexes, b.Hexes)
	assert.Len(t, a.Hexes, 61)
}
