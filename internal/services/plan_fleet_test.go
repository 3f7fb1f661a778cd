package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hex-coverage-planner/internal/domain"
)

type stubSource struct {
	assignment domain.Assignment
	err        error
}

func (s stubSource) ListAssignments(context.Context) (domain.Assignment, error) {
	return s.assignment, s.err
}

type memoryCache struct {
	mu    sync.Mutex
	plans map[string]domain.RoutePlan
	gets  int
	hits  int
	err   error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{plans: map[string]domain.RoutePlan{}}
}

func (c *memoryCache) Get(_ context.Context, key string) (*domain.RoutePlan, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	p, ok := c.plans[key]
	if !ok {
		return nil, false, nil
	}
	c.hits++
	return &p, true, nil
}

func (c *memoryCache) Put(_ context.Context, key string, plan *domain.RoutePlan) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.plans[key] = *plan
	return nil
}

func fleetAssignment() domain.Assignment {
	return domain.Assignment{
		2: squareCells(),
		0: {{ID: 10, Position: domain.Position{X: 1, Y: 1}, Priority: 2}},
		1: {
			{ID: 20, Position: domain.Position{X: 0, Y: 0}, Priority: 1},
			{ID: 21, Position: domain.Position{X: 3, Y: 4}, Priority: 3},
		},
	}
}

func TestPlanFleet(t *testing.T) {
	res, err := PlanFleet(context.Background(), PlanFleetRequest{Workers: 2}, stubSource{assignment: fleetAssignment()}, nil)
	require.NoError(t, err)

	require.NotEmpty(t, res.RunID)
	require.Len(t, res.Plans, 3)
	assert.Empty(t, res.Failures)

	for i, p := range res.Plans {
		assert.Equal(t, domain.VehicleID(i), p.VehicleID)
		assert.Equal(t, res.RunID, p.RunID)
	}
	assert.Equal(t, domain.Route{10}, res.Plans[0].Route)
	assert.Equal(t, domain.Route{21, 20}, res.Plans[1].Route)
	assert.Equal(t, 5.0, res.Plans[1].TotalDistance)
	assert.Equal(t, domain.Route{2, 1, 4, 3}, res.Plans[2].Route)
}

func TestPlanFleetSourceError(t *testing.T) {
	boom := errors.New("boom")
	_, err := PlanFleet(context.Background(), PlanFleetRequest{}, stubSource{err: boom}, nil)
	require.ErrorIs(t, err, boom)
}

func TestPlanAssignmentAbortsOnEmptyVehicle(t *testing.T) {
	a := fleetAssignment()
	a[5] = nil

	_, err := PlanAssignment(context.Background(), PlanFleetRequest{}, a, nil)
	var empty *domain.EmptyAssignmentError
	require.ErrorAs(t, err, &empty)
	assert.Contains(t, err.Error(), "vehicle 5")
}

func TestPlanAssignmentSkipsFailedVehicles(t *testing.T) {
	a := fleetAssignment()
	a[5] = nil
	a[6] = []domain.Cell{
		{ID: 1, Position: domain.Position{X: 0, Y: 0}},
		{ID: 1, Position: domain.Position{X: 1, Y: 0}},
	}

	res, err := PlanAssignment(context.Background(), PlanFleetRequest{SkipFailed: true}, a, nil)
	require.NoError(t, err)
	assert.Len(t, res.Plans, 3)
	require.Len(t, res.Failures, 2)

	var empty *domain.EmptyAssignmentError
	assert.ErrorAs(t, res.Failures[5], &empty)
	var invalid *domain.InvalidInputError
	assert.ErrorAs(t, res.Failures[6], &invalid)
}

func TestPlanAssignmentVehicleTimeout(t *testing.T) {
	// Large enough that building the matrix cannot finish within the timeout.
	cells := randomCells(rand.New(rand.NewSource(3)), 2000)
	a := domain.Assignment{0: cells}

	t.Run("abort", func(t *testing.T) {
		req := PlanFleetRequest{VehicleTimeout: time.Nanosecond}
		_, err := PlanAssignment(context.Background(), req, a, nil)
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Contains(t, err.Error(), "vehicle 0")
		assert.Contains(t, err.Error(), "abandoned after 1ns")
	})

	t.Run("skip failed", func(t *testing.T) {
		req := PlanFleetRequest{VehicleTimeout: time.Nanosecond, SkipFailed: true}
		res, err := PlanAssignment(context.Background(), req, a, nil)
		require.NoError(t, err)
		assert.Empty(t, res.Plans)
		require.Len(t, res.Failures, 1)
		assert.ErrorIs(t, res.Failures[0], context.DeadlineExceeded)
	})
}

func TestPlanAssignmentUsesCache(t *testing.T) {
	cache := newMemoryCache()
	req := PlanFleetRequest{Workers: 1}

	first, err := PlanAssignment(context.Background(), req, fleetAssignment(), cache)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.gets)
	assert.Zero(t, cache.hits)

	second, err := PlanAssignment(context.Background(), req, fleetAssignment(), cache)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.hits)

	require.Len(t, second.Plans, 3)
	assert.NotEqual(t, first.RunID, second.RunID)
	for i := range first.Plans {
		assert.Equal(t, first.Plans[i].Route, second.Plans[i].Route)
		assert.Equal(t, second.RunID, second.Plans[i].RunID)
	}
}

func TestPlanAssignmentIgnoresCacheErrors(t *testing.T) {
	cache := newMemoryCache()
	cache.err = errors.New("cache down")

	res, err := PlanAssignment(context.Background(), PlanFleetRequest{}, fleetAssignment(), cache)
	require.NoError(t, err)
	assert.Len(t, res.Plans, 3)
}

func TestPlanAssignmentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := PlanAssignment(ctx, PlanFleetRequest{}, fleetAssignment(), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlanAssignmentRejectsBadOptions(t *testing.T) {
	req := PlanFleetRequest{Options: PlanOptions{Route: RouteOptions{PriorityWeight: -2}}}
	_, err := PlanAssignment(context.Background(), req, fleetAssignment(), nil)
	require.Error(t, err)
}
