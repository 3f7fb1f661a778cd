package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/platform/metrics"
	"hex-coverage-planner/internal/platform/obs"
	"hex-coverage-planner/internal/ports"
)

type PlanFleetRequest struct {
	Options PlanOptions
	// Workers bounds concurrent vehicle planning. Zero means one worker per vehicle.
	Workers int
	// VehicleTimeout abandons planning for a single vehicle. Zero disables it.
	VehicleTimeout time.Duration
	// SkipFailed records per-vehicle failures instead of aborting the run.
	SkipFailed bool
}

// FleetResult is the outcome of one planning run.
// Plans are ordered by vehicle id; Failures is only populated when failed vehicles are skipped.
type FleetResult struct {
	RunID    string
	Plans    []*domain.RoutePlan
	Failures map[domain.VehicleID]error
}

// PlanFleet loads the current assignment and plans a route for every vehicle.
func PlanFleet(
	ctx context.Context,
	req PlanFleetRequest,
	source ports.AssignmentSource,
	cache ports.RouteCache,
) (*FleetResult, error) {
	assignment, err := source.ListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: list assignments: %w", err)
	}

	return PlanAssignment(ctx, req, assignment, cache)
}

// PlanAssignment plans a route for every vehicle of assignment.
//
// Vehicles share no state, so they are planned concurrently. With SkipFailed unset,
// the first failure cancels the remaining vehicles and is returned. The cache is
// optional; cache errors are logged and never fail a vehicle.
func PlanAssignment(
	ctx context.Context,
	req PlanFleetRequest,
	assignment domain.Assignment,
	cache ports.RouteCache,
) (_ *FleetResult, err error) {
	if err := req.Options.Route.validate(); err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}

	runID := uuid.NewString()
	ctx = obs.WithRunID(ctx, runID)
	defer obs.Time(ctx, "plan.fleet")(&err)

	vehicles := assignment.Vehicles()
	plans := make([]*domain.RoutePlan, len(vehicles))
	failures := make([]error, len(vehicles))

	g, gctx := errgroup.WithContext(ctx)
	if req.Workers > 0 {
		g.SetLimit(req.Workers)
	}

	for i, vid := range vehicles {
		cells := assignment[vid]
		g.Go(func() error {
			plan, err := planVehicleWithCache(gctx, req, vid, cells, cache)
			if err != nil {
				err = fmt.Errorf("plan fleet: vehicle %d: %w", vid, err)
				if req.SkipFailed {
					metrics.VehiclePlans.WithLabelValues("skipped").Inc()
					failures[i] = err
					return nil
				}
				metrics.VehiclePlans.WithLabelValues("failed").Inc()
				return err
			}

			plan.RunID = runID
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &FleetResult{
		RunID:    runID,
		Plans:    make([]*domain.RoutePlan, 0, len(vehicles)),
		Failures: map[domain.VehicleID]error{},
	}
	for i, vid := range vehicles {
		if failures[i] != nil {
			res.Failures[vid] = failures[i]
			continue
		}
		res.Plans = append(res.Plans, plans[i])
	}

	return res, nil
}

func planVehicleWithCache(
	ctx context.Context,
	req PlanFleetRequest,
	vid domain.VehicleID,
	cells []domain.Cell,
	cache ports.RouteCache,
) (*domain.RoutePlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var key string
	if cache != nil && len(cells) > 0 {
		k, err := Fingerprint(cells, req.Options)
		if err != nil {
			return nil, err
		}
		key = k

		cached, ok, err := cache.Get(ctx, key)
		switch {
		case err != nil:
			metrics.RouteCacheLookups.WithLabelValues("error").Inc()
			log.Printf("vehicle=%d op=route.cache.get err=%v", vid, err)
		case ok:
			metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
			metrics.VehiclePlans.WithLabelValues("cached").Inc()
			cached.VehicleID = vid
			return cached, nil
		default:
			metrics.RouteCacheLookups.WithLabelValues("miss").Inc()
		}
	}

	plan, err := planVehicleWithTimeout(ctx, req.VehicleTimeout, vid, cells, req.Options)
	if err != nil {
		return nil, err
	}
	metrics.VehiclePlans.WithLabelValues("ok").Inc()
	metrics.RouteCells.Observe(float64(len(plan.Route)))

	if key != "" {
		if err := cache.Put(ctx, key, plan); err != nil {
			log.Printf("vehicle=%d op=route.cache.put err=%v", vid, err)
		}
	}

	return plan, nil
}

type vehiclePlanResult struct {
	plan *domain.RoutePlan
	err  error
}

// planVehicleWithTimeout runs PlanVehicle and gives up waiting once ctx is done.
// Route construction itself is bounded, so an abandoned computation finishes on its own.
func planVehicleWithTimeout(
	ctx context.Context,
	timeout time.Duration,
	vid domain.VehicleID,
	cells []domain.Cell,
	opts PlanOptions,
) (*domain.RoutePlan, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan vehiclePlanResult, 1)
	go func() {
		start := time.Now()
		plan, err := PlanVehicle(vid, cells, opts)
		metrics.VehiclePlanDuration.Observe(time.Since(start).Seconds())
		done <- vehiclePlanResult{plan: plan, err: err}
	}()

	select {
	case r := <-done:
		return r.plan, r.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("abandoned after %s: %w", timeout, ctx.Err())
		}
		return nil, ctx.Err()
	}
}
