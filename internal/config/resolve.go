package config

import (
	"fmt"
	"math/rand"

	"hex-coverage-planner/internal/hexgrid"
	"hex-coverage-planner/internal/services"
)

// PlanOptions resolves the configured names into planner options.
func (p Planner) PlanOptions() (services.PlanOptions, error) {
	metric, err := services.MetricByName(p.Metric)
	if err != nil {
		return services.PlanOptions{}, fmt.Errorf("planner config: %w", err)
	}
	start, err := services.StartPolicyByName(p.StartPolicy)
	if err != nil {
		return services.PlanOptions{}, fmt.Errorf("planner config: %w", err)
	}
	tieBreak, err := services.TieBreakByName(p.TieBreak)
	if err != nil {
		return services.PlanOptions{}, fmt.Errorf("planner config: %w", err)
	}

	opts := services.PlanOptions{
		Metric: metric,
		Route: services.RouteOptions{
			Start:          start,
			PriorityWeight: p.PriorityWeight,
			TieBreak:       tieBreak,
		},
	}
	if err := opts.Validate(); err != nil {
		return services.PlanOptions{}, fmt.Errorf("planner config: %w", err)
	}
	return opts, nil
}

// FleetRequest builds a fleet planning request; failed vehicles are skipped when skipFailed is set.
func (p Planner) FleetRequest(skipFailed bool) (services.PlanFleetRequest, error) {
	opts, err := p.PlanOptions()
	if err != nil {
		return services.PlanFleetRequest{}, err
	}
	if p.Workers < 0 {
		return services.PlanFleetRequest{}, fmt.Errorf("planner config: workers must be non-negative, got %d", p.Workers)
	}
	return services.PlanFleetRequest{
		Options:        opts,
		Workers:        p.Workers,
		VehicleTimeout: p.VehicleTimeout,
		SkipFailed:     skipFailed,
	}, nil
}

// HexGrid converts the grid settings for the generator.
func (g Grid) HexGrid() hexgrid.Config {
	return hexgrid.Config{
		Radius:      g.Radius,
		Size:        g.HexSize,
		Clusters:    g.Clusters,
		MaxPriority: g.MaxPriority,
	}
}

// Generate builds the configured coverage map. The same seed always yields the same map.
func (g Grid) Generate() (*hexgrid.Grid, error) {
	return hexgrid.NewGrid(g.HexGrid(), rand.New(rand.NewSource(g.Seed)))
}
