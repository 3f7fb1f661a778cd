package services

import (
	"fmt"

	"hex-coverage-planner/internal/domain"
)

// PlanOptions selects the distance metric and route construction rules for one planning call.
type PlanOptions struct {
	// Metric defaults to Euclidean when nil.
	Metric Metric
	Route  RouteOptions
}

func (o PlanOptions) metric() Metric {
	if o.Metric == nil {
		return Euclidean
	}
	return o.Metric
}

// Validate reports option values that would make every planning call fail.
func (o PlanOptions) Validate() error {
	return o.Route.validate()
}

// Plan computes the visitation order for one vehicle's cells.
//
// It builds a fresh distance matrix for the cells and runs BuildRoute over it.
// Plan reads no shared state, so callers may plan many vehicles concurrently.
func Plan(cells []domain.Cell, opts PlanOptions) (domain.Route, error) {
	route, _, err := plan(cells, opts)
	return route, err
}

func plan(cells []domain.Cell, opts PlanOptions) (domain.Route, *DistanceMatrix, error) {
	if len(cells) == 0 {
		return nil, nil, &domain.EmptyAssignmentError{}
	}

	matrix, err := NewDistanceMatrix(cells, opts.metric())
	if err != nil {
		return nil, nil, fmt.Errorf("plan route: build distance matrix: %w", err)
	}

	route, err := BuildRoute(cells, matrix, opts.Route)
	if err != nil {
		return nil, nil, fmt.Errorf("plan route: build route: %w", err)
	}

	return route, matrix, nil
}

// Create a RoutePlan for the cells assigned to one vehicle.
// The plan carries per-stop leg distances and the total travelled distance.
func PlanVehicle(vehicleID domain.VehicleID, cells []domain.Cell, opts PlanOptions) (*domain.RoutePlan, error) {
	if len(cells) == 0 {
		return nil, &domain.EmptyAssignmentError{VehicleID: &vehicleID}
	}

	route, matrix, err := plan(cells, opts)
	if err != nil {
		return nil, fmt.Errorf("plan vehicle %d: %w", vehicleID, err)
	}

	byID := make(map[domain.CellID]domain.Cell, len(cells))
	for _, c := range cells {
		byID[c.ID] = c
	}

	stops := make([]domain.RouteStop, 0, len(route))
	total := 0.0
	for i, id := range route {
		leg := 0.0
		if i > 0 {
			// The matrix was built from these cells, so every pair is present.
			leg, _ = matrix.Distance(route[i-1], id)
		}
		total += leg

		c := byID[id]
		stops = append(stops, domain.RouteStop{
			Seq:         i + 1,
			CellID:      id,
			Position:    c.Position,
			Priority:    c.Priority,
			LegDistance: leg,
		})
	}

	return &domain.RoutePlan{
		VehicleID:     vehicleID,
		Route:         route,
		Stops:         stops,
		TotalDistance: total,
	}, nil
}
