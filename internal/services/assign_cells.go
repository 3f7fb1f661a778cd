package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/platform/obs"
	"hex-coverage-planner/internal/ports"
)

// AssignCellsRoundRobin distributes cells across vehicles by id.
//
// Cell c goes to vehicle c.ID mod vehicleCount, which spreads neighbouring ids
// (and therefore priority clusters) over the fleet without solving a partitioning
// problem. Vehicles that receive no cells are omitted. Cells within a vehicle are
// ordered by id. This is an upstream collaborator; route planning does not depend on it.
func AssignCellsRoundRobin(cells []domain.Cell, vehicleCount int) (domain.Assignment, error) {
	if vehicleCount < 1 {
		return nil, errors.New("assign cells: vehicle count must be at least 1")
	}

	out := make(domain.Assignment, vehicleCount)
	for _, c := range cells {
		v := int(c.ID) % vehicleCount
		if v < 0 {
			v += vehicleCount
		}
		vid := domain.VehicleID(v)
		out[vid] = append(out[vid], c)
	}

	for vid := range out {
		slices.SortStableFunc(out[vid], func(a, b domain.Cell) int {
			return cmp.Compare(a.ID, b.ID)
		})
	}

	return out, nil
}

// AssignFleet assigns every stored cell to a fleet of vehicleCount vehicles and persists the result.
func AssignFleet(ctx context.Context, store ports.CoverageStore, vehicleCount int) (_ domain.Assignment, err error) {
	defer obs.Time(ctx, "assign.fleet")(&err)

	cells, err := store.ListCells(ctx)
	if err != nil {
		return nil, fmt.Errorf("assign fleet: list cells: %w", err)
	}

	assignment, err := AssignCellsRoundRobin(cells, vehicleCount)
	if err != nil {
		return nil, fmt.Errorf("assign fleet: %w", err)
	}

	if err := store.ReplaceAssignments(ctx, vehicleCount, assignment); err != nil {
		return nil, fmt.Errorf("assign fleet: store assignments: %w", err)
	}

	return assignment, nil
}
