package ports

import (
	"context"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/hexgrid"
)

// Port: persistence for the coverage map, the fleet and the current assignment.
type CoverageStore interface {
	CellSource
	AssignmentSource

	// Replace the coverage map. Existing vehicles and assignments are dropped.
	SeedGrid(ctx context.Context, hexes []hexgrid.Hex) error
	// Replace the fleet with vehicles 0..vehicleCount-1 and store their assignment.
	ReplaceAssignments(ctx context.Context, vehicleCount int, assignment domain.Assignment) error
}
