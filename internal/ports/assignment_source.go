package ports

import (
	"context"

	"hex-coverage-planner/internal/domain"
)

// Port: a boundary for retrieving the vehicle-to-cell assignment of a planning run.
type AssignmentSource interface {
	// Return the cells assigned to each vehicle.
	ListAssignments(ctx context.Context) (domain.Assignment, error)
}

// Port: a boundary for retrieving the coverage cells known to the system.
type CellSource interface {
	// Return all cells ordered by id.
	ListCells(ctx context.Context) ([]domain.Cell, error)
}
