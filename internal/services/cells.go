package services

import (
	"math"
	"slices"

	"hex-coverage-planner/internal/domain"
)

// uniqueCells validates cells and returns them deduplicated and sorted by id.
//
// Repeated ids are accepted only when they describe the same cell; a second
// position (or, when checkPriority is set, a second priority) for one id is
// an ambiguous identity and is rejected.
func uniqueCells(cells []domain.Cell, checkPriority bool) ([]domain.Cell, error) {
	byID := make(map[domain.CellID]domain.Cell, len(cells))
	out := make([]domain.Cell, 0, len(cells))

	for _, c := range cells {
		if !c.Position.Finite() {
			return nil, &domain.InvalidInputError{CellID: c.ID, Reason: "coordinates must be finite"}
		}
		if checkPriority && (math.IsNaN(c.Priority) || math.IsInf(c.Priority, 0)) {
			return nil, &domain.InvalidInputError{CellID: c.ID, Reason: "priority must be finite"}
		}

		prev, ok := byID[c.ID]
		if !ok {
			byID[c.ID] = c
			out = append(out, c)
			continue
		}
		if prev.Position != c.Position {
			return nil, &domain.InvalidInputError{CellID: c.ID, Reason: "id appears with different positions"}
		}
		if checkPriority && prev.Priority != c.Priority {
			return nil, &domain.InvalidInputError{CellID: c.ID, Reason: "id appears with different priorities"}
		}
	}

	slices.SortFunc(out, func(a, b domain.Cell) int {
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	return out, nil
}
