package services

import (
	"fmt"
	"strings"

	"hex-coverage-planner/internal/domain"
)

// StartPolicy selects the first cell of a route.
// Start must return the id of one of the given cells and must not depend on their order.
type StartPolicy interface {
	Name() string
	Start(cells []domain.Cell) domain.CellID
}

type maxPriorityStart struct {
	preferLargestID bool
}

func (s maxPriorityStart) Name() string {
	if s.preferLargestID {
		return "max-priority-largest-id"
	}
	return "max-priority"
}

func (s maxPriorityStart) Start(cells []domain.Cell) domain.CellID {
	best := cells[0]
	for _, c := range cells[1:] {
		switch {
		case c.Priority > best.Priority:
			best = c
		case c.Priority == best.Priority:
			if s.preferLargestID && c.ID > best.ID || !s.preferLargestID && c.ID < best.ID {
				best = c
			}
		}
	}
	return best.ID
}

type fixedStart struct {
	id domain.CellID
}

func (s fixedStart) Name() string { return fmt.Sprintf("fixed:%d", s.id) }

func (s fixedStart) Start([]domain.Cell) domain.CellID { return s.id }

var (
	// MaxPriorityStart starts at the most urgent cell, breaking ties by the smallest id.
	MaxPriorityStart StartPolicy = maxPriorityStart{}
	// MaxPriorityLargestIDStart starts at the most urgent cell, breaking ties by the largest id.
	MaxPriorityLargestIDStart StartPolicy = maxPriorityStart{preferLargestID: true}
)

// FixedStart always starts at the given cell. Planning fails if the cell is not assigned.
func FixedStart(id domain.CellID) StartPolicy {
	return fixedStart{id: id}
}

// StartPolicyByName resolves a configured start policy. An empty name selects MaxPriorityStart.
func StartPolicyByName(name string) (StartPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "max-priority":
		return MaxPriorityStart, nil
	case "max-priority-largest-id":
		return MaxPriorityLargestIDStart, nil
	default:
		return nil, fmt.Errorf("start policy by name: unknown start policy %q", name)
	}
}
