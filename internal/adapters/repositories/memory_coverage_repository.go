package repositories

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"hex-coverage-planner/internal/domain"
	"hex-coverage-planner/internal/hexgrid"
)

// MemoryCoverageRepository is an in-memory CoverageStore used when no DATABASE_URL is set.
type MemoryCoverageRepository struct {
	mu       sync.RWMutex
	hexes    map[domain.CellID]hexgrid.Hex
	vehicles int
	assigned map[domain.CellID]domain.VehicleID // hex id -> vehicle
}

func NewMemoryCoverageRepository() *MemoryCoverageRepository {
	return &MemoryCoverageRepository{
		hexes:    map[domain.CellID]hexgrid.Hex{},
		assigned: map[domain.CellID]domain.VehicleID{},
	}
}

func (m *MemoryCoverageRepository) SeedGrid(_ context.Context, hexes []hexgrid.Hex) error {
	next := make(map[domain.CellID]hexgrid.Hex, len(hexes))
	for _, h := range hexes {
		if !h.Position.Finite() {
			return &domain.InvalidInputError{CellID: h.ID, Reason: "coordinates must be finite"}
		}
		if _, ok := next[h.ID]; ok {
			return fmt.Errorf("seed grid: duplicate hex id=%d", h.ID)
		}
		next[h.ID] = h
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.hexes = next
	m.vehicles = 0
	m.assigned = map[domain.CellID]domain.VehicleID{}
	return nil
}

func (m *MemoryCoverageRepository) ReplaceAssignments(_ context.Context, vehicleCount int, assignment domain.Assignment) error {
	if err := checkAssignment(vehicleCount, assignment); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	next := make(map[domain.CellID]domain.VehicleID, assignment.CellCount())
	for vid, cells := range assignment {
		for _, c := range cells {
			if _, ok := m.hexes[c.ID]; !ok {
				return fmt.Errorf("replace assignments: unknown hex id=%d", c.ID)
			}
			next[c.ID] = vid
		}
	}

	m.vehicles = vehicleCount
	m.assigned = next
	return nil
}

func (m *MemoryCoverageRepository) ListCells(_ context.Context) ([]domain.Cell, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cells := make([]domain.Cell, 0, len(m.hexes))
	for _, h := range m.hexes {
		cells = append(cells, hexCell(h))
	}
	slices.SortFunc(cells, func(a, b domain.Cell) int { return cmp.Compare(a.ID, b.ID) })
	return cells, nil
}

func (m *MemoryCoverageRepository) ListAssignments(_ context.Context) (domain.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := domain.Assignment{}
	for id, vid := range m.assigned {
		out[vid] = append(out[vid], hexCell(m.hexes[id]))
	}
	for vid := range out {
		slices.SortFunc(out[vid], func(a, b domain.Cell) int { return cmp.Compare(a.ID, b.ID) })
	}
	return out, nil
}

// VehicleCount returns the size of the stored fleet.
func (m *MemoryCoverageRepository) VehicleCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vehicles
}

func hexCell(h hexgrid.Hex) domain.Cell {
	return domain.Cell{ID: h.ID, Position: h.Position, Priority: float64(h.Priority)}
}
