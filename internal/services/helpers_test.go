package services

import (
	"math/rand"

	"hex-coverage-planner/internal/domain"
)

// squareCells is the four-corner layout with one urgent corner:
// P1(0,0,1) P2(10,0,5) P3(10,10,1) P4(0,10,1).
func squareCells() []domain.Cell {
	return []domain.Cell{
		{ID: 1, Position: domain.Position{X: 0, Y: 0}, Priority: 1},
		{ID: 2, Position: domain.Position{X: 10, Y: 0}, Priority: 5},
		{ID: 3, Position: domain.Position{X: 10, Y: 10}, Priority: 1},
		{ID: 4, Position: domain.Position{X: 0, Y: 10}, Priority: 1},
	}
}

func randomCells(rng *rand.Rand, n int) []domain.Cell {
	ids := rng.Perm(n)
	cells := make([]domain.Cell, n)
	for i := range cells {
		cells[i] = domain.Cell{
			ID:       domain.CellID(ids[i] * 3),
			Position: domain.Position{X: rng.Float64() * 100, Y: rng.Float64() * 100},
			Priority: float64(1 + rng.Intn(5)),
		}
	}
	return cells
}

// countingMetric wraps Euclidean and counts evaluations per ordered pair.
type countingMetric struct {
	calls map[[2]domain.Position]int
	total int
}

func newCountingMetric() *countingMetric {
	return &countingMetric{calls: map[[2]domain.Position]int{}}
}

func (m *countingMetric) Name() string { return "counting" }

func (m *countingMetric) Distance(a, b domain.Position) float64 {
	m.total++
	m.calls[[2]domain.Position{a, b}]++
	return Euclidean.Distance(a, b)
}

// mapLookup is a hand-built distance table; pairs are stored in both directions.
type mapLookup struct {
	d       map[[2]domain.CellID]float64
	lookups int
}

func newMapLookup() *mapLookup {
	return &mapLookup{d: map[[2]domain.CellID]float64{}}
}

func (l *mapLookup) set(a, b domain.CellID, d float64) *mapLookup {
	l.d[[2]domain.CellID{a, b}] = d
	l.d[[2]domain.CellID{b, a}] = d
	return l
}

func (l *mapLookup) Distance(a, b domain.CellID) (float64, bool) {
	l.lookups++
	if a == b {
		return 0, true
	}
	d, ok := l.d[[2]domain.CellID{a, b}]
	return d, ok
}
