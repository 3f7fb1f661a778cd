package services

import (
	"hex-coverage-planner/internal/domain"
)

// DistanceLookup is the read side of a distance matrix as consumed by BuildRoute.
type DistanceLookup interface {
	// Return the distance between two cells and whether it is known.
	Distance(a, b domain.CellID) (float64, bool)
}

// pairKey is an unordered cell pair normalized to (smaller id, larger id).
type pairKey struct {
	lo domain.CellID
	hi domain.CellID
}

func newPairKey(a, b domain.CellID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// DistanceMatrix holds pairwise distances between the cells assigned to one vehicle.
//
// Each unordered pair is stored once, so lookups are symmetric by construction.
// A matrix is built for a single planning call and never modified afterwards.
type DistanceMatrix struct {
	cells map[domain.CellID]struct{}
	dist  map[pairKey]float64
}

// NewDistanceMatrix computes the distance of every unordered pair of cells.
//
// Exactly n(n-1)/2 metric evaluations are performed for n distinct cells; a single
// cell yields an empty matrix. A nil metric selects Euclidean.
func NewDistanceMatrix(cells []domain.Cell, metric Metric) (*DistanceMatrix, error) {
	if len(cells) == 0 {
		return nil, &domain.EmptyAssignmentError{}
	}
	if metric == nil {
		metric = Euclidean
	}

	uniq, err := uniqueCells(cells, false)
	if err != nil {
		return nil, err
	}

	n := len(uniq)
	m := &DistanceMatrix{
		cells: make(map[domain.CellID]struct{}, n),
		dist:  make(map[pairKey]float64, n*(n-1)/2),
	}

	for i, a := range uniq {
		m.cells[a.ID] = struct{}{}
		for _, b := range uniq[i+1:] {
			m.dist[newPairKey(a.ID, b.ID)] = metric.Distance(a.Position, b.Position)
		}
	}

	return m, nil
}

// Distance returns the distance between a and b. The distance from a cell to
// itself is zero. The second result is false when either cell is unknown.
func (m *DistanceMatrix) Distance(a, b domain.CellID) (float64, bool) {
	if m == nil {
		return 0, false
	}
	if a == b {
		_, ok := m.cells[a]
		return 0, ok
	}
	d, ok := m.dist[newPairKey(a, b)]
	return d, ok
}

// Len returns the number of distinct cells covered by the matrix.
func (m *DistanceMatrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.cells)
}

// Pairs returns the number of stored unordered pairs.
func (m *DistanceMatrix) Pairs() int {
	if m == nil {
		return 0
	}
	return len(m.dist)
}
