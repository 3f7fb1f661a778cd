package domain

import "math"

// Identifier of a coverage cell. Ordering is used for deterministic tie-breaks.
type CellID int

// Planar cartesian coordinates shared by all cells of a planning run.
type Position struct {
	X float64
	Y float64
}

// Report whether both coordinates are finite numbers.
func (p Position) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Represents a single coverage unit (hex).
// A Cell is immutable input to route planning; planners only read and reorder references to it.
// Higher Priority means more urgent.
type Cell struct {
	ID       CellID
	Position Position
	Priority float64
}
