package hexgrid

import (
	"errors"
	"math"

	"github.com/dhconnelly/rtreego"

	"hex-coverage-planner/internal/domain"
)

const (
	dimensions  = 2
	minChildren = 4
	maxChildren = 16
	tolerance   = 1e-9
)

// spatialCell wraps a Cell for R-Tree indexing
type spatialCell struct {
	cell domain.Cell
	rect *rtreego.Rect
}

func (s *spatialCell) Bounds() *rtreego.Rect {
	return s.rect
}

// Index locates the hex containing a planar point.
// Hex tiles are the Voronoi cells of their centres, so the containing hex is the
// one with the nearest centre, provided the point lies inside that centre's hexagon.
type Index struct {
	tree *rtreego.Rtree
	size float64
}

// NewIndex indexes cell centres for hexes of the given circumradius.
func NewIndex(cells []domain.Cell, size float64) (*Index, error) {
	if !(size > 0) {
		return nil, errors.New("new index: size must be positive")
	}

	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for _, c := range cells {
		if !c.Position.Finite() {
			return nil, &domain.InvalidInputError{CellID: c.ID, Reason: "coordinates must be finite"}
		}
		p := rtreego.Point{c.Position.X, c.Position.Y}
		tree.Insert(&spatialCell{cell: c, rect: p.ToRect(tolerance)})
	}

	return &Index{tree: tree, size: size}, nil
}

// Size returns the number of indexed cells.
func (ix *Index) Size() int {
	return ix.tree.Size()
}

// Locate returns the cell whose hex contains p. Equidistant centres resolve to the smallest id.
func (ix *Index) Locate(p domain.Position) (domain.Cell, bool) {
	if !p.Finite() || ix.tree.Size() == 0 {
		return domain.Cell{}, false
	}

	// A point on a shared edge or vertex touches up to three hexes.
	candidates := ix.tree.NearestNeighbors(3, rtreego.Point{p.X, p.Y})

	var (
		best  domain.Cell
		bestD = math.Inf(1)
		found bool
	)
	for _, s := range candidates {
		sc, ok := s.(*spatialCell)
		if !ok {
			continue
		}
		d := math.Hypot(sc.cell.Position.X-p.X, sc.cell.Position.Y-p.Y)
		if !found || d < bestD || (d == bestD && sc.cell.ID < best.ID) {
			best, bestD, found = sc.cell, d, true
		}
	}

	if !found || !insideHex(p.X-best.Position.X, p.Y-best.Position.Y, ix.size) {
		return domain.Cell{}, false
	}
	return best, true
}

// insideHex reports whether the offset (dx, dy) from a centre falls inside the
// flat-top hexagon of circumradius size, boundary included.
func insideHex(dx, dy, size float64) bool {
	dx, dy = math.Abs(dx), math.Abs(dy)
	slack := size * 1e-9
	return dx <= size+slack &&
		dy <= math.Sqrt(3)/2*size+slack &&
		math.Sqrt(3)*dx+dy <= math.Sqrt(3)*size+slack
}
