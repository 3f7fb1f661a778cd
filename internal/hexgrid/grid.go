package hexgrid

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"hex-coverage-planner/internal/domain"
)

// Axial is a hex coordinate pair.
type Axial struct {
	Q int
	R int
}

// ToCart returns the planar centre of the hex for the given circumradius.
func (a Axial) ToCart(size float64) domain.Position {
	return domain.Position{
		X: size * (3.0 / 2.0 * float64(a.Q)),
		Y: size * (math.Sqrt(3) * (float64(a.R) + float64(a.Q)/2)),
	}
}

// Generate returns every hex within radius steps of the origin, ordered by q then r.
func Generate(radius int) []Axial {
	if radius < 0 {
		return nil
	}
	hexes := make([]Axial, 0, 3*radius*(radius+1)+1)
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			hexes = append(hexes, Axial{Q: q, R: r})
		}
	}
	return hexes
}

// Hex is one generated map cell.
type Hex struct {
	ID       domain.CellID
	Axial    Axial
	Position domain.Position
	Priority int
}

// Config describes the map to generate.
type Config struct {
	Radius      int
	Size        float64
	Clusters    int
	MaxPriority int
}

// DefaultConfig matches the demo map: radius 4, unit hexes, three urgent regions, priorities 1..5.
func DefaultConfig() Config {
	return Config{Radius: 4, Size: 1, Clusters: 3, MaxPriority: 5}
}

func (c Config) validate() error {
	if c.Radius < 0 {
		return fmt.Errorf("hexgrid config: radius must be non-negative, got %d", c.Radius)
	}
	if !(c.Size > 0) || math.IsInf(c.Size, 0) {
		return fmt.Errorf("hexgrid config: size must be positive and finite, got %v", c.Size)
	}
	if c.MaxPriority < 1 {
		return fmt.Errorf("hexgrid config: max priority must be at least 1, got %d", c.MaxPriority)
	}
	return nil
}

// Grid is a generated coverage map. Hex ids are their index in generation order.
type Grid struct {
	Config Config
	Hexes  []Hex
}

// NewGrid generates the map described by cfg, drawing priorities from rng.
func NewGrid(cfg Config, rng *rand.Rand) (*Grid, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, errors.New("new grid: rng must be non-nil")
	}

	axials := Generate(cfg.Radius)
	priorities, err := ClusteredPriorities(rng, axials, cfg.Clusters, cfg.MaxPriority)
	if err != nil {
		return nil, fmt.Errorf("new grid: %w", err)
	}

	g := &Grid{Config: cfg, Hexes: make([]Hex, 0, len(axials))}
	for i, a := range axials {
		g.Hexes = append(g.Hexes, Hex{
			ID:       domain.CellID(i),
			Axial:    a,
			Position: a.ToCart(cfg.Size),
			Priority: priorities[a],
		})
	}
	return g, nil
}

// Cells converts the grid into planning input.
func (g *Grid) Cells() []domain.Cell {
	cells := make([]domain.Cell, 0, len(g.Hexes))
	for _, h := range g.Hexes {
		cells = append(cells, domain.Cell{ID: h.ID, Position: h.Position, Priority: float64(h.Priority)})
	}
	return cells
}
