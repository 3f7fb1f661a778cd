package services

import (
	"fmt"
	"math"
	"strings"

	"hex-coverage-planner/internal/domain"
)

// Metric computes the travel distance between two cell positions.
// Implementations must be pure functions of their arguments.
type Metric interface {
	Name() string
	Distance(a, b domain.Position) float64
}

type euclidean struct{}

func (euclidean) Name() string { return "euclidean" }

func (euclidean) Distance(a, b domain.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

type manhattan struct{}

func (manhattan) Name() string { return "manhattan" }

func (manhattan) Distance(a, b domain.Position) float64 {
	return math.Abs(a.X-b.X) + math.Abs(a.Y-b.Y)
}

var (
	// Euclidean is the planar straight-line metric and the default for route planning.
	// Cells are small relative to Earth curvature, so no geodesic correction is applied.
	Euclidean Metric = euclidean{}
	// Manhattan sums the axis-aligned offsets.
	Manhattan Metric = manhattan{}
)

// MetricByName resolves a configured metric name. An empty name selects Euclidean.
func MetricByName(name string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return Euclidean, nil
	case "manhattan":
		return Manhattan, nil
	default:
		return nil, fmt.Errorf("metric by name: unknown distance metric %q", name)
	}
}
