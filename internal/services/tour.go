package services

import (
	"errors"
	"fmt"
	"math"

	"hex-coverage-planner/internal/domain"
)

// MaxExactCells bounds the instance size accepted by OptimalPathLength.
// Memory grows as n·2ⁿ.
const MaxExactCells = 16

// ErrTooManyCells is returned when an exact computation is requested for a large instance.
var ErrTooManyCells = errors.New("tour: too many cells for exact search")

// PathLength returns the length of the open path visiting route in order.
func PathLength(route domain.Route, distances DistanceLookup) (float64, error) {
	total := 0.0
	for i := 1; i < len(route); i++ {
		d, ok := distances.Distance(route[i-1], route[i])
		if !ok {
			return 0, &domain.IncompleteDistanceDataError{From: route[i-1], To: route[i]}
		}
		total += d
	}
	return total, nil
}

// OptimalPathLength returns the length of the shortest open path that starts at
// start and visits every cell exactly once.
func OptimalPathLength(cells []domain.Cell, start domain.CellID, distances DistanceLookup) (float64, error) {
	return optimalPath(cells, &start, distances)
}

// OptimalFreePathLength returns the length of the shortest open path that visits
// every cell exactly once, starting anywhere.
func OptimalFreePathLength(cells []domain.Cell, distances DistanceLookup) (float64, error) {
	return optimalPath(cells, nil, distances)
}

// optimalPath uses the Held–Karp dynamic program over subsets:
// dp[mask][j] is the cheapest path through exactly the cells in mask ending at j.
// A nil start seeds every single-cell subset.
//
// Time complexity:  O(n² · 2ⁿ)
// Memory complexity: O(n · 2ⁿ)
func optimalPath(cells []domain.Cell, start *domain.CellID, distances DistanceLookup) (float64, error) {
	cells, err := uniqueCells(cells, false)
	if err != nil {
		return 0, err
	}

	n := len(cells)
	if n == 0 {
		return 0, &domain.EmptyAssignmentError{}
	}
	if n > MaxExactCells {
		return 0, fmt.Errorf("optimal path length: %d cells, limit %d: %w", n, MaxExactCells, ErrTooManyCells)
	}

	s := -1
	if start != nil {
		for i, c := range cells {
			if c.ID == *start {
				s = i
			}
		}
		if s < 0 {
			return 0, &domain.InvalidInputError{CellID: *start, Reason: "start cell is not part of the instance"}
		}
	}
	if n == 1 {
		return 0, nil
	}

	dist := make([][]float64, n)
	for i := range cells {
		dist[i] = make([]float64, n)
		for j := range cells {
			d, ok := distances.Distance(cells[i].ID, cells[j].ID)
			if !ok {
				return 0, &domain.IncompleteDistanceDataError{From: cells[i].ID, To: cells[j].ID}
			}
			dist[i][j] = d
		}
	}

	allMask := (1 << n) - 1
	dp := make([][]float64, 1<<n)
	for mask := range dp {
		dp[mask] = make([]float64, n)
		for j := range dp[mask] {
			dp[mask][j] = math.Inf(1)
		}
	}
	if s >= 0 {
		dp[1<<s][s] = 0
	} else {
		for j := 0; j < n; j++ {
			dp[1<<j][j] = 0
		}
	}

	for mask := 1; mask <= allMask; mask++ {
		if s >= 0 && mask&(1<<s) == 0 {
			continue
		}
		for j := 0; j < n; j++ {
			cur := dp[mask][j]
			if math.IsInf(cur, 1) {
				continue
			}
			for k := 0; k < n; k++ {
				if mask&(1<<k) != 0 {
					continue
				}
				next := mask | 1<<k
				if cand := cur + dist[j][k]; cand < dp[next][k] {
					dp[next][k] = cand
				}
			}
		}
	}

	best := math.Inf(1)
	for j := 0; j < n; j++ {
		if dp[allMask][j] < best {
			best = dp[allMask][j]
		}
	}

	return best, nil
}

// RouteQuality compares a planned route with exact optima.
// Both ratios are at least 1; a ratio of 1 means the route is optimal.
type RouteQuality struct {
	// SameStart is relative to the shortest path from the route's first cell.
	SameStart float64
	// FreeStart is relative to the shortest path from any cell.
	FreeStart float64
}

// MeasureRoute plans cells with opts and compares the route length against the
// exact optima with and without the start cell fixed.
func MeasureRoute(cells []domain.Cell, opts PlanOptions) (RouteQuality, error) {
	route, matrix, err := plan(cells, opts)
	if err != nil {
		return RouteQuality{}, fmt.Errorf("measure route: %w", err)
	}

	got, err := PathLength(route, matrix)
	if err != nil {
		return RouteQuality{}, fmt.Errorf("measure route: %w", err)
	}

	same, err := OptimalPathLength(cells, route[0], matrix)
	if err != nil {
		return RouteQuality{}, fmt.Errorf("measure route: %w", err)
	}
	free, err := OptimalFreePathLength(cells, matrix)
	if err != nil {
		return RouteQuality{}, fmt.Errorf("measure route: %w", err)
	}

	return RouteQuality{SameStart: ratio(got, same), FreeStart: ratio(got, free)}, nil
}

// ApproximationRatio compares the planned route for cells with the optimal open
// path from the same start cell. A ratio of 1 means the route is optimal.
func ApproximationRatio(cells []domain.Cell, opts PlanOptions) (float64, error) {
	q, err := MeasureRoute(cells, opts)
	if err != nil {
		return 0, err
	}
	return q.SameStart, nil
}

func ratio(got, opt float64) float64 {
	if opt == 0 {
		return 1
	}
	return got / opt
}
