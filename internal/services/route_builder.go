package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"hex-coverage-planner/internal/domain"
)

// RouteOptions tunes route construction. The zero value is the plain
// nearest-neighbor walk seeded at the highest-priority cell.
type RouteOptions struct {
	// Start selects the first cell. Nil selects MaxPriorityStart.
	Start StartPolicy
	// PriorityWeight biases each step towards urgent cells: the next cell
	// minimizes distance - PriorityWeight*priority. Zero disables the bias.
	PriorityWeight float64
	// TieBreak decides between equally scored candidate cells.
	TieBreak TieBreak
}

// TieBreak orders candidate cells that score equally during a step.
type TieBreak int

const (
	// SmallestID prefers the candidate with the smallest id.
	SmallestID TieBreak = iota
	// LargestID prefers the candidate with the largest id.
	LargestID
)

func (t TieBreak) String() string {
	if t == LargestID {
		return "largest-id"
	}
	return "smallest-id"
}

// TieBreakByName resolves a configured tie-break. An empty name selects SmallestID.
func TieBreakByName(name string) (TieBreak, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "smallest-id":
		return SmallestID, nil
	case "largest-id":
		return LargestID, nil
	default:
		return SmallestID, fmt.Errorf("tie break by name: unknown tie break %q", name)
	}
}

func (o RouteOptions) startPolicy() StartPolicy {
	if o.Start == nil {
		return MaxPriorityStart
	}
	return o.Start
}

func (o RouteOptions) validate() error {
	if o.TieBreak != SmallestID && o.TieBreak != LargestID {
		return fmt.Errorf("route options: unknown tie break %d", o.TieBreak)
	}
	if math.IsNaN(o.PriorityWeight) || math.IsInf(o.PriorityWeight, 0) || o.PriorityWeight < 0 {
		return fmt.Errorf("route options: priority weight must be finite and non-negative, got %v", o.PriorityWeight)
	}
	return nil
}

// Build a coverage route using a greedy nearest-neighbor walk.
//
// The walk starts at the cell chosen by the start policy and repeatedly moves to
// the closest unvisited cell, breaking ties by the smallest id unless TieBreak
// says otherwise. It does not attempt global tour optimization; each step scans
// every unvisited cell, giving O(n²) distance comparisons. The result is a
// permutation of the distinct input cells and is identical for identical inputs
// regardless of their order.
func BuildRoute(cells []domain.Cell, distances DistanceLookup, opts RouteOptions) (domain.Route, error) {
	if len(cells) == 0 {
		return nil, &domain.EmptyAssignmentError{}
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}

	cells, err := uniqueCells(cells, true)
	if err != nil {
		return nil, err
	}

	n := len(cells)
	if n == 1 {
		return domain.Route{cells[0].ID}, nil
	}
	if distances == nil {
		return nil, &domain.IncompleteDistanceDataError{From: cells[0].ID, To: cells[1].ID}
	}

	startID := opts.startPolicy().Start(cells)
	current := -1
	for i, c := range cells {
		if c.ID == startID {
			current = i
			break
		}
	}
	if current < 0 {
		return nil, &domain.InvalidInputError{CellID: startID, Reason: "start cell is not part of the assignment"}
	}

	visited := make([]bool, n)
	route := make(domain.Route, 0, n)

	visited[current] = true
	route = append(route, cells[current].ID)

	for len(route) < n {
		best := -1
		bestScore := math.Inf(1)

		// Select next cell by minimum score (greedy step). Cells are sorted by id,
		// so a strict comparison keeps the smallest id on ties.
		for i, c := range cells {
			if visited[i] {
				continue
			}

			d, ok := distances.Distance(cells[current].ID, c.ID)
			if !ok {
				return nil, &domain.IncompleteDistanceDataError{From: cells[current].ID, To: c.ID}
			}

			score := d - opts.PriorityWeight*c.Priority
			if best < 0 || score < bestScore || (score == bestScore && opts.TieBreak == LargestID) {
				best = i
				bestScore = score
			}
		}

		if best < 0 {
			return nil, errors.New("build route: failed to select next cell")
		}

		visited[best] = true
		route = append(route, cells[best].ID)
		current = best
	}

	return route, nil
}
