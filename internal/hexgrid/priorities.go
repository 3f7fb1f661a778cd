package hexgrid

import (
	"fmt"
	"math/rand"
)

// ClusteredPriorities scores hexes so that urgency concentrates around a few centres.
//
// Centres are distinct hexes drawn from rng. A hex scores maxPriority minus its
// axial offset (|Δq|+|Δr|) to the closest centre, floored at 1, plus a one-in-three
// chance of +1, capped at maxPriority. With zero clusters only the noise lifts hexes above 1.
func ClusteredPriorities(rng *rand.Rand, hexes []Axial, clusters, maxPriority int) (map[Axial]int, error) {
	if clusters < 0 || clusters > len(hexes) {
		return nil, fmt.Errorf("clustered priorities: cluster count %d out of range [0, %d]", clusters, len(hexes))
	}

	perm := rng.Perm(len(hexes))
	centers := make([]Axial, 0, clusters)
	for _, i := range perm[:clusters] {
		centers = append(centers, hexes[i])
	}

	out := make(map[Axial]int, len(hexes))
	for _, h := range hexes {
		base := 1
		if len(centers) > 0 {
			nearest := axialOffset(h, centers[0])
			for _, c := range centers[1:] {
				nearest = min(nearest, axialOffset(h, c))
			}
			base = max(maxPriority-nearest, 1)
		}

		noise := 0
		if rng.Intn(3) == 2 {
			noise = 1
		}
		out[h] = min(base+noise, maxPriority)
	}
	return out, nil
}

func axialOffset(a, b Axial) int {
	return abs(a.Q-b.Q) + abs(a.R-b.R)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
