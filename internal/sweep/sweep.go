// Package sweep plans boustrophedon (back-and-forth) coverage paths over a
// polygonal area.
//
// Parallel sweep lines are laid across the area at a fixed spacing and joined
// end to end, reversing every other strip. Several sweep directions are tried
// and the shortest path wins.
package sweep

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/project"
)

// ErrNoPath is returned when no sweep direction produces a single waypoint.
var ErrNoPath = errors.New("sweep: no coverage path")

type Options struct {
	// Spacing is the distance between adjacent sweep lines, in Web Mercator
	// metres for geographic input and in plane units otherwise.
	Spacing float64
	// AngleSamples is the number of sweep directions tried, evenly spaced over 180°.
	AngleSamples int
}

func DefaultOptions() Options {
	return Options{Spacing: 10, AngleSamples: 36}
}

func (o Options) validate() error {
	if !(o.Spacing > 0) || math.IsInf(o.Spacing, 0) {
		return fmt.Errorf("sweep: spacing must be positive and finite, got %v", o.Spacing)
	}
	if o.AngleSamples < 1 {
		return fmt.Errorf("sweep: angle samples must be at least 1, got %d", o.AngleSamples)
	}
	return nil
}

// Result is a planned coverage path.
type Result struct {
	Path orb.LineString
	// Length of the path in plane units, Web Mercator metres for geographic input.
	Length float64
	// Angle is the chosen sweep direction in degrees, measured from the y axis.
	Angle float64
}

// PlanGeo plans a coverage path over an area given in WGS84 lon/lat.
// The area is projected to Web Mercator for planning, which is accurate enough
// for areas a few kilometres across. The returned path is lon/lat.
func PlanGeo(area orb.Polygon, opts Options) (Result, error) {
	merc := make(orb.Polygon, 0, len(area))
	for _, r := range area {
		merc = append(merc, project.Ring(slices.Clone(r), project.WGS84.ToMercator))
	}

	res, err := Plan(merc, opts)
	if err != nil {
		return Result{}, err
	}
	res.Path = project.LineString(res.Path, project.Mercator.ToWGS84)
	return res, nil
}

// Plan plans a coverage path over a planar polygon. The first ring is the
// outer boundary; any further rings are holes.
func Plan(area orb.Polygon, opts Options) (Result, error) {
	if err := opts.validate(); err != nil {
		return Result{}, err
	}

	poly, err := normalize(area)
	if err != nil {
		return Result{}, err
	}

	centroid, _ := planar.CentroidArea(poly)

	var (
		best  Result
		found bool
	)
	for i := 0; i < opts.AngleSamples; i++ {
		angle := 180 * float64(i) / float64(opts.AngleSamples)
		theta := angle * math.Pi / 180

		path := sweepVertical(rotate(poly, centroid, -theta), opts.Spacing)
		if len(path) == 0 {
			continue
		}
		path = rotateLine(path, centroid, theta)

		length := planar.Length(path)
		if !found || length < best.Length {
			best = Result{Path: path, Length: length, Angle: angle}
			found = true
		}
	}

	if !found {
		return Result{}, ErrNoPath
	}
	return best, nil
}

// normalize validates area and returns a copy with every ring closed.
func normalize(area orb.Polygon) (orb.Polygon, error) {
	if len(area) == 0 {
		return nil, errors.New("sweep: polygon has no rings")
	}

	out := make(orb.Polygon, 0, len(area))
	for i, r := range area {
		ring := slices.Clone(r)
		for _, p := range ring {
			if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
				return nil, fmt.Errorf("sweep: ring %d: coordinates must be finite", i)
			}
		}
		if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
			ring = append(ring, ring[0])
		}
		if len(ring) < 4 {
			return nil, fmt.Errorf("sweep: ring %d: need at least 3 vertices", i)
		}
		out = append(out, ring)
	}

	if _, a := planar.CentroidArea(out[0]); a == 0 {
		return nil, errors.New("sweep: outer ring has no area")
	}
	return out, nil
}

// sweepVertical covers poly with vertical sweep lines x = const, starting one
// spacing left of the bounds and ending one spacing right of them.
func sweepVertical(poly orb.Polygon, spacing float64) orb.LineString {
	b := poly.Bound()

	var path orb.LineString
	strips := 0
	for k := 0; ; k++ {
		x := b.Min[0] - spacing + float64(k)*spacing
		if x > b.Max[0]+spacing {
			break
		}

		strip := stripAt(poly, x)
		if len(strip) == 0 {
			continue
		}
		if strips%2 == 1 {
			slices.Reverse(strip)
		}
		path = append(path, strip...)
		strips++
	}
	return path
}

// stripAt returns the segments where the line x = const lies inside poly,
// as endpoint pairs ordered top to bottom.
func stripAt(poly orb.Polygon, x float64) []orb.Point {
	var ys []float64
	for _, r := range poly {
		for i := 1; i < len(r); i++ {
			a, b := r[i-1], r[i]
			// Half-open so a vertex on the line is counted once.
			if (a[0] <= x && x < b[0]) || (b[0] <= x && x < a[0]) {
				t := (x - a[0]) / (b[0] - a[0])
				ys = append(ys, a[1]+t*(b[1]-a[1]))
			}
		}
	}

	slices.Sort(ys)
	slices.Reverse(ys)

	var strip []orb.Point
	for i := 0; i+1 < len(ys); i += 2 {
		top, bottom := ys[i], ys[i+1]
		if top-bottom <= 0 {
			continue
		}
		strip = append(strip, orb.Point{x, top}, orb.Point{x, bottom})
	}
	return strip
}

func rotate(poly orb.Polygon, origin orb.Point, theta float64) orb.Polygon {
	out := make(orb.Polygon, len(poly))
	for i, r := range poly {
		out[i] = orb.Ring(rotateLine(orb.LineString(r), origin, theta))
	}
	return out
}

// rotateLine rotates ls counter-clockwise by theta radians about origin.
func rotateLine(ls orb.LineString, origin orb.Point, theta float64) orb.LineString {
	sin, cos := math.Sincos(theta)
	out := make(orb.LineString, len(ls))
	for i, p := range ls {
		dx, dy := p[0]-origin[0], p[1]-origin[1]
		out[i] = orb.Point{
			origin[0] + dx*cos - dy*sin,
			origin[1] + dx*sin + dy*cos,
		}
	}
	return out
}
