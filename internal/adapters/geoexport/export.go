// Package geoexport renders planned routes as GeoJSON for map viewers.
// Coordinates are the planar cell positions, written as [x, y].
package geoexport

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"hex-coverage-planner/internal/domain"
)

// Options controls which features are emitted.
type Options struct {
	// Stops adds one Point feature per visited cell.
	Stops bool
}

// FeatureCollection builds one feature per vehicle route, plus stop points when requested.
// A route of one cell is rendered as a Point since a LineString needs two positions.
func FeatureCollection(plans []*domain.RoutePlan, opts Options) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()

	for _, p := range plans {
		if p == nil {
			return nil, fmt.Errorf("geojson: nil plan")
		}
		if len(p.Stops) == 0 {
			continue
		}

		fc.Append(routeFeature(p))

		if opts.Stops {
			for _, s := range p.Stops {
				f := geojson.NewFeature(orb.Point{s.Position.X, s.Position.Y})
				f.ID = fmt.Sprintf("vehicle-%d-stop-%d", p.VehicleID, s.Seq)
				f.Properties["kind"] = "stop"
				f.Properties["vehicle_id"] = int(p.VehicleID)
				f.Properties["seq"] = s.Seq
				f.Properties["cell_id"] = int(s.CellID)
				f.Properties["priority"] = s.Priority
				f.Properties["leg_distance"] = s.LegDistance
				fc.Append(f)
			}
		}
	}

	return fc, nil
}

// Marshal encodes plans as a GeoJSON FeatureCollection.
func Marshal(plans []*domain.RoutePlan, opts Options) ([]byte, error) {
	fc, err := FeatureCollection(plans, opts)
	if err != nil {
		return nil, err
	}
	data, err := fc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("geojson: encode: %w", err)
	}
	return data, nil
}

func routeFeature(p *domain.RoutePlan) *geojson.Feature {
	var geom orb.Geometry
	if len(p.Stops) == 1 {
		geom = orb.Point{p.Stops[0].Position.X, p.Stops[0].Position.Y}
	} else {
		ls := make(orb.LineString, 0, len(p.Stops))
		for _, s := range p.Stops {
			ls = append(ls, orb.Point{s.Position.X, s.Position.Y})
		}
		geom = ls
	}

	cells := make([]int, 0, len(p.Route))
	for _, id := range p.Route {
		cells = append(cells, int(id))
	}

	f := geojson.NewFeature(geom)
	f.ID = fmt.Sprintf("vehicle-%d", p.VehicleID)
	f.Properties["kind"] = "route"
	f.Properties["vehicle_id"] = int(p.VehicleID)
	f.Properties["cell_ids"] = cells
	f.Properties["total_distance"] = p.TotalDistance
	if p.RunID != "" {
		f.Properties["run_id"] = p.RunID
	}
	return f
}
