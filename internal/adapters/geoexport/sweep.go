package geoexport

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"hex-coverage-planner/internal/sweep"
)

// SweepCollection renders a coverage sweep as the area polygon plus the sweep path.
// Coordinates are written as given, [lon, lat] for geographic input.
func SweepCollection(area orb.Polygon, res sweep.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	a := geojson.NewFeature(area)
	a.ID = "area"
	a.Properties["kind"] = "area"
	fc.Append(a)

	p := geojson.NewFeature(res.Path)
	p.ID = "sweep"
	p.Properties["kind"] = "sweep"
	p.Properties["waypoints"] = len(res.Path)
	p.Properties["length"] = res.Length
	p.Properties["angle"] = res.Angle
	fc.Append(p)

	return fc
}

// ReadArea decodes a polygon from a GeoJSON FeatureCollection, Feature or bare
// Polygon geometry. For a collection the first Polygon feature is used.
func ReadArea(data []byte) (orb.Polygon, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("geojson: read area: %w", err)
	}

	var geoms []orb.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: read area: %w", err)
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: read area: %w", err)
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: read area: %w", err)
		}
		geoms = append(geoms, g.Coordinates)
	}

	for _, g := range geoms {
		if poly, ok := g.(orb.Polygon); ok {
			return poly, nil
		}
	}
	return nil, errors.New("geojson: read area: no polygon found")
}
