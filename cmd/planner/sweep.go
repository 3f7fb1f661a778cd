package main

import (
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/spf13/cobra"

	"hex-coverage-planner/internal/adapters/geoexport"
	"hex-coverage-planner/internal/sweep"
)

type sweepFlags struct {
	input   string
	spacing float64
	samples int
	format  string
}

// exampleArea is a small lot in San Francisco, [lon, lat].
var exampleArea = orb.Polygon{{
	{-122.4194, 37.7749},
	{-122.4184, 37.7749},
	{-122.4184, 37.7740},
	{-122.4194, 37.7740},
	{-122.4196, 37.7741},
}}

func newSweepCmd() *cobra.Command {
	var f sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Plan a back-and-forth coverage path over a polygon",
		Long: `Read a WGS84 polygon from a GeoJSON file (or use a built-in example area),
lay parallel sweep lines across it and print the shortest boustrophedon path
found over the sampled sweep directions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			area := exampleArea
			if f.input != "" {
				data, err := os.ReadFile(f.input)
				if err != nil {
					return fmt.Errorf("sweep: %w", err)
				}
				if area, err = geoexport.ReadArea(data); err != nil {
					return err
				}
			}
			return runSweep(area, f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&f.input, "input", "f", "", "GeoJSON file holding the area polygon")
	cmd.Flags().Float64Var(&f.spacing, "spacing", 10, "Distance between sweep lines in metres")
	cmd.Flags().IntVar(&f.samples, "samples", 36, "Number of sweep directions to try")
	cmd.Flags().StringVarP(&f.format, "format", "o", "text", "Output format: text or geojson")

	return cmd
}

func runSweep(area orb.Polygon, f sweepFlags, out io.Writer) error {
	if f.format != "text" && f.format != "geojson" {
		return fmt.Errorf("sweep: unknown format %q", f.format)
	}

	res, err := sweep.PlanGeo(area, sweep.Options{Spacing: f.spacing, AngleSamples: f.samples})
	if err != nil {
		return err
	}

	if f.format == "geojson" {
		data, err := geoexport.SweepCollection(area, res).MarshalJSON()
		if err != nil {
			return fmt.Errorf("sweep: encode: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	if _, err := fmt.Fprintf(out, "waypoints=%d length=%.1f angle=%.1f\n", len(res.Path), res.Length, res.Angle); err != nil {
		return err
	}
	for _, p := range res.Path {
		if _, err := fmt.Fprintf(out, "%.6f,%.6f\n", p.Lat(), p.Lon()); err != nil {
			return err
		}
	}
	return nil
}
