package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hex-coverage-planner/internal/adapters/geoexport"
	"hex-coverage-planner/internal/config"
	"hex-coverage-planner/internal/services"
)

type planFlags struct {
	vehicles int
	format   string
	stops    bool
}

func newPlanCmd() *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate the configured map and print a route per vehicle",
		Long: `Generate the coverage map from the configuration (.env, CONFIG_PATH and
environment), assign cells round-robin and print the planned routes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("vehicles") {
				cfg.VehicleCount = f.vehicles
			}
			return runPlan(cmd.Context(), cfg, f, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVarP(&f.vehicles, "vehicles", "n", 3, "Number of vehicles (overrides VEHICLE_COUNT)")
	cmd.Flags().StringVarP(&f.format, "format", "o", "json", "Output format: json or geojson")
	cmd.Flags().BoolVar(&f.stops, "stops", false, "Include per-stop detail")

	return cmd
}

func runPlan(ctx context.Context, cfg config.Config, f planFlags, out io.Writer) error {
	if f.format != "json" && f.format != "geojson" {
		return fmt.Errorf("plan: unknown format %q", f.format)
	}

	req, err := cfg.Planner.FleetRequest(false)
	if err != nil {
		return err
	}

	grid, err := cfg.Grid.Generate()
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	assignment, err := services.AssignCellsRoundRobin(grid.Cells(), cfg.VehicleCount)
	if err != nil {
		return fmt.Errorf("plan: %w", err)
	}

	result, err := services.PlanAssignment(ctx, req, assignment, nil)
	if err != nil {
		return err
	}

	if f.format == "geojson" {
		data, err := geoexport.Marshal(result.Plans, geoexport.Options{Stops: f.stops})
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	type vehicleRoute struct {
		VehicleID     int     `json:"vehicle_id"`
		Route         []int   `json:"route"`
		TotalDistance float64 `json:"total_distance"`
		Stops         any     `json:"stops,omitempty"`
	}
	routes := make([]vehicleRoute, 0, len(result.Plans))
	for _, p := range result.Plans {
		vr := vehicleRoute{VehicleID: int(p.VehicleID), TotalDistance: p.TotalDistance}
		for _, id := range p.Route {
			vr.Route = append(vr.Route, int(id))
		}
		if f.stops {
			vr.Stops = p.Stops
		}
		routes = append(routes, vr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"run_id": result.RunID, "plans": routes})
}
