package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"

	"hex-coverage-planner/internal/adapters/geoexport"
	"hex-coverage-planner/internal/api/dto"
	"hex-coverage-planner/internal/ports"
	"hex-coverage-planner/internal/services"
)

const maxVehicleCount = 100

type PlanHandler struct {
	Store ports.CoverageStore
	// Cache is optional.
	Cache   ports.RouteCache
	Request services.PlanFleetRequest
}

// Plan computes a route for every vehicle.
// A positive vehicle_count reassigns all cells round-robin over that many vehicles first;
// otherwise the stored assignment is planned as is.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "geojson" {
		writeError(w, r, http.StatusBadRequest, "format must be json or geojson")
		return
	}

	if req.VehicleCount < 0 || req.VehicleCount > maxVehicleCount {
		writeError(w, r, http.StatusBadRequest, "vehicle_count must be between 0 and 100")
		return
	}

	if req.VehicleCount > 0 {
		if _, err := services.AssignFleet(r.Context(), h.Store, req.VehicleCount); err != nil {
			writeServiceError(w, r, "assign fleet", err)
			return
		}
	}

	fleetReq := h.Request
	fleetReq.SkipFailed = req.SkipFailed

	result, err := services.PlanFleet(r.Context(), fleetReq, h.Store, h.Cache)
	if err != nil {
		writeServiceError(w, r, "plan fleet", err)
		return
	}

	if format == "geojson" {
		data, err := geoexport.Marshal(result.Plans, geoexport.Options{Stops: req.Stops})
		if err != nil {
			writeServiceError(w, r, "export geojson", err)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Printf("write failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
		}
		return
	}

	res := dto.ListPlanResponse{
		RunID: result.RunID,
		Plans: make([]dto.PlanResponse, 0, len(result.Plans)),
	}
	for _, p := range result.Plans {
		route := make([]int, 0, len(p.Route))
		for _, id := range p.Route {
			route = append(route, int(id))
		}

		plan := dto.PlanResponse{
			VehicleID:     int(p.VehicleID),
			Route:         route,
			TotalDistance: p.TotalDistance,
		}
		if req.Stops {
			plan.Stops = make([]dto.PlanStopResponse, 0, len(p.Stops))
			for _, s := range p.Stops {
				plan.Stops = append(plan.Stops, dto.PlanStopResponse{
					Seq:         s.Seq,
					CellID:      int(s.CellID),
					X:           s.Position.X,
					Y:           s.Position.Y,
					Priority:    s.Priority,
					LegDistance: s.LegDistance,
				})
			}
		}
		res.Plans = append(res.Plans, plan)
	}

	for vid, ferr := range result.Failures {
		res.Failures = append(res.Failures, dto.PlanFailureResponse{VehicleID: int(vid), Error: ferr.Error()})
	}
	sort.Slice(res.Failures, func(i, j int) bool { return res.Failures[i].VehicleID < res.Failures[j].VehicleID })

	writeJSON(w, r, http.StatusOK, res)
}
