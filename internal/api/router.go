package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"hex-coverage-planner/internal/api/handlers"
	"hex-coverage-planner/internal/platform/metrics"
	"hex-coverage-planner/internal/ports"
	"hex-coverage-planner/internal/services"
)

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Store ports.CoverageStore
	// Cache is optional.
	Cache   ports.RouteCache
	Request services.PlanFleetRequest
	HexSize float64
	// RateLimit is requests per second; zero disables limiting.
	RateLimit rate.Limit
	Burst     int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	cellHandler := &handlers.CellHandler{Cells: d.Store, HexSize: d.HexSize}
	planHandler := &handlers.PlanHandler{
		Store:   d.Store,
		Cache:   d.Cache,
		Request: d.Request,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/cells", cellHandler.List)
	mux.HandleFunc("/locate", cellHandler.Locate)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	var h http.Handler = mux
	if d.RateLimit > 0 {
		burst := d.Burst
		if burst < 1 {
			burst = 1
		}
		h = rateLimitMiddleware(rate.NewLimiter(d.RateLimit, burst), h)
	}

	return loggingMiddleware(h)
}
