package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the planner
	Registry = prometheus.NewRegistry()
	// HTTPRequests counts requests by method, path, and status
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// VehiclePlans counts per-vehicle planning outcomes (ok, cached, failed, skipped)
	VehiclePlans = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vehicle_plans_total", Help: "Per-vehicle route planning outcomes."},
		[]string{"outcome"},
	)
	// VehiclePlanDuration tracks route construction time per vehicle in seconds
	VehiclePlanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "vehicle_plan_duration_seconds", Help: "Route construction time per vehicle.", Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}},
	)
	// RouteCells tracks the number of cells per planned route
	RouteCells = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "route_cells", Help: "Cells per planned route.", Buckets: prometheus.ExponentialBuckets(1, 2, 12)},
	)
	// RouteCacheLookups counts route cache lookups by result (hit, miss, error)
	RouteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "route_cache_lookups_total", Help: "Route cache lookups by result."},
		[]string{"result"},
	)
)

// RegisterDefault registers collectors to the planner registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(VehiclePlans)
		Registry.MustRegister(VehiclePlanDuration)
		Registry.MustRegister(RouteCells)
		Registry.MustRegister(RouteCacheLookups)
		// Go/process collectors on our registry
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

var regOnce sync.Once
