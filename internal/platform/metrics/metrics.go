package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	// HTTPRequests counts requests by method, path, and status.
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	// HTTPDuration records request durations in seconds.
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)

	// Solves counts solve outcomes: ok, no_solution, invalid, error.
	Solves = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "vrp_solves_total", Help: "VRP solves by outcome."},
		[]string{"outcome"},
	)
	SolveDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "vrp_solve_duration_seconds", Help: "Wall time of one solve.", Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30}},
	)
	// SolutionDistance is the objective of successful solves, in meters.
	SolutionDistance = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "vrp_solution_distance_meters", Help: "Total route distance of successful solves.", Buckets: prometheus.ExponentialBuckets(1000, 4, 10)},
	)
	SolveStops = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "vrp_solve_stops", Help: "Number of stops per solve request.", Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000}},
	)
)

const (
	OutcomeOK         = "ok"
	OutcomeNoSolution = "no_solution"
	OutcomeInvalid    = "invalid"
	OutcomeError      = "error"
)

var regOnce sync.Once

// RegisterDefault registers the service collectors and the Go/process collectors on Registry.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(Solves)
		Registry.MustRegister(SolveDuration)
		Registry.MustRegister(SolutionDistance)
		Registry.MustRegister(SolveStops)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
