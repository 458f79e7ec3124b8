package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"vrp-route-service/internal/api/handlers"
	"vrp-route-service/internal/config"
	"vrp-route-service/internal/platform/metrics"
	"vrp-route-service/internal/ports"
)

const (
	healthPath  = "/health"
	solvePath   = "/solve"
	metricsPath = "/metrics"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(provider ports.DistanceProvider, cfg config.Config) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	solveHandler := &handlers.SolveHandler{
		Provider:          provider,
		Validate:          handlers.NewValidator(),
		Improve:           cfg.ImproveRoutes,
		ImproveRounds:     cfg.ImproveMaxRounds,
		ParallelThreshold: cfg.MatrixParallelThreshold,
		MaxLocations:      cfg.MaxLocations,
		MaxVehicles:       cfg.MaxVehicles,
	}

	mux.HandleFunc(healthPath, handlers.Health)
	mux.HandleFunc(solvePath, solveHandler.Solve)
	mux.Handle(metricsPath, promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// Cross-origin access is open to browser clients on every endpoint.
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	var h http.Handler = mux
	h = rateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, h)
	h = c.Handler(h)
	h = loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}
