package main

import (
	"log"
	"net/http"
	"time"

	"vrp-route-service/internal/adapters/distance"
	"vrp-route-service/internal/api"
	"vrp-route-service/internal/config"
	"vrp-route-service/internal/platform/metrics"
)

// main is the application composition root.
// It wires the great-circle distance adapter behind its port and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	metrics.RegisterDefault()

	provider := distance.NewHaversineProvider()
	router := api.NewRouter(provider, cfg)

	log.Printf(
		"Server listening addr=:%s improve=%v max_locations=%d max_vehicles=%d rate_limit_rps=%v",
		cfg.Port, cfg.ImproveRoutes, cfg.MaxLocations, cfg.MaxVehicles, cfg.RateLimitRPS,
	)
	// Write timeout leaves room for the largest instances MAX_LOCATIONS admits.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
