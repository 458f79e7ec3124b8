package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"vrp-route-service/internal/adapters/distance"
	"vrp-route-service/internal/config"
	"vrp-route-service/internal/domain"
	"vrp-route-service/internal/services"
)

// instanceFile mirrors the POST /solve body.
type instanceFile struct {
	Depot              []float64   `json:"depot"`
	NumVehicles        int         `json:"num_vehicles"`
	MaxStopsPerVehicle int         `json:"max_stops_per_vehicle"`
	Locations          [][]float64 `json:"locations"`
}

func main() {
	path := flag.String("instance", "", "path to a JSON instance file")
	improve := flag.Bool("improve", true, "run local search after construction")
	flag.Parse()

	if *path == "" {
		log.Fatal("-instance is required")
	}

	rounds, err := config.GetInt("IMPROVE_MAX_ROUNDS", config.Default().ImproveMaxRounds)
	if err != nil {
		log.Fatal(err)
	}

	in, err := readInstance(*path)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := services.SolveVRP(ctx, in, services.SolveOptions{
		Provider:          distance.NewHaversineProvider(),
		Improve:           *improve,
		MaxImproveRounds:  rounds,
		ParallelThreshold: config.Default().MatrixParallelThreshold,
	})
	if errors.Is(err, services.ErrNoSolution) {
		fmt.Fprintln(os.Stderr, "No solution found")
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}

	for _, trip := range res.Trips {
		fmt.Printf("%s:", trip.Name)
		for _, c := range trip.Path {
			fmt.Printf(" (%g, %g)", c.Lat, c.Lng)
		}
		fmt.Println()
	}
	log.Printf("total_distance_m=%d", res.Solution.TotalDistanceMeters)
}

func readInstance(path string) (domain.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("read instance %q: %w", path, err)
	}

	var f instanceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return domain.Instance{}, fmt.Errorf("parse instance %q: %w", path, err)
	}

	depot, err := domain.CoordinatesFromList(f.Depot)
	if err != nil {
		return domain.Instance{}, fmt.Errorf("instance %q: depot: %w", path, err)
	}

	stops := make([]domain.Coordinates, 0, len(f.Locations))
	for i, loc := range f.Locations {
		c, err := domain.CoordinatesFromList(loc)
		if err != nil {
			return domain.Instance{}, fmt.Errorf("instance %q: locations[%d]: %w", path, i, err)
		}
		stops = append(stops, c)
	}

	return domain.Instance{
		Depot:              depot,
		Stops:              stops,
		NumVehicles:        f.NumVehicles,
		MaxStopsPerVehicle: f.MaxStopsPerVehicle,
	}, nil
}
