package services

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"vrp-route-service/internal/domain"
	"vrp-route-service/internal/platform/obs"
	"vrp-route-service/internal/ports"
)

type SolveOptions struct {
	Provider ports.DistanceProvider
	// Improve enables the local-search pass after construction.
	Improve          bool
	MaxImproveRounds int
	// ParallelThreshold is the point count from which matrix rows are computed
	// concurrently; 0 disables it.
	ParallelThreshold int
	Workers           int
}

type SolveResult struct {
	Solution *domain.Solution
	Trips    []domain.Trip
}

// SolveVRP runs one solve end to end: matrix, model, construction, optional
// improvement, verification and extraction.
//
// Every call owns its matrix and model, so concurrent calls share nothing.
// An infeasible instance yields ErrNoSolution and no partial result.
func SolveVRP(ctx context.Context, in domain.Instance, opts SolveOptions) (_ *SolveResult, err error) {
	defer obs.Time(ctx, "services.SolveVRP")(&err)

	if opts.Provider == nil {
		return nil, errors.New("solve vrp: distance provider must be non-nil")
	}
	if in.NumVehicles <= 0 || in.MaxStopsPerVehicle <= 0 {
		return nil, fmt.Errorf(
			"solve vrp: num_vehicles=%d max_stops_per_vehicle=%d: %w",
			in.NumVehicles, in.MaxStopsPerVehicle, ErrInvalidInstance,
		)
	}

	points := in.Points()

	workers := 1
	if opts.ParallelThreshold > 0 && len(points) >= opts.ParallelThreshold {
		workers = opts.Workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
	}

	matrix, err := BuildDistanceMatrix(ctx, points, opts.Provider, workers)
	if err != nil {
		return nil, fmt.Errorf("solve vrp: %w", err)
	}

	model, err := NewRoutingModel(matrix, in.NumVehicles, in.MaxStopsPerVehicle)
	if err != nil {
		return nil, fmt.Errorf("solve vrp: %w", err)
	}

	sol, err := BuildRoutes(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("solve vrp: %w", err)
	}

	if opts.Improve {
		sol, err = ImproveRoutes(ctx, model, sol, opts.MaxImproveRounds)
		if err != nil {
			return nil, fmt.Errorf("solve vrp: %w", err)
		}
	}

	if err := VerifySolution(model, sol); err != nil {
		return nil, fmt.Errorf("solve vrp: %w", err)
	}

	trips, err := ExtractTrips(points, sol)
	if err != nil {
		return nil, fmt.Errorf("solve vrp: %w", err)
	}

	return &SolveResult{Solution: sol, Trips: trips}, nil
}
