package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vrp-route-service/internal/adapters/distance"
	"vrp-route-service/internal/domain"
)

func solveOptions(improve bool) SolveOptions {
	return SolveOptions{
		Provider:          distance.NewHaversineProvider(),
		Improve:           improve,
		MaxImproveRounds:  50,
		ParallelThreshold: 64,
	}
}

func TestSolveVRPExampleScenario(t *testing.T) {
	in := domain.Instance{
		Depot:              domain.Coordinates{Lat: 0, Lng: 0},
		Stops:              []domain.Coordinates{{Lat: 0, Lng: 1}, {Lat: 0, Lng: 2}, {Lat: 1, Lng: 0}},
		NumVehicles:        2,
		MaxStopsPerVehicle: 2,
	}

	for _, improve := range []bool{false, true} {
		t.Run(fmt.Sprintf("improve=%v", improve), func(t *testing.T) {
			res, err := SolveVRP(context.Background(), in, solveOptions(improve))
			require.NoError(t, err)
			assertValidTrips(t, in, res.Trips)

			want := []domain.Trip{
				{Name: "route 1", Path: []domain.Coordinates{in.Depot, in.Stops[0], in.Stops[1], in.Depot}},
				{Name: "route 2", Path: []domain.Coordinates{in.Depot, in.Stops[2], in.Depot}},
			}
			assert.Equal(t, want, res.Trips)
		})
	}
}

func TestSolveVRPFailureScenario(t *testing.T) {
	in := domain.Instance{
		Depot:              domain.Coordinates{Lat: 0, Lng: 0},
		Stops:              []domain.Coordinates{{Lat: 0, Lng: 1}},
		NumVehicles:        2,
		MaxStopsPerVehicle: 1,
	}

	res, err := SolveVRP(context.Background(), in, solveOptions(true))
	if !errors.Is(err, ErrNoSolution) {
		t.Fatalf("err = %v, want ErrNoSolution", err)
	}
	if res != nil {
		t.Fatalf("expected nil result, got %+v", res)
	}
}

func TestSolveVRPRejectsInvalidInstance(t *testing.T) {
	base := domain.Instance{
		Depot:              domain.Coordinates{Lat: 0, Lng: 0},
		Stops:              equator(1, 2),
		NumVehicles:        1,
		MaxStopsPerVehicle: 2,
	}

	noVehicles := base
	noVehicles.NumVehicles = 0
	_, err := SolveVRP(context.Background(), noVehicles, solveOptions(false))
	assert.ErrorIs(t, err, ErrInvalidInstance)

	noCap := base
	noCap.MaxStopsPerVehicle = -1
	_, err = SolveVRP(context.Background(), noCap, solveOptions(false))
	assert.ErrorIs(t, err, ErrInvalidInstance)

	_, err = SolveVRP(context.Background(), base, SolveOptions{})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoSolution))
}

// Random feasible instances must always produce a valid partition, and the
// improvement pass must never raise the total distance.
func TestSolveVRPProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 40; i++ {
		stops := 1 + rng.Intn(40)
		vehicles := 1 + rng.Intn(stops)
		minCap := (stops + vehicles - 1) / vehicles
		maxStops := minCap + rng.Intn(3)

		in := domain.Instance{
			Depot:              domain.Coordinates{Lat: 13.75, Lng: 100.5},
			NumVehicles:        vehicles,
			MaxStopsPerVehicle: maxStops,
		}
		for s := 0; s < stops; s++ {
			in.Stops = append(in.Stops, domain.Coordinates{
				Lat: 13.5 + rng.Float64()/2,
				Lng: 100.25 + rng.Float64()/2,
			})
		}

		name := fmt.Sprintf("stops=%d vehicles=%d cap=%d", stops, vehicles, maxStops)
		t.Run(name, func(t *testing.T) {
			plain, err := SolveVRP(context.Background(), in, solveOptions(false))
			require.NoError(t, err)
			assertValidTrips(t, in, plain.Trips)

			improved, err := SolveVRP(context.Background(), in, solveOptions(true))
			require.NoError(t, err)
			assertValidTrips(t, in, improved.Trips)

			assert.LessOrEqual(t, improved.Solution.TotalDistanceMeters, plain.Solution.TotalDistanceMeters)

			again, err := SolveVRP(context.Background(), in, solveOptions(true))
			require.NoError(t, err)
			assert.Equal(t, improved.Trips, again.Trips, "solves must be deterministic")
		})
	}
}

func TestSolveVRPMoreVehiclesThanStops(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for stops := 0; stops < 5; stops++ {
		in := domain.Instance{
			Depot:              domain.Coordinates{Lat: 0, Lng: 0},
			NumVehicles:        stops + 1 + rng.Intn(3),
			MaxStopsPerVehicle: 10,
			Stops:              equator(1, stops),
		}
		_, err := SolveVRP(context.Background(), in, solveOptions(true))
		assert.ErrorIs(t, err, ErrNoSolution, "stops=%d vehicles=%d", stops, in.NumVehicles)
	}
}

func TestSolveVRPConcurrentSolvesShareNothing(t *testing.T) {
	in := domain.Instance{
		Depot:              domain.Coordinates{Lat: 0, Lng: 0},
		Stops:              equator(1, 12),
		NumVehicles:        3,
		MaxStopsPerVehicle: 5,
	}
	want, err := SolveVRP(context.Background(), in, solveOptions(true))
	require.NoError(t, err)

	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, err := SolveVRP(context.Background(), in, solveOptions(true))
			if err == nil && !assert.ObjectsAreEqual(want.Trips, got.Trips) {
				err = errors.New("concurrent solve diverged")
			}
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-errs)
	}
}

// assertValidTrips checks partition, cap, minimum service and depot bracketing.
func assertValidTrips(t *testing.T, in domain.Instance, trips []domain.Trip) {
	t.Helper()
	require.Len(t, trips, in.NumVehicles)

	remaining := make(map[domain.Coordinates]int)
	for _, s := range in.Stops {
		remaining[s]++
	}

	for i, trip := range trips {
		assert.Equal(t, fmt.Sprintf("route %d", i+1), trip.Name)
		require.GreaterOrEqual(t, len(trip.Path), 3, "%s must serve at least one stop", trip.Name)
		assert.Equal(t, in.Depot, trip.Path[0], "%s starts at depot", trip.Name)
		assert.Equal(t, in.Depot, trip.Path[len(trip.Path)-1], "%s ends at depot", trip.Name)

		stops := trip.Path[1 : len(trip.Path)-1]
		assert.LessOrEqual(t, len(stops), in.MaxStopsPerVehicle, "%s over cap", trip.Name)
		for _, s := range stops {
			remaining[s]--
		}
	}

	for c, n := range remaining {
		if n != 0 {
			t.Errorf("stop %v: visit count off by %d", c, n)
		}
	}
}
