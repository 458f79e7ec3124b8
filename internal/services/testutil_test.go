package services

import (
	"testing"

	"vrp-route-service/internal/domain"
)

// equator returns points spaced one degree apart along the equator, starting at lng=from.
func equator(from, count int) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, domain.Coordinates{Lat: 0, Lng: float64(from + i)})
	}
	return out
}

// mustModel builds a StopCount model over a literal matrix.
func mustModel(t *testing.T, m DistanceMatrix, vehicles, maxStops int) *RoutingModel {
	t.Helper()
	model, err := NewRoutingModel(m, vehicles, maxStops)
	if err != nil {
		t.Fatalf("NewRoutingModel: %v", err)
	}
	return model
}

func routeNodes(sol *domain.Solution) [][]int {
	out := make([][]int, 0, len(sol.Routes))
	for _, r := range sol.Routes {
		out = append(out, r.Nodes)
	}
	return out
}
