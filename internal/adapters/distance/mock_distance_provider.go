package distance

import "vrp-route-service/internal/domain"

// MockPair is one symmetric distance entry keyed by coordinates.
type MockPair struct {
	From, To domain.Coordinates
	Meters   float64
}

// MockDistanceProvider returns fixed distances from a lookup table.
// Pairs are stored in both directions; unknown pairs fall back to the great-circle distance.
type MockDistanceProvider struct {
	m map[[2]domain.Coordinates]float64
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Coordinates]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]domain.Coordinates{p.From, p.To}] = p.Meters
		m[[2]domain.Coordinates{p.To, p.From}] = p.Meters
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) Distance(origin, destination domain.Coordinates) float64 {
	if r, ok := p.m[[2]domain.Coordinates{origin, destination}]; ok {
		return r
	}
	return HaversineMeters(origin, destination)
}
