package ports

import "vrp-route-service/internal/domain"

// Optional extension of DistanceProvider that supports batched lookups.
type DistanceMatrixProvider interface {
	DistanceProvider
	// Return distances in meters from one origin to many destinations, in destination order.
	Distances(origin domain.Coordinates, destinations []domain.Coordinates) []float64
}
