package ports

import "vrp-route-service/internal/domain"

// Contract for computing the travel cost between two coordinates.
// Implementations must be pure: the same pair always yields the same distance.
type DistanceProvider interface {
	// Return the distance in meters between two locations.
	Distance(origin, destination domain.Coordinates) float64
}
