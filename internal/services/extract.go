package services

import (
	"fmt"

	"vrp-route-service/internal/domain"
)

// ExtractTrips renders each route as coordinates, depot first and last, in vehicle order.
// points is the combined point list the solution was built from.
func ExtractTrips(points []domain.Coordinates, sol *domain.Solution) ([]domain.Trip, error) {
	if sol == nil {
		return nil, fmt.Errorf("extract trips: solution must be non-nil")
	}

	trips := make([]domain.Trip, 0, len(sol.Routes))
	for _, r := range sol.Routes {
		path := make([]domain.Coordinates, 0, r.StopCount()+2)
		for _, node := range r.Path() {
			if node < 0 || node >= len(points) {
				return nil, fmt.Errorf("extract trips: %s: node %d outside %d points", r.Name(), node, len(points))
			}
			path = append(path, points[node])
		}
		trips = append(trips, domain.Trip{Name: r.Name(), Path: path})
	}

	return trips, nil
}
