package distance

import (
	"math"

	"vrp-route-service/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the great-circle formula.
const EarthRadiusMeters = 6371000.0

// HaversineProvider implements DistanceMatrixProvider with great-circle distances.
//
// It has no state and is safe for concurrent use.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (h *HaversineProvider) Distance(origin, destination domain.Coordinates) float64 {
	return HaversineMeters(origin, destination)
}

// Distances computes one matrix row; the origin's cosine is shared across the row.
func (h *HaversineProvider) Distances(origin domain.Coordinates, destinations []domain.Coordinates) []float64 {
	out := make([]float64, len(destinations))
	phi1 := radians(origin.Lat)
	cosPhi1 := math.Cos(phi1)
	for i, d := range destinations {
		out[i] = haversine(phi1, cosPhi1, origin, d)
	}
	return out
}

// HaversineMeters returns the great-circle distance between a and b in meters.
// Coordinate ranges are not validated.
func HaversineMeters(a, b domain.Coordinates) float64 {
	phi1 := radians(a.Lat)
	return haversine(phi1, math.Cos(phi1), a, b)
}

func haversine(phi1, cosPhi1 float64, a, b domain.Coordinates) float64 {
	phi2 := radians(b.Lat)
	dPhi := radians(b.Lat - a.Lat)
	dLambda := radians(b.Lng - a.Lng)

	sinDPhi := math.Sin(dPhi / 2)
	sinDLambda := math.Sin(dLambda / 2)
	h := sinDPhi*sinDPhi + cosPhi1*math.Cos(phi2)*sinDLambda*sinDLambda
	// Rounding can push h just past 1 near antipodes.
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
