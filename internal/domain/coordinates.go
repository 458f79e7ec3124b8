package domain

import "fmt"

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as [lat, lng] for the external JSON representation.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lat, c.Lng} }

// CoordinatesFromList parses a [lat, lng] pair.
func CoordinatesFromList(v []float64) (Coordinates, error) {
	if len(v) != 2 {
		return Coordinates{}, fmt.Errorf("coordinates: expected [lat, lng], got %d values", len(v))
	}
	return Coordinates{Lat: v[0], Lng: v[1]}, nil
}
