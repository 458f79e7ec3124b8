package dto

// SolveRequest is the body of POST /solve.
// Counts are pointers so that a missing field is told apart from zero.
type SolveRequest struct {
	Depot              []float64   `json:"depot" validate:"required,len=2"`
	NumVehicles        *int        `json:"num_vehicles" validate:"required,gt=0"`
	MaxStopsPerVehicle *int        `json:"max_stops_per_vehicle" validate:"required,gt=0"`
	Locations          [][]float64 `json:"locations" validate:"required,dive,len=2"`
}

// Trip maps a single "route <k>" label to its [lat, lng] path.
type Trip map[string][][]float64

type SolveResponse struct {
	Trips []Trip `json:"trips"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
