package domain

// Represents one routing problem as received from a client.
// The depot is the start and end of every route; Stops keep their input order
// and become nodes 1..len(Stops) once combined with the depot.
// An Instance is created per request and never shared between solves.
type Instance struct {
	Depot              Coordinates
	Stops              []Coordinates
	NumVehicles        int
	MaxStopsPerVehicle int
}

// DepotNode is the node index reserved for the depot.
const DepotNode = 0

// Points returns the combined point list with the depot at index 0.
func (in Instance) Points() []Coordinates {
	points := make([]Coordinates, 0, 1+len(in.Stops))
	points = append(points, in.Depot)
	points = append(points, in.Stops...)
	return points
}

// NumNodes is 1 (depot) plus the number of stops.
func (in Instance) NumNodes() int { return 1 + len(in.Stops) }
