package domain

import "fmt"

// Represents the planned route of a single vehicle.
// Nodes holds the visited stop nodes in order; the depot at both ends is implicit.
// A completed Route carries at least one stop.
type Route struct {
	VehicleID      int
	Nodes          []int
	DistanceMeters int64
}

// StopCount returns the number of non-depot visits.
func (r Route) StopCount() int { return len(r.Nodes) }

// Name is the external label of the route; vehicles are 1-indexed outside the solver.
func (r Route) Name() string { return fmt.Sprintf("route %d", r.VehicleID+1) }

// Path returns the full node sequence including the depot at both ends.
func (r Route) Path() []int {
	path := make([]int, 0, len(r.Nodes)+2)
	path = append(path, DepotNode)
	path = append(path, r.Nodes...)
	path = append(path, DepotNode)
	return path
}

// Represents a complete assignment of stops to vehicles.
// Routes are ordered by vehicle index and partition the stop nodes.
// It is immutable planning data and contains no side effects.
type Solution struct {
	Routes              []Route
	TotalDistanceMeters int64
}

// Represents a route rendered back into coordinates, depot first and last.
type Trip struct {
	Name string
	Path []Coordinates
}
