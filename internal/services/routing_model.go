package services

import (
	"errors"
	"fmt"

	"vrp-route-service/internal/domain"
)

// StopCountDimension counts non-depot visits along a route.
const StopCountDimension = "StopCount"

// TransitFunc is the contribution of the arc from -> to to a dimension.
type TransitFunc func(from, to int) int64

// Dimension is a named cumulative quantity tracked along every route.
// The cumul starts at 0 on leaving the depot, must stay within [0, Capacity]
// at every node including the return to the depot, and must reach EndMin there.
type Dimension struct {
	Name     string
	Transit  TransitFunc
	Capacity int64
	EndMin   int64
}

// RoutingModel describes one problem instance: the node graph, the fleet,
// the arc cost shared by all vehicles and the dimensions constraining each route.
// It is built once per solve and not modified afterwards.
type RoutingModel struct {
	matrix      DistanceMatrix
	numVehicles int
	maxStops    int
	dimensions  []Dimension
}

// NewRoutingModel registers the arc cost and the StopCount dimension
// (no slack, capacity maxStops, at least one stop per vehicle).
func NewRoutingModel(matrix DistanceMatrix, numVehicles, maxStops int) (*RoutingModel, error) {
	if matrix.Size() == 0 {
		return nil, errors.New("new routing model: matrix must include the depot")
	}
	if numVehicles <= 0 {
		return nil, fmt.Errorf("new routing model: num_vehicles=%d: %w", numVehicles, ErrInvalidInstance)
	}
	if maxStops <= 0 {
		return nil, fmt.Errorf("new routing model: max_stops_per_vehicle=%d: %w", maxStops, ErrInvalidInstance)
	}

	stopCount := Dimension{
		Name: StopCountDimension,
		Transit: func(from, _ int) int64 {
			if from == domain.DepotNode {
				return 0
			}
			return 1
		},
		Capacity: int64(maxStops),
		EndMin:   1,
	}

	return newRoutingModel(matrix, numVehicles, maxStops, stopCount), nil
}

func newRoutingModel(matrix DistanceMatrix, numVehicles, maxStops int, dims ...Dimension) *RoutingModel {
	return &RoutingModel{
		matrix:      matrix,
		numVehicles: numVehicles,
		maxStops:    maxStops,
		dimensions:  dims,
	}
}

func (m *RoutingModel) NumNodes() int    { return m.matrix.Size() }
func (m *RoutingModel) NumStops() int    { return m.matrix.Size() - 1 }
func (m *RoutingModel) NumVehicles() int { return m.numVehicles }
func (m *RoutingModel) MaxStops() int    { return m.maxStops }

// ArcCost is the objective contribution of travelling from -> to.
func (m *RoutingModel) ArcCost(from, to int) int64 { return m.matrix.At(from, to) }

// Dimension looks up a dimension by name.
func (m *RoutingModel) Dimension(name string) (Dimension, bool) {
	for _, d := range m.dimensions {
		if d.Name == name {
			return d, true
		}
	}
	return Dimension{}, false
}

// StructurallyFeasible reports whether the StopCount dimension alone admits a full
// assignment: every vehicle reaches its end minimum and the fleet's capacity covers
// every stop. Models without a StopCount dimension are left to the search.
func (m *RoutingModel) StructurallyFeasible() bool {
	d, ok := m.Dimension(StopCountDimension)
	if !ok {
		return true
	}
	n := int64(m.NumStops())
	k := int64(m.numVehicles)
	return k*d.EndMin <= n && k*d.Capacity >= n
}

// RouteCost sums arc costs along depot -> nodes... -> depot.
func (m *RoutingModel) RouteCost(nodes []int) int64 {
	var total int64
	prev := domain.DepotNode
	for _, n := range nodes {
		total += m.ArcCost(prev, n)
		prev = n
	}
	return total + m.ArcCost(prev, domain.DepotNode)
}

// CheckRoute verifies every dimension at every prefix of depot -> nodes... -> depot.
func (m *RoutingModel) CheckRoute(nodes []int) error {
	for _, d := range m.dimensions {
		var cumul int64
		prev := domain.DepotNode
		for _, n := range nodes {
			cumul += d.Transit(prev, n)
			if cumul < 0 || cumul > d.Capacity {
				return fmt.Errorf("dimension %s: cumul %d at node %d outside [0, %d]", d.Name, cumul, n, d.Capacity)
			}
			prev = n
		}
		cumul += d.Transit(prev, domain.DepotNode)
		if cumul > d.Capacity {
			return fmt.Errorf("dimension %s: cumul %d at route end exceeds %d", d.Name, cumul, d.Capacity)
		}
		if cumul < d.EndMin {
			return fmt.Errorf("dimension %s: cumul %d at route end below %d", d.Name, cumul, d.EndMin)
		}
	}
	return nil
}

// routeState tracks the end of a route under construction and its cumul per dimension.
type routeState struct {
	vehicle *domain.Vehicle
	cumuls  []int64
}

func (m *RoutingModel) newRouteState(vehicleID int) *routeState {
	return &routeState{
		vehicle: domain.NewVehicle(vehicleID),
		cumuls:  make([]int64, len(m.dimensions)),
	}
}

// canAppend reports whether node can follow the current route end without any
// dimension exceeding its capacity, including the arc back to the depot.
func (m *RoutingModel) canAppend(rs *routeState, node int) bool {
	last := rs.vehicle.Last()
	for i, d := range m.dimensions {
		c := rs.cumuls[i] + d.Transit(last, node)
		if c < 0 || c > d.Capacity {
			return false
		}
		if end := c + d.Transit(node, domain.DepotNode); end > d.Capacity {
			return false
		}
	}
	return true
}

// closesAfter reports whether the route, extended by node (or as is when node < 0),
// would meet every dimension's end minimum on returning to the depot.
func (m *RoutingModel) closesAfter(rs *routeState, node int) bool {
	last := rs.vehicle.Last()
	for i, d := range m.dimensions {
		c := rs.cumuls[i]
		end := last
		if node >= 0 {
			c += d.Transit(last, node)
			end = node
		}
		if c+d.Transit(end, domain.DepotNode) < d.EndMin {
			return false
		}
	}
	return true
}

func (m *RoutingModel) appendNode(rs *routeState, node int) {
	last := rs.vehicle.Last()
	for i, d := range m.dimensions {
		rs.cumuls[i] += d.Transit(last, node)
	}
	rs.vehicle.Append(node)
}
