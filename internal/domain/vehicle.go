package domain

// Vehicle is a route under construction.
// It starts at the depot and grows by appending stop nodes at its end.
type Vehicle struct {
	VehicleID int
	Nodes     []int
}

func NewVehicle(id int) *Vehicle {
	return &Vehicle{VehicleID: id}
}

// Append a stop node to the end of the route.
func (v *Vehicle) Append(node int) {
	v.Nodes = append(v.Nodes, node)
}

// Last returns the node at the current end of the route, or the depot when empty.
func (v *Vehicle) Last() int {
	if len(v.Nodes) == 0 {
		return DepotNode
	}
	return v.Nodes[len(v.Nodes)-1]
}

// Route freezes the vehicle's nodes into a Route.
func (v *Vehicle) Route() Route {
	nodes := make([]int, len(v.Nodes))
	copy(nodes, v.Nodes)
	return Route{VehicleID: v.VehicleID, Nodes: nodes}
}
