package services

import (
	"fmt"

	"vrp-route-service/internal/domain"
)

// VerifySolution checks that sol is a complete assignment for model: one route per
// vehicle in index order, every stop visited exactly once and every route within
// its dimension bounds. A failure here is a defect in the search, not bad input.
func VerifySolution(model *RoutingModel, sol *domain.Solution) error {
	if len(sol.Routes) != model.NumVehicles() {
		return fmt.Errorf("verify solution: %d routes for %d vehicles", len(sol.Routes), model.NumVehicles())
	}

	seen := make([]bool, model.NumNodes())
	visited := 0
	for i, r := range sol.Routes {
		if r.VehicleID != i {
			return fmt.Errorf("verify solution: route %d belongs to vehicle %d", i, r.VehicleID)
		}
		for _, node := range r.Nodes {
			if node <= domain.DepotNode || node >= model.NumNodes() {
				return fmt.Errorf("verify solution: vehicle %d visits invalid node %d", i, node)
			}
			if seen[node] {
				return fmt.Errorf("verify solution: node %d routed twice", node)
			}
			seen[node] = true
			visited++
		}
		if err := model.CheckRoute(r.Nodes); err != nil {
			return fmt.Errorf("verify solution: vehicle %d: %w", i, err)
		}
	}

	if visited != model.NumStops() {
		return fmt.Errorf("verify solution: %d of %d stops routed", visited, model.NumStops())
	}
	return nil
}
