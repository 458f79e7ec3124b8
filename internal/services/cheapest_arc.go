package services

import (
	"context"
	"fmt"
	"math"

	"vrp-route-service/internal/domain"
	"vrp-route-service/internal/platform/obs"
)

// BuildRoutes assigns every stop to one vehicle using cheapest-arc construction.
//
// At each step the (vehicle, stop) pair with the cheapest arc from the vehicle's
// current route end is appended, among pairs that keep every dimension within its
// capacity. Pairs that would leave fewer unrouted stops than vehicles still below
// their end minimum are skipped, so a vehicle is never starved of its first stop.
// Ties go to the lowest vehicle index, then the lowest node index.
//
// The search is greedy and never backtracks; it performs at most NumStops steps.
// ErrNoSolution is returned when the instance cannot be covered.
func BuildRoutes(ctx context.Context, model *RoutingModel) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "services.BuildRoutes")(&err)

	if !model.StructurallyFeasible() {
		return nil, fmt.Errorf(
			"build routes: %d vehicles with cap %d cannot serve %d stops: %w",
			model.NumVehicles(), model.MaxStops(), model.NumStops(), ErrNoSolution,
		)
	}

	routes := make([]*routeState, model.NumVehicles())
	for v := range routes {
		routes[v] = model.newRouteState(v)
	}

	routed := make([]bool, model.NumNodes())
	routed[domain.DepotNode] = true
	remaining := model.NumStops()

	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build routes: %w", err)
		}

		// Vehicles whose route would still close below an end minimum.
		unmet := 0
		for _, rs := range routes {
			if !model.closesAfter(rs, -1) {
				unmet++
			}
		}

		bestVehicle, bestNode := -1, -1
		bestCost := int64(math.MaxInt64)

		for v, rs := range routes {
			last := rs.vehicle.Last()
			wasUnmet := !model.closesAfter(rs, -1)

			for node := 1; node < model.NumNodes(); node++ {
				if routed[node] || !model.canAppend(rs, node) {
					continue
				}

				cost := model.ArcCost(last, node)
				if cost >= bestCost {
					continue
				}

				stillUnmet := unmet
				if wasUnmet && model.closesAfter(rs, node) {
					stillUnmet--
				}
				if remaining-1 < stillUnmet {
					continue
				}

				bestCost = cost
				bestVehicle, bestNode = v, node
			}
		}

		if bestVehicle < 0 {
			return nil, fmt.Errorf("build routes: %d stops left unroutable: %w", remaining, ErrNoSolution)
		}

		model.appendNode(routes[bestVehicle], bestNode)
		routed[bestNode] = true
		remaining--
	}

	sol := &domain.Solution{Routes: make([]domain.Route, 0, len(routes))}
	for _, rs := range routes {
		r := rs.vehicle.Route()
		if err := model.CheckRoute(r.Nodes); err != nil {
			return nil, fmt.Errorf("build routes: vehicle %d: %v: %w", r.VehicleID, err, ErrNoSolution)
		}
		r.DistanceMeters = model.RouteCost(r.Nodes)
		sol.Routes = append(sol.Routes, r)
		sol.TotalDistanceMeters += r.DistanceMeters
	}

	return sol, nil
}
