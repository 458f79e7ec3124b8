package services

import (
	"context"
	"fmt"

	"vrp-route-service/internal/domain"
	"vrp-route-service/internal/platform/obs"
)

// ImproveRoutes runs a deterministic first-improvement descent over a feasible solution.
//
// Two moves are tried each round: 2-opt inside a route (segment reversal) and
// relocating one stop into another vehicle's route at any position. A move is kept
// only if it strictly lowers total cost and every route still passes CheckRoute.
// The result is never worse than the input. maxRounds <= 0 means one round.
func ImproveRoutes(
	ctx context.Context,
	model *RoutingModel,
	sol *domain.Solution,
	maxRounds int,
) (_ *domain.Solution, err error) {
	defer obs.Time(ctx, "services.ImproveRoutes")(&err)

	if maxRounds <= 0 {
		maxRounds = 1
	}

	routes := make([][]int, len(sol.Routes))
	for i, r := range sol.Routes {
		routes[i] = append([]int(nil), r.Nodes...)
	}

	for round := 0; round < maxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("improve routes: %w", err)
		}

		improved := false
		for i := range routes {
			if twoOptRoute(model, routes, i) {
				improved = true
			}
		}
		if relocateOnce(model, routes) {
			improved = true
		}
		if !improved {
			break
		}
	}

	out := &domain.Solution{Routes: make([]domain.Route, 0, len(routes))}
	for i, nodes := range routes {
		r := domain.Route{
			VehicleID:      sol.Routes[i].VehicleID,
			Nodes:          nodes,
			DistanceMeters: model.RouteCost(nodes),
		}
		out.Routes = append(out.Routes, r)
		out.TotalDistanceMeters += r.DistanceMeters
	}

	return out, nil
}

// twoOptRoute applies improving segment reversals to routes[i] until none is left.
func twoOptRoute(model *RoutingModel, routes [][]int, i int) bool {
	improvedAny := false
	for {
		path := pathOf(routes[i])
		improved := false

		for a := 1; a < len(path)-2 && !improved; a++ {
			for b := a + 1; b < len(path)-1; b++ {
				delta := model.ArcCost(path[a-1], path[b]) + model.ArcCost(path[a], path[b+1]) -
					model.ArcCost(path[a-1], path[a]) - model.ArcCost(path[b], path[b+1])
				if delta >= 0 {
					continue
				}

				candidate := reverseSegment(routes[i], a-1, b-1)
				if model.CheckRoute(candidate) != nil {
					continue
				}
				// Reversal deltas assume symmetric costs; confirm on the full route.
				if model.RouteCost(candidate) >= model.RouteCost(routes[i]) {
					continue
				}
				routes[i] = candidate
				improved = true
				break
			}
		}

		if !improved {
			return improvedAny
		}
		improvedAny = true
	}
}

// relocateOnce moves the first stop found whose relocation lowers total cost.
func relocateOnce(model *RoutingModel, routes [][]int) bool {
	for from := range routes {
		src := pathOf(routes[from])
		for pos := 1; pos < len(src)-1; pos++ {
			node := src[pos]
			gain := model.ArcCost(src[pos-1], node) + model.ArcCost(node, src[pos+1]) -
				model.ArcCost(src[pos-1], src[pos+1])

			for to := range routes {
				if to == from {
					continue
				}
				dst := pathOf(routes[to])
				for at := 1; at < len(dst); at++ {
					cost := model.ArcCost(dst[at-1], node) + model.ArcCost(node, dst[at]) -
						model.ArcCost(dst[at-1], dst[at])
					if cost-gain >= 0 {
						continue
					}

					newFrom := removeAt(routes[from], pos-1)
					newTo := insertAt(routes[to], at-1, node)
					if model.CheckRoute(newFrom) != nil || model.CheckRoute(newTo) != nil {
						continue
					}

					routes[from], routes[to] = newFrom, newTo
					return true
				}
			}
		}
	}
	return false
}

func pathOf(nodes []int) []int {
	path := make([]int, 0, len(nodes)+2)
	path = append(path, domain.DepotNode)
	path = append(path, nodes...)
	return append(path, domain.DepotNode)
}

// reverseSegment returns a copy of nodes with nodes[i..k] reversed.
func reverseSegment(nodes []int, i, k int) []int {
	out := append([]int(nil), nodes...)
	for ; i < k; i, k = i+1, k-1 {
		out[i], out[k] = out[k], out[i]
	}
	return out
}

func removeAt(nodes []int, i int) []int {
	out := make([]int, 0, len(nodes)-1)
	out = append(out, nodes[:i]...)
	return append(out, nodes[i+1:]...)
}

func insertAt(nodes []int, i int, node int) []int {
	out := make([]int, 0, len(nodes)+1)
	out = append(out, nodes[:i]...)
	out = append(out, node)
	return append(out, nodes[i:]...)
}
