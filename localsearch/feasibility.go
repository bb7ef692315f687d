package localsearch

import "github.com/routewise/ails-cvrp/solution"

// RepairFeasibility relocates customers out of over-capacity routes into any
// feasible route, opening a new route if the fleet ceiling allows, until
// every route is within capacity. It runs before full local search,
// matching spec.md §4.4: "Feasibility repair runs first when the
// post-perturbation solution is over-capacity."
func (e *Engine) RepairFeasibility(sol *solution.Solution, maxRoutes int) {
	for {
		over := mostOverCapacity(sol)
		if over == nil {
			return
		}

		customers, err := sol.Customers(over)
		if err != nil || len(customers) == 0 {
			return
		}

		moved := false
		for _, c := range customers {
			if over.TotalDemand <= sol.Inst.Capacity {
				break
			}
			if e.relocateToAnyFeasible(sol, over, c, maxRoutes) {
				moved = true
			}
		}
		if !moved {
			// Cannot restore feasibility; leave as-is for the caller's
			// fallback (insert-regardless-of-capacity is the repair
			// package's responsibility, see spec.md §4.11).
			return
		}
	}
}

// mostOverCapacity returns the non-removed route with the largest capacity
// violation, or nil if all routes are feasible.
func mostOverCapacity(sol *solution.Solution) *solution.Route {
	var worst *solution.Route
	var worstExcess int64
	for _, r := range sol.Routes {
		if r.Removed {
			continue
		}
		excess := r.TotalDemand - sol.Inst.Capacity
		if excess > worstExcess {
			worstExcess = excess
			worst = r
		}
	}
	return worst
}

// relocateToAnyFeasible tries to move customer c out of "from" into the
// cheapest feasible position among existing routes, or a newly opened route
// if the fleet ceiling (0 == unbounded) allows it.
func (e *Engine) relocateToAnyFeasible(sol *solution.Solution, from *solution.Route, c int, maxRoutes int) bool {
	node := sol.Node(c)
	bestRoute := (*solution.Route)(nil)
	bestAnchor := 0
	bestDelta := 0.0
	first := true

	for _, to := range sol.Routes {
		if to.Removed || to == from {
			continue
		}
		if to.TotalDemand+node.Demand > sol.Inst.Capacity {
			continue
		}
		anchor, delta, ok := cheapestInsertion(sol, to, c)
		if !ok {
			continue
		}
		if first || delta < bestDelta {
			bestDelta, bestAnchor, bestRoute, first = delta, anchor, to, false
		}
	}

	if bestRoute != nil {
		_, _ = sol.Remove(c)
		_, _ = sol.AddAfter(bestRoute, c, bestAnchor)
		from.Modified = true
		bestRoute.Modified = true
		return true
	}

	if maxRoutes == 0 || sol.NumRoutes() < maxRoutes {
		_, _ = sol.Remove(c)
		nr := sol.NewRoute()
		_, _ = sol.AddAfter(nr, c, nr.DepotIdx)
		from.Modified = true
		return true
	}

	return false
}
