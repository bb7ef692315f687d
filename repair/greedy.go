package repair

import "github.com/routewise/ails-cvrp/solution"

// GreedyInsert inserts every customer in pending (the slice itself is not
// modified) using cheapest-insertion restricted to each customer's KNN list,
// falling back to a full linear scan across all routes if no inserted KNN
// neighbor yields a feasible position. maxRoutes == 0 means unbounded fleet.
//
// variant == GreedyDistance examines only the single nearest inserted
// neighbor; GreedyCost examines up to phi nearest inserted neighbors
// (spec.md §4.3).
func GreedyInsert(sol *solution.Solution, pending []int, variant GreedyVariant, phi int, maxRoutes int) error {
	if variant == GreedyDistance {
		phi = 1
	} else if phi <= 0 {
		phi = len(sol.Inst.KNN(0)) // effectively "examine them all"
	}

	for _, c := range pending {
		if err := greedyInsertOne(sol, c, phi, maxRoutes); err != nil {
			return err
		}
	}
	return nil
}

func greedyInsertOne(sol *solution.Solution, c int, phi int, maxRoutes int) error {
	best, ok := bestPositionViaKNN(sol, c, phi)
	if !ok {
		best, ok = bestPositionLinear(sol, c)
	}
	if !ok {
		if maxRoutes == 0 || sol.NumRoutes() < maxRoutes {
			nr := sol.NewRoute()
			_, err := sol.AddAfter(nr, c, nr.DepotIdx)
			return err
		}
		return ErrNoFeasiblePosition
	}

	route := routeByID(sol, best.RouteID)
	if route == nil {
		// Stale: fall back to a linear scan rather than fail the whole pass.
		best, ok = bestPositionLinear(sol, c)
		if !ok {
			return ErrNoFeasiblePosition
		}
		route = routeByID(sol, best.RouteID)
	}
	_, err := sol.AddAfter(route, c, best.PrevID)
	return err
}

// bestPositionViaKNN restricts the search to routes containing one of c's
// nearest phi neighbors that are currently inserted.
func bestPositionViaKNN(sol *solution.Solution, c int, phi int) (Position, bool) {
	nbrs := sol.Inst.KNN(c)
	seenRoutes := make(map[int]bool)
	best := Position{}
	found := false
	examined := 0

	for _, nb := range nbrs {
		if examined >= phi {
			break
		}
		if nb == 0 {
			continue // depot is not "inserted" in the KNN-neighbor sense
		}
		node := sol.Node(nb)
		if !node.InRoute {
			continue
		}
		examined++
		if seenRoutes[node.RouteIdx] {
			continue
		}
		seenRoutes[node.RouteIdx] = true

		route := sol.Routes[node.RouteIdx]
		if route.TotalDemand+sol.Node(c).Demand > sol.Inst.Capacity {
			continue
		}
		pos, delta, ok := cheapestInRoute(sol, route, c)
		if !ok {
			continue
		}
		if !found || delta < best.Delta {
			best = Position{RouteID: route.ID, PrevID: pos, Delta: delta, CustomerID: c}
			found = true
		}
	}

	return best, found
}

// bestPositionLinear scans every feasible route's insertion positions.
func bestPositionLinear(sol *solution.Solution, c int) (Position, bool) {
	best := Position{}
	found := false
	for _, route := range sol.Routes {
		if route.Removed {
			continue
		}
		if route.TotalDemand+sol.Node(c).Demand > sol.Inst.Capacity {
			continue
		}
		pos, delta, ok := cheapestInRoute(sol, route, c)
		if !ok {
			continue
		}
		if !found || delta < best.Delta {
			best = Position{RouteID: route.ID, PrevID: pos, Delta: delta, CustomerID: c}
			found = true
		}
	}
	return best, found
}

// cheapestInRoute scans every position in route and returns the arena index
// to insert customerID after for minimal Δ.
func cheapestInRoute(sol *solution.Solution, route *solution.Route, customerID int) (anchor int, delta float64, ok bool) {
	cur := route.DepotIdx
	best := route.DepotIdx
	bestDelta := 0.0
	first := true

	for i := 0; i < route.NumElements; i++ {
		next := sol.Node(cur).Next
		curID, nextID := sol.IDOf(cur), sol.IDOf(next)
		d := sol.Inst.Dist(curID, customerID) + sol.Inst.Dist(customerID, nextID) - sol.Inst.Dist(curID, nextID)
		if first || d < bestDelta {
			bestDelta = d
			best = cur
			first = false
		}
		cur = next
	}

	return best, bestDelta, true
}

// routeByID finds a non-removed route by its stable ID.
func routeByID(sol *solution.Solution, id int) *solution.Route {
	for _, r := range sol.Routes {
		if !r.Removed && r.ID == id {
			return r
		}
	}
	return nil
}
