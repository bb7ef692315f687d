package repair

import "github.com/routewise/ails-cvrp/solution"

// RegretKOptions configures Regret-k insertion.
type RegretKOptions struct {
	// K is the regret width (spec default 3).
	K int

	// MaxRoutes bounds the fleet; 0 means unbounded.
	MaxRoutes int

	// RandomNoise is carried on the options but not read by RegretKInsert:
	// candidate deltas are ranked without noise whatever its value.
	RandomNoise float64

	// Rand is likewise not read by RegretKInsert.
	Rand func() float64
}

// RegretKInsert inserts every customer in pending using the incremental
// regret cache: repeatedly pop the maximum-regret customer, validate its
// best cached position, insert it, and invalidate affected caches
// (spec.md §4.3). Falls back to opening a new route, then to a cheapest
// position at any route regardless of capacity, per spec.md §4.11.
func RegretKInsert(sol *solution.Solution, pending []int, opts RegretKOptions) error {
	if opts.K < 2 {
		opts.K = 2
	}

	pending, err := bootstrapFirstRoute(sol, pending)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		return ValidateComplete(sol)
	}

	cache := NewCache(sol, pending, opts.K)

	remaining := make(map[int]bool, len(pending))
	for _, p := range pending {
		remaining[p] = true
	}

	for len(remaining) > 0 {
		c, pos, ok := cache.Pop()
		if !ok {
			break
		}
		route := routeByID(sol, pos.RouteID)
		if route == nil {
			continue
		}
		if _, err := sol.AddAfter(route, c, pos.PrevID); err != nil {
			continue
		}
		cache.Commit(c, pos)
		delete(remaining, c)
	}

	// Anything left has no feasible cached position: open new routes where
	// the fleet ceiling allows, else force-insert at the cheapest position
	// regardless of capacity (spec.md §4.11's last-resort fallback).
	for c := range remaining {
		if opts.MaxRoutes == 0 || sol.NumRoutes() < opts.MaxRoutes {
			nr := sol.NewRoute()
			if _, err := sol.AddAfter(nr, c, nr.DepotIdx); err == nil {
				continue
			}
		}
		if !forceInsertCheapest(sol, c) {
			return ErrNoFeasiblePosition
		}
	}

	return ValidateComplete(sol)
}

// bootstrapFirstRoute opens a route for pending[0] when the solution
// currently has no route at all, since every cheapest-insertion candidate
// search requires at least one route to anchor against. Returns the
// remaining pending customers.
func bootstrapFirstRoute(sol *solution.Solution, pending []int) ([]int, error) {
	if sol.NumRoutes() > 0 || len(pending) == 0 {
		return pending, nil
	}
	nr := sol.NewRoute()
	if _, err := sol.AddAfter(nr, pending[0], nr.DepotIdx); err != nil {
		return nil, err
	}
	return pending[1:], nil
}

// forceInsertCheapest inserts c at the globally cheapest position across
// every non-removed route, ignoring capacity.
func forceInsertCheapest(sol *solution.Solution, c int) bool {
	best := Position{}
	found := false
	for _, route := range sol.Routes {
		if route.Removed {
			continue
		}
		anchor, delta, ok := cheapestInRoute(sol, route, c)
		if ok && (!found || delta < best.Delta) {
			best = Position{RouteID: route.ID, PrevID: anchor, Delta: delta}
			found = true
		}
	}
	if !found {
		return false
	}
	route := routeByID(sol, best.RouteID)
	_, err := sol.AddAfter(route, c, best.PrevID)
	return err == nil
}

// ValidateComplete force-inserts, on the first route, any customer still
// missing from the solution after a repair pass — the "validation pass at
// the end of repair" required by spec.md §4.11.
func ValidateComplete(sol *solution.Solution) error {
	missing := make([]int, 0)
	present := make([]bool, sol.Inst.N+1)
	for _, r := range sol.Routes {
		if r.Removed {
			continue
		}
		cs, err := sol.Customers(r)
		if err != nil {
			continue
		}
		for _, c := range cs {
			present[c] = true
		}
	}
	for id := 1; id <= sol.Inst.N; id++ {
		if !present[id] {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if len(sol.Routes) == 0 {
		sol.NewRoute()
	}
	first := firstActiveRoute(sol)
	for _, c := range missing {
		if _, err := sol.AddAfter(first, c, first.DepotIdx); err != nil {
			return err
		}
	}
	return nil
}

func firstActiveRoute(sol *solution.Solution) *solution.Route {
	for _, r := range sol.Routes {
		if !r.Removed {
			return r
		}
	}
	return sol.NewRoute()
}
