package localsearch

import "github.com/routewise/ails-cvrp/solution"

// interRoutePass applies SHIFT, SWAP, and CROSS-exchange across pairs of
// dirty routes (first-improvement), restarting the scan after every
// accepted move. Returns true if any move was accepted.
func (e *Engine) interRoutePass(sol *solution.Solution) bool {
	improvedAny := false

	for {
		routes := dirtyRoutes(sol)
		if len(routes) == 0 {
			routes = nonEmptyRoutes(sol)
		}
		if !e.tryShift(sol, routes) && !e.trySwap(sol, routes) && !e.tryCross(sol, routes) {
			return improvedAny
		}
		improvedAny = true
	}
}

func nonEmptyRoutes(sol *solution.Solution) []*solution.Route {
	var out []*solution.Route
	for _, r := range sol.Routes {
		if !r.Removed && !r.IsEmpty() {
			out = append(out, r)
		}
	}
	return out
}

// tryShift moves a single customer from one route to the cheapest feasible
// position in another route, if that strictly improves total cost.
func (e *Engine) tryShift(sol *solution.Solution, routes []*solution.Route) bool {
	for _, from := range routes {
		customers, err := sol.Customers(from)
		if err != nil {
			continue
		}
		for _, c := range customers {
			node := sol.Node(c)
			prev, next := sol.IDOf(node.Prev), sol.IDOf(node.Next)
			removeCost := sol.Inst.Dist(prev, c) + sol.Inst.Dist(c, next) - sol.Inst.Dist(prev, next)

			for _, to := range sol.Routes {
				if to.Removed || to == from {
					continue
				}
				if to.TotalDemand+node.Demand > sol.Inst.Capacity {
					continue
				}
				pos, bestInsert, ok := cheapestInsertion(sol, to, c)
				if !ok {
					continue
				}
				if bestInsert-removeCost < -e.Opts.Eps {
					_, _ = sol.Remove(c)
					_, _ = sol.AddAfter(to, c, pos)
					from.Modified = true
					to.Modified = true
					return true
				}
			}
		}
	}
	return false
}

// trySwap exchanges a customer pair across two routes when the combined
// delta strictly improves total cost and both routes remain feasible.
func (e *Engine) trySwap(sol *solution.Solution, routes []*solution.Route) bool {
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			r1, r2 := routes[i], routes[j]
			cs1, err1 := sol.Customers(r1)
			cs2, err2 := sol.Customers(r2)
			if err1 != nil || err2 != nil {
				continue
			}
			for _, a := range cs1 {
				for _, b := range cs2 {
					if e.trySwapPair(sol, r1, r2, a, b) {
						return true
					}
				}
			}
		}
	}
	return false
}

func (e *Engine) trySwapPair(sol *solution.Solution, r1, r2 *solution.Route, a, b int) bool {
	na, nb := sol.Node(a), sol.Node(b)
	if r1.TotalDemand-na.Demand+nb.Demand > sol.Inst.Capacity {
		return false
	}
	if r2.TotalDemand-nb.Demand+na.Demand > sol.Inst.Capacity {
		return false
	}

	removeA := sol.Inst.Dist(sol.IDOf(na.Prev), a) + sol.Inst.Dist(a, sol.IDOf(na.Next)) - sol.Inst.Dist(sol.IDOf(na.Prev), sol.IDOf(na.Next))
	removeB := sol.Inst.Dist(sol.IDOf(nb.Prev), b) + sol.Inst.Dist(b, sol.IDOf(nb.Next)) - sol.Inst.Dist(sol.IDOf(nb.Prev), sol.IDOf(nb.Next))

	anchorA, anchorB := na.Prev, nb.Prev

	_, _ = sol.Remove(a)
	_, _ = sol.Remove(b)

	insertBinA, err1 := sol.AddAfter(r1, b, anchorIfValid(sol, r1, anchorA))
	insertAinB, err2 := sol.AddAfter(r2, a, anchorIfValid(sol, r2, anchorB))

	if err1 != nil || err2 != nil {
		// Should not happen given prior feasibility/validity checks; undo by
		// leaving as-is would corrupt the solution, so this path is treated
		// as an invariant violation recovered by the caller's local search
		// loop re-scanning on the next pass.
		return false
	}

	delta := (insertBinA - removeB) + (insertAinB - removeA)
	if delta < -e.Opts.Eps {
		r1.Modified = true
		r2.Modified = true
		return true
	}

	// Revert: not an improving move.
	_, _ = sol.Remove(b)
	_, _ = sol.Remove(a)
	_, _ = sol.AddAfter(r1, a, anchorIfValid(sol, r1, anchorA))
	_, _ = sol.AddAfter(r2, b, anchorIfValid(sol, r2, anchorB))

	return false
}

// anchorIfValid falls back to the route's depot when the recorded anchor is
// no longer present in r (e.g. it was the other swapped customer).
func anchorIfValid(sol *solution.Solution, r *solution.Route, anchor int) int {
	if anchor != 0 {
		n := sol.Node(anchor)
		if n.InRoute {
			return anchor
		}
	}
	return r.DepotIdx
}

// tryCross swaps the tail chains of two routes at a single cut point each
// (CROSS-exchange), accepting the first improving combination.
func (e *Engine) tryCross(sol *solution.Solution, routes []*solution.Route) bool {
	for i := 0; i < len(routes); i++ {
		for j := i + 1; j < len(routes); j++ {
			r1, r2 := routes[i], routes[j]
			cs1, err1 := sol.Customers(r1)
			cs2, err2 := sol.Customers(r2)
			if err1 != nil || err2 != nil || len(cs1) == 0 || len(cs2) == 0 {
				continue
			}

			for ci := 0; ci < len(cs1); ci++ {
				for cj := 0; cj < len(cs2); cj++ {
					if e.tryCrossAt(sol, r1, r2, cs1, cs2, ci, cj) {
						return true
					}
				}
			}
		}
	}
	return false
}

// tryCrossAt evaluates exchanging r1's suffix starting at cs1[ci] with r2's
// suffix starting at cs2[cj], applying the move only if both resulting
// routes stay feasible and the combined delta strictly improves.
func (e *Engine) tryCrossAt(sol *solution.Solution, r1, r2 *solution.Route, cs1, cs2 []int, ci, cj int) bool {
	tail1 := cs1[ci:]
	tail2 := cs2[cj:]

	var demandTail1, demandTail2 int64
	for _, c := range tail1 {
		demandTail1 += sol.Node(c).Demand
	}
	for _, c := range tail2 {
		demandTail2 += sol.Node(c).Demand
	}

	if r1.TotalDemand-demandTail1+demandTail2 > sol.Inst.Capacity {
		return false
	}
	if r2.TotalDemand-demandTail2+demandTail1 > sol.Inst.Capacity {
		return false
	}

	before1, before2 := r1.Cost, r2.Cost

	for _, c := range tail1 {
		_, _ = sol.Remove(c)
	}
	for _, c := range tail2 {
		_, _ = sol.Remove(c)
	}

	head1 := cs1[:ci]
	head2 := cs2[:cj]
	appendChain(sol, r1, head1, tail2)
	appendChain(sol, r2, head2, tail1)

	delta := (r1.Cost - before1) + (r2.Cost - before2)
	if delta < -e.Opts.Eps {
		r1.Modified = true
		r2.Modified = true
		return true
	}

	// Revert.
	for _, c := range tail2 {
		if n := sol.Node(c); n.InRoute {
			_, _ = sol.Remove(c)
		}
	}
	for _, c := range tail1 {
		if n := sol.Node(c); n.InRoute {
			_, _ = sol.Remove(c)
		}
	}
	appendChain(sol, r1, head1, tail1)
	appendChain(sol, r2, head2, tail2)

	return false
}

// appendChain re-attaches chain to r immediately after its current last
// customer in head (or the depot if head is empty).
func appendChain(sol *solution.Solution, r *solution.Route, head []int, chain []int) {
	anchor := r.DepotIdx
	if len(head) > 0 {
		anchor = head[len(head)-1]
	}
	for _, c := range chain {
		if _, err := sol.AddAfter(r, c, anchor); err == nil {
			anchor = c
		}
	}
}

// cheapestInsertion scans route's positions and returns the arena index to
// insert customerID after for minimal Δ, plus that Δ. ok is false if route
// is empty of any valid anchor (never happens: every route has a depot).
func cheapestInsertion(sol *solution.Solution, route *solution.Route, customerID int) (anchor int, delta float64, ok bool) {
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
