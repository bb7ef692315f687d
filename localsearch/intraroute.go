package localsearch

import "github.com/routewise/ails-cvrp/solution"

// intraRoutePass applies 2-opt then or-opt to every dirty route, rebuilding
// improved routes in place. Returns true if any route's cost decreased.
func (e *Engine) intraRoutePass(sol *solution.Solution) bool {
	improved := false
	for _, r := range dirtyRoutes(sol) {
		if e.twoOptRoute(sol, r) {
			improved = true
		}
		if e.orOptRoute(sol, r) {
			improved = true
		}
	}
	return improved
}

// twoOptRoute runs deterministic first-improvement 2-opt on one route's
// customer sequence: build the order array, scan segment reversals for
// improving deltas, and on the first improving reversal rebuild the route
// through Remove/AddAfter. Returns true if the route improved at least once.
func (e *Engine) twoOptRoute(sol *solution.Solution, r *solution.Route) bool {
	improvedAny := false

	for {
		order, err := sol.Customers(r)
		if err != nil || len(order) < 2 {
			return improvedAny
		}

		seq := append([]int{r.DepotIdx}, order...)
		seq = append(seq, r.DepotIdx)
		n := len(seq)

		bestDelta := -e.Opts.Eps
		bestI, bestJ := -1, -1

	scan:
		for i := 1; i < n-2; i++ {
			a, b := sol.IDOf(seq[i-1]), sol.IDOf(seq[i])
			for j := i + 1; j < n-1; j++ {
				c, d := sol.IDOf(seq[j]), sol.IDOf(seq[j+1])
				delta := sol.Inst.Dist(a, c) + sol.Inst.Dist(b, d) - sol.Inst.Dist(a, b) - sol.Inst.Dist(c, d)
				if delta < bestDelta {
					bestI, bestJ = i, j
					break scan
				}
			}
		}

		if bestI < 0 {
			return improvedAny
		}

		reverse(seq[bestI : bestJ+1])
		rebuildRoute(sol, r, seq[1:n-1])
		improvedAny = true
	}
}

// orOptRoute relocates chains of length 1..MaxOrOptChain to a cheaper
// position within the same route (first-improvement), matching spec.md
// §4.4's or-opt neighborhood.
func (e *Engine) orOptRoute(sol *solution.Solution, r *solution.Route) bool {
	improvedAny := false

	for {
		order, err := sol.Customers(r)
		if err != nil || len(order) < 2 {
			return improvedAny
		}
		seq := append([]int{r.DepotIdx}, order...)
		seq = append(seq, r.DepotIdx)
		n := len(seq)

		found := false
		for chain := 1; chain <= e.Opts.MaxOrOptChain && !found; chain++ {
			if chain+2 > n-1 {
				continue
			}
			for start := 1; start+chain-1 < n-1 && !found; start++ {
				end := start + chain - 1
				p, q := sol.IDOf(seq[start-1]), sol.IDOf(seq[end+1])
				segStart, segEnd := seq[start], seq[end]
				removeCost := sol.Inst.Dist(p, segStart) + sol.Inst.Dist(segEnd, q) - sol.Inst.Dist(p, q)

				for pos := 1; pos < n-1; pos++ {
					if pos >= start-1 && pos <= end+1 {
						continue // overlaps the chain being moved
					}
					u, v := sol.IDOf(seq[pos]), sol.IDOf(seq[pos+1])
					insertCost := sol.Inst.Dist(u, segStart) + sol.Inst.Dist(segEnd, v) - sol.Inst.Dist(u, v)
					if insertCost-removeCost < -e.Opts.Eps {
						seq = relocateChain(seq, start, end, pos)
						found = true
						break
					}
				}
			}
		}

		if !found {
			return improvedAny
		}
		rebuildRoute(sol, r, seq[1:len(seq)-1])
		improvedAny = true
	}
}

// reverse flips a slice in place.
func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// relocateChain moves seq[start:end+1] to immediately after index pos in a
// fresh slice; pos is an index into the original seq, not the chain.
func relocateChain(seq []int, start, end, pos int) []int {
	chain := append([]int(nil), seq[start:end+1]...)
	rest := append([]int(nil), seq[:start]...)
	rest = append(rest, seq[end+1:]...)

	// Find pos's node value to relocate after, since indices shifted once
	// the chain was excised.
	anchor := seq[pos]
	out := make([]int, 0, len(seq))
	for _, v := range rest {
		out = append(out, v)
		if v == anchor {
			out = append(out, chain...)
		}
	}
	return out
}

// rebuildRoute clears r of its current customers and reinserts order (a
// customer-id sequence, depot excluded) in that order. Used by 2-opt/or-opt
// once an improving reordering is found; acceptable because these passes
// only rebuild on an accepted move, not per candidate check.
func rebuildRoute(sol *solution.Solution, r *solution.Route, order []int) {
	customers, err := sol.Customers(r)
	if err != nil {
		return
	}
	for _, c := range customers {
		_, _ = sol.Remove(c)
	}
	anchor := r.DepotIdx
	for _, c := range order {
		_, _ = sol.AddAfter(r, c, anchor)
		anchor = c
	}
}
