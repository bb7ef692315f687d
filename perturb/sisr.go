package perturb

import (
	"math"
	"math/rand"
	"sort"

	"github.com/routewise/ails-cvrp/solution"
)

// SISR implements Slack Induction by String Removals (Christiaens & Vanden
// Berghe 2020), as adopted by spec.md §4.2.
func SISR(rng *rand.Rand, sol *solution.Solution, omega int, cfg SISRConfig) ([]int, error) {
	var nonEmpty []*solution.Route
	for _, r := range sol.Routes {
		if !r.Removed && !r.IsEmpty() {
			nonEmpty = append(nonEmpty, r)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, ErrEmptySolution
	}

	var totalCustomers int
	for _, r := range nonEmpty {
		totalCustomers += r.NumElements - 1 // exclude depot
	}
	avgCard := float64(totalCustomers) / float64(len(nonEmpty))

	ellSMax := minInt(cfg.Lmax, int(math.Floor(avgCard)))
	if ellSMax < 1 {
		ellSMax = 1
	}

	avgRemoved := float64(omega)
	if cfg.AvgRemoved > 0 {
		avgRemoved = cfg.AvgRemoved
	}
	ksMax := int(4*avgRemoved/float64(1+ellSMax)) - 1
	if ksMax < 1 {
		ksMax = 1
	}
	ks := 1 + rng.Intn(ksMax)
	if ks > len(nonEmpty) {
		ks = len(nonEmpty)
	}

	present := presentCustomers(sol)
	if len(present) == 0 {
		return nil, ErrEmptySolution
	}
	seed := present[rng.Intn(len(present))]

	ruinedRoutes := make(map[int]bool)
	var buffer []int
	routesRuined := 0
	for _, nb := range sol.Inst.KNN(seed) {
		if routesRuined >= ks {
			break
		}
		if nb == 0 || !sol.Node(nb).InRoute {
			continue
		}
		route := sol.Routes[sol.Node(nb).RouteIdx]
		if ruinedRoutes[route.ID] {
			continue
		}
		ruinedRoutes[route.ID] = true

		removed, err := sisrRuinRoute(rng, sol, route, nb, ellSMax, cfg)
		if err != nil {
			return nil, err
		}
		if len(removed) > 0 {
			buffer = append(buffer, removed...)
			routesRuined++
		}
	}

	shuffle(rng, buffer)
	return buffer, nil
}

// sisrRuinRoute removes a string (or split string) from route, positioned
// to contain aroundCustomer (spec.md §4.2's regular/split removal).
func sisrRuinRoute(rng *rand.Rand, sol *solution.Solution, route *solution.Route, aroundCustomer int, ellSMax int, cfg SISRConfig) ([]int, error) {
	ids, err := sol.Customers(route)
	if err != nil {
		return nil, err
	}
	n := len(ids)
	if n == 0 {
		return nil, nil
	}

	lt := 1 + rng.Intn(minInt(n, ellSMax))

	pos := 0
	for i, c := range ids {
		if c == aroundCustomer {
			pos = i
			break
		}
	}

	var removedPositions []int
	if lt > 1 && rng.Float64() < cfg.SplitRate {
		removedPositions = splitRemovalPositions(rng, pos, lt, n, cfg.SplitDepth)
	} else {
		start := windowStartContaining(rng, pos, lt, n)
		for i := start; i < start+lt; i++ {
			removedPositions = append(removedPositions, i)
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(removedPositions)))

	removed := make([]int, 0, len(removedPositions))
	for _, p := range removedPositions {
		c := ids[p]
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
		removed = append(removed, c)
	}
	return removed, nil
}

// splitRemovalPositions implements spec.md §4.2's split removal: grow a
// preserved substring of length m (via repeated Bernoulli(splitDepth)
// trials, capped at m_max = lt-1) inside a window of size lt+m containing
// pos, then remove every position in the window except the preserved
// substring.
func splitRemovalPositions(rng *rand.Rand, pos, lt, n int, splitDepth float64) []int {
	mMax := lt - 1
	m := 0
	for m < mMax && rng.Float64() < splitDepth {
		m++
	}

	windowSize := lt + m
	if windowSize > n {
		windowSize = n
	}
	if m > windowSize {
		m = windowSize
	}

	start := windowStartContaining(rng, pos, windowSize, n)
	preserveOffset := 0
	if windowSize-m > 0 {
		preserveOffset = rng.Intn(windowSize - m + 1)
	}
	preserveStart := start + preserveOffset
	preserveEnd := preserveStart + m // exclusive

	var out []int
	for i := start; i < start+windowSize; i++ {
		if i >= preserveStart && i < preserveEnd {
			continue
		}
		out = append(out, i)
	}
	return out
}

// windowStartContaining picks a window start in [0, n-size] such that the
// resulting [start, start+size) window contains pos.
func windowStartContaining(rng *rand.Rand, pos, size, n int) int {
	if size >= n {
		return 0
	}
	lo := pos - size + 1
	if lo < 0 {
		lo = 0
	}
	hi := pos
	if hi > n-size {
		hi = n - size
	}
	if hi < lo {
		hi = lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// SISRRecreate reinserts a destroy buffer using spec.md §4.2's "Recreate
// ordering (SISR repair)": sort the buffer by the chosen key, then for each
// customer scan routes in random order, blinking past candidate positions
// with probability cfg.BlinkRate, taking the minimum-delta feasible
// position overall, and opening a new route if none exists. No fleet cap
// is applied when opening that route.
func SISRRecreate(rng *rand.Rand, sol *solution.Solution, buffer []int, order RecreateOrder, cfg SISRConfig) error {
	sorted := append([]int(nil), buffer...)
	sortByOrder(sol, sorted, order)

	for _, c := range sorted {
		if err := sisrInsertOne(rng, sol, c, cfg); err != nil {
			return err
		}
	}
	return nil
}

func sortByOrder(sol *solution.Solution, ids []int, order RecreateOrder) {
	switch order {
	case OrderDemand:
		sort.Slice(ids, func(i, j int) bool {
			return sol.Node(ids[i]).Demand > sol.Node(ids[j]).Demand
		})
	case OrderFar:
		sort.Slice(ids, func(i, j int) bool {
			return sol.Inst.Dist(0, ids[i]) > sol.Inst.Dist(0, ids[j])
		})
	case OrderClose:
		sort.Slice(ids, func(i, j int) bool {
			return sol.Inst.Dist(0, ids[i]) < sol.Inst.Dist(0, ids[j])
		})
	case OrderRandom:
		// left as given; caller already shuffled the destroy buffer.
	}
}

func sisrInsertOne(rng *rand.Rand, sol *solution.Solution, customer int, cfg SISRConfig) error {
	var routes []*solution.Route
	for _, r := range sol.Routes {
		if !r.Removed {
			routes = append(routes, r)
		}
	}
	rng.Shuffle(len(routes), func(i, j int) { routes[i], routes[j] = routes[j], routes[i] })

	demand := sol.Node(customer).Demand
	bestDelta := math.Inf(1)
	var bestRoute *solution.Route
	var bestAnchor int

	for _, r := range routes {
		if r.TotalDemand+demand > sol.Inst.Capacity {
			continue
		}
		ids, err := sol.Customers(r)
		if err != nil {
			return err
		}
		prevID := 0
		anchorIdx := r.DepotIdx
		for i := 0; i <= len(ids); i++ {
			var nextID int
			if i < len(ids) {
				nextID = ids[i]
			} else {
				nextID = 0
			}
			if rng.Float64() >= cfg.BlinkRate {
				delta := sol.Inst.Dist(prevID, customer) + sol.Inst.Dist(customer, nextID) - sol.Inst.Dist(prevID, nextID)
				if delta < bestDelta {
					bestDelta = delta
					bestRoute = r
					bestAnchor = anchorIdx
				}
			}
			if i < len(ids) {
				prevID = ids[i]
				anchorIdx = ids[i]
			}
		}
	}

	if bestRoute == nil {
		newRoute := sol.NewRoute()
		_, err := sol.AddAfter(newRoute, customer, newRoute.DepotIdx)
		return err
	}
	_, err := sol.AddAfter(bestRoute, customer, bestAnchor)
	return err
}
