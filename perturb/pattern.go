package perturb

import (
	"math/rand"
	"sort"

	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/solution"
)

// customerPatternCounts tallies, per customer, how many times it appears in
// rare versus frequent canonical patterns (spec.md §4.2 "Pattern-based
// removal / injection"). A pattern is "frequent" once its observed count is
// at or above the median count across all tracked patterns; otherwise it is
// "rare".
func customerPatternCounts(patterns *elite.PatternFrequencyMap, sol *solution.Solution, k int) (rare, frequent map[int]int) {
	rare = make(map[int]int)
	frequent = make(map[int]int)

	median := patterns.MedianCount()

	for _, r := range sol.Routes {
		if r.Removed {
			continue
		}
		ids, err := sol.Customers(r)
		if err != nil {
			continue
		}
		seq := make([]int, 0, len(ids)+2)
		seq = append(seq, 0)
		seq = append(seq, ids...)
		seq = append(seq, 0)

		for i := 0; i+k <= len(seq); i++ {
			window := seq[i : i+k]
			count := patterns.CountOf(window)
			isFrequent := count >= median
			for _, c := range window {
				if c == 0 {
					continue
				}
				if isFrequent {
					frequent[c]++
				} else {
					rare[c]++
				}
			}
		}
	}
	return rare, frequent
}

// PatternRemoval scores each present customer by
// (appearances in rare patterns) / (appearances in frequent patterns + 1)
// and removes the top-omega scorers (spec.md §4.2). Requires
// elite.IsMature to hold; returns ErrNotMature otherwise.
func PatternRemoval(rng *rand.Rand, sol *solution.Solution, omega int, patterns *elite.PatternFrequencyMap, k int, mature bool) ([]int, error) {
	if !mature {
		return nil, ErrNotMature
	}
	present := presentCustomers(sol)
	if len(present) == 0 {
		return nil, ErrEmptySolution
	}

	rare, frequent := customerPatternCounts(patterns, sol, k)

	type scored struct {
		id    int
		score float64
	}
	scores := make([]scored, 0, len(present))
	for _, c := range present {
		s := float64(rare[c]) / float64(frequent[c]+1)
		scores = append(scores, scored{c, s})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if omega > len(scores) {
		omega = len(scores)
	}
	staged := make([]int, 0, omega)
	for _, s := range scores[:omega] {
		staged = append(staged, s.id)
	}

	for _, c := range staged {
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
	}
	shuffle(rng, staged)
	return staged, nil
}

// PatternInjection selects high-frequency, non-overlapping canonical
// patterns, removes any present customer not covered by one, and
// force-inserts the selected patterns into the currently least-loaded
// routes, leaving subsequent feasibility repair to resolve any capacity
// violations (spec.md §4.2). Requires elite.IsMature; returns ErrNotMature
// otherwise.
func PatternInjection(rng *rand.Rand, sol *solution.Solution, patterns *elite.PatternFrequencyMap, k int, mature bool) ([]int, error) {
	if !mature {
		return nil, ErrNotMature
	}

	topPatterns := patterns.TopNonOverlappingPatterns(8)
	covered := make(map[int]bool)
	for _, p := range topPatterns {
		for _, c := range p {
			covered[c] = true
		}
	}

	present := presentCustomers(sol)
	var toRemove []int
	for _, c := range present {
		if !covered[c] {
			toRemove = append(toRemove, c)
		}
	}
	for _, c := range toRemove {
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
	}

	leastLoaded := leastLoadedRoutesFirst(sol)
	idx := 0
	for _, p := range topPatterns {
		if len(leastLoaded) == 0 {
			break
		}
		route := leastLoaded[idx%len(leastLoaded)]
		idx++
		anchor := route.DepotIdx
		for _, c := range p {
			if c == 0 {
				continue
			}
			if sol.Node(c).InRoute {
				if err := removeCustomer(sol, c); err != nil {
					return nil, err
				}
			}
			if _, err := sol.AddAfter(route, c, anchor); err == nil {
				anchor = c
			}
		}
	}

	shuffle(rng, toRemove)
	return toRemove, nil
}

func leastLoadedRoutesFirst(sol *solution.Solution) []*solution.Route {
	var routes []*solution.Route
	for _, r := range sol.Routes {
		if !r.Removed {
			routes = append(routes, r)
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].TotalDemand < routes[j].TotalDemand })
	return routes
}
