package relink

import (
	"math/rand"

	"github.com/routewise/ails-cvrp/elite"
)

// selectPair implements spec.md §4.7 step 1: snapshot the elite set, group
// entries by route count, pick the largest group with >= 2 entries, then
// roulette-select two entries weighted by combined score (offset so every
// weight is positive), rejecting pairs with equal objective.
func selectPair(rng *rand.Rand, es *elite.EliteSet) (pair, bool) {
	snapshot := es.Snapshot()
	if len(snapshot) < 2 {
		return pair{}, false
	}

	groups := make(map[int][]*elite.EliteSolution)
	for _, e := range snapshot {
		n := e.Sol.NumRoutes()
		groups[n] = append(groups[n], e)
	}

	var best []*elite.EliteSolution
	for _, g := range groups {
		if len(g) >= 2 && len(g) > len(best) {
			best = g
		}
	}
	if len(best) < 2 {
		return pair{}, false
	}

	for attempt := 0; attempt < 10; attempt++ {
		a := rouletteSelect(rng, best, nil)
		b := rouletteSelect(rng, best, a)
		if a == nil || b == nil || a == b {
			continue
		}
		if a.F == b.F {
			continue
		}
		return pair{a: a, b: b}, true
	}
	return pair{}, false
}

// rouletteSelect picks one entry weighted by combined score, offsetting
// weights so every candidate is positive; exclude is skipped if non-nil.
func rouletteSelect(rng *rand.Rand, entries []*elite.EliteSolution, exclude *elite.EliteSolution) *elite.EliteSolution {
	minScore := entries[0].Score
	for _, e := range entries {
		if e.Score < minScore {
			minScore = e.Score
		}
	}
	offset := 0.0
	if minScore <= 0 {
		offset = -minScore + 1e-6
	}

	var total float64
	weights := make([]float64, len(entries))
	for i, e := range entries {
		if e == exclude {
			continue
		}
		w := e.Score + offset
		weights[i] = w
		total += w
	}
	if total <= 0 {
		return nil
	}

	r := rng.Float64() * total
	for i, e := range entries {
		if e == exclude {
			continue
		}
		r -= weights[i]
		if r <= 0 {
			return e
		}
	}
	return entries[len(entries)-1]
}
