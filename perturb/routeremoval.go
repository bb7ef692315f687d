package perturb

import (
	"math/rand"

	"github.com/routewise/ails-cvrp/solution"
)

// RouteRemoval shuffles the non-empty routes and removes whole routes in
// that order until omega customers are staged or a 25%-of-fleet cap is
// hit. Falls back to Random if at most one non-empty route exists
// (spec.md §4.2 "RouteRemoval").
func RouteRemoval(rng *rand.Rand, sol *solution.Solution, omega int) ([]int, error) {
	var nonEmpty []*solution.Route
	for _, r := range sol.Routes {
		if !r.Removed && !r.IsEmpty() {
			nonEmpty = append(nonEmpty, r)
		}
	}
	if len(nonEmpty) <= 1 {
		return Random(rng, sol, omega)
	}

	rng.Shuffle(len(nonEmpty), func(i, j int) { nonEmpty[i], nonEmpty[j] = nonEmpty[j], nonEmpty[i] })

	maxRoutes := (len(nonEmpty) + 3) / 4 // 25% of fleet, rounded up, at least 1
	if maxRoutes < 1 {
		maxRoutes = 1
	}

	staged := make([]int, 0, omega)
	routesTaken := 0
	for _, r := range nonEmpty {
		if len(staged) >= omega || routesTaken >= maxRoutes {
			break
		}
		ids, err := sol.Customers(r)
		if err != nil {
			return nil, err
		}
		staged = append(staged, ids...)
		routesTaken++
	}

	for _, c := range staged {
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
	}
	shuffle(rng, staged)
	return staged, nil
}
