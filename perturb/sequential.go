package perturb

import (
	"math/rand"

	"github.com/routewise/ails-cvrp/solution"
)

// Sequential removes a random seed customer and walks its route neighbors
// sequentially (forward or backward, chosen at random) until omega
// customers are staged (spec.md §4.2 "Sequential").
func Sequential(rng *rand.Rand, sol *solution.Solution, omega int) ([]int, error) {
	present := presentCustomers(sol)
	if len(present) == 0 {
		return nil, ErrEmptySolution
	}
	if omega > len(present) {
		omega = len(present)
	}

	seed := present[rng.Intn(len(present))]
	route := sol.Routes[sol.Node(seed).RouteIdx]
	order, err := sol.Customers(route)
	if err != nil {
		return nil, err
	}

	seedPos := 0
	for i, c := range order {
		if c == seed {
			seedPos = i
			break
		}
	}

	forward := rng.Intn(2) == 0
	staged := make([]int, 0, omega)
	n := len(order)
	for i := 0; i < n && len(staged) < omega; i++ {
		var idx int
		if forward {
			idx = (seedPos + i) % n
		} else {
			idx = ((seedPos-i)%n + n) % n
		}
		staged = append(staged, order[idx])
	}

	for _, c := range staged {
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
	}
	shuffle(rng, staged)
	return staged, nil
}
