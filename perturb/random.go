package perturb

import (
	"math/rand"

	"github.com/routewise/ails-cvrp/solution"
)

// Random samples omega distinct present customers uniformly
// (spec.md §4.2 "Random removal").
func Random(rng *rand.Rand, sol *solution.Solution, omega int) ([]int, error) {
	present := presentCustomers(sol)
	if len(present) == 0 {
		return nil, ErrEmptySolution
	}
	if omega > len(present) {
		omega = len(present)
	}

	rng.Shuffle(len(present), func(i, j int) { present[i], present[j] = present[j], present[i] })
	staged := append([]int(nil), present[:omega]...)

	for _, c := range staged {
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
	}
	shuffle(rng, staged)
	return staged, nil
}
