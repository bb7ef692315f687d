package perturb

import (
	"math/rand"

	"github.com/routewise/ails-cvrp/solution"
)

// Concentric removes a random seed customer, then walks its KNN list
// removing each neighbor found in any route until omega removals
// (spec.md §4.2 "Concentric").
func Concentric(rng *rand.Rand, sol *solution.Solution, omega int) ([]int, error) {
	present := presentCustomers(sol)
	if len(present) == 0 {
		return nil, ErrEmptySolution
	}
	if omega > len(present) {
		omega = len(present)
	}

	seed := present[rng.Intn(len(present))]
	staged := make([]int, 0, omega)
	seen := map[int]bool{seed: true}
	staged = append(staged, seed)

	for _, nb := range sol.Inst.KNN(seed) {
		if len(staged) >= omega {
			break
		}
		if nb == 0 || seen[nb] {
			continue
		}
		seen[nb] = true
		if sol.Node(nb).InRoute {
			staged = append(staged, nb)
		}
	}

	for _, c := range staged {
		if err := removeCustomer(sol, c); err != nil {
			return nil, err
		}
	}
	shuffle(rng, staged)
	return staged, nil
}
