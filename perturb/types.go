package perturb

import (
	"errors"

	"github.com/routewise/ails-cvrp/solution"
)

// Sentinel errors for destroy-operator misuse.
var (
	// ErrEmptySolution indicates a destroy operator was invoked against a
	// solution with no served customers.
	ErrEmptySolution = errors.New("perturb: solution has no served customers")

	// ErrNotMature indicates a pattern-based operator was invoked before
	// elite.IsMature reports the pattern tracker has enough signal.
	ErrNotMature = errors.New("perturb: pattern statistics not yet mature")
)

// RecreateOrder selects how SISR's own repair step orders removed customers
// before reinsertion (spec.md §4.2 "Recreate ordering (SISR repair)").
type RecreateOrder int

const (
	OrderRandom RecreateOrder = iota
	OrderDemand
	OrderFar
	OrderClose
)

// recreateOrderWeights implements the 4:4:2:1 selection weights from
// spec.md §4.2.
var recreateOrderWeights = []struct {
	order  RecreateOrder
	weight int
}{
	{OrderRandom, 4},
	{OrderDemand, 4},
	{OrderFar, 2},
	{OrderClose, 1},
}

// pickRecreateOrder samples a RecreateOrder using a fixed 4:4:2:1 weighting.
func pickRecreateOrder(rng randSource) RecreateOrder {
	total := 0
	for _, w := range recreateOrderWeights {
		total += w.weight
	}
	r := rng.Intn(total)
	for _, w := range recreateOrderWeights {
		if r < w.weight {
			return w.order
		}
		r -= w.weight
	}
	return OrderRandom
}

// randSource is the subset of *rand.Rand the package depends on, so tests
// can substitute a deterministic source.
type randSource interface {
	Intn(n int) int
	Float64() float64
}

// SISRConfig holds SISR's tunable parameters (spec.md §4.2), overridable
// from the parameter file as sisr.maxStringLength|splitRate|splitDepth|
// blinkRate|avgRemoved (spec.md §6).
type SISRConfig struct {
	Lmax       int
	SplitRate  float64
	SplitDepth float64
	BlinkRate  float64

	// AvgRemoved, when positive, is the average removal count SISR uses in
	// its string-count bound k_s; zero (the default) makes SISR use the
	// omega it is called with, i.e. the omega controller output
	// (spec.md §4.5).
	AvgRemoved float64
}

// DefaultSISRConfig returns the defaults used by Christiaens & Vanden
// Berghe's original SISR paper, as adopted by spec.md §4.2.
func DefaultSISRConfig() SISRConfig {
	return SISRConfig{
		Lmax:       10,
		SplitRate:  0.5,
		SplitDepth: 0.5,
		BlinkRate:  0.01,
		AvgRemoved: 0,
	}
}

// removeCustomer strips customer id c from its route and returns it.
// Callers collect these into the destroy buffer.
func removeCustomer(sol *solution.Solution, c int) error {
	_, err := sol.Remove(c)
	return err
}

// shuffle implements the "post-removal shuffle of the buffer before
// repair" shared contract (spec.md §4.2), using Fisher-Yates.
func shuffle(rng randSource, buf []int) {
	for i := len(buf) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		buf[i], buf[j] = buf[j], buf[i]
	}
}

// presentCustomers returns every customer currently assigned to some route.
func presentCustomers(sol *solution.Solution) []int {
	out := make([]int, 0, sol.NumCustomers())
	for id := 1; id <= sol.NumCustomers(); id++ {
		if sol.Node(id).InRoute {
			out = append(out, id)
		}
	}
	return out
}
