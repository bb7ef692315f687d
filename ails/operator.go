package ails

import (
	"math/rand"

	"github.com/routewise/ails-cvrp/diversity"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/perturb"
	"github.com/routewise/ails-cvrp/repair"
	"github.com/routewise/ails-cvrp/solution"
)

// DestroyKind names one perturbation operator from spec.md §4.2.
type DestroyKind int

const (
	Sequential DestroyKind = iota
	Concentric
	SISR
	RouteRemoval
	Random
	PatternRemoval
	PatternInjection
)

func (k DestroyKind) String() string {
	switch k {
	case Sequential:
		return "Sequential"
	case Concentric:
		return "Concentric"
	case SISR:
		return "SISR"
	case RouteRemoval:
		return "RouteRemoval"
	case Random:
		return "Random"
	case PatternRemoval:
		return "PatternRemoval"
	case PatternInjection:
		return "PatternInjection"
	default:
		return "Unknown"
	}
}

// InsertionKind names one insertion heuristic from spec.md §4.3.
type InsertionKind int

const (
	GreedyDistance InsertionKind = iota
	GreedyCost
	RegretK
)

// operatorState bundles one destroy operator with its own adaptive omega
// controller (spec.md §4.5: "each destroy operator its own feedback
// loop").
type operatorState struct {
	kind  DestroyKind
	omega *diversity.OmegaController
}

// applyPerturbation runs destroy kind op on sol, removing up to
// omega customers, then repairs with insertionKind (except SISR, which
// always uses its own paired recreate per spec.md §4.2). Returns the
// first error from the destroy or repair step, or nil.
func applyPerturbation(
	rng *rand.Rand,
	sol *solution.Solution,
	op DestroyKind,
	omega int,
	insertion InsertionKind,
	sisrCfg perturb.SISRConfig,
	regretOpts repair.RegretKOptions,
	greedyPhi int,
	maxRoutes int,
	patterns *elite.PatternFrequencyMap,
	patternK int,
	mature bool,
) error {
	var (
		removed []int
		err     error
	)

	switch op {
	case Sequential:
		removed, err = perturb.Sequential(rng, sol, omega)
	case Concentric:
		removed, err = perturb.Concentric(rng, sol, omega)
	case SISR:
		removed, err = perturb.SISR(rng, sol, omega, sisrCfg)
	case RouteRemoval:
		removed, err = perturb.RouteRemoval(rng, sol, omega)
	case Random:
		removed, err = perturb.Random(rng, sol, omega)
	case PatternRemoval:
		removed, err = perturb.PatternRemoval(rng, sol, omega, patterns, patternK, mature)
	case PatternInjection:
		removed, err = perturb.PatternInjection(rng, sol, patterns, patternK, mature)
	}
	if err != nil {
		return err
	}
	if len(removed) == 0 {
		return nil
	}

	if op == SISR {
		order := pickRecreateOrderExported(rng)
		return perturb.SISRRecreate(rng, sol, removed, order, sisrCfg)
	}

	switch insertion {
	case RegretK:
		return repair.RegretKInsert(sol, removed, regretOpts)
	case GreedyCost:
		return repair.GreedyInsert(sol, removed, repair.GreedyCost, greedyPhi, maxRoutes)
	default:
		return repair.GreedyInsert(sol, removed, repair.GreedyDistance, 1, maxRoutes)
	}
}

// pickRecreateOrderExported samples spec.md §4.2's 4:4:2:1 SISR recreate
// ordering weights without depending on perturb's unexported helper.
func pickRecreateOrderExported(rng *rand.Rand) perturb.RecreateOrder {
	r := rng.Intn(11)
	switch {
	case r < 4:
		return perturb.OrderRandom
	case r < 8:
		return perturb.OrderDemand
	case r < 10:
		return perturb.OrderFar
	default:
		return perturb.OrderClose
	}
}
