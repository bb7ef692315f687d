package localsearch

import (
	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/solution"
)

// Options configures the local search engine.
type Options struct {
	// MaxOrOptChain bounds or-opt relocation chain length (spec default 3).
	MaxOrOptChain int

	// Eps is the minimal strictly-better improvement accepted by any move.
	Eps float64
}

// DefaultOptions returns the default local search configuration.
func DefaultOptions() Options {
	return Options{MaxOrOptChain: 3, Eps: 1e-9}
}

// Engine runs intra- and inter-route local search to a first-improvement
// local optimum over a Solution's dirty (Modified) routes.
type Engine struct {
	Inst *instance.Instance
	Opts Options
}

// New returns an Engine bound to inst.
func New(inst *instance.Instance, opts Options) *Engine {
	return &Engine{Inst: inst, Opts: opts}
}

// Improve drives 2-opt, or-opt, SHIFT, SWAP, and CROSS to local optimality
// on sol's dirty routes, using first-improvement. It never increases
// sol.Cost (local-search monotonicity, spec.md §8).
func (e *Engine) Improve(sol *solution.Solution) {
	for {
		improved := false

		if e.intraRoutePass(sol) {
			improved = true
		}
		if e.interRoutePass(sol) {
			improved = true
		}

		if !improved {
			break
		}
	}

	for _, r := range sol.Routes {
		r.Modified = false
	}
}

// dirtyRoutes returns the non-removed routes flagged Modified.
func dirtyRoutes(sol *solution.Solution) []*solution.Route {
	var out []*solution.Route
	for _, r := range sol.Routes {
		if !r.Removed && r.Modified {
			out = append(out, r)
		}
	}
	return out
}
