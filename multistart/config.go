package multistart

import (
	"time"

	"github.com/routewise/ails-cvrp/ails"
	"github.com/routewise/ails-cvrp/relink"
)

// Config bundles the multi-start coordinator's tunables, overridable via
// the parameter file's multiStart.* keys (spec.md §6).
type Config struct {
	// Enabled gates whether any worker searcher runs at all; false means
	// only the protected main searcher and path relinking run
	// (multiStart.enabled).
	Enabled bool

	// NumWorkers is the number of unprotected worker searchers run
	// alongside the protected main searcher (multiStart.numWorkerThreads).
	NumWorkers int

	// MinEliteSizeForWorkers delays worker startup until the elite set
	// holds at least this many solutions, so workers always seed from a
	// real elite rather than constructing independently
	// (multiStart.minEliteSizeForWorkers); 0 means no wait.
	MinEliteSizeForWorkers int

	// CompetitiveThreshold is the relative gap (as a fraction of the main
	// searcher's current best) within which a worker's own best is still
	// considered "competitive" enough to notify the main searcher
	// (multiStart.competitiveThreshold).
	CompetitiveThreshold float64

	// NotifyMainThread enables workers to proactively call
	// Searcher.NotifyPRBetterSolution on the main searcher when their own
	// best is competitive, rather than relying solely on the elite set and
	// path relinking to propagate it (multiStart.notifyMainThread).
	NotifyMainThread bool

	// SliceDuration bounds how long a worker runs uninterrupted before the
	// coordinator checks it for stagnation-triggered restart.
	SliceDuration time.Duration

	// StagnationIterations is how many iterations may pass without a new
	// best-so-far insertion before a worker is declared stagnant and
	// restarted from a fresh seed (spec.md §4.10).
	StagnationIterations int64

	// MonitorInterval is how often the monitor goroutine logs aggregate
	// progress across every searcher.
	MonitorInterval time.Duration

	// Budget is the overall wall-clock run budget shared by every
	// searcher's tau() calculation; 0 means unbounded (run until ctx
	// cancellation or AILS.TargetObjective).
	Budget time.Duration

	// Seed seeds the main searcher's PRNG; workers derive their own seeds
	// by offsetting this value by worker ID.
	Seed int64

	AILS   ails.Config
	Relink relink.Config
}

// DefaultConfig returns conservative multi-start defaults.
func DefaultConfig() Config {
	return Config{
		Enabled:                true,
		NumWorkers:             3,
		MinEliteSizeForWorkers: 0,
		CompetitiveThreshold:   0.01,
		NotifyMainThread:       true,
		SliceDuration:          5 * time.Second,
		StagnationIterations:   20_000,
		MonitorInterval:        2 * time.Second,
		Budget:                 0,
		Seed:                   1,
		AILS:                   ails.DefaultConfig(),
		Relink:                 relink.DefaultConfig(),
	}
}
