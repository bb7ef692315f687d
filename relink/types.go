package relink

import (
	"time"

	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/solution"
)

// MainNotifier is implemented by the main AILS searcher (package ails) so
// path relinking can report a superior solution without importing ails
// directly (spec.md §4.7: "PR notifies main via a thread-safe method that,
// under lock, updates the main's best solution, resets omega to d* for
// every operator, resets the no-improvement heartbeat timer").
type MainNotifier interface {
	NotifyPRBetterSolution(sol *solution.Solution, f float64)
}

// Config holds path relinking's tunables.
type Config struct {
	// MinEliteSizeForPR gates when the loop starts attempting relinks.
	MinEliteSizeForPR int

	// MaxMoveSteps bounds how many relocate-toward-guide moves a single
	// relink attempt may take before giving up on fully matching the
	// guide's edge set.
	MaxMoveSteps int

	// AttemptSleep and WaitSleep are the "~10 ms between attempts" and
	// "~100 ms while waiting for enough elites" suspension points from
	// spec.md §5.
	AttemptSleep time.Duration
	WaitSleep    time.Duration

	// StagnationCheckEvery and StagnationMinIterations implement spec.md
	// §4.7 step 4's "every 10k after a minimum of 100k" termination rule.
	StagnationCheckEvery    int64
	StagnationMinIterations int64
}

// DefaultConfig returns spec.md's stated defaults.
func DefaultConfig() Config {
	return Config{
		MinEliteSizeForPR:       4,
		MaxMoveSteps:            500,
		AttemptSleep:            10 * time.Millisecond,
		WaitSleep:               100 * time.Millisecond,
		StagnationCheckEvery:    10_000,
		StagnationMinIterations: 100_000,
	}
}

// pair bundles two elite entries selected for one relink attempt.
type pair struct {
	a, b *elite.EliteSolution
}
