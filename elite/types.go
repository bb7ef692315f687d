package elite

import (
	"time"

	"github.com/google/uuid"

	"github.com/routewise/ails-cvrp/solution"
)

// Source tags how an EliteSolution entered the set (spec.md §4.1 data flow).
type Source int

const (
	// Initial marks the elite seeded from the construction-phase solution.
	Initial Source = iota
	// AILS marks an elite produced by the main anytime local search loop.
	AILS
	// PathRelinking marks an elite produced by the path-relinking thread.
	PathRelinking
)

func (s Source) String() string {
	switch s {
	case Initial:
		return "INITIAL"
	case AILS:
		return "AILS"
	case PathRelinking:
		return "PATH_RELINKING"
	default:
		return "UNKNOWN"
	}
}

// EliteSolution wraps a deep-copied solution.Solution together with the
// bookkeeping EliteSet needs to score and evict it (spec.md §4.1).
type EliteSolution struct {
	ID uuid.UUID

	Sol *solution.Solution
	F   float64

	// InsertionIter records the main-loop iteration at which this entry was
	// accepted, for diagnostics and seed-selection recency decisions.
	InsertionIter int64

	Source Source

	// UsedAsSeed counts how many times the multi-start coordinator has
	// restarted a worker from this entry (spec.md §4.10 seed selection).
	UsedAsSeed int

	InsertedAt time.Time

	// AvgDist and Score are caches recomputed by EliteSet after every
	// mutation; stale outside of that invariant.
	AvgDist float64
	Score   float64
}

func newEliteSolution(sol *solution.Solution, f float64, source Source, iter int64) *EliteSolution {
	return &EliteSolution{
		ID:            uuid.New(),
		Sol:           sol,
		F:             f,
		InsertionIter: iter,
		Source:        source,
		InsertedAt:    time.Now(),
	}
}
