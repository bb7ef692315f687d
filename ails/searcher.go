package ails

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/diversity"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/localsearch"
	"github.com/routewise/ails-cvrp/repair"
	"github.com/routewise/ails-cvrp/solution"
)

// ThreadStats exposes the fields the multi-start monitor reads from a
// worker without locking (spec.md §5: "reads are atomic int/double reads
// tolerating minor staleness").
type ThreadStats struct {
	BestF           atomic.Uint64 // math.Float64bits(bestF)
	LastInsertIter  atomic.Int64
	Iterations      atomic.Int64
	ShouldTerminate atomic.Bool
}

func (ts *ThreadStats) bestF() float64 {
	return math.Float64frombits(ts.BestF.Load())
}

func (ts *ThreadStats) setBestF(f float64) {
	ts.BestF.Store(math.Float64bits(f))
}

// Searcher runs the main AILS loop of spec.md §4.8 against one Instance,
// either standalone or as a multi-start worker. It implements
// relink.MainNotifier so the path-relinking goroutine can push a superior
// solution back under lock.
type Searcher struct {
	ID        int
	Protected bool

	Inst *instance.Instance
	cfg  Config
	rng  *rand.Rand
	log  *logrus.Logger

	elite *elite.EliteSet
	ls    *localsearch.Engine

	aos       *OperatorSelector
	operators []operatorState
	acceptance *diversity.Acceptance

	mu   sync.Mutex // guards ref/best against concurrent PR notification
	ref  *solution.Solution
	best *solution.Solution
	bestF float64

	globalStart time.Time
	budget      time.Duration

	Stats ThreadStats

	UsedAsSeed atomic.Int32
}

// NewSearcher constructs a Searcher seeded with an already-built initial
// solution (see Construct). globalStart anchors tau for every searcher
// sharing one coordinator, per spec.md §4.10 step 4.
func NewSearcher(id int, protected bool, inst *instance.Instance, cfg Config, es *elite.EliteSet, initial *solution.Solution, seed int64, globalStart time.Time, budget time.Duration, log *logrus.Logger) *Searcher {
	if log == nil {
		log = logrus.StandardLogger()
	}

	dStar := cfg.Diversity.IdealDistance(0)
	kinds := enabledOperatorKinds(cfg.EnabledOperators)
	names := make([]string, len(kinds))
	ops := make([]operatorState, len(kinds))
	for i, k := range kinds {
		ops[i] = operatorState{kind: k, omega: diversity.NewOmegaController(dStar, inst.N, cfg.Gamma)}
		names[i] = k.String()
	}

	s := &Searcher{
		ID:         id,
		Protected:  protected,
		Inst:       inst,
		cfg:        cfg,
		rng:        rand.New(rand.NewSource(seed)),
		log:        log,
		elite:      es,
		ls:         localsearch.New(inst, localsearch.DefaultOptions()),
		aos:        NewOperatorSelector(cfg.AOS, names),
		operators:  ops,
		acceptance: diversity.NewAcceptance(cfg.Diversity, 20),
		ref:        initial,
		best:       initial.DeepCopy(),
		bestF:      initial.Cost,
		globalStart: globalStart,
		budget:      budget,
	}
	s.Stats.setBestF(initial.Cost)
	return s
}

// Construct builds an initial solution by inserting every customer with
// regret-k insertion starting from an empty solution (spec.md §4.8
// "construct initial solution"; grounded on package repair's
// RegretKInsert, already used for the destroy-repair recreate step).
func Construct(inst *instance.Instance, cfg Config) (*solution.Solution, error) {
	sol := solution.New(inst)
	pending := make([]int, inst.N)
	for i := range pending {
		pending[i] = i + 1
	}
	if err := repair.RegretKInsert(sol, pending, cfg.Regret); err != nil {
		return nil, err
	}
	return sol, nil
}

// tau returns the normalized elapsed-budget fraction used by diversity
// decay and fleet-minimization windowing. When no time budget is set but
// cfg.MaxIterations is (the CLI's -stoppingCriterion Iteration mode,
// spec.md §6), progress is measured against MaxIterations instead.
func (s *Searcher) tau() float64 {
	var t float64
	switch {
	case s.budget > 0:
		elapsed := time.Since(s.globalStart)
		t = float64(elapsed) / float64(s.budget)
	case s.cfg.MaxIterations > 0:
		t = float64(s.Stats.Iterations.Load()) / float64(s.cfg.MaxIterations)
	default:
		return 0
	}
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return t
}

// Best returns a snapshot of the current best solution and objective.
func (s *Searcher) Best() (*solution.Solution, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.best.DeepCopy(), s.bestF
}

// NotifyPRBetterSolution implements relink.MainNotifier (spec.md §4.7):
// under lock, adopt a superior solution as the new best/reference, reset
// every operator's omega to d*, and reset the no-improvement heartbeat
// timer.
func (s *Searcher) NotifyPRBetterSolution(sol *solution.Solution, f float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f >= s.bestF-s.cfg.Epsilon {
		return
	}
	s.best = sol.DeepCopy()
	s.bestF = f
	s.ref = sol.DeepCopy()
	s.Stats.setBestF(f)
	s.Stats.LastInsertIter.Store(s.Stats.Iterations.Load())

	dStar := s.cfg.Diversity.IdealDistance(s.tau())
	for i := range s.operators {
		s.operators[i].omega.Reset(dStar)
	}

	s.log.WithFields(logrus.Fields{"searcher": s.ID, "f": f}).Info("[AILS] adopted path-relinking solution")
}
