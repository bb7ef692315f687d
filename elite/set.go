package elite

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/solution"
)

// Sentinel errors for EliteSet misuse.
var (
	// ErrInvalidBeta indicates a Beta weight outside [0, 1].
	ErrInvalidBeta = errors.New("elite: beta must be in [0, 1]")
)

// dupEpsilon is the edge-distance threshold below which two solutions are
// treated as exact duplicates (spec.md §4.6 step 2).
const dupEpsilon = 1e-9

// Config holds EliteSet's tunable parameters, overridable from the CLI /
// parameter file as eliteSetSize|Beta|MinDiversity (spec.md §6).
type Config struct {
	MaxSize        int
	Beta           float64
	MinDiversity   float64
	PatternWindowK int
}

// DefaultConfig returns conservative EliteSet defaults.
func DefaultConfig() Config {
	return Config{
		MaxSize:        10,
		Beta:           0.4,
		MinDiversity:   0.05,
		PatternWindowK: 4,
	}
}

// EliteSet is a size-bounded, quality+diversity-balanced collection of
// best-so-far solutions (spec.md §4.6). All methods lock es.mu: readers
// take the shared lock, writers take the exclusive lock and recompute every
// cached derived value before releasing it.
type EliteSet struct {
	mu sync.RWMutex

	cfg Config
	log *logrus.Logger

	entries []*EliteSolution

	// dist is the symmetric edge-distance matrix D_e[i][j] between entries.
	dist [][]float64

	// patterns tracks k-node route-window frequencies across every inserted
	// elite (spec.md §4.6 "Pattern maturity").
	patterns *PatternFrequencyMap
}

// New constructs an empty EliteSet.
func New(cfg Config) (*EliteSet, error) {
	if cfg.Beta < 0 || cfg.Beta > 1 {
		return nil, ErrInvalidBeta
	}
	if cfg.MaxSize < 1 {
		cfg.MaxSize = 10
	}
	if cfg.PatternWindowK < 2 {
		cfg.PatternWindowK = 4
	}
	return &EliteSet{
		cfg:      cfg,
		log:      logrus.StandardLogger(),
		patterns: newPatternFrequencyMap(),
	}, nil
}

// SetLogger overrides the logger used for [Elite] progress lines, called by
// the multi-start coordinator so log output shares its run-wide logger.
func (es *EliteSet) SetLogger(log *logrus.Logger) {
	if log == nil {
		return
	}
	es.mu.Lock()
	es.log = log
	es.mu.Unlock()
}

// Size returns the current number of elites held. Thread-safe: shared lock.
func (es *EliteSet) Size() int {
	es.mu.RLock()
	defer es.mu.RUnlock()
	return len(es.entries)
}

// Best returns the elite with the lowest objective, or nil if empty.
// Thread-safe: shared lock.
func (es *EliteSet) Best() *EliteSolution {
	es.mu.RLock()
	defer es.mu.RUnlock()
	if len(es.entries) == 0 {
		return nil
	}
	best := es.entries[0]
	for _, e := range es.entries[1:] {
		if e.F < best.F {
			best = e
		}
	}
	return best
}

// Snapshot returns a shallow copy of the current entries slice, safe for the
// caller to range over without holding EliteSet's lock. Thread-safe: shared
// lock.
func (es *EliteSet) Snapshot() []*EliteSolution {
	es.mu.RLock()
	defer es.mu.RUnlock()
	out := make([]*EliteSolution, len(es.entries))
	copy(out, es.entries)
	return out
}

// Patterns exposes the pattern-frequency tracker for maturity queries and
// pattern-based perturbation operators.
func (es *EliteSet) Patterns() *PatternFrequencyMap {
	return es.patterns
}

// MarkUsedAsSeed increments the UsedAsSeed counter of the entry with the
// given ID, called by the multi-start coordinator's seed-selection
// strategy (spec.md §4.10) once it restarts a worker from that elite.
// A no-op if the entry has since been evicted.
func (es *EliteSet) MarkUsedAsSeed(id uuid.UUID) {
	es.mu.Lock()
	defer es.mu.Unlock()
	for _, e := range es.entries {
		if e.ID == id {
			e.UsedAsSeed++
			return
		}
	}
}

// TryInsert implements the six-step insertion contract of spec.md §4.6.
// Thread-safe: exclusive lock.
func (es *EliteSet) TryInsert(sol *solution.Solution, f float64, source Source, iter int64) bool {
	es.mu.Lock()
	defer es.mu.Unlock()

	if len(es.entries) == 0 {
		cand := newEliteSolution(sol, f, source, iter)
		es.entries = append(es.entries, cand)
		es.recompute()
		es.patterns.observe(sol, es.cfg.PatternWindowK)
		es.log.WithFields(logrus.Fields{"f": f, "source": source}).Info("[Elite] first entry inserted")
		return true
	}

	dists := make([]float64, len(es.entries))
	for i, e := range es.entries {
		d := solution.EdgeDistance(sol, e.Sol)
		if d <= dupEpsilon {
			return false
		}
		dists[i] = d
	}
	avgDist := mean(dists)
	if avgDist < es.cfg.MinDiversity {
		return false
	}

	bestF, worstF := es.bestWorstF()
	bestF = minF(bestF, f)
	worstF = maxF(worstF, f)
	minAvg, maxAvg := es.avgDistRange()
	minAvg = minF(minAvg, avgDist)
	maxAvg = maxF(maxAvg, avgDist)

	score := es.cfg.Beta*normalize(avgDist, minAvg, maxAvg) +
		(1-es.cfg.Beta)*normalizeQuality(f, bestF, worstF)

	if len(es.entries) < es.cfg.MaxSize {
		if score < es.minScore() {
			return false
		}
		cand := newEliteSolution(sol, f, source, iter)
		es.entries = append(es.entries, cand)
		es.recompute()
		es.patterns.observe(sol, es.cfg.PatternWindowK)
		es.log.WithFields(logrus.Fields{"f": f, "score": score, "size": len(es.entries)}).Info("[Elite] inserted")
		return true
	}

	evictIdx, evictScore := es.minScoreEntry()
	if score <= evictScore {
		return false
	}
	evicted := es.entries[evictIdx]
	cand := newEliteSolution(sol, f, source, iter)
	es.entries[evictIdx] = cand
	es.recompute()
	es.patterns.observe(sol, es.cfg.PatternWindowK)
	es.log.WithFields(logrus.Fields{"f": f, "score": score, "evicted_f": evicted.F}).Info("[Elite] inserted, evicted weakest")
	return true
}

// recompute rebuilds the distance matrix, row sums, and every entry's
// cached AvgDist/Score from scratch. O(size^2) edge-distance comparisons,
// acceptable since size <= cfg.MaxSize is small (spec.md default 10).
// Caller must hold the write lock.
func (es *EliteSet) recompute() {
	n := len(es.entries)
	es.dist = make([][]float64, n)
	for i := range es.dist {
		es.dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := solution.EdgeDistance(es.entries[i].Sol, es.entries[j].Sol)
			es.dist[i][j] = d
			es.dist[j][i] = d
		}
	}

	rowSum := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for j := 0; j < n; j++ {
			if i != j {
				sum += es.dist[i][j]
			}
		}
		rowSum[i] = sum
		if n > 1 {
			es.entries[i].AvgDist = sum / float64(n-1)
		} else {
			es.entries[i].AvgDist = 0
		}
	}

	bestF, worstF := es.bestWorstF()
	minAvg, maxAvg := es.avgDistRange()
	for _, e := range es.entries {
		e.Score = es.cfg.Beta*normalize(e.AvgDist, minAvg, maxAvg) +
			(1-es.cfg.Beta)*normalizeQuality(e.F, bestF, worstF)
	}
}

func (es *EliteSet) bestWorstF() (best, worst float64) {
	if len(es.entries) == 0 {
		return 0, 0
	}
	best, worst = es.entries[0].F, es.entries[0].F
	for _, e := range es.entries[1:] {
		best = minF(best, e.F)
		worst = maxF(worst, e.F)
	}
	return best, worst
}

func (es *EliteSet) avgDistRange() (lo, hi float64) {
	if len(es.entries) == 0 {
		return 0, 0
	}
	lo, hi = es.entries[0].AvgDist, es.entries[0].AvgDist
	for _, e := range es.entries[1:] {
		lo = minF(lo, e.AvgDist)
		hi = maxF(hi, e.AvgDist)
	}
	return lo, hi
}

func (es *EliteSet) minScore() float64 {
	_, score := es.minScoreEntry()
	return score
}

func (es *EliteSet) minScoreEntry() (idx int, score float64) {
	idx = 0
	score = es.entries[0].Score
	for i, e := range es.entries[1:] {
		if e.Score < score {
			score = e.Score
			idx = i + 1
		}
	}
	return idx, score
}

// normalizeQuality maps f into [0, 1] where 1 is best (lowest f).
func normalizeQuality(f, best, worst float64) float64 {
	if worst-best <= 0 {
		return 1
	}
	return (worst - f) / (worst - best)
}

// normalize maps x into [0, 1] over [lo, hi].
func normalize(x, lo, hi float64) float64 {
	if hi-lo <= 0 {
		return 1
	}
	return (x - lo) / (hi - lo)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
