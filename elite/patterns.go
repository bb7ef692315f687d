package elite

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/routewise/ails-cvrp/solution"
)

// PatternFrequencyMap tracks how often each canonical k-node route window
// has been seen across every elite insertion (spec.md §4.6). Canonical form
// is the lexicographically smaller of a window's forward and reverse string
// representation, so a pattern and its mirror count as the same entry.
type PatternFrequencyMap struct {
	mu             sync.RWMutex
	counts         map[string]int
	totalExtracted int64
}

func newPatternFrequencyMap() *PatternFrequencyMap {
	return &PatternFrequencyMap{counts: make(map[string]int)}
}

// observe enumerates every k-length window (including the depot, marker id
// 0) of each route in sol and folds it into the frequency map.
func (p *PatternFrequencyMap) observe(sol *solution.Solution, k int) {
	if k < 2 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range sol.Routes {
		if r.Removed {
			continue
		}
		ids, err := sol.Customers(r)
		if err != nil {
			continue
		}
		seq := make([]int, 0, len(ids)+2)
		seq = append(seq, 0)
		seq = append(seq, ids...)
		seq = append(seq, 0)

		for i := 0; i+k <= len(seq); i++ {
			window := seq[i : i+k]
			key := canonicalWindow(window)
			p.counts[key]++
			p.totalExtracted++
		}
	}
}

func canonicalWindow(window []int) string {
	fwd := windowString(window)
	rev := make([]int, len(window))
	for i, v := range window {
		rev[len(window)-1-i] = v
	}
	revStr := windowString(rev)
	if revStr < fwd {
		return revStr
	}
	return fwd
}

func windowString(window []int) string {
	var b strings.Builder
	for i, v := range window {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", v)
	}
	return b.String()
}

// UniqueCount returns the number of distinct canonical patterns seen.
func (p *PatternFrequencyMap) UniqueCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.counts)
}

// CountOf returns how many times the canonical form of window has been
// observed.
func (p *PatternFrequencyMap) CountOf(window []int) int {
	key := canonicalWindow(window)
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counts[key]
}

// MedianCount returns the median occurrence count across every tracked
// canonical pattern, 0 if none are tracked. Used to split patterns into
// "frequent" (>= median) and "rare" (< median) for pattern-based
// perturbation operators.
func (p *PatternFrequencyMap) MedianCount() int {
	p.mu.RLock()
	counts := make([]int, 0, len(p.counts))
	for _, c := range p.counts {
		counts = append(counts, c)
	}
	p.mu.RUnlock()

	if len(counts) == 0 {
		return 0
	}
	sort.Ints(counts)
	return counts[len(counts)/2]
}

// TopNonOverlappingPatterns returns up to n canonical patterns (decoded
// back to customer-id slices, depot marker 0 included), greedily selected
// by descending frequency while skipping any pattern that shares a
// customer id with one already selected.
func (p *PatternFrequencyMap) TopNonOverlappingPatterns(n int) [][]int {
	type kv struct {
		key   string
		count int
	}
	p.mu.RLock()
	entries := make([]kv, 0, len(p.counts))
	for k, c := range p.counts {
		entries = append(entries, kv{k, c})
	}
	p.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	used := make(map[int]bool)
	var out [][]int
	for _, e := range entries {
		if len(out) >= n {
			break
		}
		window := decodeWindow(e.key)
		overlaps := false
		for _, c := range window {
			if c != 0 && used[c] {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}
		for _, c := range window {
			if c != 0 {
				used[c] = true
			}
		}
		out = append(out, window)
	}
	return out
}

func decodeWindow(key string) []int {
	parts := strings.Split(key, ",")
	out := make([]int, 0, len(parts))
	for _, s := range parts {
		var v int
		fmt.Sscanf(s, "%d", &v)
		out = append(out, v)
	}
	return out
}

// frequencies returns a copy of the observed counts as float64, for
// gonum/stat consumption.
func (p *PatternFrequencyMap) frequencies() []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, 0, len(p.counts))
	for _, c := range p.counts {
		out = append(out, float64(c))
	}
	return out
}

// coefficientOfVariation returns stddev/mean of the observed pattern
// frequencies, 0 if fewer than two distinct patterns exist.
func (p *PatternFrequencyMap) coefficientOfVariation() float64 {
	freqs := p.frequencies()
	if len(freqs) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(freqs, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// topCoverageFraction returns the fraction of totalExtracted windows
// accounted for by the top n most frequent canonical patterns.
func (p *PatternFrequencyMap) topCoverageFraction(n int) float64 {
	p.mu.RLock()
	counts := make([]int, 0, len(p.counts))
	for _, c := range p.counts {
		counts = append(counts, c)
	}
	total := p.totalExtracted
	p.mu.RUnlock()

	if total == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	if n > len(counts) {
		n = len(counts)
	}
	var sum int64
	for _, c := range counts[:n] {
		sum += int64(c)
	}
	return float64(sum) / float64(total)
}

// mostFrequentCoverage returns the single most frequent pattern's share of
// totalExtracted.
func (p *PatternFrequencyMap) mostFrequentCoverage() float64 {
	return p.topCoverageFraction(1)
}

// IsMature implements spec.md §4.6's pattern-maturity predicate, gating
// pattern-based perturbation operators until the tracker has accumulated
// enough signal to be trustworthy.
//
//   - elite set size >= 0.75 * maxSize
//   - unique pattern count >= max(200, n/5), capped at 1000
//   - coefficient of variation of frequencies >= 0.40
//   - most frequent pattern covers >= 30% of observations
//   - the top max(50, n/10) patterns account for a scale-adaptive fraction
//     of all extracted windows: 30% for small instances, down to 15% for
//     large ones (the share of distinct customers they cover is not measured)
func IsMature(es *EliteSet, n int) bool {
	es.mu.RLock()
	size := len(es.entries)
	maxSize := es.cfg.MaxSize
	es.mu.RUnlock()

	if float64(size) < 0.75*float64(maxSize) {
		return false
	}

	patterns := es.patterns

	uniqueTarget := maxInt(200, n/5)
	if uniqueTarget > 1000 {
		uniqueTarget = 1000
	}
	if patterns.UniqueCount() < uniqueTarget {
		return false
	}

	if patterns.coefficientOfVariation() < 0.40 {
		return false
	}

	if patterns.mostFrequentCoverage() < 0.30 {
		return false
	}

	topN := maxInt(50, n/10)
	threshold := scaleAdaptiveCoverageThreshold(n)
	if patterns.topCoverageFraction(topN) < threshold {
		return false
	}

	return true
}

// scaleAdaptiveCoverageThreshold linearly interpolates the top-pattern
// coverage bar from 30% at small instances down to 15% at large ones,
// matching spec.md §4.6's "30% small -> 15% large" rule. "Small" and
// "large" are anchored at 50 and 1000 customers respectively.
func scaleAdaptiveCoverageThreshold(n int) float64 {
	const (
		small, smallThreshold = 50.0, 0.30
		large, largeThreshold = 1000.0, 0.15
	)
	if float64(n) <= small {
		return smallThreshold
	}
	if float64(n) >= large {
		return largeThreshold
	}
	frac := (float64(n) - small) / (large - small)
	return smallThreshold - frac*(smallThreshold-largeThreshold)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
