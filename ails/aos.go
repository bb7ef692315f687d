package ails

import "math/rand"

// Outcome classifies one perturbation attempt's result for adaptive
// operator selection scoring (spec.md §6's aos.score* parameter family).
type Outcome int

const (
	OutcomeRejected Outcome = iota
	OutcomeAccepted
	OutcomeImproved
	OutcomeGlobalBest
)

// AOSConfig holds adaptive-operator-selection tunables, overridable via
// the parameter file's aos.* keys (spec.md §6).
type AOSConfig struct {
	Enabled        bool
	SegmentLength  int
	ReactionFactor float64
	MinProbability float64

	ScoreGlobalBest float64
	ScoreImproved   float64
	ScoreAccepted   float64
	ScoreRejected   float64
}

// DefaultAOSConfig mirrors common probability-matching defaults.
func DefaultAOSConfig() AOSConfig {
	return AOSConfig{
		Enabled:         true,
		SegmentLength:   100,
		ReactionFactor:  0.3,
		MinProbability:  0.02,
		ScoreGlobalBest: 10,
		ScoreImproved:   5,
		ScoreAccepted:   2,
		ScoreRejected:   0,
	}
}

func (c AOSConfig) scoreFor(o Outcome) float64 {
	switch o {
	case OutcomeGlobalBest:
		return c.ScoreGlobalBest
	case OutcomeImproved:
		return c.ScoreImproved
	case OutcomeAccepted:
		return c.ScoreAccepted
	default:
		return c.ScoreRejected
	}
}

// OperatorSelector implements probability-matching adaptive operator
// selection: each operator carries a selection probability updated every
// SegmentLength iterations from its accumulated outcome scores, blended
// with the prior probability by ReactionFactor and floored at
// MinProbability.
type OperatorSelector struct {
	cfg   AOSConfig
	names []string
	probs []float64

	segmentScore []float64
	segmentUses  []int
	sinceReset   int
}

// NewOperatorSelector seeds every operator with equal probability.
func NewOperatorSelector(cfg AOSConfig, names []string) *OperatorSelector {
	n := len(names)
	probs := make([]float64, n)
	for i := range probs {
		probs[i] = 1.0 / float64(n)
	}
	return &OperatorSelector{
		cfg:          cfg,
		names:        names,
		probs:        probs,
		segmentScore: make([]float64, n),
		segmentUses:  make([]int, n),
	}
}

// Select picks an operator index, weighted by current probabilities when
// AOS is enabled, uniformly otherwise.
func (s *OperatorSelector) Select(rng *rand.Rand) int {
	if !s.cfg.Enabled {
		return rng.Intn(len(s.names))
	}
	r := rng.Float64()
	var cumulative float64
	for i, p := range s.probs {
		cumulative += p
		if r <= cumulative {
			return i
		}
	}
	return len(s.probs) - 1
}

// Observe folds one iteration's outcome into the chosen operator's segment
// score, adapting probabilities once SegmentLength iterations accumulate.
func (s *OperatorSelector) Observe(opIdx int, outcome Outcome) {
	if !s.cfg.Enabled {
		return
	}
	s.segmentScore[opIdx] += s.cfg.scoreFor(outcome)
	s.segmentUses[opIdx]++
	s.sinceReset++

	if s.sinceReset >= s.cfg.SegmentLength {
		s.adapt()
	}
}

func (s *OperatorSelector) adapt() {
	n := len(s.names)
	avg := make([]float64, n)
	var total float64
	for i := range avg {
		if s.segmentUses[i] > 0 {
			avg[i] = s.segmentScore[i] / float64(s.segmentUses[i])
		}
		total += avg[i]
	}

	raw := make([]float64, n)
	if total <= 0 {
		for i := range raw {
			raw[i] = 1.0 / float64(n)
		}
	} else {
		for i := range raw {
			raw[i] = avg[i] / total
		}
	}

	floor := s.cfg.MinProbability
	if floor*float64(n) > 1 {
		floor = 1 / float64(n)
	}
	var sum float64
	for i := range s.probs {
		s.probs[i] = (1-s.cfg.ReactionFactor)*s.probs[i] + s.cfg.ReactionFactor*raw[i]
		sum += s.probs[i]
	}
	for i := range s.probs {
		s.probs[i] = floor + (1-floor*float64(n))*s.probs[i]/sum
	}

	for i := range s.segmentScore {
		s.segmentScore[i] = 0
		s.segmentUses[i] = 0
	}
	s.sinceReset = 0
}

// Probabilities returns a copy of the current selection probabilities, for
// heartbeat logging.
func (s *OperatorSelector) Probabilities() []float64 {
	out := make([]float64, len(s.probs))
	copy(out, s.probs)
	return out
}
