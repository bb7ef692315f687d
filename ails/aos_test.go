package ails

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOperatorSelector_UniformInitialProbabilities(t *testing.T) {
	names := []string{"a", "b", "c", "d"}
	sel := NewOperatorSelector(DefaultAOSConfig(), names)
	for _, p := range sel.Probabilities() {
		assert.InDelta(t, 0.25, p, 1e-9)
	}
}

func TestOperatorSelector_DisabledPicksUniformly(t *testing.T) {
	cfg := DefaultAOSConfig()
	cfg.Enabled = false
	sel := NewOperatorSelector(cfg, []string{"a", "b"})
	rng := rand.New(rand.NewSource(1))

	counts := map[int]int{}
	for i := 0; i < 1000; i++ {
		counts[sel.Select(rng)]++
	}
	require.Len(t, counts, 2)
}

func TestOperatorSelector_AdaptFavorsHigherScoringOperator(t *testing.T) {
	cfg := DefaultAOSConfig()
	cfg.SegmentLength = 10
	cfg.ReactionFactor = 0.9
	sel := NewOperatorSelector(cfg, []string{"good", "bad"})

	for i := 0; i < 10; i++ {
		sel.Observe(0, OutcomeGlobalBest)
		sel.Observe(1, OutcomeRejected)
	}

	probs := sel.Probabilities()
	assert.Greater(t, probs[0], probs[1])
	assert.GreaterOrEqual(t, probs[1], cfg.MinProbability-1e-9)
}

func TestOperatorSelector_ProbabilitiesAlwaysSumToOne(t *testing.T) {
	cfg := DefaultAOSConfig()
	cfg.SegmentLength = 5
	sel := NewOperatorSelector(cfg, []string{"a", "b", "c"})

	for i := 0; i < 50; i++ {
		sel.Observe(i%3, Outcome(i%4))
	}

	var sum float64
	for _, p := range sel.Probabilities() {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}
