package diversity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdealDistance_DecaysMonotonically(t *testing.T) {
	cfg := DefaultConfig()
	prev := cfg.IdealDistance(0)
	for _, tau := range []float64{0.1, 0.3, 0.5, 0.7, 1.0} {
		cur := cfg.IdealDistance(tau)
		assert.LessOrEqual(t, cur, prev+1e-12)
		prev = cur
	}
	assert.InDelta(t, cfg.DMin, cfg.IdealDistance(1.0), 1e-9)
	assert.InDelta(t, cfg.DMax, cfg.IdealDistance(0.0), 1e-9)
}

func TestEta_ContractsToEtaMinAtTauOne(t *testing.T) {
	cfg := DefaultConfig()
	assert.InDelta(t, cfg.EtaMin, cfg.Eta(1.0), 1e-9)
	assert.InDelta(t, cfg.EtaMax, cfg.Eta(0.0), 1e-9)
}

func TestOmegaController_ClampedToRange(t *testing.T) {
	oc := NewOmegaController(0.3, 10, 2)
	assert.GreaterOrEqual(t, oc.Omega(), 1)
	assert.LessOrEqual(t, oc.Omega(), 8)

	for i := 0; i < 10; i++ {
		oc.Observe(0.3, 0.01) // far below target -> omega should grow
	}
	assert.LessOrEqual(t, oc.Omega(), 8)
}

func TestAcceptance_MonotoneThresholdContraction(t *testing.T) {
	cfg := DefaultConfig()
	a := NewAcceptance(cfg, 5)
	a.Accept(100, 0)
	a.Accept(90, 0.2)
	a.Accept(95, 0.4)

	thresholdEarly := a.Threshold(0.1)
	thresholdLate := a.Threshold(0.9)
	// As tau -> 1, eta shrinks toward etaMin, contracting the gap between
	// threshold and "upper" (the recent worst accepted).
	assert.LessOrEqual(t, math.Abs(thresholdLate-a.upper), math.Abs(thresholdEarly-a.upper)+1e-9)
}
