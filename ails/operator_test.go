package ails

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/perturb"
)

func TestApplyPerturbation_SequentialThenGreedyRestoresAllCustomers(t *testing.T) {
	inst := gridInstance(t, 14, 5)
	cfg := DefaultConfig()
	sol, err := Construct(inst, cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(9))
	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	err = applyPerturbation(rng, sol, Sequential, 3, GreedyCost,
		cfg.SISR, cfg.Regret, cfg.GreedyPhi, cfg.MaxRoutes,
		es.Patterns(), cfg.PatternWindowK, false)
	require.NoError(t, err)
	require.NoError(t, sol.Validate())
}

func TestApplyPerturbation_SISRUsesOwnRecreate(t *testing.T) {
	inst := gridInstance(t, 14, 5)
	cfg := DefaultConfig()
	sol, err := Construct(inst, cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	err = applyPerturbation(rng, sol, SISR, 3, RegretK,
		cfg.SISR, cfg.Regret, cfg.GreedyPhi, cfg.MaxRoutes,
		es.Patterns(), cfg.PatternWindowK, false)
	require.NoError(t, err)
	require.NoError(t, sol.Validate())
}

func TestApplyPerturbation_PatternOperatorsRequireMaturity(t *testing.T) {
	inst := gridInstance(t, 14, 5)
	cfg := DefaultConfig()
	sol, err := Construct(inst, cfg)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	err = applyPerturbation(rng, sol, PatternRemoval, 3, GreedyCost,
		cfg.SISR, cfg.Regret, cfg.GreedyPhi, cfg.MaxRoutes,
		es.Patterns(), cfg.PatternWindowK, false)
	require.ErrorIs(t, err, perturb.ErrNotMature)
}

func TestPickRecreateOrderExported_StaysWithinEnum(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := map[perturb.RecreateOrder]bool{}
	for i := 0; i < 200; i++ {
		seen[pickRecreateOrderExported(rng)] = true
	}
	require.True(t, seen[perturb.OrderRandom])
}

func TestDestroyKind_StringNamesEveryOperator(t *testing.T) {
	for _, k := range operatorKinds {
		require.NotEqual(t, "Unknown", k.String())
	}
}
