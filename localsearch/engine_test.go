package localsearch

import (
	"testing"

	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/solution"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildCrossedRoute builds a single route visiting points out of geometric
// order, which 2-opt should untangle.
func buildCrossedRoute(t *testing.T) (*instance.Instance, *solution.Solution) {
	t.Helper()
	points := []instance.Point{
		{0, 0}, {0, 1}, {1, 1}, {1, 0},
	}
	demand := []int64{0, 1, 1, 1}
	inst, err := instance.New(points, demand, instance.Options{Capacity: 10})
	require.NoError(t, err)

	s := solution.New(inst)
	r := s.NewRoute()
	// Visit 1, 3, 2 (crossing), which 2-opt should fix to 1, 2, 3.
	anchor := r.DepotIdx
	for _, c := range []int{1, 3, 2} {
		_, err := s.AddAfter(r, c, anchor)
		require.NoError(t, err)
		anchor = c
	}
	r.Modified = true
	return inst, s
}

func TestTwoOpt_UntanglesCrossedRoute(t *testing.T) {
	inst, s := buildCrossedRoute(t)
	before := s.Cost

	eng := New(inst, DefaultOptions())
	eng.Improve(s)

	require.NoError(t, s.Validate())
	assert.LessOrEqual(t, s.Cost, before+1e-9)
}

func TestLocalSearch_NeverIncreasesCost(t *testing.T) {
	inst, s := buildCrossedRoute(t)
	eng := New(inst, DefaultOptions())

	before := s.Cost
	eng.Improve(s)
	assert.LessOrEqual(t, s.Cost, before+1e-9)
}

func TestRepairFeasibility_MovesExcessDemand(t *testing.T) {
	points := []instance.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	demand := []int64{0, 6, 6, 1}
	inst, err := instance.New(points, demand, instance.Options{Capacity: 10})
	require.NoError(t, err)

	s := solution.New(inst)
	r1 := s.NewRoute()
	anchor := r1.DepotIdx
	for _, c := range []int{1, 2, 3} {
		_, err := s.AddAfter(r1, c, anchor)
		require.NoError(t, err)
		anchor = c
	}
	require.Greater(t, r1.TotalDemand, inst.Capacity)

	eng := New(inst, DefaultOptions())
	eng.RepairFeasibility(s, 0)

	for _, r := range s.Routes {
		if !r.Removed {
			assert.LessOrEqual(t, r.TotalDemand, inst.Capacity)
		}
	}
	require.NoError(t, s.Validate())
}
