package ails

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/instance"
)

func gridInstance(t *testing.T, n int, capacity int64) *instance.Instance {
	t.Helper()
	points := make([]instance.Point, n+1)
	demand := make([]int64, n+1)
	for i := 0; i <= n; i++ {
		points[i] = instance.Point{X: float64(i % 7), Y: float64(i / 7)}
		if i > 0 {
			demand[i] = 1
		}
	}
	inst, err := instance.New(points, demand, instance.Options{Capacity: capacity})
	require.NoError(t, err)
	return inst
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestConstruct_PlacesEveryCustomer(t *testing.T) {
	inst := gridInstance(t, 16, 4)
	cfg := DefaultConfig()

	sol, err := Construct(inst, cfg)
	require.NoError(t, err)
	require.NoError(t, sol.Validate())
}

func TestNewSearcher_SeedsBestFromInitial(t *testing.T) {
	inst := gridInstance(t, 10, 4)
	cfg := DefaultConfig()

	initial, err := Construct(inst, cfg)
	require.NoError(t, err)

	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	s := NewSearcher(0, true, inst, cfg, es, initial, 1, time.Now(), 0, testLogger())
	best, f := s.Best()
	require.NoError(t, best.Validate())
	require.Equal(t, initial.Cost, f)
}

func TestRun_TerminatesOnBudgetExpiry(t *testing.T) {
	inst := gridInstance(t, 20, 5)
	cfg := DefaultConfig()
	cfg.HeartbeatEvery = 0

	initial, err := Construct(inst, cfg)
	require.NoError(t, err)

	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	s := NewSearcher(0, true, inst, cfg, es, initial, 42, time.Now(), 50*time.Millisecond, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = s.Run(ctx)
	require.NoError(t, err)

	best, f := s.Best()
	require.NoError(t, best.Validate())
	require.LessOrEqual(t, f, initial.Cost+1e-6)
	require.Greater(t, es.Size(), 0)
}

func TestRun_StopsImmediatelyOnCancelledContext(t *testing.T) {
	inst := gridInstance(t, 8, 4)
	cfg := DefaultConfig()

	initial, err := Construct(inst, cfg)
	require.NoError(t, err)

	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	s := NewSearcher(0, true, inst, cfg, es, initial, 7, time.Now(), time.Hour, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Run(ctx))
}

func TestNotifyPRBetterSolution_AdoptsOnlyWhenStrictlyBetter(t *testing.T) {
	inst := gridInstance(t, 10, 4)
	cfg := DefaultConfig()

	initial, err := Construct(inst, cfg)
	require.NoError(t, err)

	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)

	s := NewSearcher(0, true, inst, cfg, es, initial, 3, time.Now(), 0, testLogger())

	worse := initial.DeepCopy()
	s.NotifyPRBetterSolution(worse, initial.Cost+10)
	_, f := s.Best()
	require.Equal(t, initial.Cost, f)

	better := initial.DeepCopy()
	betterF := initial.Cost - cfg.Epsilon*10
	s.NotifyPRBetterSolution(better, betterF)
	_, f = s.Best()
	require.Equal(t, betterF, f)
}
