package multistart

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/routewise/ails-cvrp/ails"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/instance"
)

func gridInstance(t *testing.T, n int, capacity int64) *instance.Instance {
	t.Helper()
	points := make([]instance.Point, n+1)
	demand := make([]int64, n+1)
	for i := 0; i <= n; i++ {
		points[i] = instance.Point{X: float64(i % 5), Y: float64(i / 5)}
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

func TestCoordinator_RunStopsOnContextTimeout(t *testing.T) {
	inst := gridInstance(t, 18, 5)
	cfg := DefaultConfig()
	cfg.NumWorkers = 2
	cfg.SliceDuration = 50 * time.Millisecond
	cfg.MonitorInterval = 30 * time.Millisecond
	cfg.Relink.MinEliteSizeForPR = 1000 // effectively disabled for this short run
	cfg.AILS.HeartbeatEvery = 0

	coord, err := New(inst, cfg, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	best, f, err := coord.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, best)
	require.NoError(t, best.Validate())
	require.Greater(t, f, 0.0)
	require.Greater(t, coord.Elite().Size(), 0)
}

func TestCoordinator_StopsEarlyOnTargetObjective(t *testing.T) {
	inst := gridInstance(t, 10, 5)
	cfg := DefaultConfig()
	cfg.NumWorkers = 1
	cfg.SliceDuration = 40 * time.Millisecond
	cfg.MonitorInterval = 20 * time.Millisecond
	cfg.Relink.MinEliteSizeForPR = 1000
	cfg.AILS.TargetObjective = 1e18 // trivially satisfied immediately

	coord, err := New(inst, cfg, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	best, _, err := coord.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, best)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestShouldRestart_TrueOnlyAfterThreshold(t *testing.T) {
	inst := gridInstance(t, 8, 4)
	aCfg := ails.DefaultConfig()

	initial, err := ails.Construct(inst, aCfg)
	require.NoError(t, err)

	es, err := elite.New(elite.DefaultConfig())
	require.NoError(t, err)
	s := ails.NewSearcher(0, false, inst, aCfg, es, initial, 1, time.Now(), 0, testLogger())

	require.False(t, shouldRestart(s, 100))
	s.Stats.Iterations.Store(150)
	s.Stats.LastInsertIter.Store(40)
	require.True(t, shouldRestart(s, 100))
	require.False(t, shouldRestart(s, 200))
}

func TestState_StringNamesEveryState(t *testing.T) {
	for _, st := range []State{StateCreated, StateActive, StateStagnant, StateTerminated} {
		require.NotEqual(t, "UNKNOWN", st.String())
	}
}
