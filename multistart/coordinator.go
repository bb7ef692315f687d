package multistart

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/routewise/ails-cvrp/ails"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/relink"
	"github.com/routewise/ails-cvrp/solution"
)

// Coordinator wires one protected main searcher, cfg.NumWorkers unprotected
// workers, the path-relinking goroutine, and a progress monitor into a
// single anytime optimization run (spec.md §4.10).
type Coordinator struct {
	Inst *instance.Instance
	cfg  Config
	log  *logrus.Logger

	elite   *elite.EliteSet
	main    *ails.Searcher
	workers []*WorkerHandle
}

// New constructs a Coordinator ready to Run. It does not build the initial
// solution or start any goroutine.
func New(inst *instance.Instance, cfg Config, log *logrus.Logger) (*Coordinator, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if cfg.NumWorkers < 0 || !cfg.Enabled {
		cfg.NumWorkers = 0
	}

	es, err := elite.New(cfg.AILS.Elite)
	if err != nil {
		return nil, err
	}
	es.SetLogger(log)

	workers := make([]*WorkerHandle, cfg.NumWorkers)
	for i := range workers {
		workers[i] = newWorkerHandle(i + 1)
	}

	return &Coordinator{
		Inst:    inst,
		cfg:     cfg,
		log:     log,
		elite:   es,
		workers: workers,
	}, nil
}

// Run starts every goroutine and blocks until ctx is cancelled, the target
// objective is reached, or a goroutine fails. It returns the best solution
// found across the main searcher, every worker, and the elite set.
func (c *Coordinator) Run(ctx context.Context) (*solution.Solution, float64, error) {
	globalStart := time.Now()

	mainInitial, err := ails.Construct(c.Inst, c.cfg.AILS)
	if err != nil {
		return nil, 0, err
	}
	c.main = ails.NewSearcher(0, true, c.Inst, c.cfg.AILS, c.elite, mainInitial, c.cfg.Seed, globalStart, c.cfg.Budget, c.log)

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error { return c.main.Run(gctx) })
	group.Go(func() error {
		return relink.Run(gctx, c.elite, c.main, c.cfg.Relink, c.cfg.Seed+1, c.log)
	})
	for _, w := range c.workers {
		w := w
		group.Go(func() error { return runWorker(gctx, w, c.Inst, c.cfg, c.elite, c.main, globalStart, c.log) })
	}
	group.Go(func() error {
		return runMonitor(gctx, c.main, c.workers, c.elite, c.cfg.MonitorInterval, c.cfg.AILS.TargetObjective, c.log)
	})

	waitErr := group.Wait()
	if waitErr != nil && !errors.Is(waitErr, errTargetReached) {
		return nil, 0, waitErr
	}

	best, f := c.main.Best()
	for _, w := range c.workers {
		if s := w.Searcher(); s != nil {
			if wb, wf := s.Best(); wf < f {
				best, f = wb, wf
			}
		}
	}
	if eb := c.elite.Best(); eb != nil && eb.F < f {
		best, f = eb.Sol.DeepCopy(), eb.F
	}

	return best, f, nil
}

// Elite exposes the coordinator's elite set, for reporting after Run
// returns.
func (c *Coordinator) Elite() *elite.EliteSet { return c.elite }
