package multistart

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/ails"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/instance"
)

// WorkerHandle tracks one unprotected searcher's lifecycle so the monitor
// can report it and the coordinator can restart it without racing the
// worker goroutine that owns it.
type WorkerHandle struct {
	ID    int
	state atomicState

	mu       sync.Mutex
	searcher *ails.Searcher
	restarts int
}

func newWorkerHandle(id int) *WorkerHandle {
	h := &WorkerHandle{ID: id}
	h.state.Store(StateCreated)
	return h
}

// State reports the worker's current lifecycle stage.
func (w *WorkerHandle) State() State { return w.state.Load() }

// Searcher returns the worker's current searcher instance.
func (w *WorkerHandle) Searcher() *ails.Searcher {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.searcher
}

// Restarts reports how many times this worker has been reseeded.
func (w *WorkerHandle) Restarts() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.restarts
}

func (w *WorkerHandle) setSearcher(s *ails.Searcher) {
	w.mu.Lock()
	w.searcher = s
	w.mu.Unlock()
}

// shouldRestart reports whether a searcher has gone StagnationIterations
// iterations without inserting a new best-so-far solution (spec.md
// §4.10's stagnation-triggered restart rule).
func shouldRestart(s *ails.Searcher, threshold int64) bool {
	iter := s.Stats.Iterations.Load()
	lastInsert := s.Stats.LastInsertIter.Load()
	return iter > 0 && iter-lastInsert >= threshold
}

// runWorker drives one worker's lifecycle: wait for MinEliteSizeForWorkers
// if configured, construct or seed an initial solution, run it in bounded
// time slices, notify the main searcher of competitive bests when
// cfg.NotifyMainThread is set, and reseed-and-restart whenever shouldRestart
// fires, until ctx is cancelled.
func runWorker(ctx context.Context, w *WorkerHandle, inst *instance.Instance, cfg Config, es *elite.EliteSet, main *ails.Searcher, globalStart time.Time, log *logrus.Logger) error {
	rng := rand.New(rand.NewSource(cfg.Seed + int64(w.ID)*7919))

	if cfg.MinEliteSizeForWorkers > 0 {
		if err := waitForEliteSize(ctx, es, cfg.MinEliteSizeForWorkers); err != nil {
			w.state.Store(StateTerminated)
			return nil
		}
	}

	initial, seedID, err := selectSeed(rng, es, inst, cfg.AILS, log)
	if err != nil {
		w.state.Store(StateTerminated)
		return err
	}
	if seedID != uuid.Nil {
		es.MarkUsedAsSeed(seedID)
	}

	s := ails.NewSearcher(w.ID, false, inst, cfg.AILS, es, initial, cfg.Seed+int64(w.ID), globalStart, cfg.Budget, log)
	w.setSearcher(s)
	w.state.Store(StateActive)

	for {
		if ctx.Err() != nil {
			w.state.Store(StateTerminated)
			return nil
		}

		sliceCtx, cancel := context.WithTimeout(ctx, cfg.SliceDuration)
		err := s.Run(sliceCtx)
		cancel()
		if err != nil {
			w.state.Store(StateTerminated)
			return err
		}
		if ctx.Err() != nil {
			w.state.Store(StateTerminated)
			return nil
		}

		if cfg.NotifyMainThread && main != nil {
			notifyIfCompetitive(main, s, cfg.CompetitiveThreshold)
		}

		if shouldRestart(s, cfg.StagnationIterations) {
			w.state.Store(StateStagnant)
			log.WithFields(logrus.Fields{"worker": w.ID}).Info("[MultiStart] worker stagnant, reseeding")

			newInitial, newSeedID, err := selectSeed(rng, es, inst, cfg.AILS, log)
			if err != nil {
				w.state.Store(StateTerminated)
				return err
			}
			if newSeedID != uuid.Nil {
				es.MarkUsedAsSeed(newSeedID)
			}

			s = ails.NewSearcher(w.ID, false, inst, cfg.AILS, es, newInitial, cfg.Seed+int64(w.ID)+int64(w.Restarts()+1)*104729, globalStart, cfg.Budget, log)
			w.mu.Lock()
			w.searcher = s
			w.restarts++
			w.mu.Unlock()
			w.state.Store(StateActive)
		}
	}
}

// waitForEliteSize blocks until es holds at least target entries or ctx is
// cancelled, polling rather than adding a condition variable since elite
// growth is rare relative to the poll interval.
func waitForEliteSize(ctx context.Context, es *elite.EliteSet, target int) error {
	if es.Size() >= target {
		return nil
	}
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if es.Size() >= target {
				return nil
			}
		}
	}
}

// notifyIfCompetitive calls main.NotifyPRBetterSolution when the worker
// searcher's current best is within threshold's relative gap of main's
// best, so a strong worker find propagates immediately instead of waiting
// for path relinking or the next elite-set insert (spec.md §6
// multiStart.competitiveThreshold/notifyMainThread).
func notifyIfCompetitive(main, worker *ails.Searcher, threshold float64) {
	sol, f := worker.Best()
	_, mainF := main.Best()
	if mainF <= 0 {
		if f < mainF {
			main.NotifyPRBetterSolution(sol, f)
		}
		return
	}
	if f <= mainF*(1+threshold) {
		main.NotifyPRBetterSolution(sol, f)
	}
}
