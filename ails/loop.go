package ails

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/solution"
)

// Run drives the main AILS loop of spec.md §4.8 until ctx is cancelled, the
// global deadline (s.budget past s.globalStart) passes, cfg.TargetObjective
// is reached, or cfg.MaxIterations is hit.
func (s *Searcher) Run(ctx context.Context) error {
	s.mu.Lock()
	best := s.best.DeepCopy()
	s.mu.Unlock()
	s.elite.TryInsert(best, s.bestF, elite.Initial, 0)

	for {
		if s.Stats.ShouldTerminate.Load() {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if s.budget > 0 && s.tau() >= 1 {
			return nil
		}
		if s.cfg.TargetObjective > 0 && s.bestF <= s.cfg.TargetObjective {
			return nil
		}
		if s.cfg.MaxIterations > 0 && s.Stats.Iterations.Load() >= s.cfg.MaxIterations {
			return nil
		}

		s.iterate()
	}
}

func (s *Searcher) iterate() {
	iter := s.Stats.Iterations.Add(1)

	s.mu.Lock()
	sol := s.ref.DeepCopy()
	s.mu.Unlock()

	opIdx := s.aos.Select(s.rng)
	op := s.operators[opIdx]

	tau := s.tau()
	dStar := s.cfg.Diversity.IdealDistance(tau)
	omega := op.omega.Omega()

	mature := elite.IsMature(s.elite, s.Inst.N)

	insertionKind := s.pickInsertionKind()

	err := applyPerturbation(
		s.rng, sol, op.kind, omega, insertionKind,
		s.cfg.SISR, s.cfg.Regret, s.cfg.GreedyPhi, s.cfg.MaxRoutes,
		s.elite.Patterns(), s.cfg.PatternWindowK, mature,
	)
	if err != nil {
		s.aos.Observe(opIdx, OutcomeRejected)
		return
	}

	s.ls.RepairFeasibility(sol, s.cfg.MaxRoutes)
	s.ls.Improve(sol)

	s.mu.Lock()
	ref := s.ref
	s.mu.Unlock()
	dLS := solution.EdgeDistance(sol, ref)

	outcome := OutcomeRejected

	s.mu.Lock()
	if sol.Cost < s.bestF-s.cfg.Epsilon {
		s.best = sol.DeepCopy()
		s.bestF = sol.Cost
		s.Stats.setBestF(sol.Cost)
		s.Stats.LastInsertIter.Store(iter)
		outcome = OutcomeGlobalBest
		s.mu.Unlock()

		s.elite.TryInsert(sol, sol.Cost, elite.AILS, iter)
	} else {
		s.mu.Unlock()
	}

	op.omega.Observe(dStar, dLS)

	accept := s.acceptance.Accept(sol.Cost, tau)
	if accept {
		s.mu.Lock()
		s.ref = sol
		s.mu.Unlock()
		if outcome == OutcomeRejected {
			outcome = OutcomeAccepted
		}
	} else if outcome == OutcomeRejected {
		outcome = OutcomeImproved
		if sol.Cost >= ref.Cost {
			outcome = OutcomeRejected
		}
	}
	s.aos.Observe(opIdx, outcome)

	if tau <= s.cfg.FleetMinWindow && s.cfg.FleetMinRate > 0 && s.rng.Float64() < s.cfg.FleetMinRate {
		s.tryFleetMinimization()
	}

	if s.cfg.HeartbeatEvery > 0 && iter%s.cfg.HeartbeatEvery == 0 {
		s.heartbeat(iter, tau)
	}
}

// pickInsertionKind coin-flips between GreedyCost and RegretK for non-SISR
// destroy operators, restricted to whichever heuristics cfg.EnabledInsertion
// allows (spec.md §6's insertionHeuristics=<comma list>, both eligible by
// default).
func (s *Searcher) pickInsertionKind() InsertionKind {
	candidates := make([]InsertionKind, 0, 2)
	for _, k := range []InsertionKind{GreedyCost, RegretK} {
		if insertionAllowed(k, s.cfg.EnabledInsertion) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return GreedyCost
	}
	return candidates[s.rng.Intn(len(candidates))]
}

func (s *Searcher) heartbeat(iter int64, tau float64) {
	s.mu.Lock()
	bestF := s.bestF
	numRoutes := s.ref.NumRoutes()
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"searcher": s.ID,
		"iter":     iter,
		"tau":      tau,
		"best":     bestF,
		"routes":   numRoutes,
		"elite":    s.elite.Size(),
	}).Info("[AILS-Heartbeat] progress")
}
