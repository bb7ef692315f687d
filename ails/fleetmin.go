package ails

import (
	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/repair"
	"github.com/routewise/ails-cvrp/solution"
)

// tryFleetMinimization attempts spec.md §4.9's early-phase fleet reduction:
// pick the least-loaded route, evict every customer it carries, and try to
// reinsert all of them into the remaining routes without opening a new one.
// Accepted only if every customer finds a home, the result validates, and
// the acceptance criterion agrees to adopt the (usually costlier) solution.
func (s *Searcher) tryFleetMinimization() {
	s.mu.Lock()
	candidate := s.ref.DeepCopy()
	tau := s.tau()
	s.mu.Unlock()

	if candidate.NumRoutes() <= s.Inst.MinFeasibleRoutes() {
		return
	}

	for attempt := 0; attempt < s.cfg.FleetMinMaxIter; attempt++ {
		target := candidate.NumRoutes() - 1
		victim := leastLoadedRoute(candidate)
		if victim == nil {
			return
		}

		evicted := evictRoute(candidate, victim)
		if len(evicted) == 0 {
			continue
		}
		victim.Removed = true
		candidate.RemoveEmptyRoutes()

		opts := s.cfg.Regret
		opts.MaxRoutes = target
		if err := repair.RegretKInsert(candidate, evicted, opts); err != nil {
			return
		}

		if candidate.NumRoutes() > target {
			// Nothing freed a route; a new one reopened under the
			// capacity fallback. Abandon this attempt.
			return
		}
		if err := candidate.Validate(); err != nil {
			return
		}

		s.ls.Improve(candidate)

		if s.acceptance.Accept(candidate.Cost, tau) {
			s.mu.Lock()
			s.ref = candidate.DeepCopy()
			if candidate.Cost < s.bestF-s.cfg.Epsilon {
				s.best = candidate.DeepCopy()
				s.bestF = candidate.Cost
				s.Stats.setBestF(candidate.Cost)
			}
			s.mu.Unlock()

			s.log.WithFields(logrus.Fields{
				"searcher": s.ID,
				"routes":   candidate.NumRoutes(),
				"cost":     candidate.Cost,
			}).Info("[FleetMin] reduced fleet size")
			continue
		}
		return
	}
}

// leastLoadedRoute returns the non-removed route carrying the fewest
// customers, nil if no route remains.
func leastLoadedRoute(sol *solution.Solution) *solution.Route {
	var best *solution.Route
	bestCount := -1
	for _, r := range sol.Routes {
		if r == nil || r.Removed {
			continue
		}
		count := r.NumElements - 1
		if bestCount == -1 || count < bestCount {
			best = r
			bestCount = count
		}
	}
	return best
}

// evictRoute removes every customer from r and returns their ids, leaving r
// empty for the caller to discard.
func evictRoute(sol *solution.Solution, r *solution.Route) []int {
	ids, err := sol.Customers(r)
	if err != nil {
		return nil
	}
	for _, id := range ids {
		if _, err := sol.Remove(id); err != nil {
			return nil
		}
	}
	return ids
}
