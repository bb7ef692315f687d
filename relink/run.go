package relink

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/solution"
)

// Run is the path-relinking cooperating goroutine of spec.md §4.7, meant to
// be registered with an *errgroup.Group alongside the main searcher and
// worker searchers (package multistart). It blocks until the elite set
// reaches cfg.MinEliteSizeForPR, then repeatedly relinks a roulette-chosen
// elite pair until ctx is cancelled or stagnation is detected.
func Run(ctx context.Context, es *elite.EliteSet, notifier MainNotifier, cfg Config, seed int64, log *logrus.Logger) error {
	rng := rand.New(rand.NewSource(seed))
	if log == nil {
		log = logrus.StandardLogger()
	}

	for es.Size() < cfg.MinEliteSizeForPR {
		if err := sleepOrDone(ctx, cfg.WaitSleep); err != nil {
			return nil
		}
	}

	var (
		iterations           int64
		successfulInserts    int64
		lastCheckInsertCount int64
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		p, ok := selectPair(rng, es)
		if !ok {
			if err := sleepOrDone(ctx, cfg.AttemptSleep); err != nil {
				return nil
			}
			continue
		}

		best, bestF := relinkPair(rng, p, cfg.MaxMoveSteps)
		globalBest := es.Best()

		if es.TryInsert(best, bestF, elite.PathRelinking, iterations) {
			successfulInserts++
			log.WithFields(logrus.Fields{"f": bestF}).Debug("[PR-Insert] accepted relinked intermediate")

			if globalBest != nil && bestF < globalBest.F-1e-9 {
				notifier.NotifyPRBetterSolution(best, bestF)
				log.WithFields(logrus.Fields{"f": bestF}).Info("[PR-Notify] relinked solution beats global best")
			}
		}

		iterations++
		if iterations >= cfg.StagnationMinIterations && iterations%cfg.StagnationCheckEvery == 0 {
			if successfulInserts == lastCheckInsertCount {
				log.Info("[PR-Stagnation] no successful inserts since last check, terminating")
				return nil
			}
			lastCheckInsertCount = successfulInserts
		}

		if err := sleepOrDone(ctx, cfg.AttemptSleep); err != nil {
			return nil
		}
	}
}

// relinkPair runs one path-relinking walk between p.a and p.b, returning
// the best intermediate solution (lowest objective) found along the path
// and its objective value (spec.md §4.7 step 2-3).
func relinkPair(rng *rand.Rand, p pair, maxSteps int) (*solution.Solution, float64) {
	current := p.a.Sol.DeepCopy()
	guide := p.b.Sol

	best := current.DeepCopy()
	bestF := current.Cost

	n := current.NumCustomers()
	for step := 0; step < maxSteps; step++ {
		var unmatched []int
		for id := 1; id <= n; id++ {
			if !matchesGuide(current, guide, id) {
				unmatched = append(unmatched, id)
			}
		}
		if len(unmatched) == 0 {
			break
		}

		id := unmatched[rng.Intn(len(unmatched))]
		changed, err := relocateTowardGuide(current, guide, id)
		if err != nil || !changed {
			gp, _ := guideNeighbors(guide, id)
			if gp != 0 && current.Node(gp).InRoute {
				_, curNext := currentNeighbors(current, gp)
				if curNext != 0 && curNext != id {
					_ = swapTowardGuide(current, id, curNext)
				}
			}
			continue
		}

		if current.Cost < bestF {
			bestF = current.Cost
			best = current.DeepCopy()
		}
	}

	return best, bestF
}

// sleepOrDone sleeps for d, returning ctx.Err() early if the context is
// cancelled first.
func sleepOrDone(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
