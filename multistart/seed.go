package multistart

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/routewise/ails-cvrp/ails"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/instance"
	"github.com/routewise/ails-cvrp/solution"
)

// selectSeed implements spec.md §4.10's seed selection strategy: prefer
// restarting a stagnant worker from an existing elite, roulette-weighted
// toward high score and low reuse count, and only fall back to a fresh
// construction when the elite set is still empty.
func selectSeed(rng *rand.Rand, es *elite.EliteSet, inst *instance.Instance, cfg ails.Config, log *logrus.Logger) (*solution.Solution, uuid.UUID, error) {
	entries := es.Snapshot()
	if len(entries) == 0 {
		sol, err := ails.Construct(inst, cfg)
		log.Info("[SeedSelector] elite set empty, constructing fresh seed")
		return sol, uuid.Nil, err
	}

	weights := make([]float64, len(entries))
	var total float64
	for i, e := range entries {
		w := (e.Score + 0.01) / float64(1+e.UsedAsSeed)
		if w <= 0 {
			w = 0.001
		}
		weights[i] = w
		total += w
	}

	r := rng.Float64() * total
	var cumulative float64
	chosen := entries[len(entries)-1]
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			chosen = entries[i]
			break
		}
	}

	log.WithFields(logrus.Fields{
		"elite_id": chosen.ID,
		"score":    chosen.Score,
		"reused":   chosen.UsedAsSeed,
	}).Info("[SeedSelector] reseeding from elite")

	return chosen.Sol.DeepCopy(), chosen.ID, nil
}
