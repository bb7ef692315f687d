package config

import (
	"time"

	"github.com/routewise/ails-cvrp/ails"
	"github.com/routewise/ails-cvrp/multistart"
)

// Settings is the fully resolved run configuration, after layering
// defaults, an optional parameter file, and CLI flags (spec.md §6).
type Settings struct {
	// InstancePath is the required -file instance path.
	InstancePath string

	// SolutionDir is -solutionDir; the solution is written there when set.
	SolutionDir string

	// TargetObjective is -best, the early-stopping target.
	TargetObjective float64

	// Limit is -limit, interpreted as seconds or iterations depending on
	// StoppingCriterion.
	Limit float64

	// StoppingCriterion is -stoppingCriterion, "Time" or "Iteration".
	StoppingCriterion string

	// Rounded is -rounded; nil leaves the instance file's own
	// EDGE_WEIGHT_TYPE-implied rounding untouched.
	Rounded *bool

	// KNNLimit is the knnLimit override.
	KNNLimit int

	// Seed seeds every searcher's PRNG; not part of spec.md §6's CLI
	// surface, carried as an ambient reproducibility knob.
	Seed int64

	AILS       ails.Config
	MultiStart multistart.Config
}

// DefaultSettings returns every sub-config's defaults, bundled together.
func DefaultSettings() Settings {
	ms := multistart.DefaultConfig()
	return Settings{
		SolutionDir:       ".",
		StoppingCriterion: "Time",
		Limit:             0,
		Seed:              1,
		AILS:              ms.AILS,
		MultiStart:        ms,
	}
}

// resolve pushes cross-cutting Settings fields down into the nested AILS
// and MultiStart configs, which carry their own copies.
func (s *Settings) resolve() {
	s.MultiStart.Seed = s.Seed
	s.MultiStart.AILS.TargetObjective = s.TargetObjective

	switch s.StoppingCriterion {
	case "Iteration":
		s.MultiStart.Budget = 0
		s.MultiStart.AILS.MaxIterations = int64(s.Limit)
	default:
		s.MultiStart.Budget = time.Duration(s.Limit * float64(time.Second))
		s.MultiStart.AILS.MaxIterations = 0
	}

	s.AILS = s.MultiStart.AILS
}
