package ails

import (
	"strings"

	"github.com/routewise/ails-cvrp/diversity"
	"github.com/routewise/ails-cvrp/elite"
	"github.com/routewise/ails-cvrp/perturb"
	"github.com/routewise/ails-cvrp/repair"
)

// Config bundles every tunable the main AILS loop needs, sourced from
// defaults overridden by the parameter file then the CLI (spec.md §6).
type Config struct {
	Diversity diversity.Config
	AOS       AOSConfig
	SISR      perturb.SISRConfig
	Elite     elite.Config
	Regret    repair.RegretKOptions

	// GreedyPhi bounds how many KNN neighbors the "Cost" greedy variant
	// examines (spec.md §4.3's varphi).
	GreedyPhi int

	// MaxRoutes caps the fleet; 0 means unbounded (limited only by
	// Instance.MinFeasibleRoutes).
	MaxRoutes int

	// FleetMinRate is the per-iteration probability of attempting fleet
	// minimization while tau <= FleetMinWindow (spec.md §4.9).
	FleetMinRate    float64
	FleetMinWindow  float64
	FleetMinMaxIter int

	// PatternWindowK is the k-node window size pattern-based operators and
	// the elite pattern tracker both use.
	PatternWindowK int

	// Gamma is the per-operator omega controller's observation window
	// (spec.md §4.5).
	Gamma int

	// HeartbeatEvery logs an [AILS-Heartbeat] line every this many
	// iterations.
	HeartbeatEvery int64

	// TargetObjective stops the loop early once best.f <= TargetObjective
	// (spec.md §4.8 "stop when best <= optimal"); 0 disables early stop.
	TargetObjective float64

	// MaxIterations stops the loop once Stats.Iterations reaches this
	// count, independent of the time-based budget; 0 disables the cap.
	// Populated when the CLI's -stoppingCriterion is Iteration rather
	// than Time (spec.md §6).
	MaxIterations int64

	// Epsilon is the minimal strictly-better improvement recognized when
	// updating best (spec.md §4.8's epsilon).
	Epsilon float64

	// EnabledOperators restricts which destroy operators a Searcher may
	// select, by DestroyKind.String() name (case-insensitive); empty means
	// every operator in operatorKinds is available. Populated from the
	// parameter file's perturbation=<comma list> key (spec.md §6).
	EnabledOperators []string

	// EnabledInsertion restricts which insertion heuristics a Searcher may
	// fall back to for non-SISR destroy operators, by name ("GreedyCost",
	// "RegretK"); empty means both are eligible. "GreedyDistance" is
	// accepted as a name but pickInsertionKind never selects it; when no
	// eligible heuristic is named, GreedyCost is used. Populated from the
	// parameter file's insertionHeuristics=<comma list> key (spec.md §6).
	EnabledInsertion []string
}

// DefaultConfig returns conservative defaults for every sub-config.
func DefaultConfig() Config {
	return Config{
		Diversity: diversity.DefaultConfig(),
		AOS:       DefaultAOSConfig(),
		SISR:      perturb.DefaultSISRConfig(),
		Elite:     elite.DefaultConfig(),
		Regret: repair.RegretKOptions{
			K:         3,
			MaxRoutes: 0,
		},
		GreedyPhi:       5,
		MaxRoutes:       0,
		FleetMinRate:    0.01,
		FleetMinWindow:  0.15,
		FleetMinMaxIter: 20,
		PatternWindowK:  4,
		Gamma:           5,
		HeartbeatEvery:  1000,
		Epsilon:         1e-6,
	}
}

var operatorKinds = []DestroyKind{
	Sequential, Concentric, SISR, RouteRemoval, Random, PatternRemoval, PatternInjection,
}

// enabledOperatorKinds filters operatorKinds down to those named in names
// (case-insensitive); an empty names list enables every operator.
func enabledOperatorKinds(names []string) []DestroyKind {
	if len(names) == 0 {
		return operatorKinds
	}
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[strings.ToLower(strings.TrimSpace(n))] = true
	}
	var out []DestroyKind
	for _, k := range operatorKinds {
		if allowed[strings.ToLower(k.String())] {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return operatorKinds
	}
	return out
}

// insertionAllowed reports whether kind is eligible given names (spec.md
// §6's insertionHeuristics=<comma list>); an empty names list allows every
// heuristic.
func insertionAllowed(kind InsertionKind, names []string) bool {
	if len(names) == 0 {
		return true
	}
	var label string
	switch kind {
	case GreedyDistance:
		label = "greedydistance"
	case GreedyCost:
		label = "greedycost"
	case RegretK:
		label = "regretk"
	}
	for _, n := range names {
		if strings.ToLower(strings.TrimSpace(n)) == label {
			return true
		}
	}
	return false
}
