package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// applyFlat folds a flat dotted-key map (from parseFlatFile or the CLI)
// onto s in Go map iteration order (unspecified), overwriting whatever was
// already there.
// Unknown keys are logged and ignored rather than rejected (spec.md §6:
// "Unknown keys warn and are ignored").
func applyFlat(kv map[string]string, s *Settings) error {
	for key, value := range kv {
		if err := applyOne(key, value, s); err != nil {
			return err
		}
	}
	s.AILS = s.MultiStart.AILS
	return nil
}

func applyOne(key, value string, s *Settings) error {
	switch key {
	case "file":
		s.InstancePath = value
	case "best":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: best: %w", err)
		}
		s.TargetObjective = v
	case "limit":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: limit: %w", err)
		}
		s.Limit = v
	case "rounded":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: rounded: %w", err)
		}
		s.Rounded = &v
	case "stoppingCriterion":
		s.StoppingCriterion = value
	case "solutionDir":
		s.SolutionDir = value

	case "dMin":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: dMin: %w", err)
		}
		s.MultiStart.AILS.Diversity.DMin = v
	case "dMax":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: dMax: %w", err)
		}
		s.MultiStart.AILS.Diversity.DMax = v
	case "gamma":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: gamma: %w", err)
		}
		s.MultiStart.AILS.Gamma = v
		s.MultiStart.AILS.Diversity.Gamma = v
	case "varphi":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: varphi: %w", err)
		}
		s.MultiStart.AILS.GreedyPhi = v
	case "etaMin":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: etaMin: %w", err)
		}
		s.MultiStart.AILS.Diversity.EtaMin = v
	case "etaMax":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: etaMax: %w", err)
		}
		s.MultiStart.AILS.Diversity.EtaMax = v
	case "epsilon":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: epsilon: %w", err)
		}
		s.MultiStart.AILS.Epsilon = v
		s.MultiStart.AILS.Diversity.Epsilon = v
	case "knnLimit":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: knnLimit: %w", err)
		}
		s.KNNLimit = v
	case "fleetMinimizationRate":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: fleetMinimizationRate: %w", err)
		}
		s.MultiStart.AILS.FleetMinRate = v
	case "fleetMinimizationMaxIter":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: fleetMinimizationMaxIter: %w", err)
		}
		s.MultiStart.AILS.FleetMinMaxIter = v

	case "sisr.maxStringLength":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: sisr.maxStringLength: %w", err)
		}
		s.MultiStart.AILS.SISR.Lmax = v
	case "sisr.splitRate":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: sisr.splitRate: %w", err)
		}
		s.MultiStart.AILS.SISR.SplitRate = v
	case "sisr.splitDepth":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: sisr.splitDepth: %w", err)
		}
		s.MultiStart.AILS.SISR.SplitDepth = v
	case "sisr.blinkRate":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: sisr.blinkRate: %w", err)
		}
		s.MultiStart.AILS.SISR.BlinkRate = v
	case "sisr.avgRemoved":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: sisr.avgRemoved: %w", err)
		}
		s.MultiStart.AILS.SISR.AvgRemoved = v

	case "eliteSetSize":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: eliteSetSize: %w", err)
		}
		s.MultiStart.AILS.Elite.MaxSize = v
	case "eliteSetBeta":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: eliteSetBeta: %w", err)
		}
		s.MultiStart.AILS.Elite.Beta = v
	case "eliteSetMinDiversity":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: eliteSetMinDiversity: %w", err)
		}
		s.MultiStart.AILS.Elite.MinDiversity = v

	case "aos.enabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: aos.enabled: %w", err)
		}
		s.MultiStart.AILS.AOS.Enabled = v
	case "aos.segmentLength":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: aos.segmentLength: %w", err)
		}
		s.MultiStart.AILS.AOS.SegmentLength = v
	case "aos.reactionFactor":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: aos.reactionFactor: %w", err)
		}
		s.MultiStart.AILS.AOS.ReactionFactor = v
	case "aos.minProbability":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: aos.minProbability: %w", err)
		}
		s.MultiStart.AILS.AOS.MinProbability = v
	case "aos.scoreGlobalBest":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: aos.scoreGlobalBest: %w", err)
		}
		s.MultiStart.AILS.AOS.ScoreGlobalBest = v
	case "aos.scoreImproved":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: aos.scoreImproved: %w", err)
		}
		s.MultiStart.AILS.AOS.ScoreImproved = v
	case "aos.scoreAccepted":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: aos.scoreAccepted: %w", err)
		}
		s.MultiStart.AILS.AOS.ScoreAccepted = v
	case "aos.scoreRejected":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: aos.scoreRejected: %w", err)
		}
		s.MultiStart.AILS.AOS.ScoreRejected = v

	case "perturbation":
		s.MultiStart.AILS.EnabledOperators = splitCommaList(value)
	case "insertionHeuristics":
		s.MultiStart.AILS.EnabledInsertion = splitCommaList(value)

	case "multiStart.enabled":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: multiStart.enabled: %w", err)
		}
		s.MultiStart.Enabled = v
	case "multiStart.numWorkerThreads":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: multiStart.numWorkerThreads: %w", err)
		}
		s.MultiStart.NumWorkers = v
	case "multiStart.minEliteSizeForWorkers":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("config: multiStart.minEliteSizeForWorkers: %w", err)
		}
		s.MultiStart.MinEliteSizeForWorkers = v
	case "multiStart.stagnationThreshold":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("config: multiStart.stagnationThreshold: %w", err)
		}
		s.MultiStart.StagnationIterations = v
	case "multiStart.competitiveThreshold":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("config: multiStart.competitiveThreshold: %w", err)
		}
		s.MultiStart.CompetitiveThreshold = v
	case "multiStart.notifyMainThread":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: multiStart.notifyMainThread: %w", err)
		}
		s.MultiStart.NotifyMainThread = v

	default:
		logrus.WithField("key", key).Warn("[ailscvrp] unknown parameter key ignored")
	}
	return nil
}

func splitCommaList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
