package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// yamlDocument mirrors Settings' dotted parameter-file keys as a nested
// YAML document, for operators who prefer a structured parameter file over
// spec.md §6's flat grammar. Every field is optional; zero values are left
// unapplied by applyYAML.
type yamlDocument struct {
	File              string   `yaml:"file,omitempty"`
	Best              *float64 `yaml:"best,omitempty"`
	Limit             *float64 `yaml:"limit,omitempty"`
	Rounded           *bool    `yaml:"rounded,omitempty"`
	StoppingCriterion string   `yaml:"stoppingCriterion,omitempty"`
	SolutionDir       string   `yaml:"solutionDir,omitempty"`

	DMin    *float64 `yaml:"dMin,omitempty"`
	DMax    *float64 `yaml:"dMax,omitempty"`
	Gamma   *int     `yaml:"gamma,omitempty"`
	Varphi  *int     `yaml:"varphi,omitempty"`
	EtaMin  *float64 `yaml:"etaMin,omitempty"`
	EtaMax  *float64 `yaml:"etaMax,omitempty"`
	Epsilon *float64 `yaml:"epsilon,omitempty"`
	KNNLimit *int    `yaml:"knnLimit,omitempty"`

	FleetMinimizationRate    *float64 `yaml:"fleetMinimizationRate,omitempty"`
	FleetMinimizationMaxIter *int     `yaml:"fleetMinimizationMaxIter,omitempty"`

	SISR *struct {
		MaxStringLength *int     `yaml:"maxStringLength,omitempty"`
		SplitRate       *float64 `yaml:"splitRate,omitempty"`
		SplitDepth      *float64 `yaml:"splitDepth,omitempty"`
		BlinkRate       *float64 `yaml:"blinkRate,omitempty"`
		AvgRemoved      *float64 `yaml:"avgRemoved,omitempty"`
	} `yaml:"sisr,omitempty"`

	EliteSetSize         *int     `yaml:"eliteSetSize,omitempty"`
	EliteSetBeta         *float64 `yaml:"eliteSetBeta,omitempty"`
	EliteSetMinDiversity *float64 `yaml:"eliteSetMinDiversity,omitempty"`

	AOS *struct {
		Enabled         *bool    `yaml:"enabled,omitempty"`
		SegmentLength   *int     `yaml:"segmentLength,omitempty"`
		ReactionFactor  *float64 `yaml:"reactionFactor,omitempty"`
		MinProbability  *float64 `yaml:"minProbability,omitempty"`
		ScoreGlobalBest *float64 `yaml:"scoreGlobalBest,omitempty"`
		ScoreImproved   *float64 `yaml:"scoreImproved,omitempty"`
		ScoreAccepted   *float64 `yaml:"scoreAccepted,omitempty"`
		ScoreRejected   *float64 `yaml:"scoreRejected,omitempty"`
	} `yaml:"aos,omitempty"`

	Perturbation        []string `yaml:"perturbation,omitempty"`
	InsertionHeuristics []string `yaml:"insertionHeuristics,omitempty"`

	MultiStart *struct {
		Enabled                *bool    `yaml:"enabled,omitempty"`
		NumWorkerThreads       *int     `yaml:"numWorkerThreads,omitempty"`
		MinEliteSizeForWorkers *int     `yaml:"minEliteSizeForWorkers,omitempty"`
		StagnationThreshold    *int64   `yaml:"stagnationThreshold,omitempty"`
		CompetitiveThreshold   *float64 `yaml:"competitiveThreshold,omitempty"`
		NotifyMainThread       *bool    `yaml:"notifyMainThread,omitempty"`
	} `yaml:"multiStart,omitempty"`
}

// loadYAMLFile parses a .yaml/.yml parameter file and applies it onto s.
func loadYAMLFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var doc yamlDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	applyYAML(doc, s)
	return nil
}

func applyYAML(doc yamlDocument, s *Settings) {
	if doc.File != "" {
		s.InstancePath = doc.File
	}
	if doc.Best != nil {
		s.TargetObjective = *doc.Best
	}
	if doc.Limit != nil {
		s.Limit = *doc.Limit
	}
	if doc.Rounded != nil {
		s.Rounded = doc.Rounded
	}
	if doc.StoppingCriterion != "" {
		s.StoppingCriterion = doc.StoppingCriterion
	}
	if doc.SolutionDir != "" {
		s.SolutionDir = doc.SolutionDir
	}

	if doc.DMin != nil {
		s.MultiStart.AILS.Diversity.DMin = *doc.DMin
	}
	if doc.DMax != nil {
		s.MultiStart.AILS.Diversity.DMax = *doc.DMax
	}
	if doc.Gamma != nil {
		s.MultiStart.AILS.Gamma = *doc.Gamma
		s.MultiStart.AILS.Diversity.Gamma = *doc.Gamma
	}
	if doc.Varphi != nil {
		s.MultiStart.AILS.GreedyPhi = *doc.Varphi
	}
	if doc.EtaMin != nil {
		s.MultiStart.AILS.Diversity.EtaMin = *doc.EtaMin
	}
	if doc.EtaMax != nil {
		s.MultiStart.AILS.Diversity.EtaMax = *doc.EtaMax
	}
	if doc.Epsilon != nil {
		s.MultiStart.AILS.Epsilon = *doc.Epsilon
		s.MultiStart.AILS.Diversity.Epsilon = *doc.Epsilon
	}
	if doc.KNNLimit != nil {
		s.KNNLimit = *doc.KNNLimit
	}
	if doc.FleetMinimizationRate != nil {
		s.MultiStart.AILS.FleetMinRate = *doc.FleetMinimizationRate
	}
	if doc.FleetMinimizationMaxIter != nil {
		s.MultiStart.AILS.FleetMinMaxIter = *doc.FleetMinimizationMaxIter
	}

	if doc.SISR != nil {
		if doc.SISR.MaxStringLength != nil {
			s.MultiStart.AILS.SISR.Lmax = *doc.SISR.MaxStringLength
		}
		if doc.SISR.SplitRate != nil {
			s.MultiStart.AILS.SISR.SplitRate = *doc.SISR.SplitRate
		}
		if doc.SISR.SplitDepth != nil {
			s.MultiStart.AILS.SISR.SplitDepth = *doc.SISR.SplitDepth
		}
		if doc.SISR.BlinkRate != nil {
			s.MultiStart.AILS.SISR.BlinkRate = *doc.SISR.BlinkRate
		}
		if doc.SISR.AvgRemoved != nil {
			s.MultiStart.AILS.SISR.AvgRemoved = *doc.SISR.AvgRemoved
		}
	}

	if doc.EliteSetSize != nil {
		s.MultiStart.AILS.Elite.MaxSize = *doc.EliteSetSize
	}
	if doc.EliteSetBeta != nil {
		s.MultiStart.AILS.Elite.Beta = *doc.EliteSetBeta
	}
	if doc.EliteSetMinDiversity != nil {
		s.MultiStart.AILS.Elite.MinDiversity = *doc.EliteSetMinDiversity
	}

	if doc.AOS != nil {
		if doc.AOS.Enabled != nil {
			s.MultiStart.AILS.AOS.Enabled = *doc.AOS.Enabled
		}
		if doc.AOS.SegmentLength != nil {
			s.MultiStart.AILS.AOS.SegmentLength = *doc.AOS.SegmentLength
		}
		if doc.AOS.ReactionFactor != nil {
			s.MultiStart.AILS.AOS.ReactionFactor = *doc.AOS.ReactionFactor
		}
		if doc.AOS.MinProbability != nil {
			s.MultiStart.AILS.AOS.MinProbability = *doc.AOS.MinProbability
		}
		if doc.AOS.ScoreGlobalBest != nil {
			s.MultiStart.AILS.AOS.ScoreGlobalBest = *doc.AOS.ScoreGlobalBest
		}
		if doc.AOS.ScoreImproved != nil {
			s.MultiStart.AILS.AOS.ScoreImproved = *doc.AOS.ScoreImproved
		}
		if doc.AOS.ScoreAccepted != nil {
			s.MultiStart.AILS.AOS.ScoreAccepted = *doc.AOS.ScoreAccepted
		}
		if doc.AOS.ScoreRejected != nil {
			s.MultiStart.AILS.AOS.ScoreRejected = *doc.AOS.ScoreRejected
		}
	}

	if len(doc.Perturbation) > 0 {
		s.MultiStart.AILS.EnabledOperators = doc.Perturbation
	}
	if len(doc.InsertionHeuristics) > 0 {
		s.MultiStart.AILS.EnabledInsertion = doc.InsertionHeuristics
	}

	if doc.MultiStart != nil {
		if doc.MultiStart.Enabled != nil {
			s.MultiStart.Enabled = *doc.MultiStart.Enabled
		}
		if doc.MultiStart.NumWorkerThreads != nil {
			s.MultiStart.NumWorkers = *doc.MultiStart.NumWorkerThreads
		}
		if doc.MultiStart.MinEliteSizeForWorkers != nil {
			s.MultiStart.MinEliteSizeForWorkers = *doc.MultiStart.MinEliteSizeForWorkers
		}
		if doc.MultiStart.StagnationThreshold != nil {
			s.MultiStart.StagnationIterations = *doc.MultiStart.StagnationThreshold
		}
		if doc.MultiStart.CompetitiveThreshold != nil {
			s.MultiStart.CompetitiveThreshold = *doc.MultiStart.CompetitiveThreshold
		}
		if doc.MultiStart.NotifyMainThread != nil {
			s.MultiStart.NotifyMainThread = *doc.MultiStart.NotifyMainThread
		}
	}

	s.AILS = s.MultiStart.AILS
}
