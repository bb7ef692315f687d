package config

import (
	"flag"
	"strconv"
	"strings"
	"time"
)

// registerFlags binds s's overridable fields to flag.FlagSet fs, each
// defaulting to s's current value so an unset flag never clobbers the
// parameter file's choice (spec.md §6's defaults < file < CLI precedence).
// Flag names match the parameter file's own dotted keys verbatim.
func registerFlags(fs *flag.FlagSet, s *Settings) map[string]*string {
	str := map[string]*string{}
	bindString := func(name, def string) {
		str[name] = fs.String(name, def, "")
	}

	bindString("file", s.InstancePath)
	bindString("best", ftoa(s.TargetObjective))
	bindString("limit", ftoa(s.Limit))
	bindString("rounded", boolStr(s.Rounded != nil && *s.Rounded))
	bindString("stoppingCriterion", s.StoppingCriterion)
	bindString("solutionDir", s.SolutionDir)

	bindString("dMin", ftoa(s.MultiStart.AILS.Diversity.DMin))
	bindString("dMax", ftoa(s.MultiStart.AILS.Diversity.DMax))
	bindString("gamma", itoa(s.MultiStart.AILS.Gamma))
	bindString("varphi", itoa(s.MultiStart.AILS.GreedyPhi))
	bindString("etaMin", ftoa(s.MultiStart.AILS.Diversity.EtaMin))
	bindString("etaMax", ftoa(s.MultiStart.AILS.Diversity.EtaMax))
	bindString("epsilon", ftoa(s.MultiStart.AILS.Epsilon))
	bindString("knnLimit", itoa(s.KNNLimit))
	bindString("fleetMinimizationRate", ftoa(s.MultiStart.AILS.FleetMinRate))
	bindString("fleetMinimizationMaxIter", itoa(s.MultiStart.AILS.FleetMinMaxIter))

	bindString("sisr.maxStringLength", itoa(s.MultiStart.AILS.SISR.Lmax))
	bindString("sisr.splitRate", ftoa(s.MultiStart.AILS.SISR.SplitRate))
	bindString("sisr.splitDepth", ftoa(s.MultiStart.AILS.SISR.SplitDepth))
	bindString("sisr.blinkRate", ftoa(s.MultiStart.AILS.SISR.BlinkRate))
	bindString("sisr.avgRemoved", ftoa(s.MultiStart.AILS.SISR.AvgRemoved))

	bindString("eliteSetSize", itoa(s.MultiStart.AILS.Elite.MaxSize))
	bindString("eliteSetBeta", ftoa(s.MultiStart.AILS.Elite.Beta))
	bindString("eliteSetMinDiversity", ftoa(s.MultiStart.AILS.Elite.MinDiversity))

	bindString("aos.enabled", boolStr(s.MultiStart.AILS.AOS.Enabled))
	bindString("aos.segmentLength", itoa(s.MultiStart.AILS.AOS.SegmentLength))
	bindString("aos.reactionFactor", ftoa(s.MultiStart.AILS.AOS.ReactionFactor))
	bindString("aos.minProbability", ftoa(s.MultiStart.AILS.AOS.MinProbability))
	bindString("aos.scoreGlobalBest", ftoa(s.MultiStart.AILS.AOS.ScoreGlobalBest))
	bindString("aos.scoreImproved", ftoa(s.MultiStart.AILS.AOS.ScoreImproved))
	bindString("aos.scoreAccepted", ftoa(s.MultiStart.AILS.AOS.ScoreAccepted))
	bindString("aos.scoreRejected", ftoa(s.MultiStart.AILS.AOS.ScoreRejected))

	bindString("perturbation", strings.Join(s.MultiStart.AILS.EnabledOperators, ","))
	bindString("insertionHeuristics", strings.Join(s.MultiStart.AILS.EnabledInsertion, ","))

	bindString("multiStart.enabled", boolStr(s.MultiStart.Enabled))
	bindString("multiStart.numWorkerThreads", itoa(s.MultiStart.NumWorkers))
	bindString("multiStart.minEliteSizeForWorkers", itoa(s.MultiStart.MinEliteSizeForWorkers))
	bindString("multiStart.stagnationThreshold", itoa64(s.MultiStart.StagnationIterations))
	bindString("multiStart.competitiveThreshold", ftoa(s.MultiStart.CompetitiveThreshold))
	bindString("multiStart.notifyMainThread", boolStr(s.MultiStart.NotifyMainThread))

	return str
}

// applyFlags overwrites s with every flag the operator actually passed
// (fs.Visit only calls back for flags set on the command line), so unset
// flags fall through to whatever the parameter file or defaults left in
// place.
func applyFlags(fs *flag.FlagSet, bound map[string]*string, s *Settings) error {
	var firstErr error
	fs.Visit(func(f *flag.Flag) {
		if firstErr != nil {
			return
		}
		ptr, ok := bound[f.Name]
		if !ok {
			return
		}
		if err := applyOne(f.Name, *ptr, s); err != nil {
			firstErr = err
		}
	})
	return firstErr
}

func itoa(v int) string     { return itoa64(int64(v)) }
func itoa64(v int64) string { return strconv.FormatInt(v, 10) }
func ftoa(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
func boolStr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
func durString(d time.Duration) string { return d.String() }
