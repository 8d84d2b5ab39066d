package scoring

import "math"

// Grade is the letter grade derived from the overall score.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Readiness is the tri-state verdict on whether an asset may proceed to
// investor distribution.
type Readiness string

const (
	ReadinessReady       Readiness = "ready"
	ReadinessConditional Readiness = "conditional"
	ReadinessNotReady    Readiness = "not_ready"
)

// Readiness policy thresholds. Load-bearing contract values; do not tune.
const (
	notReadyScoreFloor    = 50
	conditionalScoreFloor = 75
	mediumFlagTolerance   = 2
)

// WeightedScore computes a category's contribution to the overall score,
// rounded to two decimals. Inputs are already range-clamped at the input
// boundary; this stays a total function.
func WeightedScore(score, weight int) float64 {
	return math.Round(float64(score)*float64(weight)) / 100
}

// OverallScore sums the weighted scores of a full set of category entries and
// rounds to the nearest integer. With weights summing to 100 and scores in
// [0,100] the sum is already bounded to [0,100]; re-clamping here would mask
// a registry misconfiguration, so none is applied.
func OverallScore(entries []CategoryScoreEntry) int {
	var sum float64
	for _, e := range entries {
		sum += e.WeightedScore
	}
	return int(math.Round(sum))
}

// GradeFromScore maps an overall score onto the grade ladder. Highest
// threshold first; F is the catch-all below 50.
func GradeFromScore(score int) Grade {
	switch {
	case score >= 80:
		return GradeA
	case score >= 70:
		return GradeB
	case score >= 60:
		return GradeC
	case score >= 50:
		return GradeD
	default:
		return GradeF
	}
}

// DistributionReadiness applies the readiness decision policy, first match
// wins:
//
//  1. any high-severity flag, or overall < 50  -> not_ready
//  2. more than 2 medium-severity flags, or overall < 75 -> conditional
//  3. otherwise -> ready
//
// Low-severity flags are informational and never affect the verdict. Unknown
// flag ids resolve to nothing and are skipped; registry tests guard against
// them reaching production.
func DistributionReadiness(overall int, selectedRedFlagIDs []string) Readiness {
	high, medium := countFlagSeverities(selectedRedFlagIDs)

	if high > 0 || overall < notReadyScoreFloor {
		return ReadinessNotReady
	}
	if medium > mediumFlagTolerance || overall < conditionalScoreFloor {
		return ReadinessConditional
	}
	return ReadinessReady
}

func countFlagSeverities(ids []string) (high, medium int) {
	for _, id := range ids {
		flag, ok := RedFlagByID(id)
		if !ok {
			continue
		}
		switch flag.Severity {
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		}
	}
	return high, medium
}
