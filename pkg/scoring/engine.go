package scoring

import (
	"math"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// BurnoutFactors computes the four burnout-side factor contributions.
func BurnoutFactors(h models.HealthSnapshot, w models.WorkSnapshot, b models.Baseline) []models.FactorContribution {
	return []models.FactorContribution{
		SleepDeficitFactor(h, b),
		HrvStressFactor(h, b),
		WorkOverloadFactor(w, b),
		RecoveryDeficitFactor(h),
	}
}

// ReadinessFactors computes the four readiness-side factor contributions.
func ReadinessFactors(h models.HealthSnapshot, w models.WorkSnapshot, b models.Baseline, history []models.DaySnapshots) []models.FactorContribution {
	return []models.FactorContribution{
		SleepQualityFactor(h, b),
		HrvRecoveryFactor(h, b),
		WorkBalanceFactor(w, b),
		TrendFactor(history),
	}
}

func weightedSum(factors []models.FactorContribution) float64 {
	var sum float64
	for _, f := range factors {
		sum += f.NormalizedScore * f.Weight
	}
	return sum
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Evaluate scores one individual for one day. It is a pure function of its
// input: no I/O, no clock reads, total over every input shape described by
// the data model. The embedded threshold config is treated as the effective
// layer; an invalid one silently falls back to system defaults.
func Evaluate(in models.EvaluationInput) models.ZoneRecord {
	rt := ResolveThresholds(&in.Thresholds, nil, in.Date, ScoreDistribution{})
	return EvaluateWith(in, rt)
}

// EvaluateWith scores against already-resolved thresholds, for callers that
// ran the full override/organization/percentile resolution themselves.
func EvaluateWith(in models.EvaluationInput, rt ResolvedThresholds) models.ZoneRecord {
	burnoutFactors := BurnoutFactors(in.Health, in.Work, in.Baseline)
	readinessFactors := ReadinessFactors(in.Health, in.Work, in.Baseline, in.History)

	// Day-of-week dampening hits the work-overload factor before weighting.
	if rt.WeekendAdjustmentEnabled {
		for i := range burnoutFactors {
			if burnoutFactors[i].Name == FactorWorkOverload {
				adjusted := clamp100(burnoutFactors[i].NormalizedScore * WorkloadExpectation(in.Date.Weekday()))
				burnoutFactors[i].NormalizedScore = adjusted
				burnoutFactors[i].Impact = burnoutImpact(adjusted)
			}
		}
	}

	burnout := weightedSum(burnoutFactors)

	if rt.EnableInteractionEffects {
		byName := make(map[string]models.FactorContribution, len(burnoutFactors))
		for _, f := range burnoutFactors {
			byName[f.Name] = f
		}
		burnout += InteractionPenalty(byName, rt.InteractionHighThreshold)
	}

	fatigue, needsBreak := FatiguePenalty(in.DaysSinceGoodRecovery)
	burnout += fatigue

	// Self-report calibration scales burnout only, never readiness.
	comparator := averageOrDefault(in.RecentBurnoutScores, burnout)
	if factor, ok := CalibrationFactor(in.SelfReports, in.Date, comparator); ok {
		burnout *= factor
	}

	burnout = round1(clamp100(burnout))
	readiness := round1(clamp100(weightedSum(readinessFactors)))

	zone := Classify(burnout, readiness, rt)

	allFactors := append(append([]models.FactorContribution(nil), burnoutFactors...), readinessFactors...)
	explanation := BuildExplanation(allFactors, zone)

	return models.ZoneRecord{
		IndividualID:   in.IndividualID,
		Date:           in.Date,
		BurnoutScore:   burnout,
		ReadinessScore: readiness,
		Zone:           zone,
		PreviousZone:   in.PreviousZone,
		ZoneChanged:    in.PreviousZone != "" && in.PreviousZone != zone,
		NeedsBreak:     needsBreak,
		Explanation:    explanation,
	}
}
