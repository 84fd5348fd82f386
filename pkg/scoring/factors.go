package scoring

import (
	"math"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// Factor names used across scoring, explanation and interaction pairing.
const (
	FactorSleepDeficit    = "sleep_deficit"
	FactorHrvStress       = "hrv_stress"
	FactorWorkOverload    = "work_overload"
	FactorRecoveryDeficit = "recovery_deficit"
	FactorSleepQuality    = "sleep_quality"
	FactorHrvRecovery     = "hrv_recovery"
	FactorWorkBalance     = "work_balance"
	FactorTrend           = "trend"
)

// Factor weights. Each score's weights sum to 1.0.
const (
	WeightSleepDeficit    = 0.25
	WeightHrvStress       = 0.25
	WeightWorkOverload    = 0.25
	WeightRecoveryDeficit = 0.25

	WeightSleepQuality = 0.30
	WeightHrvRecovery  = 0.30
	WeightWorkBalance  = 0.20
	WeightTrend        = 0.20
)

// deepSleepTarget is the fixed reference for deep sleep; baselines carry no
// per-individual deep-sleep field.
const deepSleepTarget = 1.5

func burnoutImpact(score float64) models.Impact {
	switch {
	case score >= 50:
		return models.ImpactNegative
	case score <= 20:
		return models.ImpactPositive
	default:
		return models.ImpactNeutral
	}
}

func readinessImpact(score float64) models.Impact {
	switch {
	case score >= 70:
		return models.ImpactPositive
	case score <= 40:
		return models.ImpactNegative
	default:
		return models.ImpactNeutral
	}
}

// SleepDeficitFactor scores sleep shortfall against baseline: duration
// counts 60%, quality 40%. A combined ratio at or above baseline scores 0;
// at 60% of baseline or below it saturates at 100.
func SleepDeficitFactor(h models.HealthSnapshot, b models.Baseline) models.FactorContribution {
	durRatio := Ratio(h.SleepHours, b.SleepHours)
	qualRatio := Ratio(h.SleepQualityScore, b.SleepQuality)
	combined := durRatio*0.6 + qualRatio*0.4

	var score float64
	switch {
	case combined >= 1.0:
		score = 0
	case combined <= 0.6:
		score = 100
	default:
		score = clamp100((1 - combined) * 250)
	}

	return models.FactorContribution{
		Name:            FactorSleepDeficit,
		RawRatio:        combined,
		NormalizedScore: score,
		Weight:          WeightSleepDeficit,
		Impact:          burnoutImpact(score),
		Description:     "Sleep duration and quality relative to personal baseline",
	}
}

// HrvStressFactor scores autonomic stress: suppressed HRV counts 60%,
// elevated resting heart rate 40%. Both at or better than baseline scores
// 0; HRV at 70% of baseline or heart rate 20% above saturates at 100.
func HrvStressFactor(h models.HealthSnapshot, b models.Baseline) models.FactorContribution {
	hrvRatio := Ratio(h.HeartRateVariability, b.Hrv)
	hrRatio := Ratio(h.RestingHeartRate, b.RestingHr)

	var score float64
	switch {
	case hrvRatio >= 1.0 && hrRatio <= 1.0:
		score = 0
	case hrvRatio <= 0.7 || hrRatio >= 1.2:
		score = 100
	default:
		hrvPart := math.Max(0, (1-hrvRatio)*166)
		hrPart := math.Max(0, (hrRatio-1)*500)
		score = clamp100(hrvPart*0.6 + hrPart*0.4)
	}

	return models.FactorContribution{
		Name:            FactorHrvStress,
		RawRatio:        hrvRatio,
		NormalizedScore: score,
		Weight:          WeightHrvStress,
		Impact:          burnoutImpact(score),
		Description:     "Heart rate variability and resting heart rate vs baseline",
	}
}

// WorkOverloadFactor scores workload pressure from hours over baseline,
// overtime, and meeting load beyond four per day.
func WorkOverloadFactor(w models.WorkSnapshot, b models.Baseline) models.FactorContribution {
	hoursRatio := Ratio(w.HoursWorked, b.HoursWorked)

	score := math.Max(0, (hoursRatio-1)*100)
	score += w.OvertimeHours * 10
	score += math.Max(0, float64(w.MeetingsAttended-4)) * 5

	return models.FactorContribution{
		Name:            FactorWorkOverload,
		RawRatio:        hoursRatio,
		NormalizedScore: clamp100(score),
		Weight:          WeightWorkOverload,
		Impact:          burnoutImpact(clamp100(score)),
		Description:     "Working hours, overtime and meeting load vs baseline",
	}
}

// RecoveryDeficitFactor scores inadequate recovery: deep-sleep shortfall
// plus recovery-score shortfall, reduced by an exercise credit of up to 10
// points at an hour of activity. An absent recovery score contributes
// nothing rather than counting as poor recovery.
func RecoveryDeficitFactor(h models.HealthSnapshot) models.FactorContribution {
	deepRatio := h.DeepSleepHours / deepSleepTarget

	score := math.Max(0, 50*(1-deepRatio))
	if h.RecoveryScore != nil {
		score += math.Max(0, 0.5*(100-*h.RecoveryScore))
	}

	credit := math.Min(10, h.ExerciseMinutes/6)
	score = math.Max(0, score-credit)

	return models.FactorContribution{
		Name:            FactorRecoveryDeficit,
		RawRatio:        deepRatio,
		NormalizedScore: clamp100(score),
		Weight:          WeightRecoveryDeficit,
		Impact:          burnoutImpact(clamp100(score)),
		Description:     "Deep sleep and recovery shortfall, offset by exercise",
	}
}

// SleepQualityFactor scores restorative sleep for readiness. Short sleep
// (below 85% of baseline duration) caps the score at 50 regardless of
// quality; a long night (above 110%) earns a 10-point bonus.
func SleepQualityFactor(h models.HealthSnapshot, b models.Baseline) models.FactorContribution {
	durRatio := Ratio(h.SleepHours, b.SleepHours)
	deepRatio := h.DeepSleepHours / deepSleepTarget

	var score float64
	if durRatio < 0.85 {
		score = math.Min(50, h.SleepQualityScore*0.5)
	} else {
		bonus := 0.0
		if durRatio > 1.1 {
			bonus = 10
		}
		score = math.Min(100, h.SleepQualityScore*deepRatio+bonus)
	}

	return models.FactorContribution{
		Name:            FactorSleepQuality,
		RawRatio:        durRatio,
		NormalizedScore: clamp100(score),
		Weight:          WeightSleepQuality,
		Impact:          readinessImpact(clamp100(score)),
		Description:     "Restorative sleep quality weighted by deep sleep",
	}
}

// HrvRecoveryFactor scores autonomic recovery for readiness. HRV 10% above
// baseline with a calm heart rate scores a full 100; suppressed HRV or an
// elevated heart rate degrades toward hrvRatio*50.
func HrvRecoveryFactor(h models.HealthSnapshot, b models.Baseline) models.FactorContribution {
	hrvRatio := Ratio(h.HeartRateVariability, b.Hrv)
	invHrRatio := 1.0
	if b.RestingHr > 0 && h.RestingHeartRate > 0 {
		invHrRatio = b.RestingHr / h.RestingHeartRate
	}

	var score float64
	switch {
	case hrvRatio >= 1.1 && invHrRatio >= 1.0:
		score = 100
	case hrvRatio < 0.8 || invHrRatio < 0.9:
		score = math.Max(0, hrvRatio*50)
	default:
		score = math.Min(100, hrvRatio*50+invHrRatio*50)
	}

	return models.FactorContribution{
		Name:            FactorHrvRecovery,
		RawRatio:        hrvRatio,
		NormalizedScore: clamp100(score),
		Weight:          WeightHrvRecovery,
		Impact:          readinessImpact(clamp100(score)),
		Description:     "Autonomic recovery from HRV and resting heart rate",
	}
}

// WorkBalanceFactor scores sustainable workload for readiness. Hours more
// than 10% over baseline decay rapidly from 50; otherwise a 60-point base
// plus a no-overtime bonus and a task-efficiency bonus.
func WorkBalanceFactor(w models.WorkSnapshot, b models.Baseline) models.FactorContribution {
	hoursRatio := Ratio(w.HoursWorked, b.HoursWorked)

	var score float64
	if hoursRatio > 1.1 {
		score = math.Max(0, 50-(hoursRatio-1.1)*200)
	} else {
		efficiency := 1.0
		if w.TasksAssigned > 0 {
			efficiency = float64(w.TasksCompleted) / float64(w.TasksAssigned)
		}
		score = 60
		if w.OvertimeHours == 0 {
			score += 20
		}
		score += efficiency * 20
		score = math.Min(100, score)
	}

	return models.FactorContribution{
		Name:            FactorWorkBalance,
		RawRatio:        hoursRatio,
		NormalizedScore: clamp100(score),
		Weight:          WeightWorkBalance,
		Impact:          readinessImpact(clamp100(score)),
		Description:     "Workload sustainability and task throughput",
	}
}

// TrendFactor scores 7-day momentum: base 50, +20 for rising HRV, +15 for
// rising sleep, +15 for flat-or-falling work hours. Fewer than two history
// days yields the neutral 50.
func TrendFactor(history []models.DaySnapshots) models.FactorContribution {
	score := 50.0
	ratio := 1.0

	if len(history) >= 2 {
		hrvSlope := slope(history, func(d models.DaySnapshots) float64 { return d.Health.HeartRateVariability })
		sleepSlope := slope(history, func(d models.DaySnapshots) float64 { return d.Health.SleepHours })
		workSlope := slope(history, func(d models.DaySnapshots) float64 { return d.Work.HoursWorked })

		if hrvSlope > 0 {
			score += 20
		}
		if sleepSlope > 0 {
			score += 15
		}
		if workSlope <= 0 {
			score += 15
		}
		ratio = 1 + hrvSlope/100
	}

	return models.FactorContribution{
		Name:            FactorTrend,
		RawRatio:        ratio,
		NormalizedScore: clamp100(score),
		Weight:          WeightTrend,
		Impact:          readinessImpact(clamp100(score)),
		Description:     "Week-over-week direction of HRV, sleep and workload",
	}
}

// slope computes the least-squares slope of a metric across chronological
// history days, indexed 0..n-1.
func slope(history []models.DaySnapshots, metric func(models.DaySnapshots) float64) float64 {
	n := float64(len(history))
	var sumX, sumY, sumXY, sumXX float64
	for i, d := range history {
		x := float64(i)
		y := metric(d)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
