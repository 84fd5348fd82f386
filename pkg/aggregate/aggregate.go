// Package aggregate builds privacy-preserving team rollups from individual
// zone records. Rollups are derived on demand and never persisted.
package aggregate

import (
	"math"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// MinGroupSize is the smallest consenting group a rollup may describe.
// Below it, per-bucket counts could deanonymize members.
const MinGroupSize = 5

// ErrInsufficientGroup is the typed "not applicable" result for undersized
// groups. It is not a failure; callers surface it as-is.
type ErrInsufficientGroup struct {
	Consenting int
}

func (e ErrInsufficientGroup) Error() string {
	return "insufficient group size for aggregation"
}

// Burnout distribution bucket labels.
const (
	BucketLow      = "low"      // < 40
	BucketModerate = "moderate" // 40-69.9
	BucketHigh     = "high"     // >= 70
)

// trendTolerance is the weekly-average slope band treated as stable.
const trendTolerance = 1.0

// TeamAggregate rolls up the consenting members of a group. Members who
// opted out are excluded before the size check, so an opt-out can push a
// team below the minimum. Fewer than MinGroupSize consenting members
// returns ErrInsufficientGroup with no partial data.
func TeamAggregate(members []models.MemberStatus) (*models.TeamAggregate, error) {
	var consenting []models.MemberStatus
	for _, m := range members {
		if m.Consent {
			consenting = append(consenting, m)
		}
	}
	if len(consenting) < MinGroupSize {
		return nil, ErrInsufficientGroup{Consenting: len(consenting)}
	}

	zones := map[models.Zone]int{
		models.ZoneRed:    0,
		models.ZoneYellow: 0,
		models.ZoneGreen:  0,
	}
	burnoutBuckets := map[string]int{
		BucketLow:      0,
		BucketModerate: 0,
		BucketHigh:     0,
	}

	var burnoutSum, readinessSum float64
	for _, m := range consenting {
		zones[m.Record.Zone]++
		burnoutBuckets[burnoutBucket(m.Record.BurnoutScore)]++
		burnoutSum += m.Record.BurnoutScore
		readinessSum += m.Record.ReadinessScore
	}

	n := float64(len(consenting))
	health := 0.5*(readinessSum/n) + 0.5*(100-burnoutSum/n)

	return &models.TeamAggregate{
		GroupSize:           len(consenting),
		HealthScore:         math.Round(health*10) / 10,
		ZoneDistribution:    zones,
		BurnoutDistribution: burnoutBuckets,
		Trend:               teamTrend(consenting),
		ActionItems:         actionItems(zones),
	}, nil
}

func burnoutBucket(score float64) string {
	switch {
	case score >= 70:
		return BucketHigh
	case score >= 40:
		return BucketModerate
	default:
		return BucketLow
	}
}

// teamTrend averages each member's weekly burnout series into team-level
// weekly means and reads the direction from their slope. Rising burnout is
// worsening. Fewer than two populated weeks reads as stable.
func teamTrend(members []models.MemberStatus) models.TrendDirection {
	const weeks = 4
	sums := make([]float64, weeks)
	counts := make([]int, weeks)
	for _, m := range members {
		series := m.WeeklyBurnout
		if len(series) > weeks {
			series = series[len(series)-weeks:]
		}
		offset := weeks - len(series)
		for i, v := range series {
			sums[offset+i] += v
			counts[offset+i]++
		}
	}

	var xs, ys []float64
	for i := 0; i < weeks; i++ {
		if counts[i] > 0 {
			xs = append(xs, float64(i))
			ys = append(ys, sums[i]/float64(counts[i]))
		}
	}
	if len(ys) < 2 {
		return models.TrendStable
	}

	slope := fitSlope(xs, ys)
	switch {
	case slope > trendTolerance:
		return models.TrendWorsening
	case slope < -trendTolerance:
		return models.TrendImproving
	default:
		return models.TrendStable
	}
}

func fitSlope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumXX float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}

// actionItems prioritizes guidance by whichever zone bucket is largest.
// Red wins ties with yellow, yellow wins ties with green, so guidance errs
// toward the cautious reading.
func actionItems(zones map[models.Zone]int) []string {
	largest := models.ZoneRed
	if zones[models.ZoneYellow] > zones[largest] {
		largest = models.ZoneYellow
	}
	if zones[models.ZoneGreen] > zones[largest] {
		largest = models.ZoneGreen
	}

	switch largest {
	case models.ZoneRed:
		return []string{
			"Reduce team meeting load this week",
			"Review on-call and overtime distribution",
			"Encourage recovery days before deadlines compound",
		}
	case models.ZoneYellow:
		return []string{
			"Watch workload balance across the team",
			"Protect focus time and discourage after-hours work",
		}
	default:
		return []string{
			"Team is in good shape; a stretch goal is viable",
			"Keep current workload and recovery rhythm",
		}
	}
}
