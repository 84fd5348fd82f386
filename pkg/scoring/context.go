package scoring

import "time"

// WorkloadExpectation returns the day-of-week multiplier applied to the
// work-overload factor before weighting. Weekend work is expected to be
// light, Mondays run hot, Fridays wind down.
func WorkloadExpectation(day time.Weekday) float64 {
	switch day {
	case time.Saturday, time.Sunday:
		return 0.3
	case time.Monday:
		return 1.1
	case time.Friday:
		return 0.85
	default:
		return 1.0
	}
}

// FatiguePenalty returns the flat burnout penalty for accumulated time
// without a good recovery day (zone green with readiness >= 80), plus
// whether the individual is overdue for a break.
func FatiguePenalty(daysSinceGoodRecovery int) (penalty float64, needsBreak bool) {
	switch {
	case daysSinceGoodRecovery <= 14:
		penalty = 0
	case daysSinceGoodRecovery <= 21:
		penalty = 5
	case daysSinceGoodRecovery <= 30:
		penalty = 10
	default:
		penalty = 15
	}
	return penalty, daysSinceGoodRecovery > 21
}
