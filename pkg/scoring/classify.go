package scoring

import "github.com/Wyattc747/burnout-monitor-sub003/pkg/models"

// Classify maps a score pair onto a zone. Burnout takes priority: a score
// at or above the red threshold is red no matter how high readiness is.
func Classify(burnoutScore, readinessScore float64, t ResolvedThresholds) models.Zone {
	switch {
	case burnoutScore >= t.BurnoutRed:
		return models.ZoneRed
	case readinessScore >= t.ReadinessGreen:
		return models.ZoneGreen
	default:
		return models.ZoneYellow
	}
}
