package scoring

import (
	"time"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// Calibration activation requirements.
const (
	calibrationMinSamples = 3
	calibrationWindowDays = 14
	calibrationFactorMin  = 0.8
	calibrationFactorMax  = 1.2
)

// CalibrationFactor derives a bounded multiplier for the burnout score from
// recent subjective check-ins. It activates only with at least three
// samples in the trailing 14 days before asOf; otherwise it returns the
// neutral 1.0 and applied=false (insufficient data is a no-op, not an
// error). algorithmicAvg is the mean burnout score over the same window.
func CalibrationFactor(reports []models.SelfReportSample, asOf time.Time, algorithmicAvg float64) (factor float64, applied bool) {
	cutoff := asOf.AddDate(0, 0, -calibrationWindowDays)

	var feelingSum, stressSum float64
	count := 0
	for _, r := range reports {
		if r.Date.Before(cutoff) || r.Date.After(asOf) {
			continue
		}
		feelingSum += r.OverallFeeling
		stressSum += r.StressLevel
		count++
	}
	if count < calibrationMinSamples {
		return 1.0, false
	}

	avgFeeling := feelingSum / float64(count)
	avgStress := stressSum / float64(count)
	selfReported := (5-avgFeeling)*20 + (avgStress-1)*10

	factor = clamp(1+(selfReported-algorithmicAvg)/100, calibrationFactorMin, calibrationFactorMax)
	return factor, true
}

// averageOrDefault is the calibration comparator: the mean of recent
// burnout scores, or fallback when no history is supplied.
func averageOrDefault(scores []float64, fallback float64) float64 {
	if len(scores) == 0 {
		return fallback
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}
