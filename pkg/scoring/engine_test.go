package scoring

import (
	"reflect"
	"testing"
	"time"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// midweek avoids day-of-week dampening (Wednesday multiplier is 1.0).
var midweek = time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

func flatHistory(h models.HealthSnapshot, w models.WorkSnapshot, days int) []models.DaySnapshots {
	history := make([]models.DaySnapshots, days)
	for i := range history {
		history[i] = models.DaySnapshots{
			Date:   midweek.AddDate(0, 0, i-days),
			Health: h,
			Work:   w,
		}
	}
	return history
}

func peakPerformerInput() models.EvaluationInput {
	recovery := 80.0
	health := models.HealthSnapshot{
		SleepHours:           7.8,
		SleepQualityScore:    85,
		HeartRateVariability: 55,
		RestingHeartRate:     58,
		DeepSleepHours:       1.6,
		ExerciseMinutes:      45,
		RecoveryScore:        &recovery,
	}
	work := models.WorkSnapshot{
		HoursWorked:      7.5,
		OvertimeHours:    0,
		TasksCompleted:   8,
		TasksAssigned:    7,
		MeetingsAttended: 3,
	}
	return models.EvaluationInput{
		IndividualID: "emp-1",
		Date:         midweek,
		Health:       health,
		Work:         work,
		History:      flatHistory(health, work, 7),
		Baseline: models.Baseline{
			SleepHours:   7.8,
			SleepQuality: 85,
			Hrv:          55,
			RestingHr:    58,
			HoursWorked:  7.5,
		},
	}
}

func burnoutRiskInput() models.EvaluationInput {
	recovery := 40.0
	health := models.HealthSnapshot{
		SleepHours:           5.5,
		SleepQualityScore:    50,
		HeartRateVariability: 32,
		RestingHeartRate:     75,
		DeepSleepHours:       0.8,
		ExerciseMinutes:      10,
		RecoveryScore:        &recovery,
	}
	work := models.WorkSnapshot{
		HoursWorked:      10.5,
		OvertimeHours:    2.5,
		TasksCompleted:   5,
		TasksAssigned:    10,
		MeetingsAttended: 7,
	}
	return models.EvaluationInput{
		IndividualID: "emp-2",
		Date:         midweek,
		Health:       health,
		Work:         work,
		History:      flatHistory(health, work, 7),
		Baseline: models.Baseline{
			SleepHours:   7,
			SleepQuality: 70,
			Hrv:          45,
			RestingHr:    65,
			HoursWorked:  8,
		},
	}
}

func TestEvaluate_PeakPerformer(t *testing.T) {
	rec := Evaluate(peakPerformerInput())

	if rec.Zone != models.ZoneGreen {
		t.Errorf("Expected green zone, got %s (burnout %.1f, readiness %.1f)", rec.Zone, rec.BurnoutScore, rec.ReadinessScore)
	}
	if rec.BurnoutScore >= 50 {
		t.Errorf("Expected burnout < 50, got %.1f", rec.BurnoutScore)
	}
	if rec.ReadinessScore <= 60 {
		t.Errorf("Expected readiness > 60, got %.1f", rec.ReadinessScore)
	}
}

func TestEvaluate_BurnoutRisk(t *testing.T) {
	rec := Evaluate(burnoutRiskInput())

	if rec.Zone != models.ZoneRed {
		t.Errorf("Expected red zone, got %s (burnout %.1f)", rec.Zone, rec.BurnoutScore)
	}
	if rec.BurnoutScore <= 70 {
		t.Errorf("Expected burnout > 70, got %.1f", rec.BurnoutScore)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := burnoutRiskInput()
	first := Evaluate(in)
	second := Evaluate(in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical records for identical inputs:\n%+v\n%+v", first, second)
	}
}

func TestEvaluate_ExplanationZoneMatchesRecord(t *testing.T) {
	for _, in := range []models.EvaluationInput{peakPerformerInput(), burnoutRiskInput()} {
		rec := Evaluate(in)
		if rec.Explanation.Zone != rec.Zone {
			t.Errorf("Explanation zone %s does not match record zone %s", rec.Explanation.Zone, rec.Zone)
		}
		if len(rec.Explanation.Factors) == 0 || len(rec.Explanation.Factors) > 4 {
			t.Errorf("Expected 1-4 explanation factors, got %d", len(rec.Explanation.Factors))
		}
		if len(rec.Explanation.Recommendations) == 0 {
			t.Errorf("Expected recommendations for zone %s", rec.Zone)
		}
	}
}

func TestEvaluate_OvertimeMonotonic(t *testing.T) {
	prev := -1.0
	for _, overtime := range []float64{0, 0.5, 1, 2, 3, 5, 8} {
		in := burnoutRiskInput()
		in.Work.OvertimeHours = overtime
		rec := Evaluate(in)
		if rec.BurnoutScore < prev {
			t.Errorf("Burnout dropped from %.1f to %.1f when overtime rose to %.1f", prev, rec.BurnoutScore, overtime)
		}
		prev = rec.BurnoutScore
	}
}

func TestEvaluate_MissingBaselineIsNeutral(t *testing.T) {
	in := peakPerformerInput()
	in.Baseline = models.Baseline{}

	rec := Evaluate(in)
	if rec.BurnoutScore < 0 || rec.BurnoutScore > 100 {
		t.Errorf("Burnout out of range with empty baseline: %.1f", rec.BurnoutScore)
	}
	if rec.ReadinessScore < 0 || rec.ReadinessScore > 100 {
		t.Errorf("Readiness out of range with empty baseline: %.1f", rec.ReadinessScore)
	}

	// Missing sleep baseline reads as no deviation, so no sleep deficit.
	sd := SleepDeficitFactor(in.Health, in.Baseline)
	if sd.NormalizedScore != 0 {
		t.Errorf("Expected zero sleep deficit with missing baseline, got %.1f", sd.NormalizedScore)
	}
}

func TestEvaluate_WeekendDampening(t *testing.T) {
	weekday := burnoutRiskInput()

	saturday := burnoutRiskInput()
	saturday.Date = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC) // Saturday

	wd := Evaluate(weekday)
	sat := Evaluate(saturday)
	if sat.BurnoutScore >= wd.BurnoutScore {
		t.Errorf("Expected Saturday burnout below Wednesday: %.1f vs %.1f", sat.BurnoutScore, wd.BurnoutScore)
	}

	// Dampening off: the same Saturday scores like a weekday.
	noAdjust := saturday
	noAdjust.Thresholds = SystemDefaultConfig()
	noAdjust.Thresholds.WeekendAdjustmentEnabled = false
	plain := Evaluate(noAdjust)
	if plain.BurnoutScore <= sat.BurnoutScore {
		t.Errorf("Expected higher burnout with dampening disabled: %.1f vs %.1f", plain.BurnoutScore, sat.BurnoutScore)
	}
}

func TestEvaluate_FatigueAccumulation(t *testing.T) {
	cases := []struct {
		days       int
		penalty    float64
		needsBreak bool
	}{
		{0, 0, false},
		{14, 0, false},
		{15, 5, false},
		{21, 5, false},
		{22, 10, true},
		{30, 10, true},
		{31, 15, true},
		{60, 15, true},
	}

	for _, tc := range cases {
		penalty, needsBreak := FatiguePenalty(tc.days)
		if penalty != tc.penalty {
			t.Errorf("FatiguePenalty(%d) = %.0f, want %.0f", tc.days, penalty, tc.penalty)
		}
		if needsBreak != tc.needsBreak {
			t.Errorf("FatiguePenalty(%d) needsBreak = %v, want %v", tc.days, needsBreak, tc.needsBreak)
		}
	}

	base := Evaluate(peakPerformerInput())

	tired := peakPerformerInput()
	tired.DaysSinceGoodRecovery = 25
	rec := Evaluate(tired)
	if !rec.NeedsBreak {
		t.Errorf("Expected needsBreak after 25 days without good recovery")
	}
	if rec.BurnoutScore != round1(clamp100(base.BurnoutScore+10)) {
		t.Errorf("Expected +10 fatigue penalty, got %.1f (base %.1f)", rec.BurnoutScore, base.BurnoutScore)
	}
}

func TestEvaluate_ZoneChanged(t *testing.T) {
	in := peakPerformerInput()
	in.PreviousZone = models.ZoneRed
	rec := Evaluate(in)
	if !rec.ZoneChanged {
		t.Errorf("Expected zoneChanged moving red -> green")
	}

	in.PreviousZone = models.ZoneGreen
	rec = Evaluate(in)
	if rec.ZoneChanged {
		t.Errorf("Expected no zone change staying green")
	}

	in.PreviousZone = ""
	rec = Evaluate(in)
	if rec.ZoneChanged {
		t.Errorf("Expected no zone change with no prior record")
	}
}

func TestEvaluate_CalibrationRaisesBurnout(t *testing.T) {
	in := burnoutRiskInput()
	base := Evaluate(in)

	// Three recent miserable check-ins against a low algorithmic window.
	in.SelfReports = []models.SelfReportSample{
		{Date: midweek.AddDate(0, 0, -1), OverallFeeling: 1, StressLevel: 5},
		{Date: midweek.AddDate(0, 0, -3), OverallFeeling: 1, StressLevel: 5},
		{Date: midweek.AddDate(0, 0, -5), OverallFeeling: 2, StressLevel: 4},
	}
	in.RecentBurnoutScores = []float64{40, 45, 50}

	rec := Evaluate(in)
	if rec.BurnoutScore <= base.BurnoutScore {
		t.Errorf("Expected calibration to raise burnout: %.1f vs %.1f", rec.BurnoutScore, base.BurnoutScore)
	}

	// Two samples is below the activation minimum: no adjustment.
	in.SelfReports = in.SelfReports[:2]
	rec = Evaluate(in)
	if rec.BurnoutScore != base.BurnoutScore {
		t.Errorf("Expected no calibration with 2 samples: %.1f vs %.1f", rec.BurnoutScore, base.BurnoutScore)
	}
}
