package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

func TestResolveThresholds_SystemDefault(t *testing.T) {
	rt := ResolveThresholds(nil, nil, midweek, ScoreDistribution{})

	if rt.BurnoutRed != 70 || rt.ReadinessGreen != 70 {
		t.Errorf("Expected 70/70 defaults, got %.0f/%.0f", rt.BurnoutRed, rt.ReadinessGreen)
	}
	if rt.Source != models.ScopeSystem {
		t.Errorf("Expected system source, got %s", rt.Source)
	}
	if rt.InteractionHighThreshold != 50 {
		t.Errorf("Expected interaction threshold 50, got %.0f", rt.InteractionHighThreshold)
	}
	if !rt.EnableInteractionEffects || !rt.WeekendAdjustmentEnabled {
		t.Errorf("Expected default feature flags enabled")
	}
}

func TestResolveThresholds_Precedence(t *testing.T) {
	org := &models.ThresholdConfig{
		Scope:                   models.ScopeOrganization,
		BurnoutRedThreshold:     80,
		ReadinessGreenThreshold: 60,
		ThresholdType:           models.ThresholdAbsolute,
	}
	override := &models.ThresholdConfig{
		Scope:                   models.ScopeIndividual,
		BurnoutRedThreshold:     65,
		ReadinessGreenThreshold: 75,
		ThresholdType:           models.ThresholdAbsolute,
	}

	rt := ResolveThresholds(override, org, midweek, ScoreDistribution{})
	if rt.Source != models.ScopeIndividual || rt.BurnoutRed != 65 {
		t.Errorf("Expected individual override to win, got %s %.0f", rt.Source, rt.BurnoutRed)
	}

	rt = ResolveThresholds(nil, org, midweek, ScoreDistribution{})
	if rt.Source != models.ScopeOrganization || rt.BurnoutRed != 80 {
		t.Errorf("Expected organization config, got %s %.0f", rt.Source, rt.BurnoutRed)
	}
}

func TestResolveThresholds_ExpiredOverrideFallsThrough(t *testing.T) {
	expiry := midweek.AddDate(0, 0, -5)
	override := &models.ThresholdConfig{
		Scope:                   models.ScopeIndividual,
		BurnoutRedThreshold:     65,
		ReadinessGreenThreshold: 75,
		ValidFrom:               midweek.AddDate(0, 0, -30),
		ValidTo:                 &expiry,
	}
	org := &models.ThresholdConfig{
		Scope:                   models.ScopeOrganization,
		BurnoutRedThreshold:     80,
		ReadinessGreenThreshold: 60,
	}

	rt := ResolveThresholds(override, org, midweek, ScoreDistribution{})
	if rt.Source != models.ScopeOrganization {
		t.Errorf("Expected expired override to fall through to organization, got %s", rt.Source)
	}

	future := &models.ThresholdConfig{
		Scope:                   models.ScopeIndividual,
		BurnoutRedThreshold:     65,
		ReadinessGreenThreshold: 75,
		ValidFrom:               midweek.AddDate(0, 0, 10),
	}
	rt = ResolveThresholds(future, nil, midweek, ScoreDistribution{})
	if rt.Source != models.ScopeSystem {
		t.Errorf("Expected not-yet-active override to fall through to system, got %s", rt.Source)
	}
}

func TestResolveThresholds_InvalidFallsBackToDefaults(t *testing.T) {
	bad := &models.ThresholdConfig{
		Scope:                   models.ScopeOrganization,
		BurnoutRedThreshold:     0, // never resolvable
		ReadinessGreenThreshold: 60,
	}

	rt := ResolveThresholds(nil, bad, midweek, ScoreDistribution{})
	if !rt.Invalid {
		t.Errorf("Expected invalid flag for unusable config")
	}
	if rt.BurnoutRed != 70 || rt.ReadinessGreen != 70 {
		t.Errorf("Expected default cutoffs after invalid config, got %.0f/%.0f", rt.BurnoutRed, rt.ReadinessGreen)
	}

	overRange := &models.ThresholdConfig{
		Scope:                   models.ScopeOrganization,
		BurnoutRedThreshold:     150,
		ReadinessGreenThreshold: 60,
	}
	rt = ResolveThresholds(nil, overRange, midweek, ScoreDistribution{})
	if !rt.Invalid || rt.BurnoutRed != 70 {
		t.Errorf("Expected out-of-range threshold rejected, got %.0f invalid=%v", rt.BurnoutRed, rt.Invalid)
	}
}

func TestResolveThresholds_PercentileMode(t *testing.T) {
	org := &models.ThresholdConfig{
		Scope:                   models.ScopeOrganization,
		BurnoutRedThreshold:     75, // percentile rank
		ReadinessGreenThreshold: 50,
		ThresholdType:           models.ThresholdPercentile,
	}
	dist := ScoreDistribution{
		Burnout:   []float64{10, 20, 30, 40, 50},
		Readiness: []float64{40, 50, 60, 70, 80},
	}

	rt := ResolveThresholds(nil, org, midweek, dist)
	if math.Abs(rt.BurnoutRed-40) > 1e-9 {
		t.Errorf("Expected P75 of burnout distribution = 40, got %.2f", rt.BurnoutRed)
	}
	if math.Abs(rt.ReadinessGreen-60) > 1e-9 {
		t.Errorf("Expected P50 of readiness distribution = 60, got %.2f", rt.ReadinessGreen)
	}

	// Empty distribution reads the stored values as absolute.
	rt = ResolveThresholds(nil, org, midweek, ScoreDistribution{})
	if rt.BurnoutRed != 75 || rt.ReadinessGreen != 50 {
		t.Errorf("Expected absolute fallback with no distribution, got %.0f/%.0f", rt.BurnoutRed, rt.ReadinessGreen)
	}
}

func TestResolveThresholds_NeverUndefined(t *testing.T) {
	dates := []time.Time{midweek, {}, midweek.AddDate(10, 0, 0)}
	for _, d := range dates {
		rt := ResolveThresholds(nil, nil, d, ScoreDistribution{})
		if rt.BurnoutRed <= 0 || rt.ReadinessGreen <= 0 {
			t.Errorf("Thresholds undefined for date %v: %+v", d, rt)
		}
	}
}
