package scoring

import (
	"strings"
	"testing"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

func TestBuildExplanation_TopFourBySalience(t *testing.T) {
	factors := []models.FactorContribution{
		{Name: FactorSleepDeficit, NormalizedScore: 95, Weight: 0.25, RawRatio: 0.7},   // salience 11.25
		{Name: FactorHrvStress, NormalizedScore: 60, Weight: 0.25, RawRatio: 0.9},      // 2.5
		{Name: FactorWorkOverload, NormalizedScore: 90, Weight: 0.25, RawRatio: 1.3},   // 10
		{Name: FactorRecoveryDeficit, NormalizedScore: 55, Weight: 0.25, RawRatio: 1},  // 1.25
		{Name: FactorSleepQuality, NormalizedScore: 20, Weight: 0.30, RawRatio: 0.75},  // 9
		{Name: FactorHrvRecovery, NormalizedScore: 50, Weight: 0.30, RawRatio: 1},      // 0
		{Name: FactorWorkBalance, NormalizedScore: 10, Weight: 0.20, RawRatio: 1.4},    // 8
		{Name: FactorTrend, NormalizedScore: 50, Weight: 0.20, RawRatio: 1},            // 0
	}

	exp := BuildExplanation(factors, models.ZoneRed)

	if len(exp.Factors) != 4 {
		t.Fatalf("Expected 4 ranked factors, got %d", len(exp.Factors))
	}
	wantOrder := []string{FactorSleepDeficit, FactorWorkOverload, FactorSleepQuality, FactorWorkBalance}
	for i, want := range wantOrder {
		if exp.Factors[i].Name != want {
			t.Errorf("Rank %d: got %s, want %s", i, exp.Factors[i].Name, want)
		}
	}
}

func TestBuildExplanation_TieBreaksByName(t *testing.T) {
	// Identical salience everywhere; the ranking must still be stable.
	var factors []models.FactorContribution
	for _, name := range []string{FactorWorkOverload, FactorHrvStress, FactorSleepDeficit, FactorRecoveryDeficit} {
		factors = append(factors, models.FactorContribution{Name: name, NormalizedScore: 80, Weight: 0.25, RawRatio: 1})
	}

	exp := BuildExplanation(factors, models.ZoneYellow)
	wantOrder := []string{FactorHrvStress, FactorRecoveryDeficit, FactorSleepDeficit, FactorWorkOverload}
	for i, want := range wantOrder {
		if exp.Factors[i].Name != want {
			t.Errorf("Rank %d: got %s, want %s", i, exp.Factors[i].Name, want)
		}
	}
}

func TestBuildExplanation_ValueText(t *testing.T) {
	factors := []models.FactorContribution{
		{Name: FactorSleepDeficit, NormalizedScore: 100, Weight: 0.25, RawRatio: 0.75},
	}
	exp := BuildExplanation(factors, models.ZoneRed)
	if exp.Factors[0].Value != "-25% vs baseline" {
		t.Errorf("Expected \"-25%% vs baseline\", got %q", exp.Factors[0].Value)
	}

	factors[0].RawRatio = 1.0
	exp = BuildExplanation(factors, models.ZoneRed)
	if exp.Factors[0].Value != "at baseline" {
		t.Errorf("Expected \"at baseline\", got %q", exp.Factors[0].Value)
	}

	factors[0].RawRatio = 1.3
	exp = BuildExplanation(factors, models.ZoneRed)
	if exp.Factors[0].Value != "+30% vs baseline" {
		t.Errorf("Expected \"+30%% vs baseline\", got %q", exp.Factors[0].Value)
	}
}

func TestBuildExplanation_ZoneWording(t *testing.T) {
	factors := []models.FactorContribution{
		{Name: FactorWorkOverload, NormalizedScore: 90, Weight: 0.25, RawRatio: 1.4},
	}

	red := BuildExplanation(factors, models.ZoneRed)
	green := BuildExplanation(factors, models.ZoneGreen)
	yellow := BuildExplanation(factors, models.ZoneYellow)

	if red.Factors[0].Description == green.Factors[0].Description {
		t.Errorf("Red and green wording should differ")
	}
	if yellow.Factors[0].Description == red.Factors[0].Description {
		t.Errorf("Yellow should use neutral wording, not red wording")
	}

	// Red recommendations emphasize rest/delegation, green ones stretch.
	redText := strings.Join(red.Recommendations, " ")
	if !strings.Contains(strings.ToLower(redText), "delegate") {
		t.Errorf("Red recommendations should mention delegation: %v", red.Recommendations)
	}
	greenText := strings.Join(green.Recommendations, " ")
	if !strings.Contains(strings.ToLower(greenText), "stretch") {
		t.Errorf("Green recommendations should mention stretch work: %v", green.Recommendations)
	}

	if red.Zone != models.ZoneRed || green.Zone != models.ZoneGreen || yellow.Zone != models.ZoneYellow {
		t.Errorf("Explanation zone must echo the requested zone")
	}
}
