package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// maxExplanationFactors caps how many ranked factors an explanation carries.
const maxExplanationFactors = 4

var redDescriptions = map[string]string{
	FactorSleepDeficit:    "Sleep has fallen well below your baseline and is driving risk up",
	FactorHrvStress:       "Your nervous system is showing sustained stress load",
	FactorWorkOverload:    "Working hours and meeting load are running unsustainably hot",
	FactorRecoveryDeficit: "Recovery is not keeping pace with the strain you are under",
	FactorSleepQuality:    "Poor sleep quality is undercutting your capacity to perform",
	FactorHrvRecovery:     "Cardiac recovery signals are depressed",
	FactorWorkBalance:     "Workload is crowding out sustainable output",
	FactorTrend:           "The weekly trend is moving the wrong way",
}

var greenDescriptions = map[string]string{
	FactorSleepDeficit:    "Sleep is on or above baseline and supporting you well",
	FactorHrvStress:       "Stress physiology is calm relative to your baseline",
	FactorWorkOverload:    "Workload is comfortably inside your normal envelope",
	FactorRecoveryDeficit: "Recovery is fully keeping up with demand",
	FactorSleepQuality:    "Restorative sleep is fueling strong readiness",
	FactorHrvRecovery:     "HRV shows you are well recovered and primed",
	FactorWorkBalance:     "Work volume and throughput are in a healthy balance",
	FactorTrend:           "The weekly trend is moving in your favor",
}

var neutralDescriptions = map[string]string{
	FactorSleepDeficit:    "Sleep is somewhat off baseline; worth watching",
	FactorHrvStress:       "Stress markers are mildly elevated",
	FactorWorkOverload:    "Workload is a little above your usual level",
	FactorRecoveryDeficit: "Recovery is only partially covering the load",
	FactorSleepQuality:    "Sleep quality is middling",
	FactorHrvRecovery:     "Cardiac recovery is mixed",
	FactorWorkBalance:     "Work balance is holding but without much margin",
	FactorTrend:           "The weekly trend is flat",
}

var zoneRecommendations = map[models.Zone][]string{
	models.ZoneRed: {
		"Block recovery time today and protect tonight's sleep window",
		"Delegate or defer non-critical work; decline optional meetings",
		"Skip intense training in favor of light movement",
		"Check in with your manager about workload before it compounds",
	},
	models.ZoneYellow: {
		"Keep tonight's sleep consistent; avoid late work sessions",
		"Trim one or two meetings and leave buffer between tasks",
		"Take a deliberate mid-day break away from screens",
	},
	models.ZoneGreen: {
		"Good day to take on a stretch task or hard problem",
		"Schedule demanding deep work while capacity is high",
		"Bank the momentum: keep sleep and training consistent",
	},
}

var zoneSummaries = map[models.Zone]string{
	models.ZoneRed:    "Burnout risk is elevated; prioritize recovery",
	models.ZoneYellow: "Mixed signals today; manage load deliberately",
	models.ZoneGreen:  "You are recovered and ready to push",
}

// factorSalience ranks how far a factor sits from neutral, scaled by its
// weight in the parent score.
func factorSalience(f models.FactorContribution) float64 {
	return math.Abs(f.NormalizedScore-50) * f.Weight
}

// factorValue renders the baseline deviation, e.g. "-25% vs baseline".
func factorValue(f models.FactorContribution) string {
	pct := (f.RawRatio - 1) * 100
	if math.Abs(pct) < 0.5 {
		return "at baseline"
	}
	return fmt.Sprintf("%+.0f%% vs baseline", pct)
}

func describeForZone(name string, zone models.Zone) string {
	var d string
	switch zone {
	case models.ZoneRed:
		d = redDescriptions[name]
	case models.ZoneGreen:
		d = greenDescriptions[name]
	default:
		d = neutralDescriptions[name]
	}
	if d == "" {
		d = neutralDescriptions[name]
	}
	return d
}

// BuildExplanation ranks all factor contributions by salience, keeps the
// top four, and renders zone-appropriate wording and recommendations. The
// explanation's zone always equals the record's zone. Ties in salience
// break by factor name so the ranking is deterministic.
func BuildExplanation(factors []models.FactorContribution, zone models.Zone) models.Explanation {
	ranked := append([]models.FactorContribution(nil), factors...)
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := factorSalience(ranked[i]), factorSalience(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > maxExplanationFactors {
		ranked = ranked[:maxExplanationFactors]
	}

	out := make([]models.ExplanationFactor, 0, len(ranked))
	for _, f := range ranked {
		out = append(out, models.ExplanationFactor{
			Name:        f.Name,
			Value:       factorValue(f),
			Description: describeForZone(f.Name, zone),
		})
	}

	recs := append([]string(nil), zoneRecommendations[zone]...)

	return models.Explanation{
		Zone:            zone,
		Summary:         zoneSummaries[zone],
		Factors:         out,
		Recommendations: recs,
	}
}
