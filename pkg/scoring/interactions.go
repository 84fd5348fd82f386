package scoring

import (
	"math"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// interactionPair couples two burnout factors whose co-occurrence is worse
// than their sum. Multiplier > 1; the excess over 1 scales the penalty.
type interactionPair struct {
	a, b       string
	multiplier float64
}

var interactionPairs = []interactionPair{
	{FactorSleepDeficit, FactorWorkOverload, 1.30},
	{FactorHrvStress, FactorWorkOverload, 1.25},
	{FactorSleepDeficit, FactorHrvStress, 1.20},
	{FactorSleepDeficit, FactorRecoveryDeficit, 1.35},
}

// maxInteractionPenalty caps the summed synergy penalty.
const maxInteractionPenalty = 30.0

// InteractionPenalty sums synergy penalties across the defined factor
// pairs. A pair qualifies when both factor scores exceed highThreshold;
// its penalty is sqrt((f1-t)*(f2-t)) scaled by the pair's excess
// multiplier. The total is capped at 30.
func InteractionPenalty(factors map[string]models.FactorContribution, highThreshold float64) float64 {
	var total float64
	for _, p := range interactionPairs {
		fa, okA := factors[p.a]
		fb, okB := factors[p.b]
		if !okA || !okB {
			continue
		}
		if fa.NormalizedScore <= highThreshold || fb.NormalizedScore <= highThreshold {
			continue
		}
		excess := math.Sqrt((fa.NormalizedScore - highThreshold) * (fb.NormalizedScore - highThreshold))
		total += excess * (p.multiplier - 1)
	}
	return math.Min(total, maxInteractionPenalty)
}
