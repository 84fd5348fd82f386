package scoring

import (
	"math"
	"sort"
	"time"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// System default cutoffs used when no valid configuration applies.
const (
	DefaultBurnoutRedThreshold      = 70.0
	DefaultReadinessGreenThreshold  = 70.0
	DefaultInteractionHighThreshold = 50.0
)

// ScoreDistribution is an organization's trailing score history, used to
// turn percentile-mode thresholds into concrete cutoffs.
type ScoreDistribution struct {
	Burnout   []float64
	Readiness []float64
}

// ResolvedThresholds is the single effective configuration for one
// evaluation. Invalid flags the stored config the resolver had to discard;
// the caller logs it, the engine proceeds on defaults.
type ResolvedThresholds struct {
	BurnoutRed               float64
	ReadinessGreen           float64
	InteractionHighThreshold float64
	EnableInteractionEffects bool
	WeekendAdjustmentEnabled bool
	Source                   models.ConfigScope
	Invalid                  bool
}

// SystemDefaultConfig returns the built-in system-scope configuration.
func SystemDefaultConfig() models.ThresholdConfig {
	return models.ThresholdConfig{
		Scope:                    models.ScopeSystem,
		BurnoutRedThreshold:      DefaultBurnoutRedThreshold,
		ReadinessGreenThreshold:  DefaultReadinessGreenThreshold,
		ThresholdType:            models.ThresholdAbsolute,
		InteractionHighThreshold: DefaultInteractionHighThreshold,
		EnableInteractionEffects: true,
		WeekendAdjustmentEnabled: true,
	}
}

// activeAt reports whether a date-bounded config covers the given day.
func activeAt(c models.ThresholdConfig, asOf time.Time) bool {
	if !c.ValidFrom.IsZero() && asOf.Before(c.ValidFrom) {
		return false
	}
	if c.ValidTo != nil && asOf.After(*c.ValidTo) {
		return false
	}
	return true
}

func validThresholds(c models.ThresholdConfig) bool {
	if c.BurnoutRedThreshold <= 0 || c.BurnoutRedThreshold > 100 {
		return false
	}
	if c.ReadinessGreenThreshold <= 0 || c.ReadinessGreenThreshold > 100 {
		return false
	}
	return true
}

// ResolveThresholds picks the effective configuration: active individual
// override first, then organization config, then the system default. A
// selected config with out-of-range cutoffs is discarded (flagged Invalid)
// and the system default applies; thresholds are never left undefined.
// In percentile mode the stored values are percentile ranks evaluated
// against dist; an empty distribution falls back to absolute reading.
func ResolveThresholds(override, org *models.ThresholdConfig, asOf time.Time, dist ScoreDistribution) ResolvedThresholds {
	cfg := SystemDefaultConfig()
	source := models.ScopeSystem
	invalid := false

	pick := func(c *models.ThresholdConfig) bool {
		if c == nil || !activeAt(*c, asOf) {
			return false
		}
		if !validThresholds(*c) {
			invalid = true
			return false
		}
		cfg = *c
		source = c.Scope
		return true
	}

	if !pick(override) {
		pick(org)
	}

	red := cfg.BurnoutRedThreshold
	green := cfg.ReadinessGreenThreshold
	if cfg.ThresholdType == models.ThresholdPercentile {
		if v, ok := percentile(dist.Burnout, red); ok {
			red = v
		}
		if v, ok := percentile(dist.Readiness, green); ok {
			green = v
		}
	}

	high := cfg.InteractionHighThreshold
	if high <= 0 {
		high = DefaultInteractionHighThreshold
	}

	return ResolvedThresholds{
		BurnoutRed:               red,
		ReadinessGreen:           green,
		InteractionHighThreshold: high,
		EnableInteractionEffects: cfg.EnableInteractionEffects,
		WeekendAdjustmentEnabled: cfg.WeekendAdjustmentEnabled,
		Source:                   source,
		Invalid:                  invalid,
	}
}

// percentile evaluates percentile rank p (0-100) over values with linear
// interpolation. ok is false when values is empty.
func percentile(values []float64, p float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	p = clamp(p, 0, 100)
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo], true
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac, true
}
