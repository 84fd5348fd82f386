package models

import "time"

// Zone classifies an individual's burnout/readiness state for one day.
type Zone string

const (
	ZoneRed    Zone = "red"
	ZoneYellow Zone = "yellow"
	ZoneGreen  Zone = "green"
)

// Impact describes the direction a factor pushes its parent score.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// HealthSnapshot is one day of physiological telemetry, already normalized
// by the ingestion pipeline. Immutable once written for (individual, date).
type HealthSnapshot struct {
	SleepHours           float64  `json:"sleep_hours"`
	SleepQualityScore    float64  `json:"sleep_quality_score"`    // 0-100
	HeartRateVariability float64  `json:"heart_rate_variability"` // ms
	RestingHeartRate     float64  `json:"resting_heart_rate"`     // bpm
	DeepSleepHours       float64  `json:"deep_sleep_hours"`
	ExerciseMinutes      float64  `json:"exercise_minutes"`
	RecoveryScore        *float64 `json:"recovery_score,omitempty"` // 0-100
}

// WorkSnapshot is one day of work-activity telemetry.
type WorkSnapshot struct {
	HoursWorked      float64 `json:"hours_worked"`
	OvertimeHours    float64 `json:"overtime_hours"`
	TasksCompleted   int     `json:"tasks_completed"`
	TasksAssigned    int     `json:"tasks_assigned"`
	MeetingsAttended int     `json:"meetings_attended"`
}

// Baseline is an individual's rolling personal reference, recomputed from a
// trailing window by the baseline-maintenance job. Any field may be zero
// (absent); the engine substitutes a neutral ratio rather than erroring.
type Baseline struct {
	SleepHours     float64 `json:"baseline_sleep_hours"`
	SleepQuality   float64 `json:"baseline_sleep_quality"`
	Hrv            float64 `json:"baseline_hrv"`
	RestingHr      float64 `json:"baseline_resting_hr"`
	HoursWorked    float64 `json:"baseline_hours_worked"`
	TasksCompleted float64 `json:"baseline_tasks_completed"`
	ResponseTime   float64 `json:"baseline_response_time"`
}

// ConfigScope identifies which layer a ThresholdConfig belongs to.
type ConfigScope string

const (
	ScopeSystem       ConfigScope = "system"
	ScopeOrganization ConfigScope = "organization"
	ScopeIndividual   ConfigScope = "individual"
)

// ThresholdType selects how stored threshold numbers are interpreted.
type ThresholdType string

const (
	ThresholdAbsolute   ThresholdType = "absolute"
	ThresholdPercentile ThresholdType = "percentile"
)

// ThresholdConfig is one layer of zone-cutoff configuration. Resolution
// order: active individual override > organization > system default.
type ThresholdConfig struct {
	Scope                    ConfigScope   `json:"scope"`
	BurnoutRedThreshold      float64       `json:"burnout_red_threshold"`
	ReadinessGreenThreshold  float64       `json:"readiness_green_threshold"`
	ThresholdType            ThresholdType `json:"threshold_type"`
	InteractionHighThreshold float64       `json:"interaction_high_threshold"`
	EnableInteractionEffects bool          `json:"enable_interaction_effects"`
	WeekendAdjustmentEnabled bool          `json:"weekend_adjustment_enabled"`
	ValidFrom                time.Time     `json:"valid_from"`
	ValidTo                  *time.Time    `json:"valid_to,omitempty"`
}

// FactorContribution is one weighted sub-computation of a score. Ephemeral:
// computed per evaluation, never persisted beyond its explanation.
type FactorContribution struct {
	Name            string  `json:"name"`
	RawRatio        float64 `json:"raw_ratio"`
	NormalizedScore float64 `json:"normalized_score"` // 0-100
	Weight          float64 `json:"weight"`
	Impact          Impact  `json:"impact"`
	Description     string  `json:"description"`
}

// ExplanationFactor is one ranked entry in a zone explanation.
type ExplanationFactor struct {
	Name        string `json:"name"`
	Value       string `json:"value"` // e.g. "-25% vs baseline"
	Description string `json:"description"`
}

// Explanation is the ranked, human-readable narrative attached to a
// ZoneRecord. Its Zone always equals the record's own zone.
type Explanation struct {
	Zone            Zone                `json:"zone"`
	Summary         string              `json:"summary"`
	Factors         []ExplanationFactor `json:"factors"`
	Recommendations []string            `json:"recommendations"`
}

// ZoneRecord is the engine's output for one (individual, date). Upsert
// semantics: later scoring for the same date supersedes earlier.
type ZoneRecord struct {
	IndividualID   string      `json:"individual_id"`
	Date           time.Time   `json:"date"`
	BurnoutScore   float64     `json:"burnout_score"`
	ReadinessScore float64     `json:"readiness_score"`
	Zone           Zone        `json:"zone"`
	PreviousZone   Zone        `json:"previous_zone,omitempty"`
	ZoneChanged    bool        `json:"zone_changed"`
	NeedsBreak     bool        `json:"needs_break"`
	Explanation    Explanation `json:"explanation"`
}

// SelfReportSample is one subjective check-in, all answers on a 1-5 scale.
type SelfReportSample struct {
	Date            time.Time `json:"date"`
	OverallFeeling  float64   `json:"overall_feeling"`
	EnergyLevel     float64   `json:"energy_level"`
	StressLevel     float64   `json:"stress_level"`
	MotivationLevel float64   `json:"motivation_level"`
}

// DaySnapshots pairs the two telemetry records for one history day.
type DaySnapshots struct {
	Date   time.Time      `json:"date"`
	Health HealthSnapshot `json:"health"`
	Work   WorkSnapshot   `json:"work"`
}

// EvaluationInput is everything one evaluation consumes. All lookups are
// performed by the caller; the engine is a pure function over this struct.
type EvaluationInput struct {
	IndividualID string             `json:"individual_id"`
	Date         time.Time          `json:"date"`
	Health       HealthSnapshot     `json:"health"`
	Work         WorkSnapshot       `json:"work"`
	History      []DaySnapshots     `json:"history"` // chronological, ideally >=7 days
	Baseline     Baseline           `json:"baseline"`
	Thresholds   ThresholdConfig    `json:"thresholds"`
	SelfReports  []SelfReportSample `json:"self_reports,omitempty"`
	// RecentBurnoutScores is the trailing window of algorithmic burnout
	// scores used as the calibration comparator.
	RecentBurnoutScores []float64 `json:"recent_burnout_scores,omitempty"`
	PreviousZone        Zone      `json:"previous_zone,omitempty"`
	// DaysSinceGoodRecovery counts days since the last green day with
	// readiness >= 80; 0 means today or unknown.
	DaysSinceGoodRecovery int `json:"days_since_good_recovery"`
}

// TrendDirection summarizes a team's trailing 4-week movement.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendWorsening TrendDirection = "worsening"
)

// MemberStatus is one individual's contribution to a team rollup.
type MemberStatus struct {
	Record  ZoneRecord `json:"record"`
	Consent bool       `json:"consent"`
	// WeeklyBurnout holds up to 4 trailing weekly average burnout scores,
	// oldest first, for the team trend computation.
	WeeklyBurnout []float64 `json:"weekly_burnout,omitempty"`
}

// TeamAggregate is a privacy-preserving team rollup: counts only, no
// per-individual identifiers. Derived on demand, never persisted.
type TeamAggregate struct {
	GroupSize           int            `json:"group_size"`
	HealthScore         float64        `json:"health_score"`
	ZoneDistribution    map[Zone]int   `json:"zone_distribution"`
	BurnoutDistribution map[string]int `json:"burnout_distribution"`
	Trend               TrendDirection `json:"trend"`
	ActionItems         []string       `json:"action_items"`
}
