package database

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Key        string     `gorm:"unique;not null" json:"key"`
	Name       string     `gorm:"not null" json:"name"`
	KeyPreview string     `json:"key_preview"`
	RateLimit  int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt  time.Time  `json:"created_at"`
	LastUsed   *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table, one row per key per day
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	Evaluations  int    `gorm:"default:0" json:"evaluations"`
	Individuals  int    `gorm:"default:0" json:"individuals"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// ZoneRecordRow persists one scored day. The (individual_id, date) pair is
// the upsert key: re-scoring a day replaces the earlier row, last writer
// wins. The explanation is stored as JSON.
type ZoneRecordRow struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	IndividualID    string    `gorm:"uniqueIndex:idx_individual_date;not null" json:"individual_id"`
	Date            string    `gorm:"uniqueIndex:idx_individual_date;not null" json:"date"` // 2006-01-02
	BurnoutScore    float64   `json:"burnout_score"`
	ReadinessScore  float64   `json:"readiness_score"`
	Zone            string    `json:"zone"`
	PreviousZone    string    `json:"previous_zone"`
	ZoneChanged     bool      `json:"zone_changed"`
	NeedsBreak      bool      `json:"needs_break"`
	ExplanationJSON string    `json:"explanation_json"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ThresholdRow persists one organization or individual threshold layer.
type ThresholdRow struct {
	ID                       uint       `gorm:"primaryKey" json:"id"`
	Scope                    string     `gorm:"not null" json:"scope"` // organization | individual
	SubjectID                string     `gorm:"index" json:"subject_id"`
	BurnoutRedThreshold      float64    `json:"burnout_red_threshold"`
	ReadinessGreenThreshold  float64    `json:"readiness_green_threshold"`
	ThresholdType            string     `json:"threshold_type"`
	InteractionHighThreshold float64    `json:"interaction_high_threshold"`
	EnableInteractionEffects bool       `json:"enable_interaction_effects"`
	WeekendAdjustmentEnabled bool       `json:"weekend_adjustment_enabled"`
	ValidFrom                time.Time  `json:"valid_from"`
	ValidTo                  *time.Time `json:"valid_to"`
	CreatedAt                time.Time  `json:"created_at"`
}

// SelfReportRow persists one subjective check-in.
type SelfReportRow struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	IndividualID    string    `gorm:"uniqueIndex:idx_report_individual_date;not null" json:"individual_id"`
	Date            string    `gorm:"uniqueIndex:idx_report_individual_date;not null" json:"date"`
	OverallFeeling  float64   `json:"overall_feeling"`
	EnergyLevel     float64   `json:"energy_level"`
	StressLevel     float64   `json:"stress_level"`
	MotivationLevel float64   `json:"motivation_level"`
	CreatedAt       time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "wellness.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	// Auto Migration
	db.AutoMigrate(&APIKey{}, &APIUsage{}, &MasterUser{}, &ZoneRecordRow{}, &ThresholdRow{}, &SelfReportRow{})

	return db
}

// UpsertZoneRecord writes a scored day with last-writer-wins semantics on
// (individual_id, date), in a single query.
func UpsertZoneRecord(db *gorm.DB, rec models.ZoneRecord) error {
	explanation, err := json.Marshal(rec.Explanation)
	if err != nil {
		return err
	}

	row := ZoneRecordRow{
		IndividualID:    rec.IndividualID,
		Date:            rec.Date.Format("2006-01-02"),
		BurnoutScore:    rec.BurnoutScore,
		ReadinessScore:  rec.ReadinessScore,
		Zone:            string(rec.Zone),
		PreviousZone:    string(rec.PreviousZone),
		ZoneChanged:     rec.ZoneChanged,
		NeedsBreak:      rec.NeedsBreak,
		ExplanationJSON: string(explanation),
	}

	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "individual_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"burnout_score", "readiness_score", "zone", "previous_zone",
			"zone_changed", "needs_break", "explanation_json", "updated_at",
		}),
	}).Create(&row).Error
}

// ToThresholdConfig converts a stored row into the engine's config shape.
func (r ThresholdRow) ToThresholdConfig() models.ThresholdConfig {
	return models.ThresholdConfig{
		Scope:                    models.ConfigScope(r.Scope),
		BurnoutRedThreshold:      r.BurnoutRedThreshold,
		ReadinessGreenThreshold:  r.ReadinessGreenThreshold,
		ThresholdType:            models.ThresholdType(r.ThresholdType),
		InteractionHighThreshold: r.InteractionHighThreshold,
		EnableInteractionEffects: r.EnableInteractionEffects,
		WeekendAdjustmentEnabled: r.WeekendAdjustmentEnabled,
		ValidFrom:                r.ValidFrom,
		ValidTo:                  r.ValidTo,
	}
}
