package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/auth"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/database"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/scoring"
)

const dateLayout = "2006-01-02"

// Handler contains dependencies for the route handlers
type Handler struct {
	DB *gorm.DB
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for engine routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		clientID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      clientID,
			RateLimit: 10000,
		})

		c.Set("apiKey", &apiKey)
		c.Set("clientID", clientID)
		c.Next()
	}
}

// EvaluateRequest is the body for the evaluation endpoint. Date is
// "2006-01-02"; history is chronological. Threshold layering, previous
// zone, calibration window and fatigue tracking are resolved server-side
// from the store unless supplied explicitly.
type EvaluateRequest struct {
	IndividualID   string                    `json:"individual_id" binding:"required"`
	OrganizationID string                    `json:"organization_id"`
	Date           string                    `json:"date" binding:"required"`
	Health         models.HealthSnapshot     `json:"health"`
	Work           models.WorkSnapshot       `json:"work"`
	History        []models.DaySnapshots     `json:"history"`
	Baseline       models.Baseline           `json:"baseline"`
	SelfReports    []models.SelfReportSample `json:"self_reports"`
}

// Evaluate scores one individual for one day and upserts the resulting
// zone record.
func (h *Handler) Evaluate(c *gin.Context) {
	var req EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be " + dateLayout})
		return
	}

	override, org := h.loadThresholdLayers(req.IndividualID, req.OrganizationID, date)
	resolved := scoring.ResolveThresholds(override, org, date, h.scoreDistribution(date))

	selfReports := req.SelfReports
	if len(selfReports) == 0 {
		selfReports = h.loadSelfReports(req.IndividualID, date)
	}

	input := models.EvaluationInput{
		IndividualID:          req.IndividualID,
		Date:                  date,
		Health:                req.Health,
		Work:                  req.Work,
		History:               req.History,
		Baseline:              req.Baseline,
		SelfReports:           selfReports,
		RecentBurnoutScores:   h.recentBurnoutScores(req.IndividualID, date),
		PreviousZone:          h.previousZone(req.IndividualID, date),
		DaysSinceGoodRecovery: h.daysSinceGoodRecovery(req.IndividualID, date),
	}

	record := scoring.EvaluateWith(input, resolved)

	if err := database.UpsertZoneRecord(h.DB, record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not persist zone record"})
		return
	}

	h.RecordUsage(c, 1, 1)

	c.JSON(http.StatusOK, gin.H{
		"record":            record,
		"threshold_source":  resolved.Source,
		"threshold_invalid": resolved.Invalid,
	})
}

// GetZones returns recent zone records for one individual, newest first.
func (h *Handler) GetZones(c *gin.Context) {
	individual := c.Param("individual")
	var rows []database.ZoneRecordRow
	if err := h.DB.Where("individual_id = ?", individual).Order("date desc").Limit(30).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch zone records"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}

// loadThresholdLayers fetches the active individual override and the
// organization config for the evaluation date. Missing layers are nil; the
// resolver falls through to the system default.
func (h *Handler) loadThresholdLayers(individualID, orgID string, date time.Time) (override, org *models.ThresholdConfig) {
	day := date.Format(dateLayout)

	var row database.ThresholdRow
	err := h.DB.Where("scope = ? AND subject_id = ? AND valid_from <= ?", string(models.ScopeIndividual), individualID, day).
		Where("valid_to IS NULL OR valid_to >= ?", day).
		Order("valid_from desc").First(&row).Error
	if err == nil {
		cfg := row.ToThresholdConfig()
		override = &cfg
	}

	if orgID != "" {
		var orgRow database.ThresholdRow
		err = h.DB.Where("scope = ? AND subject_id = ?", string(models.ScopeOrganization), orgID).
			Order("valid_from desc").First(&orgRow).Error
		if err == nil {
			cfg := orgRow.ToThresholdConfig()
			org = &cfg
		}
	}

	return override, org
}

// scoreDistribution collects the trailing 30 days of scores for
// percentile-mode threshold resolution.
func (h *Handler) scoreDistribution(date time.Time) scoring.ScoreDistribution {
	cutoff := date.AddDate(0, 0, -30).Format(dateLayout)

	var rows []database.ZoneRecordRow
	h.DB.Where("date >= ? AND date <= ?", cutoff, date.Format(dateLayout)).Find(&rows)

	dist := scoring.ScoreDistribution{}
	for _, r := range rows {
		dist.Burnout = append(dist.Burnout, r.BurnoutScore)
		dist.Readiness = append(dist.Readiness, r.ReadinessScore)
	}
	return dist
}

func (h *Handler) loadSelfReports(individualID string, date time.Time) []models.SelfReportSample {
	cutoff := date.AddDate(0, 0, -14).Format(dateLayout)

	var rows []database.SelfReportRow
	h.DB.Where("individual_id = ? AND date >= ? AND date <= ?", individualID, cutoff, date.Format(dateLayout)).Find(&rows)

	samples := make([]models.SelfReportSample, 0, len(rows))
	for _, r := range rows {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		samples = append(samples, models.SelfReportSample{
			Date:            d,
			OverallFeeling:  r.OverallFeeling,
			EnergyLevel:     r.EnergyLevel,
			StressLevel:     r.StressLevel,
			MotivationLevel: r.MotivationLevel,
		})
	}
	return samples
}

func (h *Handler) recentBurnoutScores(individualID string, date time.Time) []float64 {
	cutoff := date.AddDate(0, 0, -14).Format(dateLayout)

	var rows []database.ZoneRecordRow
	h.DB.Where("individual_id = ? AND date >= ? AND date < ?", individualID, cutoff, date.Format(dateLayout)).
		Order("date asc").Find(&rows)

	scores := make([]float64, 0, len(rows))
	for _, r := range rows {
		scores = append(scores, r.BurnoutScore)
	}
	return scores
}

func (h *Handler) previousZone(individualID string, date time.Time) models.Zone {
	var row database.ZoneRecordRow
	err := h.DB.Where("individual_id = ? AND date < ?", individualID, date.Format(dateLayout)).
		Order("date desc").First(&row).Error
	if err != nil {
		return ""
	}
	return models.Zone(row.Zone)
}

// daysSinceGoodRecovery counts days back to the last green day with
// readiness >= 80. No such day in the stored history reads as 0 (unknown),
// which adds no fatigue penalty.
func (h *Handler) daysSinceGoodRecovery(individualID string, date time.Time) int {
	var row database.ZoneRecordRow
	err := h.DB.Where("individual_id = ? AND zone = ? AND readiness_score >= ? AND date < ?",
		individualID, string(models.ZoneGreen), 80.0, date.Format(dateLayout)).
		Order("date desc").First(&row).Error
	if err != nil {
		return 0
	}
	last, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		return 0
	}
	return int(date.Sub(last).Hours() / 24)
}
