package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm/clause"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/database"
)

// SelfReportRequest is one subjective check-in submission. Range checks
// happen here, at the ingestion boundary; the engine assumes valid input.
type SelfReportRequest struct {
	IndividualID    string  `json:"individual_id" binding:"required"`
	Date            string  `json:"date" binding:"required"`
	OverallFeeling  float64 `json:"overall_feeling"`
	EnergyLevel     float64 `json:"energy_level"`
	StressLevel     float64 `json:"stress_level"`
	MotivationLevel float64 `json:"motivation_level"`
}

// SubmitSelfReport stores a check-in, one per (individual, date).
func (h *Handler) SubmitSelfReport(c *gin.Context) {
	var req SelfReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be " + dateLayout})
		return
	}

	for _, v := range []float64{req.OverallFeeling, req.EnergyLevel, req.StressLevel, req.MotivationLevel} {
		if v < 1 || v > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "check-in answers must be between 1 and 5"})
			return
		}
	}

	row := database.SelfReportRow{
		IndividualID:    req.IndividualID,
		Date:            req.Date,
		OverallFeeling:  req.OverallFeeling,
		EnergyLevel:     req.EnergyLevel,
		StressLevel:     req.StressLevel,
		MotivationLevel: req.MotivationLevel,
	}

	err := h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "individual_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"overall_feeling", "energy_level", "stress_level", "motivation_level",
		}),
	}).Create(&row).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not store self report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Self report recorded"})
}
