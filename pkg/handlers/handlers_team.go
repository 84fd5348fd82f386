package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/aggregate"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/database"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// TeamAggregateRequest names the group members and their aggregate-consent
// flags. Consent defaults to false: an individual contributes only when
// explicitly opted in.
type TeamAggregateRequest struct {
	Members []struct {
		IndividualID string `json:"individual_id"`
		Consent      bool   `json:"consent"`
	} `json:"members" binding:"required"`
	Date string `json:"date"` // defaults to today
}

// TeamAggregate computes a privacy-preserving rollup for a group. Opted-out
// members are dropped before the size check; an undersized group gets an
// explicit insufficient-group-size response, never partial data.
func (h *Handler) TeamAggregate(c *gin.Context) {
	var req TeamAggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asOf := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be " + dateLayout})
			return
		}
		asOf = parsed
	}

	members := make([]models.MemberStatus, 0, len(req.Members))
	for _, m := range req.Members {
		status, ok := h.memberStatus(m.IndividualID, asOf)
		if !ok {
			continue
		}
		status.Consent = m.Consent
		members = append(members, status)
	}

	result, err := aggregate.TeamAggregate(members)
	if err != nil {
		var insufficient aggregate.ErrInsufficientGroup
		if errors.As(err, &insufficient) {
			c.JSON(http.StatusOK, gin.H{
				"available": false,
				"reason":    "insufficient group size",
				"minimum":   aggregate.MinGroupSize,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not aggregate team"})
		return
	}

	h.RecordUsage(c, 0, len(members))

	c.JSON(http.StatusOK, gin.H{
		"available": true,
		"aggregate": result,
	})
}

// memberStatus loads one member's latest zone record and their trailing
// four weekly burnout averages. Members with no scored days are skipped.
func (h *Handler) memberStatus(individualID string, asOf time.Time) (models.MemberStatus, bool) {
	var latest database.ZoneRecordRow
	err := h.DB.Where("individual_id = ? AND date <= ?", individualID, asOf.Format(dateLayout)).
		Order("date desc").First(&latest).Error
	if err != nil {
		return models.MemberStatus{}, false
	}

	date, err := time.Parse(dateLayout, latest.Date)
	if err != nil {
		return models.MemberStatus{}, false
	}

	var explanation models.Explanation
	_ = json.Unmarshal([]byte(latest.ExplanationJSON), &explanation)

	record := models.ZoneRecord{
		IndividualID:   latest.IndividualID,
		Date:           date,
		BurnoutScore:   latest.BurnoutScore,
		ReadinessScore: latest.ReadinessScore,
		Zone:           models.Zone(latest.Zone),
		PreviousZone:   models.Zone(latest.PreviousZone),
		ZoneChanged:    latest.ZoneChanged,
		NeedsBreak:     latest.NeedsBreak,
		Explanation:    explanation,
	}

	return models.MemberStatus{
		Record:        record,
		WeeklyBurnout: h.weeklyBurnout(individualID, asOf),
	}, true
}

// weeklyBurnout averages the member's burnout scores into four trailing
// 7-day buckets, oldest first. Empty weeks are omitted.
func (h *Handler) weeklyBurnout(individualID string, asOf time.Time) []float64 {
	cutoff := asOf.AddDate(0, 0, -28).Format(dateLayout)

	var rows []database.ZoneRecordRow
	h.DB.Where("individual_id = ? AND date > ? AND date <= ?", individualID, cutoff, asOf.Format(dateLayout)).
		Order("date asc").Find(&rows)

	sums := make([]float64, 4)
	counts := make([]int, 4)
	for _, r := range rows {
		d, err := time.Parse(dateLayout, r.Date)
		if err != nil {
			continue
		}
		daysAgo := int(asOf.Sub(d).Hours() / 24)
		week := 3 - daysAgo/7
		if week < 0 || week > 3 {
			continue
		}
		sums[week] += r.BurnoutScore
		counts[week]++
	}

	var out []float64
	for i := 0; i < 4; i++ {
		if counts[i] > 0 {
			out = append(out, sums[i]/float64(counts[i]))
		}
	}
	return out
}
