package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/auth"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/database"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/models"
)

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	key := auth.GenerateHMACKey(req.Name)

	// Preview (e.g., abc...1f2e) so the full key is shown exactly once
	preview := "****"
	if len(key) > 8 {
		preview = key[:3] + "..." + key[len(key)-4:]
	}

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: preview,
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	h.DB.Find(&keys)
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.APIKey{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.APIUsage
	h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage)
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// ThresholdRequest creates one organization or individual threshold layer.
type ThresholdRequest struct {
	Scope                    string  `json:"scope" binding:"required"`
	SubjectID                string  `json:"subject_id" binding:"required"`
	BurnoutRedThreshold      float64 `json:"burnout_red_threshold" binding:"required"`
	ReadinessGreenThreshold  float64 `json:"readiness_green_threshold" binding:"required"`
	ThresholdType            string  `json:"threshold_type"`
	InteractionHighThreshold float64 `json:"interaction_high_threshold"`
	EnableInteractionEffects *bool   `json:"enable_interaction_effects"`
	WeekendAdjustmentEnabled *bool   `json:"weekend_adjustment_enabled"`
	ValidFrom                string  `json:"valid_from"`
	ValidTo                  string  `json:"valid_to"`
}

// CreateThreshold stores a threshold config layer.
func (h *Handler) CreateThreshold(c *gin.Context) {
	var req ThresholdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	scope := models.ConfigScope(req.Scope)
	if scope != models.ScopeOrganization && scope != models.ScopeIndividual {
		c.JSON(http.StatusBadRequest, gin.H{"error": "scope must be organization or individual"})
		return
	}

	thresholdType := models.ThresholdType(req.ThresholdType)
	if thresholdType == "" {
		thresholdType = models.ThresholdAbsolute
	}
	if thresholdType != models.ThresholdAbsolute && thresholdType != models.ThresholdPercentile {
		c.JSON(http.StatusBadRequest, gin.H{"error": "threshold_type must be absolute or percentile"})
		return
	}

	validFrom := time.Now()
	if req.ValidFrom != "" {
		parsed, err := time.Parse(dateLayout, req.ValidFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_from must be " + dateLayout})
			return
		}
		validFrom = parsed
	}

	var validTo *time.Time
	if req.ValidTo != "" {
		parsed, err := time.Parse(dateLayout, req.ValidTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid_to must be " + dateLayout})
			return
		}
		validTo = &parsed
	}

	enableInteractions := true
	if req.EnableInteractionEffects != nil {
		enableInteractions = *req.EnableInteractionEffects
	}
	weekendAdjustment := true
	if req.WeekendAdjustmentEnabled != nil {
		weekendAdjustment = *req.WeekendAdjustmentEnabled
	}

	row := database.ThresholdRow{
		Scope:                    req.Scope,
		SubjectID:                req.SubjectID,
		BurnoutRedThreshold:      req.BurnoutRedThreshold,
		ReadinessGreenThreshold:  req.ReadinessGreenThreshold,
		ThresholdType:            string(thresholdType),
		InteractionHighThreshold: req.InteractionHighThreshold,
		EnableInteractionEffects: enableInteractions,
		WeekendAdjustmentEnabled: weekendAdjustment,
		ValidFrom:                validFrom,
		ValidTo:                  validTo,
	}

	if err := h.DB.Create(&row).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create threshold config"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"threshold": row})
}

// ListThresholds returns stored threshold layers, newest first.
func (h *Handler) ListThresholds(c *gin.Context) {
	var rows []database.ThresholdRow
	query := h.DB.Order("valid_from desc")
	if scope := c.Query("scope"); scope != "" {
		query = query.Where("scope = ?", scope)
	}
	if subject := c.Query("subject_id"); subject != "" {
		query = query.Where("subject_id = ?", subject)
	}
	query.Limit(100).Find(&rows)
	c.JSON(http.StatusOK, gin.H{"thresholds": rows})
}
