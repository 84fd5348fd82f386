package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/auth"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/database"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/handlers"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/providers"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	// Initialize DB
	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := &handlers.Handler{DB: db}

	providers.Register(&providers.StaticProvider{ProviderName: "static"})

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Wellness Scoring API (Vercel)",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
		admin.POST("/thresholds", h.CreateThreshold)
		admin.GET("/thresholds", h.ListThresholds)
	}

	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/evaluate", h.Evaluate)
		api.GET("/zones/:individual", h.GetZones)
		api.POST("/selfreports", h.SubmitSelfReport)
		api.POST("/team/aggregate", h.TeamAggregate)
		api.GET("/usage", h.GetMyUsage)
	}
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
