package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Wyattc747/burnout-monitor-sub003/pkg/auth"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/database"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/handlers"
	"github.com/Wyattc747/burnout-monitor-sub003/pkg/providers"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	h := &handlers.Handler{DB: db}

	providers.Register(&providers.StaticProvider{ProviderName: "static"})

	r := gin.Default()

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Wellness Scoring API",
			"version": "1.0.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
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

	// Engine Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/evaluate", h.Evaluate)
		api.GET("/zones/:individual", h.GetZones)
		api.POST("/selfreports", h.SubmitSelfReport)
		api.POST("/team/aggregate", h.TeamAggregate)
		api.GET("/usage", h.GetMyUsage)
		api.GET("/providers", h.ListProviders)
		api.GET("/providers/:name/employees", h.ProviderEmployees)
		api.GET("/providers/:name/departments", h.ProviderDepartments)
		api.GET("/providers/:name/test", h.ProviderTest)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
