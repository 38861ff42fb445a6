package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/beautybot/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Root welcome endpoint
	router.GET("/", handler.Index)

	// API routes
	api := router.Group("/api")
	{
		api.POST("/recommend", handler.Recommend)
		api.GET("/categories", handler.Categories)
		api.GET("/health", handler.HealthCheck)
	}

	return router
}

// RecoveryMiddleware recovers from panics and maps them to a generic error
// body so internal detail never leaks to the caller
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "An error occurred processing your request",
		})
	})
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}
