package api

import (
	"github.com/avisser/burrow/internal/api/handlers"
	"github.com/avisser/burrow/internal/api/middleware"
	"github.com/avisser/burrow/internal/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/avisser/burrow/internal/api/docs" // swagger docs
)

// RegisterRoutes mounts the versioned API routes and the Swagger UI.
func RegisterRoutes(r *gin.Engine, h *handlers.Handler, cfg *config.Config) {
	// Swagger UI at /swagger/*
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Optional API key protection.
	if cfg != nil && cfg.API.APIKey != "" {
		api.Use(middleware.RequireAPIKey(cfg.API.APIKey))
	}

	api.GET("/health", h.Health)
	api.GET("/stats", h.Stats)
	api.GET("/resolve/:domain", h.Resolve)
	api.GET("/history", h.History)
}
