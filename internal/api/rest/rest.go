package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/porcinet/herdbook/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, auth *middleware.Authenticator) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes, every one acts on behalf of the token subject
	v1 := router.Group("/api/v1", middleware.Auth(auth))
	{
		v1.POST("/batches/:batch_id/weighings", handler.RecordWeighing)

		v1.POST("/migrations/batch-to-individual/preview", handler.PreviewExplode)
		v1.POST("/migrations/batch-to-individual", handler.ExplodeBatch)
		v1.POST("/migrations/individual-to-batch/preview", handler.PreviewFold)
		v1.POST("/migrations/individual-to-batch", handler.FoldIndividuals)

		v1.GET("/projects/:project_id/migrations", handler.ListMigrations)
	}
}
