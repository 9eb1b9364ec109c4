package routes

import (
	"github.com/gin-gonic/gin"

	"subtitle-whisper/internal/api/v1/handlers"
	"subtitle-whisper/internal/api/v1/services"
)

// RegisterRoutes registers all v1 API routes. The group must already carry
// the session middleware.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	sessionHandler := handlers.NewSessionHandler(container.SessionService)
	sessions := router.Group("/session")
	{
		sessions.GET("", sessionHandler.Get)
		sessions.PUT("/credential", sessionHandler.SetCredential)
		sessions.DELETE("", sessionHandler.Delete)
	}

	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService, container.MaxUploadBytes)
	router.POST("/uploads", transcriptionHandler.Upload)
	router.GET("/audio", transcriptionHandler.Audio)

	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Create)
		transcriptions.GET("/download", transcriptionHandler.Download)
	}
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	SessionService       services.SessionService
	TranscriptionService services.TranscriptionService
	MaxUploadBytes       int64
}
