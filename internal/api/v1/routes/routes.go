package routes

import (
	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/v1/handlers"
	"audioscribe/internal/api/v1/services"
)

// ServiceContainer holds all services needed by handlers.
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	ProviderService      services.ProviderService
	EmbeddingService     services.EmbeddingService
}

// RegisterRoutes registers all v1 API routes.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Create)
		transcriptions.POST("/upload", transcriptionHandler.Upload)
		transcriptions.GET("/:id", transcriptionHandler.Get)
		transcriptions.GET("", transcriptionHandler.List)
	}

	providerHandler := handlers.NewProviderHandler(container.ProviderService)
	providers := router.Group("/providers")
	{
		providers.GET("", providerHandler.List)
		providers.GET("/health", providerHandler.ListHealth)
		providers.GET("/:name", providerHandler.Get)
		providers.GET("/:name/health", providerHandler.GetHealth)
	}

	// Embedding routes only exist when an embedding backend is configured.
	if container.EmbeddingService != nil {
		embeddingHandler := handlers.NewEmbeddingHandler(container.EmbeddingService)
		embeddings := router.Group("/embeddings")
		{
			embeddings.POST("/generate", embeddingHandler.Generate)
			embeddings.GET("/search", embeddingHandler.Search)
		}
	}
}
