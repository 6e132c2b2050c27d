package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/api/v1/services"
)

// EmbeddingHandler handles embedding-related API endpoints
type EmbeddingHandler struct {
	service services.EmbeddingService
}

// NewEmbeddingHandler creates a new embedding handler
func NewEmbeddingHandler(service services.EmbeddingService) *EmbeddingHandler {
	return &EmbeddingHandler{
		service: service,
	}
}

// Generate handles POST /api/v1/embeddings/generate
//
// @Summary Embed a stored transcription
// @Description Generates and stores an embedding vector for one transcription
// @Tags embeddings
// @Accept json
// @Produce json
// @Param embedding body dto.GenerateEmbeddingRequest true "Embedding request"
// @Success 201 {object} dto.EmbeddingResponse
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Router /embeddings/generate [post]
func (h *EmbeddingHandler) Generate(c *gin.Context) {
	var req dto.GenerateEmbeddingRequest
	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Generate(c.Request.Context(), req.TranscriptionID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Search handles GET /api/v1/embeddings/search
//
// @Summary Search transcripts semantically
// @Description Ranks a user's transcripts by cosine similarity to the query
// @Tags embeddings
// @Produce json
// @Param user query string true "User nickname"
// @Param q query string true "Search query"
// @Param top_k query int false "Number of results" default(5)
// @Success 200 {array} dto.SearchResultResponse
// @Router /embeddings/search [get]
func (h *EmbeddingHandler) Search(c *gin.Context) {
	var query dto.SearchEmbeddingsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	responses, err := h.service.Search(c.Request.Context(), query.User, query.Query, query.TopK)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}
