package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/services"
)

// ProviderHandler handles provider-related API endpoints
type ProviderHandler struct {
	service services.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service services.ProviderService) *ProviderHandler {
	return &ProviderHandler{
		service: service,
	}
}

// List handles GET /api/v1/providers
//
// @Summary List transcription providers
// @Description Lists every registered transcription backend and its capabilities
// @Tags providers
// @Produce json
// @Success 200 {array} dto.ProviderResponse
// @Router /providers [get]
func (h *ProviderHandler) List(c *gin.Context) {
	responses, err := h.service.List(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// Get handles GET /api/v1/providers/:name
//
// @Summary Get a provider
// @Description Retrieves metadata for one registered provider
// @Tags providers
// @Produce json
// @Param name path string true "Provider name"
// @Success 200 {object} dto.ProviderResponse
// @Failure 404 {object} errors.APIError "Provider not found"
// @Router /providers/{name} [get]
func (h *ProviderHandler) Get(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetHealth handles GET /api/v1/providers/:name/health
//
// @Summary Check provider health
// @Description Runs a live health check against one provider
// @Tags providers
// @Produce json
// @Param name path string true "Provider name"
// @Success 200 {object} dto.ProviderHealthResponse
// @Failure 404 {object} errors.APIError "Provider not found"
// @Router /providers/{name}/health [get]
func (h *ProviderHandler) GetHealth(c *gin.Context) {
	response, err := h.service.Health(c.Request.Context(), c.Param("name"))
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListHealth handles GET /api/v1/providers/health
//
// @Summary Check all providers
// @Description Runs live health checks against every registered provider
// @Tags providers
// @Produce json
// @Success 200 {array} dto.ProviderHealthResponse
// @Router /providers/health [get]
func (h *ProviderHandler) ListHealth(c *gin.Context) {
	responses, err := h.service.HealthAll(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}
