package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"audioscribe/internal/api/errors"
	"audioscribe/internal/api/middleware"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/api/v1/services"
)

// TranscriptionHandler handles transcription-related API endpoints
type TranscriptionHandler struct {
	service services.TranscriptionService
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService) *TranscriptionHandler {
	return &TranscriptionHandler{
		service: service,
	}
}

// Create handles POST /api/v1/transcriptions
//
// @Summary Transcribe an audio file
// @Description Transcribes an audio file reachable on the server and stores the result
// @Tags transcriptions
// @Accept json
// @Produce json
// @Param transcription body dto.CreateTranscriptionRequest true "Transcription request"
// @Success 201 {object} dto.TranscriptionResponse "Transcription completed"
// @Failure 422 {object} errors.APIError "Validation error"
// @Failure 503 {object} errors.APIError "All providers failed"
// @Router /transcriptions [post]
func (h *TranscriptionHandler) Create(c *gin.Context) {
	var req dto.CreateTranscriptionRequest

	if err := middleware.ValidateRequest(c, &req); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Upload handles POST /api/v1/transcriptions/upload
//
// @Summary Transcribe an uploaded audio file
// @Description Accepts a multipart audio upload, transcribes it and stores the result
// @Tags transcriptions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file"
// @Param user formData string false "User nickname"
// @Param provider formData string false "Provider name"
// @Param language formData string false "Language hint"
// @Param prompt formData string false "Context prompt"
// @Success 201 {object} dto.TranscriptionResponse "Transcription completed"
// @Failure 400 {object} errors.APIError "Missing or unreadable file"
// @Failure 503 {object} errors.APIError "All providers failed"
// @Router /transcriptions/upload [post]
func (h *TranscriptionHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("missing multipart field 'file'"))
		return
	}

	tmpDir, err := os.MkdirTemp("", "a2t-upload")
	if err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to stage upload"))
		return
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		middleware.HandleError(c, errors.NewInternalError("failed to save upload"))
		return
	}

	req := &dto.CreateTranscriptionRequest{
		FilePath: tmpPath,
		User:     c.PostForm("user"),
		Provider: c.PostForm("provider"),
		Language: c.PostForm("language"),
		Prompt:   c.PostForm("prompt"),
	}

	response, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Get handles GET /api/v1/transcriptions/:id
//
// @Summary Get a transcription
// @Description Retrieves one stored transcription by its ID
// @Tags transcriptions
// @Produce json
// @Param id path int true "Transcription ID"
// @Success 200 {object} dto.TranscriptionResponse
// @Failure 404 {object} errors.APIError "Transcription not found"
// @Router /transcriptions/{id} [get]
func (h *TranscriptionHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("id must be an integer"))
		return
	}

	response, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /api/v1/transcriptions
//
// @Summary List transcriptions
// @Description Lists stored transcriptions for one user, newest first
// @Tags transcriptions
// @Produce json
// @Param user query string true "User nickname"
// @Param limit query int false "Maximum number of results" default(50)
// @Success 200 {array} dto.TranscriptionResponse
// @Failure 400 {object} errors.APIError "Invalid query parameters"
// @Router /transcriptions [get]
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		middleware.HandleError(c, err)
		return
	}

	responses, err := h.service.List(c.Request.Context(), query.User, query.Limit)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}
