package dto

import (
	"time"

	"audioscribe/internal/api/errors"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/provider"
)

// CreateTranscriptionRequest asks the server to transcribe a file that is
// already reachable on its filesystem.
type CreateTranscriptionRequest struct {
	FilePath string  `json:"file_path" binding:"required"`
	User     string  `json:"user,omitempty"`
	Provider string  `json:"provider,omitempty"`
	Language string  `json:"language,omitempty"`
	Prompt   string  `json:"prompt,omitempty"`
	Temp     float32 `json:"temperature,omitempty"`
}

// Validate performs domain-specific validation.
func (r *CreateTranscriptionRequest) Validate() error {
	validationErrors := make(map[string]string)

	if r.FilePath == "" {
		validationErrors["file_path"] = "file path is required"
	}
	if r.Temp < 0 || r.Temp > 1 {
		validationErrors["temperature"] = "must be between 0 and 1"
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Invalid transcription request", validationErrors)
	}
	return nil
}

// SegmentResponse is one timestamped slice of a transcript.
type SegmentResponse struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionResponse is a transcription in API responses.
type TranscriptionResponse struct {
	ID               int               `json:"id,omitempty"`
	User             string            `json:"user,omitempty"`
	FileName         string            `json:"file_name,omitempty"`
	Language         string            `json:"language,omitempty"`
	DurationSeconds  float64           `json:"duration_seconds,omitempty"`
	Text             string            `json:"text"`
	Segments         []SegmentResponse `json:"segments,omitempty"`
	Provider         string            `json:"provider,omitempty"`
	ProcessingTimeMs int64             `json:"processing_time_ms,omitempty"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
	Error            string            `json:"error,omitempty"`
}

// FromProviderResponse converts a provider result into the API shape.
func FromProviderResponse(resp *provider.TranscriptionResponse) TranscriptionResponse {
	out := TranscriptionResponse{
		Text:             resp.Text,
		Language:         resp.Language,
		DurationSeconds:  resp.Duration.Seconds(),
		Provider:         resp.ModelUsed,
		ProcessingTimeMs: resp.ProcessingTime.Milliseconds(),
	}
	for _, s := range resp.Segments {
		out.Segments = append(out.Segments, SegmentResponse{
			ID:    s.ID,
			Start: s.Start,
			End:   s.End,
			Text:  s.Text,
		})
	}
	return out
}

// FromModel converts a stored transcription row into the API shape.
func FromModel(t *model.Transcription) TranscriptionResponse {
	resp := TranscriptionResponse{
		ID:              t.ID,
		User:            t.User,
		FileName:        t.AudioFileName,
		Language:        t.Language,
		DurationSeconds: float64(t.AudioDuration),
		Text:            t.Transcription,
		Error:           t.ErrorMessage,
	}
	if !t.LastConversionTime.IsZero() {
		completed := t.LastConversionTime
		resp.CompletedAt = &completed
	}
	return resp
}

// ListTranscriptionsQuery filters the transcription list endpoint.
type ListTranscriptionsQuery struct {
	User  string `form:"user" binding:"required"`
	Limit int    `form:"limit,default=50" binding:"min=1,max=500"`
}
