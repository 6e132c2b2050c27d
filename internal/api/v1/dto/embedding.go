package dto

import "audioscribe/internal/api/errors"

// GenerateEmbeddingRequest asks the server to embed one stored transcription.
type GenerateEmbeddingRequest struct {
	TranscriptionID int `json:"transcription_id" binding:"required,min=1"`
}

// EmbeddingResponse reports a stored embedding.
type EmbeddingResponse struct {
	TranscriptionID int    `json:"transcription_id"`
	Provider        string `json:"provider"`
	Model           string `json:"model"`
	Dimensions      int    `json:"dimensions"`
}

// SearchEmbeddingsQuery is a semantic search over a user's transcripts.
type SearchEmbeddingsQuery struct {
	User  string `form:"user" binding:"required"`
	Query string `form:"q" binding:"required"`
	TopK  int    `form:"top_k,default=5" binding:"min=1,max=50"`
}

// Validate performs domain-specific validation.
func (q *SearchEmbeddingsQuery) Validate() error {
	if q.Query == "" {
		return errors.NewValidationError("Invalid search", map[string]string{"q": "query is required"})
	}
	return nil
}

// SearchResultResponse is one ranked semantic search hit.
type SearchResultResponse struct {
	TranscriptionID int     `json:"transcription_id"`
	Text            string  `json:"text"`
	Score           float64 `json:"score"`
}
