package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/embedding"
	"audioscribe/internal/app/repository"
)

// EmbeddingService embeds stored transcripts and searches them semantically.
type EmbeddingService interface {
	Generate(ctx context.Context, transcriptionID int) (*dto.EmbeddingResponse, error)
	Search(ctx context.Context, user, query string, topK int) ([]dto.SearchResultResponse, error)
}

type embeddingService struct {
	provider embedding.Provider
	db       repository.TranscriptionDAO
}

// NewEmbeddingService builds the default embedding service.
func NewEmbeddingService(provider embedding.Provider, db repository.TranscriptionDAO) EmbeddingService {
	return &embeddingService{
		provider: provider,
		db:       db,
	}
}

func (s *embeddingService) Generate(ctx context.Context, transcriptionID int) (*dto.EmbeddingResponse, error) {
	t, err := s.db.GetByID(transcriptionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("transcription")
		}
		return nil, apierrors.NewInternalError(fmt.Sprintf("failed to load transcription: %v", err))
	}
	if t.Transcription == "" {
		return nil, apierrors.NewBadRequestError("transcription has no text to embed")
	}

	vector, err := s.provider.Embed(ctx, t.Transcription)
	if err != nil {
		return nil, apierrors.NewServiceUnavailableError(fmt.Sprintf("embedding failed: %v", err))
	}

	if err := s.db.SaveEmbedding(transcriptionID, s.provider.Name(), s.provider.Model(), vector); err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("failed to save embedding: %v", err))
	}

	return &dto.EmbeddingResponse{
		TranscriptionID: transcriptionID,
		Provider:        s.provider.Name(),
		Model:           s.provider.Model(),
		Dimensions:      len(vector),
	}, nil
}

func (s *embeddingService) Search(ctx context.Context, user, query string, topK int) ([]dto.SearchResultResponse, error) {
	queryVector, err := s.provider.Embed(ctx, query)
	if err != nil {
		return nil, apierrors.NewServiceUnavailableError(fmt.Sprintf("embedding failed: %v", err))
	}

	embeddings, err := s.db.GetEmbeddingsByUser(user)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("failed to load embeddings: %v", err))
	}

	hits := embedding.RankBySimilarity(queryVector, embeddings, topK)
	out := make([]dto.SearchResultResponse, 0, len(hits))
	for _, hit := range hits {
		out = append(out, dto.SearchResultResponse{
			TranscriptionID: hit.TranscriptionID,
			Text:            hit.Text,
			Score:           hit.Score,
		})
	}
	return out, nil
}
