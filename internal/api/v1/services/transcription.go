package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/provider"
	"audioscribe/internal/app/repository"
)

// TranscriptionService exposes transcription operations to the API handlers.
type TranscriptionService interface {
	Create(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error)
	Get(ctx context.Context, id int) (*dto.TranscriptionResponse, error)
	List(ctx context.Context, user string, limit int) ([]dto.TranscriptionResponse, error)
}

// Transcriber runs a transcription request through the provider chain.
type Transcriber interface {
	Transcribe(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error)
	TranscribeWithProvider(ctx context.Context, providerName string, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error)
}

type transcriptionService struct {
	orchestrator Transcriber
	db           repository.TranscriptionDAO
}

// NewTranscriptionService builds the default transcription service.
func NewTranscriptionService(orchestrator Transcriber, db repository.TranscriptionDAO) TranscriptionService {
	return &transcriptionService{
		orchestrator: orchestrator,
		db:           db,
	}
}

func (s *transcriptionService) Create(ctx context.Context, req *dto.CreateTranscriptionRequest) (*dto.TranscriptionResponse, error) {
	providerReq := &provider.TranscriptionRequest{
		InputFilePath:          req.FilePath,
		Language:               req.Language,
		Prompt:                 req.Prompt,
		Temperature:            req.Temp,
		ResponseFormat:         "verbose_json",
		TimestampGranularities: []string{"segment"},
	}

	var resp *provider.TranscriptionResponse
	var err error
	if req.Provider != "" {
		resp, err = s.orchestrator.TranscribeWithProvider(ctx, req.Provider, providerReq)
	} else {
		resp, err = s.orchestrator.Transcribe(ctx, providerReq)
	}
	if err != nil {
		return nil, apierrors.NewServiceUnavailableError(fmt.Sprintf("transcription failed: %v", err))
	}

	user := req.User
	if user == "" {
		user = "api"
	}

	fileName := filepath.Base(req.FilePath)
	if dbErr := s.db.RecordToDB(user, filepath.Dir(req.FilePath), fileName, fileName,
		int(resp.Duration.Seconds()), resp.Language, "", resp.Text, time.Now(), 0, ""); dbErr != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("failed to record transcription: %v", dbErr))
	}

	out := dto.FromProviderResponse(resp)
	out.User = user
	out.FileName = fileName
	return &out, nil
}

func (s *transcriptionService) Get(ctx context.Context, id int) (*dto.TranscriptionResponse, error) {
	t, err := s.db.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apierrors.NewNotFoundError("transcription")
		}
		return nil, apierrors.NewInternalError(fmt.Sprintf("failed to load transcription: %v", err))
	}
	resp := dto.FromModel(t)
	return &resp, nil
}

func (s *transcriptionService) List(ctx context.Context, user string, limit int) ([]dto.TranscriptionResponse, error) {
	transcriptions, err := s.db.GetAllByUser(user)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("failed to list transcriptions: %v", err))
	}

	if limit > 0 && len(transcriptions) > limit {
		transcriptions = transcriptions[:limit]
	}

	out := make([]dto.TranscriptionResponse, 0, len(transcriptions))
	for i := range transcriptions {
		out = append(out, dto.FromModel(&transcriptions[i]))
	}
	return out, nil
}
