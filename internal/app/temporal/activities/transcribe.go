package activities

import (
	"context"
	"fmt"
	"time"

	"go.temporal.io/sdk/activity"

	"audioscribe/internal/app/audio"
	"audioscribe/internal/app/provider"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/utils"
)

// TranscriptionRequest is the activity input for one file.
type TranscriptionRequest struct {
	FileID   string  `json:"file_id"`
	FilePath string  `json:"file_path"`
	User     string  `json:"user"`
	Provider string  `json:"provider"`
	Language string  `json:"language"`
	Prompt   string  `json:"prompt"`
	Temp     float32 `json:"temperature"`
}

// TranscriptionResult is the activity output for one file.
type TranscriptionResult struct {
	FileID         string        `json:"file_id"`
	Text           string        `json:"text"`
	Language       string        `json:"language"`
	Provider       string        `json:"provider"`
	ProcessingTime time.Duration `json:"processing_time"`
}

// TranscribeActivities exposes the provider registry and the database as
// Temporal activities.
type TranscribeActivities struct {
	registry provider.ProviderRegistry
	db       repository.TranscriptionDAO
}

func NewTranscribeActivities(registry provider.ProviderRegistry, db repository.TranscriptionDAO) *TranscribeActivities {
	return &TranscribeActivities{
		registry: registry,
		db:       db,
	}
}

// TranscribeFile transcribes one file with the requested provider, sending
// heartbeats while the provider call is in flight.
func (a *TranscribeActivities) TranscribeFile(ctx context.Context, req TranscriptionRequest) (TranscriptionResult, error) {
	logger := activity.GetLogger(ctx)
	logger.Info("Starting transcription", "fileId", req.FileID, "provider", req.Provider)

	activity.RecordHeartbeat(ctx, fmt.Sprintf("Processing file: %s", req.FileID))

	startTime := time.Now()

	var transcriber provider.TranscriptionProvider
	var err error
	if req.Provider != "" {
		transcriber, err = a.registry.GetProvider(req.Provider)
	} else {
		transcriber, err = a.registry.GetDefaultProvider()
	}
	if err != nil {
		logger.Error("Failed to get provider", "error", err)
		return TranscriptionResult{FileID: req.FileID}, err
	}

	providerReq := &provider.TranscriptionRequest{
		InputFilePath: req.FilePath,
		Language:      req.Language,
		Prompt:        req.Prompt,
		Temperature:   req.Temp,
	}

	heartbeatTicker := time.NewTicker(10 * time.Second)
	defer heartbeatTicker.Stop()

	done := make(chan struct{})
	var response *provider.TranscriptionResponse
	var transcribeErr error

	go func() {
		response, transcribeErr = transcriber.TranscriptWithOptions(ctx, providerReq)
		close(done)
	}()

	for {
		select {
		case <-done:
			if transcribeErr != nil {
				logger.Error("Transcription failed", "error", transcribeErr)
				return TranscriptionResult{FileID: req.FileID}, transcribeErr
			}

			result := TranscriptionResult{
				FileID:         req.FileID,
				Text:           response.Text,
				Language:       response.Language,
				Provider:       transcriber.GetProviderInfo().Name,
				ProcessingTime: time.Since(startTime),
			}

			logger.Info("Transcription completed",
				"fileId", req.FileID,
				"provider", result.Provider,
				"duration", result.ProcessingTime)

			return result, nil

		case <-heartbeatTicker.C:
			activity.RecordHeartbeat(ctx, fmt.Sprintf("Still processing file: %s", req.FileID))

		case <-ctx.Done():
			return TranscriptionResult{FileID: req.FileID}, ctx.Err()
		}
	}
}

// SaveTranscriptRequest is the activity input for persisting a finished
// transcript.
type SaveTranscriptRequest struct {
	User     string `json:"user"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

// SaveTranscript records a finished transcript to the database.
func (a *TranscribeActivities) SaveTranscript(ctx context.Context, req SaveTranscriptRequest) error {
	logger := activity.GetLogger(ctx)
	logger.Info("Saving transcript", "file", req.FileName, "user", req.User)

	fileHash, err := utils.CalculateFileHash(req.FilePath)
	if err != nil {
		logger.Warn("Failed to hash file", "error", err)
		fileHash = ""
	}

	duration, err := audio.GetAudioDuration(req.FilePath)
	if err != nil {
		logger.Warn("Failed to probe duration", "error", err)
		duration = 0
	}

	return a.db.RecordToDB(req.User, req.FilePath, req.FileName, req.FileName, duration, req.Language, fileHash, req.Text,
		time.Now(), 0, "")
}

// CheckProviderHealth reports whether the named provider is reachable.
func (a *TranscribeActivities) CheckProviderHealth(ctx context.Context, providerName string) error {
	p, err := a.registry.GetProvider(providerName)
	if err != nil {
		return err
	}
	return p.HealthCheck(ctx)
}
