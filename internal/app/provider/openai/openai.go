package openai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"

	"audioscribe/internal/app/provider"
)

// WhisperProvider implements remote transcription using the OpenAI Whisper API.
type WhisperProvider struct {
	client *openai.Client
	model  string
}

// NewWhisperProvider creates a new WhisperProvider instance.
func NewWhisperProvider(client *openai.Client) *WhisperProvider {
	return &WhisperProvider{client: client, model: openai.Whisper1}
}

// NewWhisperProviderFromEnv builds the provider from OPENAI_API_KEY.
func NewWhisperProviderFromEnv() (*WhisperProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable must be set")
	}
	return NewWhisperProvider(openai.NewClient(apiKey)), nil
}

// Transcript uses the OpenAI API for remote transcription.
func (p *WhisperProvider) Transcript(inputFilePath string) (string, error) {
	resp, err := p.TranscriptWithOptions(context.Background(), &provider.TranscriptionRequest{
		InputFilePath: inputFilePath,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TranscriptWithOptions calls the transcription endpoint with full options.
// verbose_json is requested whenever segment timestamps are wanted.
func (p *WhisperProvider) TranscriptWithOptions(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	model := request.Model
	if model == "" {
		model = p.model
	}

	format := openai.AudioResponseFormatJSON
	if request.ResponseFormat == "verbose_json" || len(request.TimestampGranularities) > 0 {
		format = openai.AudioResponseFormatVerboseJSON
	}

	req := openai.AudioRequest{
		Model:       model,
		FilePath:    request.InputFilePath,
		Prompt:      request.Prompt,
		Temperature: request.Temperature,
		Format:      format,
	}
	if request.Language != "" && request.Language != "auto" {
		req.Language = request.Language
	}

	start := time.Now()
	resp, err := p.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "openai_api_error",
			Message:   fmt.Sprintf("createTranscription failed: %s", err),
			Provider:  "openai",
			Retryable: true,
		}
	}

	response := &provider.TranscriptionResponse{
		Text:           resp.Text,
		Language:       resp.Language,
		Duration:       time.Duration(resp.Duration * float64(time.Second)),
		ProcessingTime: time.Since(start),
		ModelUsed:      model,
	}
	for _, segment := range resp.Segments {
		response.Segments = append(response.Segments, provider.TranscriptionSegment{
			ID:    segment.ID,
			Text:  segment.Text,
			Start: segment.Start,
			End:   segment.End,
		})
	}
	for _, word := range resp.Words {
		response.Words = append(response.Words, provider.TranscriptionWord{
			Word:  word.Word,
			Start: word.Start,
			End:   word.End,
		})
	}

	return response, nil
}

// GetProviderInfo returns provider metadata.
func (p *WhisperProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:        "openai",
		DisplayName: "OpenAI Whisper API",
		Type:        provider.ProviderTypeRemote,
		SupportedFormats: []provider.AudioFormat{
			provider.FormatMP3, provider.FormatWAV, provider.FormatM4A,
			provider.FormatFLAC, provider.FormatOGG, provider.FormatWEBM,
		},
		MaxFileSizeMB:             25,
		SupportsTimestamps:        true,
		SupportsWordLevel:         true,
		SupportsLanguageDetection: true,
		RequiresInternet:          true,
		RequiresAPIKey:            true,
		DefaultModel:              openai.Whisper1,
		AvailableModels:           []string{openai.Whisper1},
	}
}

// ValidateConfiguration checks the client is usable.
func (p *WhisperProvider) ValidateConfiguration() error {
	if p.client == nil {
		return fmt.Errorf("openai client is not configured")
	}
	return nil
}

// HealthCheck verifies the API is reachable with the configured key.
func (p *WhisperProvider) HealthCheck(ctx context.Context) error {
	_, err := p.client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("openai health check failed: %w", err)
	}
	return nil
}
