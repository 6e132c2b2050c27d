package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"audioscribe/internal/app/provider"
)

// Config represents configuration for the ElevenLabs speech-to-text provider.
type Config struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Timeout int    `yaml:"timeout_sec"`
}

// apiResponse is the ElevenLabs speech-to-text payload.
type apiResponse struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code,omitempty"`
	Words        []struct {
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"words,omitempty"`
}

// Provider implements transcription through the ElevenLabs speech-to-text API.
type Provider struct {
	config Config
	client *http.Client
}

// NewProvider creates a new ElevenLabs provider.
func NewProvider(config Config) *Provider {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.elevenlabs.io/v1"
	}
	if config.Model == "" {
		config.Model = "scribe_v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 120
	}

	return &Provider{
		config: config,
		client: &http.Client{Timeout: time.Duration(config.Timeout) * time.Second},
	}
}

// NewProviderFromEnv builds the provider from ELEVENLABS_API_KEY.
func NewProviderFromEnv() (*Provider, error) {
	apiKey := os.Getenv("ELEVENLABS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ELEVENLABS_API_KEY environment variable must be set")
	}
	return NewProvider(Config{APIKey: apiKey}), nil
}

// Transcript implements the plain Transcriber interface.
func (p *Provider) Transcript(inputFilePath string) (string, error) {
	resp, err := p.TranscriptWithOptions(context.Background(), &provider.TranscriptionRequest{
		InputFilePath: inputFilePath,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TranscriptWithOptions uploads the file to the speech-to-text endpoint.
func (p *Provider) TranscriptWithOptions(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	file, err := os.Open(request.InputFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(request.InputFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file into request: %w", err)
	}

	model := request.Model
	if model == "" {
		model = p.config.Model
	}
	if err := writer.WriteField("model_id", model); err != nil {
		return nil, fmt.Errorf("failed to write model field: %w", err)
	}
	if request.Language != "" && request.Language != "auto" {
		if err := writer.WriteField("language_code", request.Language); err != nil {
			return nil, fmt.Errorf("failed to write language field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.config.BaseURL+"/speech-to-text", &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("xi-api-key", p.config.APIKey)

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "elevenlabs_unreachable",
			Message:   fmt.Sprintf("request to ElevenLabs failed: %v", err),
			Provider:  "elevenlabs",
			Retryable: true,
		}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.TranscriptionError{
			Code:      "elevenlabs_api_error",
			Message:   fmt.Sprintf("ElevenLabs returned %d: %s", resp.StatusCode, string(payload)),
			Provider:  "elevenlabs",
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(payload, &apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode ElevenLabs response: %w", err)
	}

	response := &provider.TranscriptionResponse{
		Text:           apiResp.Text,
		Language:       apiResp.LanguageCode,
		ProcessingTime: time.Since(start),
		ModelUsed:      model,
	}
	for _, word := range apiResp.Words {
		response.Words = append(response.Words, provider.TranscriptionWord{
			Word:  word.Text,
			Start: word.Start,
			End:   word.End,
		})
	}

	return response, nil
}

// GetProviderInfo returns provider metadata.
func (p *Provider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:             "elevenlabs",
		DisplayName:      "ElevenLabs Speech-to-Text",
		Type:             provider.ProviderTypeRemote,
		SupportedFormats: []provider.AudioFormat{provider.FormatMP3, provider.FormatWAV, provider.FormatFLAC, provider.FormatM4A},
		MaxFileSizeMB:    25,
		SupportsWordLevel:         true,
		SupportsLanguageDetection: true,
		RequiresInternet:          true,
		RequiresAPIKey:            true,
		DefaultModel:              p.config.Model,
	}
}

// ValidateConfiguration checks the API key is set.
func (p *Provider) ValidateConfiguration() error {
	if p.config.APIKey == "" {
		return fmt.Errorf("elevenlabs api_key is not configured")
	}
	return nil
}

// HealthCheck probes the user endpoint with the configured key.
func (p *Provider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"/user", nil)
	if err != nil {
		return err
	}
	req.Header.Set("xi-api-key", p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("elevenlabs unreachable: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("elevenlabs unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
