package whisperserver

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
	"strconv"
	"time"

	"audioscribe/internal/app/provider"
)

// Config represents configuration for a whisper-server HTTP endpoint.
type Config struct {
	BaseURL        string        `yaml:"base_url"`        // e.g. "http://192.168.1.100:8080"
	InferencePath  string        `yaml:"inference_path"`  // default "/inference"
	Timeout        time.Duration `yaml:"timeout"`         // request timeout
	Language       string        `yaml:"language"`        // default language code
	ResponseFormat string        `yaml:"response_format"` // json, verbose_json, text
	Temperature    float64       `yaml:"temperature"`
}

// serverResponse is the whisper-server JSON payload.
type serverResponse struct {
	Text     string  `json:"text,omitempty"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
	Segments []struct {
		ID    int     `json:"id"`
		Text  string  `json:"text"`
		Start float64 `json:"start"`
		End   float64 `json:"end"`
	} `json:"segments,omitempty"`
	Error string `json:"error,omitempty"`
}

// Provider implements transcription via HTTP to a whisper-server instance.
type Provider struct {
	config Config
	client *http.Client
}

// NewProvider creates a new whisper-server HTTP provider.
func NewProvider(config Config) *Provider {
	if config.InferencePath == "" {
		config.InferencePath = "/inference"
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.ResponseFormat == "" {
		config.ResponseFormat = "json"
	}

	return &Provider{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

// NewProviderFromSettings creates a provider from generic providers.yaml settings.
func NewProviderFromSettings(settings map[string]interface{}) (*Provider, error) {
	config := Config{}

	baseURL, ok := settings["base_url"].(string)
	if !ok || baseURL == "" {
		return nil, fmt.Errorf("base_url is required")
	}
	config.BaseURL = baseURL

	if inferencePath, ok := settings["inference_path"].(string); ok {
		config.InferencePath = inferencePath
	}
	if timeout, ok := settings["timeout_sec"].(int); ok {
		config.Timeout = time.Duration(timeout) * time.Second
	}
	if language, ok := settings["language"].(string); ok {
		config.Language = language
	}
	if responseFormat, ok := settings["response_format"].(string); ok {
		config.ResponseFormat = responseFormat
	}
	if temperature, ok := settings["temperature"].(float64); ok {
		config.Temperature = temperature
	}

	return NewProvider(config), nil
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

// TranscriptWithOptions uploads the file as multipart form data to /inference.
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

	fields := map[string]string{
		"response_format": p.responseFormat(request),
		"temperature":     strconv.FormatFloat(p.temperature(request), 'f', 2, 64),
	}
	if lang := p.language(request); lang != "" && lang != "auto" {
		fields["language"] = lang
	}
	if request.Prompt != "" {
		fields["prompt"] = request.Prompt
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	url := p.config.BaseURL + p.config.InferencePath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "whisper_server_unreachable",
			Message:   fmt.Sprintf("request to whisper-server failed: %v", err),
			Provider:  "whisperserver",
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
			Code:      "whisper_server_error",
			Message:   fmt.Sprintf("whisper-server returned %d: %s", resp.StatusCode, string(payload)),
			Provider:  "whisperserver",
			Retryable: resp.StatusCode >= 500,
		}
	}

	var serverResp serverResponse
	if err := json.Unmarshal(payload, &serverResp); err != nil {
		return nil, fmt.Errorf("failed to decode whisper-server response: %w", err)
	}
	if serverResp.Error != "" {
		return nil, &provider.TranscriptionError{
			Code:     "whisper_server_error",
			Message:  serverResp.Error,
			Provider: "whisperserver",
		}
	}

	response := &provider.TranscriptionResponse{
		Text:           serverResp.Text,
		Language:       serverResp.Language,
		Duration:       time.Duration(serverResp.Duration * float64(time.Second)),
		ProcessingTime: time.Since(start),
	}
	for _, segment := range serverResp.Segments {
		response.Segments = append(response.Segments, provider.TranscriptionSegment{
			ID:    segment.ID,
			Text:  segment.Text,
			Start: segment.Start,
			End:   segment.End,
		})
	}

	return response, nil
}

func (p *Provider) responseFormat(request *provider.TranscriptionRequest) string {
	if request.ResponseFormat != "" {
		return request.ResponseFormat
	}
	return p.config.ResponseFormat
}

func (p *Provider) language(request *provider.TranscriptionRequest) string {
	if request.Language != "" {
		return request.Language
	}
	return p.config.Language
}

func (p *Provider) temperature(request *provider.TranscriptionRequest) float64 {
	if request.Temperature > 0 {
		return float64(request.Temperature)
	}
	return p.config.Temperature
}

// GetProviderInfo returns provider metadata.
func (p *Provider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:               "whisperserver",
		DisplayName:        "whisper.cpp server (HTTP)",
		Type:               provider.ProviderTypeRemote,
		SupportedFormats:   []provider.AudioFormat{provider.FormatWAV, provider.FormatMP3, provider.FormatM4A, provider.FormatFLAC},
		SupportsTimestamps: true,
		RequiresInternet:   true,
	}
}

// ValidateConfiguration checks the base URL is set.
func (p *Provider) ValidateConfiguration() error {
	if p.config.BaseURL == "" {
		return fmt.Errorf("whisper-server base_url is not configured")
	}
	return nil
}

// HealthCheck probes the server root.
func (p *Provider) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.config.BaseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("whisper-server unreachable: %w", err)
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("whisper-server unhealthy: status %d", resp.StatusCode)
	}
	return nil
}
