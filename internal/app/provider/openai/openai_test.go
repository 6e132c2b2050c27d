package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"

	"audioscribe/internal/app/provider"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (*WhisperProvider, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := openai.DefaultConfig("test-api-key")
	config.BaseURL = server.URL + "/v1"
	return NewWhisperProvider(openai.NewClientWithConfig(config)), server
}

func createTempAudioFile(t *testing.T) string {
	t.Helper()
	tempFile := filepath.Join(t.TempDir(), "audio.mp3")
	if err := os.WriteFile(tempFile, []byte("fake audio payload"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	return tempFile
}

func TestWhisperProviderTranscript(t *testing.T) {
	tests := []struct {
		name          string
		mockResponse  string
		mockStatus    int
		expectedText  string
		expectError   bool
		errorContains string
	}{
		{
			name:         "successful transcription",
			mockResponse: `{"text": "This is a test transcription"}`,
			mockStatus:   http.StatusOK,
			expectedText: "This is a test transcription",
		},
		{
			name:         "unicode text",
			mockResponse: `{"text": "Bonjour, 世界"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Bonjour, 世界",
		},
		{
			name:          "unauthorized",
			mockResponse:  `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:    http.StatusUnauthorized,
			expectError:   true,
			errorContains: "401",
		},
		{
			name:          "server error",
			mockResponse:  `{"error": {"message": "Internal server error"}}`,
			mockStatus:    http.StatusInternalServerError,
			expectError:   true,
			errorContains: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("expected POST, got %s", r.Method)
				}
				if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
					t.Errorf("expected multipart content type, got %s", r.Header.Get("Content-Type"))
				}
				if err := r.ParseMultipartForm(32 << 20); err != nil {
					t.Errorf("failed to parse multipart form: %v", err)
				}
				if model := r.FormValue("model"); model != "whisper-1" {
					t.Errorf("expected model whisper-1, got %s", model)
				}

				w.WriteHeader(tt.mockStatus)
				w.Write([]byte(tt.mockResponse))
			})

			result, err := p.Transcript(createTempAudioFile(t))
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if tt.errorContains != "" && !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("expected error containing %q, got %q", tt.errorContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expectedText {
				t.Errorf("expected %q, got %q", tt.expectedText, result)
			}
		})
	}
}

func TestWhisperProviderVerboseJSONSegments(t *testing.T) {
	p, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		if format := r.FormValue("response_format"); format != "verbose_json" {
			t.Errorf("expected verbose_json format, got %s", format)
		}
		if prompt := r.FormValue("prompt"); prompt != "Previous context: hello" {
			t.Errorf("prompt not forwarded, got %q", prompt)
		}
		w.Write([]byte(`{
			"task": "transcribe",
			"language": "en",
			"duration": 12.5,
			"text": "segmented text",
			"segments": [
				{"id": 0, "start": 0.0, "end": 6.0, "text": "segmented"},
				{"id": 1, "start": 6.0, "end": 12.5, "text": "text"}
			]
		}`))
	})

	resp, err := p.TranscriptWithOptions(context.Background(), &provider.TranscriptionRequest{
		InputFilePath:  createTempAudioFile(t),
		ResponseFormat: "verbose_json",
		Prompt:         "Previous context: hello",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text != "segmented text" {
		t.Errorf("got text %q", resp.Text)
	}
	if len(resp.Segments) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(resp.Segments))
	}
	if resp.Segments[1].Start != 6.0 || resp.Segments[1].End != 12.5 {
		t.Errorf("segment timing wrong: %+v", resp.Segments[1])
	}
	if resp.Language != "en" {
		t.Errorf("language = %q", resp.Language)
	}
}

func TestWhisperProviderFileNotFound(t *testing.T) {
	config := openai.DefaultConfig("test-api-key")
	p := NewWhisperProvider(openai.NewClientWithConfig(config))

	if _, err := p.Transcript("/non/existent/file.mp3"); err == nil {
		t.Error("expected error for non-existent file, got none")
	}
}

func TestWhisperProviderValidateConfiguration(t *testing.T) {
	if err := (&WhisperProvider{}).ValidateConfiguration(); err == nil {
		t.Error("expected error for nil client")
	}
	p := NewWhisperProvider(openai.NewClient("sk-test"))
	if err := p.ValidateConfiguration(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
