package elevenlabs

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTempAudioFile(t *testing.T) string {
	t.Helper()
	tempFile := filepath.Join(t.TempDir(), "voice.mp3")
	if err := os.WriteFile(tempFile, []byte("fake mp3"), 0644); err != nil {
		t.Fatal(err)
	}
	return tempFile
}

func TestTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/speech-to-text" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("xi-api-key") != "xi-test-key" {
			t.Errorf("missing api key header")
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if model := r.FormValue("model_id"); model != "scribe_v1" {
			t.Errorf("model_id = %q", model)
		}
		w.Write([]byte(`{
			"text": "hello from elevenlabs",
			"language_code": "en",
			"words": [
				{"text": "hello", "start": 0.0, "end": 0.5},
				{"text": "from", "start": 0.5, "end": 0.8}
			]
		}`))
	}))
	defer server.Close()

	p := NewProvider(Config{APIKey: "xi-test-key", BaseURL: server.URL})
	text, err := p.Transcript(createTempAudioFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello from elevenlabs" {
		t.Errorf("text = %q", text)
	}
}

func TestTranscriptAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid api key"}`))
	}))
	defer server.Close()

	p := NewProvider(Config{APIKey: "bad-key", BaseURL: server.URL})
	_, err := p.Transcript(createTempAudioFile(t))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestValidateConfiguration(t *testing.T) {
	if err := NewProvider(Config{}).ValidateConfiguration(); err == nil {
		t.Error("expected error without api key")
	}
	if err := NewProvider(Config{APIKey: "xi-key"}).ValidateConfiguration(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	p := NewProvider(Config{APIKey: "xi-key"})
	if p.config.BaseURL != "https://api.elevenlabs.io/v1" {
		t.Errorf("base url default = %q", p.config.BaseURL)
	}
	if p.config.Model != "scribe_v1" {
		t.Errorf("model default = %q", p.config.Model)
	}
}
