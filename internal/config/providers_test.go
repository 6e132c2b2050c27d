package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "providers.yaml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadProvidersConfig(t *testing.T) {
	t.Setenv("TEST_WHISPER_URL", "http://10.0.0.5:8080")

	p := writeConfig(t, `
default_provider: whisperserver
chunk_seconds: 300
providers:
  whisperserver:
    type: whisperserver
    enabled: true
    settings:
      base_url: $TEST_WHISPER_URL
  openai:
    type: openai
    enabled: true
fallback_chain:
  - whisperserver
  - openai
`)

	config, err := LoadProvidersConfig(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if config.DefaultProvider != "whisperserver" {
		t.Errorf("default provider = %q", config.DefaultProvider)
	}
	if config.ChunkSeconds != 300 {
		t.Errorf("chunk seconds = %d", config.ChunkSeconds)
	}
	if config.ContextChars != 500 {
		t.Errorf("context chars default not applied: %d", config.ContextChars)
	}
	if got := config.Providers["whisperserver"].Settings["base_url"]; got != "http://10.0.0.5:8080" {
		t.Errorf("env expansion failed: %v", got)
	}
	if config.Providers["openai"].Retry.MaxAttempts != 3 {
		t.Error("retry defaults not applied")
	}
}

func TestLoadProvidersConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown default provider",
			content: `
default_provider: missing
providers:
  openai:
    type: openai
    enabled: true
`,
		},
		{
			name: "disabled default provider",
			content: `
default_provider: openai
providers:
  openai:
    type: openai
    enabled: false
`,
		},
		{
			name: "provider without type",
			content: `
providers:
  broken:
    enabled: true
`,
		},
		{
			name: "fallback references unknown provider",
			content: `
providers:
  openai:
    type: openai
    enabled: true
fallback_chain:
  - ghost
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadProvidersConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error, got none")
			}
		})
	}

	if _, err := LoadProvidersConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultProvidersConfig(t *testing.T) {
	config := DefaultProvidersConfig()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if config.ChunkSeconds != 600 || config.ContextChars != 500 {
		t.Error("defaults not applied")
	}
}
