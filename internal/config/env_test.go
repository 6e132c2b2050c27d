package config

import (
	"strings"
	"testing"
)

func TestGetAPIKeys(t *testing.T) {
	tests := []struct {
		name          string
		openai        string
		gemini        string
		expectError   bool
		errorContains string
	}{
		{
			name:   "no keys set",
			openai: "",
			gemini: "",
		},
		{
			name:   "valid openai key",
			openai: "sk-" + strings.Repeat("a", 40),
		},
		{
			name:          "openai key with wrong prefix",
			openai:        "pk-" + strings.Repeat("a", 40),
			expectError:   true,
			errorContains: "must start with 'sk-'",
		},
		{
			name:          "openai key too short",
			openai:        "sk-short",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:   "valid gemini key",
			gemini: "AIza" + strings.Repeat("b", 35),
		},
		{
			name:          "gemini key with wrong prefix",
			gemini:        "key-" + strings.Repeat("b", 35),
			expectError:   true,
			errorContains: "must start with 'AIza'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tt.openai)
			t.Setenv("ELEVENLABS_API_KEY", "")
			t.Setenv("GEMINI_API_KEY", tt.gemini)

			keys, err := GetAPIKeys()
			if tt.expectError {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				if !strings.Contains(err.Error(), tt.errorContains) {
					t.Errorf("expected error containing %q, got %q", tt.errorContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if keys.OpenAI != tt.openai || keys.Gemini != tt.gemini {
				t.Error("keys not loaded from environment")
			}
		})
	}
}

func TestRequireAPIKeys(t *testing.T) {
	if err := RequireAPIKeys(&APIKeys{}); err == nil {
		t.Error("expected error when no keys configured")
	}
	if err := RequireAPIKeys(&APIKeys{ElevenLabs: "xi-key"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
