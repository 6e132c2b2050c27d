package whispercpp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"audioscribe/internal/app/provider"
)

func TestBuildArgs(t *testing.T) {
	p := NewLocalProvider("/opt/whisper/main", "/opt/whisper/ggml-base.bin")

	args := p.buildArgs(&provider.TranscriptionRequest{
		Language: "fr",
		Prompt:   "Contexte precedent: bonjour",
	}, "/tmp/in.wav", "/tmp/out")

	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-m /opt/whisper/ggml-base.bin") {
		t.Errorf("model flag missing: %s", joined)
	}
	if !strings.Contains(joined, "-l fr") {
		t.Errorf("language flag missing: %s", joined)
	}
	if !strings.Contains(joined, "--prompt Contexte precedent: bonjour") {
		t.Errorf("prompt flag missing: %s", joined)
	}
	if !strings.Contains(joined, "-f /tmp/in.wav") || !strings.Contains(joined, "-of /tmp/out") {
		t.Errorf("input/output flags missing: %s", joined)
	}
}

func TestBuildArgsAutoLanguageOmitted(t *testing.T) {
	p := NewLocalProvider("/opt/whisper/main", "/opt/whisper/model.bin")

	args := p.buildArgs(&provider.TranscriptionRequest{Language: "auto"}, "in.wav", "out")
	if strings.Contains(strings.Join(args, " "), "-l") {
		t.Error("auto language should not be passed to the binary")
	}
}

func TestValidateConfiguration(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "main")
	model := filepath.Join(dir, "model.bin")
	os.WriteFile(binary, []byte("#!/bin/sh"), 0755)
	os.WriteFile(model, []byte("ggml"), 0644)

	tests := []struct {
		name       string
		binaryPath string
		modelPath  string
		wantErr    bool
	}{
		{name: "both present", binaryPath: binary, modelPath: model},
		{name: "missing binary", binaryPath: filepath.Join(dir, "nope"), modelPath: model, wantErr: true},
		{name: "missing model", binaryPath: binary, modelPath: filepath.Join(dir, "nope.bin"), wantErr: true},
		{name: "empty paths", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewLocalProvider(tt.binaryPath, tt.modelPath)
			err := p.ValidateConfiguration()
			if tt.wantErr && err == nil {
				t.Error("expected error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewLocalProviderFromEnv(t *testing.T) {
	t.Setenv("WHISPER_CPP_BINARY", "")
	t.Setenv("WHISPER_CPP_MODEL", "")
	if _, err := NewLocalProviderFromEnv(); err == nil {
		t.Error("expected error without env vars")
	}

	t.Setenv("WHISPER_CPP_BINARY", "/opt/whisper/main")
	if _, err := NewLocalProviderFromEnv(); err == nil {
		t.Error("expected error without model env var")
	}

	t.Setenv("WHISPER_CPP_MODEL", "/opt/whisper/model.bin")
	p, err := NewLocalProviderFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.binaryPath != "/opt/whisper/main" {
		t.Errorf("binary path = %q", p.binaryPath)
	}
}
