package whispercpp

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"audioscribe/internal/app/audio"
	"audioscribe/internal/app/provider"
	"audioscribe/internal/app/util/files"
)

// LocalProvider implements local transcription using the whisper.cpp binary.
type LocalProvider struct {
	binaryPath string
	modelPath  string
}

// NewLocalProvider creates a new instance of LocalProvider.
func NewLocalProvider(binaryPath, modelPath string) *LocalProvider {
	return &LocalProvider{
		binaryPath: binaryPath,
		modelPath:  modelPath,
	}
}

// NewLocalProviderFromEnv builds the provider from WHISPER_CPP_BINARY and WHISPER_CPP_MODEL.
func NewLocalProviderFromEnv() (*LocalProvider, error) {
	binaryPath := os.Getenv("WHISPER_CPP_BINARY")
	if binaryPath == "" {
		return nil, fmt.Errorf("WHISPER_CPP_BINARY environment variable must be set")
	}
	modelPath := os.Getenv("WHISPER_CPP_MODEL")
	if modelPath == "" {
		return nil, fmt.Errorf("WHISPER_CPP_MODEL environment variable must be set")
	}
	return NewLocalProvider(binaryPath, modelPath), nil
}

// Transcript takes an audio file path and returns the transcribed text.
func (p *LocalProvider) Transcript(inputFilePath string) (string, error) {
	resp, err := p.TranscriptWithOptions(context.Background(), &provider.TranscriptionRequest{
		InputFilePath: inputFilePath,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TranscriptWithOptions runs the whisper.cpp binary against a 16kHz WAV copy of the input.
func (p *LocalProvider) TranscriptWithOptions(ctx context.Context, request *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	inputFilePath := request.InputFilePath
	log.Printf("Starting transcription of file %s\n", inputFilePath)

	is16kHzWav, err := audio.Is16kHzWavFile(inputFilePath)
	if err != nil {
		return nil, fmt.Errorf("error checking input file: %v", err)
	}

	if !is16kHzWav {
		log.Printf("Input file is not a 16kHz WAV file, converting...\n")
		inputFilePath, err = audio.ConvertTo16kHzWav(inputFilePath)
		if err != nil {
			return nil, fmt.Errorf("error converting input file: %v", err)
		}
	}

	outputDir, err := os.MkdirTemp("", "whispercpp")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(outputDir)
	outputFile := filepath.Join(outputDir, "transcript")

	args := p.buildArgs(request, inputFilePath, outputFile)

	command := exec.CommandContext(ctx, p.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	log.Printf("Running transcription command: %s %s", p.binaryPath, strings.Join(args, " "))

	start := time.Now()
	err = command.Run()
	if err != nil {
		return nil, &provider.TranscriptionError{
			Code:      "whisper_cpp_exec_error",
			Message:   fmt.Sprintf("command execution error: %v, stderr: %s", err, stderr.String()),
			Provider:  "whispercpp",
			Retryable: false,
		}
	}

	output, err := files.ReadOutputFile(outputFile + ".txt")
	if err != nil {
		return nil, fmt.Errorf("failed to read output file: %v", err)
	}

	return &provider.TranscriptionResponse{
		Text:           output,
		Language:       request.Language,
		ProcessingTime: time.Since(start),
		ModelUsed:      filepath.Base(p.modelPath),
	}, nil
}

func (p *LocalProvider) buildArgs(request *provider.TranscriptionRequest, inputFilePath, outputFile string) []string {
	args := []string{
		"-m", p.modelPath,
		"-otxt",
		"-f", inputFilePath,
		"-of", outputFile,
	}
	if request.Language != "" && request.Language != "auto" {
		args = append(args, "-l", request.Language)
	}
	if request.Prompt != "" {
		args = append(args, "--prompt", request.Prompt)
	}
	return args
}

// GetProviderInfo returns provider metadata.
func (p *LocalProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:               "whispercpp",
		DisplayName:        "whisper.cpp (local binary)",
		Type:               provider.ProviderTypeLocal,
		SupportedFormats:   []provider.AudioFormat{provider.FormatWAV, provider.FormatMP3, provider.FormatM4A},
		SupportsTimestamps: false,
		RequiresBinary:     true,
		DefaultModel:       filepath.Base(p.modelPath),
	}
}

// ValidateConfiguration checks the binary and model exist.
func (p *LocalProvider) ValidateConfiguration() error {
	if p.binaryPath == "" {
		return fmt.Errorf("whisper.cpp binary path is not configured")
	}
	if _, err := os.Stat(p.binaryPath); err != nil {
		return fmt.Errorf("whisper.cpp binary not found at %s", p.binaryPath)
	}
	if p.modelPath == "" {
		return fmt.Errorf("whisper.cpp model path is not configured")
	}
	if _, err := os.Stat(p.modelPath); err != nil {
		return fmt.Errorf("whisper.cpp model not found at %s", p.modelPath)
	}
	return nil
}

// HealthCheck is a local stat of the configured paths.
func (p *LocalProvider) HealthCheck(ctx context.Context) error {
	return p.ValidateConfiguration()
}
