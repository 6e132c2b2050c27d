package provider

import (
	"context"
)

// TranscriptionProvider is the contract every transcription backend implements.
type TranscriptionProvider interface {
	// Core transcription, compatible with the plain Transcriber interface.
	Transcript(inputFilePath string) (string, error)

	// Enhanced transcription with full options and context support.
	TranscriptWithOptions(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error)

	// Provider metadata and capabilities.
	GetProviderInfo() ProviderInfo

	// Configuration validation at registration time.
	ValidateConfiguration() error

	// Health check to verify the provider is available and functioning.
	HealthCheck(ctx context.Context) error
}

// ProviderRegistry manages multiple transcription providers
type ProviderRegistry interface {
	RegisterProvider(name string, provider TranscriptionProvider) error
	GetProvider(name string) (TranscriptionProvider, error)
	ListProviders() []string
	GetDefaultProvider() (TranscriptionProvider, error)
	SetDefaultProvider(name string) error
	HealthCheckAll(ctx context.Context) map[string]error
}
