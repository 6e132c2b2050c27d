package embedding

import "context"

// Provider turns a transcript into an embedding vector.
type Provider interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Name identifies the backend, e.g. "openai" or "gemini".
	Name() string
	// Model returns the embedding model in use.
	Model() string
}
