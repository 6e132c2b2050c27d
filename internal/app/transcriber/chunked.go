package transcriber

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"audioscribe/internal/app/audio"
	"audioscribe/internal/app/provider"
)

const (
	DefaultChunkSeconds = 600 // 10 minutes
	DefaultContextChars = 500
	DefaultTemperature  = 0.2
)

// Options controls the chunked transcription pipeline.
type Options struct {
	ChunkSeconds int     // length of each chunk, seconds
	ContextChars int     // how much trailing text to carry into the next chunk's prompt
	BasePrompt   string  // static prompt prefix for every chunk
	Language     string  // "" or "auto" lets the provider detect
	Model        string  // provider-specific model override
	Temperature  float32 // decoding temperature
}

type splitFunc func(inputFilePath string, chunkSeconds int, workDir string) ([]audio.Chunk, error)

// ChunkedTranscriber transcribes long audio files by splitting them into
// fixed-length chunks and feeding each chunk the tail of the text transcribed
// so far as a context prompt. Segment timestamps are shifted to the position
// of their chunk so the merged result lines up with the source file.
type ChunkedTranscriber struct {
	provider provider.TranscriptionProvider
	opts     Options
	split    splitFunc
}

// NewChunkedTranscriber creates a chunked pipeline over the given provider.
func NewChunkedTranscriber(p provider.TranscriptionProvider, opts Options) *ChunkedTranscriber {
	if opts.ChunkSeconds <= 0 {
		opts.ChunkSeconds = DefaultChunkSeconds
	}
	if opts.ContextChars <= 0 {
		opts.ContextChars = DefaultContextChars
	}
	if opts.Temperature <= 0 {
		opts.Temperature = DefaultTemperature
	}
	return &ChunkedTranscriber{
		provider: p,
		opts:     opts,
		split:    audio.SplitIntoChunks,
	}
}

// Transcript implements the plain Transcriber interface.
func (c *ChunkedTranscriber) Transcript(inputFilePath string) (string, error) {
	resp, err := c.TranscribeFile(context.Background(), inputFilePath)
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// TranscribeFile runs the full chunked pipeline for one audio file.
func (c *ChunkedTranscriber) TranscribeFile(ctx context.Context, inputFilePath string) (*provider.TranscriptionResponse, error) {
	if _, err := audio.DetectMimeType(inputFilePath); err != nil {
		return nil, err
	}

	workDir, err := os.MkdirTemp("", "audioscribe-chunks")
	if err != nil {
		return nil, fmt.Errorf("failed to create chunk directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	chunks, err := c.split(inputFilePath, c.opts.ChunkSeconds, workDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	combined := &provider.TranscriptionResponse{}
	var previousText string
	var textBuilder strings.Builder
	segmentID := 0

	for i, chunk := range chunks {
		log.Printf("Processing chunk %d/%d of %s\n", i+1, len(chunks), inputFilePath)

		request := &provider.TranscriptionRequest{
			InputFilePath:          chunk.Path,
			Language:               c.opts.Language,
			Model:                  c.opts.Model,
			Prompt:                 c.buildPrompt(previousText),
			Temperature:            c.opts.Temperature,
			ResponseFormat:         "verbose_json",
			TimestampGranularities: []string{"segment"},
		}

		resp, err := c.provider.TranscriptWithOptions(ctx, request)
		if err != nil {
			return nil, fmt.Errorf("failed to transcribe chunk %d/%d: %w", i+1, len(chunks), err)
		}

		for _, segment := range resp.Segments {
			combined.Segments = append(combined.Segments, provider.TranscriptionSegment{
				ID:    segmentID,
				Text:  segment.Text,
				Start: segment.Start + chunk.Offset,
				End:   segment.End + chunk.Offset,
			})
			segmentID++
		}

		if textBuilder.Len() > 0 {
			textBuilder.WriteString(" ")
		}
		textBuilder.WriteString(strings.TrimSpace(resp.Text))
		previousText = textBuilder.String()

		if combined.Language == "" {
			combined.Language = resp.Language
		}
		combined.Duration += resp.Duration
		combined.ProcessingTime += resp.ProcessingTime
		if combined.ModelUsed == "" {
			combined.ModelUsed = resp.ModelUsed
		}
	}

	combined.Text = textBuilder.String()
	return combined, nil
}

// buildPrompt prefixes the static prompt and carries the tail of the text
// transcribed so far, so chunk boundaries keep their context.
func (c *ChunkedTranscriber) buildPrompt(previousText string) string {
	prompt := c.opts.BasePrompt
	if previousText == "" {
		return prompt
	}
	if prompt != "" {
		prompt += " "
	}
	return prompt + "Previous context: " + tail(previousText, c.opts.ContextChars)
}

// tail returns the last n runes of s.
func tail(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[len(runes)-n:])
}
