package transcriber

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audioscribe/internal/app/audio"
	"audioscribe/internal/app/provider"
)

// chunkProvider returns canned responses per chunk path and records requests.
type chunkProvider struct {
	responses map[string]*provider.TranscriptionResponse
	requests  []*provider.TranscriptionRequest
	err       error
}

func (p *chunkProvider) Transcript(inputFilePath string) (string, error) { return "", nil }

func (p *chunkProvider) TranscriptWithOptions(ctx context.Context, req *provider.TranscriptionRequest) (*provider.TranscriptionResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	resp, ok := p.responses[req.InputFilePath]
	if !ok {
		return nil, errors.New("unexpected chunk path " + req.InputFilePath)
	}
	return resp, nil
}

func (p *chunkProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "fake"}
}

func (p *chunkProvider) ValidateConfiguration() error          { return nil }
func (p *chunkProvider) HealthCheck(ctx context.Context) error { return nil }

func newTestTranscriber(t *testing.T, p provider.TranscriptionProvider, opts Options, chunks []audio.Chunk) *ChunkedTranscriber {
	t.Helper()
	ct := NewChunkedTranscriber(p, opts)
	ct.split = func(inputFilePath string, chunkSeconds int, workDir string) ([]audio.Chunk, error) {
		return chunks, nil
	}
	return ct
}

func audioFile(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "lecture.mp3")
	require.NoError(t, os.WriteFile(p, []byte("fake"), 0644))
	return p
}

func TestTranscribeFileMergesChunks(t *testing.T) {
	p := &chunkProvider{responses: map[string]*provider.TranscriptionResponse{
		"chunk0.wav": {
			Text:     " first part. ",
			Language: "en",
			Duration: 600 * time.Second,
			Segments: []provider.TranscriptionSegment{
				{ID: 0, Text: "first part.", Start: 0, End: 599},
			},
		},
		"chunk1.wav": {
			Text:     "second part.",
			Duration: 120 * time.Second,
			Segments: []provider.TranscriptionSegment{
				{ID: 0, Text: "second", Start: 0, End: 60},
				{ID: 1, Text: "part.", Start: 60, End: 120},
			},
		},
	}}

	ct := newTestTranscriber(t, p, Options{ChunkSeconds: 600}, []audio.Chunk{
		{Index: 0, Path: "chunk0.wav", Offset: 0},
		{Index: 1, Path: "chunk1.wav", Offset: 600},
	})

	resp, err := ct.TranscribeFile(context.Background(), audioFile(t))
	require.NoError(t, err)

	assert.Equal(t, "first part. second part.", resp.Text)
	assert.Equal(t, "en", resp.Language)
	assert.Equal(t, 720*time.Second, resp.Duration)

	// Timestamps of the second chunk are shifted by its offset and
	// segment IDs are renumbered across the whole file.
	require.Len(t, resp.Segments, 3)
	assert.Equal(t, 0, resp.Segments[0].ID)
	assert.Equal(t, float64(600), resp.Segments[1].Start)
	assert.Equal(t, float64(660), resp.Segments[2].Start)
	assert.Equal(t, float64(720), resp.Segments[2].End)
	assert.Equal(t, 2, resp.Segments[2].ID)
}

func TestTranscribeFileCarriesContextPrompt(t *testing.T) {
	longText := strings.Repeat("a", 480) + " tail-marker"
	p := &chunkProvider{responses: map[string]*provider.TranscriptionResponse{
		"chunk0.wav": {Text: longText},
		"chunk1.wav": {Text: "more"},
	}}

	ct := newTestTranscriber(t, p, Options{BasePrompt: "A lecture about Go.", ContextChars: 100}, []audio.Chunk{
		{Index: 0, Path: "chunk0.wav"},
		{Index: 1, Path: "chunk1.wav", Offset: 600},
	})

	_, err := ct.TranscribeFile(context.Background(), audioFile(t))
	require.NoError(t, err)
	require.Len(t, p.requests, 2)

	// First chunk only gets the base prompt.
	assert.Equal(t, "A lecture about Go.", p.requests[0].Prompt)

	// Second chunk carries the last 100 characters of context.
	prompt := p.requests[1].Prompt
	assert.True(t, strings.HasPrefix(prompt, "A lecture about Go. Previous context: "), prompt)
	assert.True(t, strings.HasSuffix(prompt, "tail-marker"), prompt)
	carried := strings.TrimPrefix(prompt, "A lecture about Go. Previous context: ")
	assert.Len(t, []rune(carried), 100)
}

func TestTranscribeFileChunkFailure(t *testing.T) {
	p := &chunkProvider{err: errors.New("provider exploded")}
	ct := newTestTranscriber(t, p, Options{}, []audio.Chunk{{Index: 0, Path: "chunk0.wav"}})

	_, err := ct.TranscribeFile(context.Background(), audioFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 1/1")
}

func TestTranscribeFileRejectsUnknownType(t *testing.T) {
	ct := NewChunkedTranscriber(&chunkProvider{}, Options{})

	badFile := filepath.Join(t.TempDir(), "document.xyzzy")
	require.NoError(t, os.WriteFile(badFile, []byte("x"), 0644))

	_, err := ct.TranscribeFile(context.Background(), badFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestDefaults(t *testing.T) {
	ct := NewChunkedTranscriber(&chunkProvider{}, Options{})
	assert.Equal(t, DefaultChunkSeconds, ct.opts.ChunkSeconds)
	assert.Equal(t, DefaultContextChars, ct.opts.ContextChars)
	assert.InDelta(t, DefaultTemperature, ct.opts.Temperature, 0.001)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("short", 10))
	assert.Equal(t, "cdef", tail("abcdef", 4))
	assert.Equal(t, "界", tail("世界", 1))
}
