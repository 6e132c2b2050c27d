package audio

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Chunk is one fixed-length slice of a longer audio file.
type Chunk struct {
	Index  int
	Path   string
	Offset float64 // seconds from the start of the source file
}

// SplitIntoChunks slices the input into chunkSeconds-long 16kHz mono WAV files
// under workDir. Short files still yield a single chunk so callers can treat
// every input uniformly.
func SplitIntoChunks(inputFilePath string, chunkSeconds int, workDir string) ([]Chunk, error) {
	if chunkSeconds <= 0 {
		return nil, fmt.Errorf("invalid chunk length: %d", chunkSeconds)
	}
	if _, err := DetectMimeType(inputFilePath); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(workDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputFilePath), filepath.Ext(inputFilePath))
	pattern := filepath.Join(workDir, base+"_chunk_%03d.wav")

	cmd := exec.Command("ffmpeg",
		"-i", inputFilePath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		"-f", "segment",
		"-segment_time", strconv.Itoa(chunkSeconds),
		"-reset_timestamps", "1",
		pattern,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("FFmpeg segment error: %v, stderr: %s", err, stderr.String())
	}

	matches, err := filepath.Glob(filepath.Join(workDir, base+"_chunk_*.wav"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no chunks for %s", inputFilePath)
	}
	sort.Strings(matches)

	chunks := make([]Chunk, 0, len(matches))
	for i, path := range matches {
		chunks = append(chunks, Chunk{
			Index:  i,
			Path:   path,
			Offset: float64(i * chunkSeconds),
		})
	}
	return chunks, nil
}

// CleanupChunks removes chunk files produced by SplitIntoChunks.
func CleanupChunks(chunks []Chunk) {
	for _, chunk := range chunks {
		os.Remove(chunk.Path)
	}
}
