package audio

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     string
		wantErr  bool
	}{
		{name: "mp3", fileName: "a.mp3", want: "audio/mpeg"},
		{name: "wav", fileName: "a.wav", want: "audio/wav"},
		{name: "m4a", fileName: "a.m4a", want: "audio/mp4"},
		{name: "flac", fileName: "a.flac", want: "audio/flac"},
		{name: "mp4 container", fileName: "a.mp4", want: "video/mp4"},
		{name: "unknown extension", fileName: "a.xyzzy", wantErr: true},
		{name: "no extension", fileName: "audio", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectMimeType(touch(t, tt.fileName))
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectMimeTypeMissingFile(t *testing.T) {
	_, err := DetectMimeType(filepath.Join(t.TempDir(), "ghost.mp3"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSplitIntoChunksInvalidInput(t *testing.T) {
	if _, err := SplitIntoChunks(touch(t, "a.mp3"), 0, t.TempDir()); err == nil {
		t.Error("expected error for zero chunk length")
	}
	if _, err := SplitIntoChunks(filepath.Join(t.TempDir(), "ghost.mp3"), 600, t.TempDir()); err == nil {
		t.Error("expected error for missing input")
	}
}
