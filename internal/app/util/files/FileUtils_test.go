package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetAllAudioFiles(t *testing.T) {
	dir := t.TempDir()

	names := []string{"b.mp3", "a.wav", "notes.txt", "c.M4A"}
	for i, name := range names {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		// Stagger mtimes so ordering is deterministic.
		mt := time.Now().Add(time.Duration(i) * time.Second)
		if err := os.Chtimes(p, mt, mt); err != nil {
			t.Fatalf("chtimes %s: %v", name, err)
		}
	}

	got := GetAllAudioFiles(dir)
	if len(got) != 3 {
		t.Fatalf("expected 3 audio files, got %d", len(got))
	}
	if got[0].Name != "b.mp3" || got[1].Name != "a.wav" || got[2].Name != "c.M4A" {
		t.Errorf("unexpected order: %v %v %v", got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestIsSupportedAudioFile(t *testing.T) {
	cases := map[string]bool{
		"episode.mp3": true,
		"talk.WAV":    true,
		"clip.mp4":    true,
		"readme.md":   false,
		"noext":       false,
	}
	for name, want := range cases {
		if got := IsSupportedAudioFile(name); got != want {
			t.Errorf("IsSupportedAudioFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestReadOutputFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(p, []byte("  hello world \n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := ReadOutputFile(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q", got)
	}

	if _, err := ReadOutputFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
