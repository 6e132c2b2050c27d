package downloader

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const episodePage = `<!DOCTYPE html>
<html>
<head>
  <meta property="og:audio" content="/media/episode-1.mp3">
  <meta property="og:title" content="Episode 1">
</head>
<body>
  <audio src="/media/episode-1.mp3"></audio>
  <audio><source src="/media/episode-2.m4a"></audio>
  <a href="/media/episode-3.ogg">Download episode 3</a>
  <a href="/about.html">About</a>
</body>
</html>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/episode", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, episodePage)
	})
	mux.HandleFunc("/media/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		fmt.Fprint(w, "fake audio bytes")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFindAudioLinks(t *testing.T) {
	srv := newTestServer(t)

	links, err := FindAudioLinks(srv.URL + "/episode")
	require.NoError(t, err)

	// og:audio and the <audio> tag point at the same file, deduplicated.
	require.Len(t, links, 3)
	assert.Equal(t, srv.URL+"/media/episode-1.mp3", links[0])
	assert.Equal(t, srv.URL+"/media/episode-2.m4a", links[1])
	assert.Equal(t, srv.URL+"/media/episode-3.ogg", links[2])
}

func TestFindAudioLinksBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := FindAudioLinks(srv.URL + "/missing")
	assert.Error(t, err)
}

func TestDownloadAll(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	paths, err := DownloadAll(srv.URL+"/episode", dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	data, err := os.ReadFile(filepath.Join(dir, "episode-1.mp3"))
	require.NoError(t, err)
	assert.Equal(t, "fake audio bytes", string(data))
}

func TestDownloadFileSkipsExisting(t *testing.T) {
	srv := newTestServer(t)
	dir := t.TempDir()

	first, err := DownloadFile(srv.URL+"/media/episode-1.mp3", dir)
	require.NoError(t, err)

	// Same size, second call should not rewrite the file.
	info1, err := os.Stat(first)
	require.NoError(t, err)

	second, err := DownloadFile(srv.URL+"/media/episode-1.mp3", dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	info2, err := os.Stat(second)
	require.NoError(t, err)
	assert.Equal(t, info1.Size(), info2.Size())
}

func TestHasAudioExtension(t *testing.T) {
	assert.True(t, hasAudioExtension("/media/a.mp3"))
	assert.True(t, hasAudioExtension("https://example.com/x.OGG"))
	assert.False(t, hasAudioExtension("/about.html"))
	assert.False(t, hasAudioExtension("/media/a.mp3.png"))
}
