package downloader

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var audioExtensions = []string{".mp3", ".m4a", ".wav", ".ogg", ".flac", ".webm"}

// FindAudioLinks scrapes a web page and returns the absolute URLs of every
// audio file it references: og:audio metadata, <audio>/<source> elements and
// plain links to audio files. Duplicates are removed, document order is kept.
func FindAudioLinks(pageURL string) ([]string, error) {
	resp, err := http.Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch page %s: status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", pageURL, err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := make(map[string]bool)
	add := func(raw string) {
		if raw == "" {
			return
		}
		u, err := base.Parse(raw)
		if err != nil {
			return
		}
		abs := u.String()
		if seen[abs] {
			return
		}
		seen[abs] = true
		links = append(links, abs)
	}

	doc.Find(`meta[property="og:audio"]`).Each(func(i int, s *goquery.Selection) {
		content, _ := s.Attr("content")
		add(content)
	})

	doc.Find("audio[src], audio source[src]").Each(func(i int, s *goquery.Selection) {
		src, _ := s.Attr("src")
		add(src)
	})

	doc.Find("a[href]").Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if hasAudioExtension(href) {
			add(href)
		}
	})

	return links, nil
}

// DownloadAll fetches every audio link found on pageURL into dir and returns
// the local file paths. Individual download failures are logged and skipped.
func DownloadAll(pageURL string, dir string) ([]string, error) {
	links, err := FindAudioLinks(pageURL)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("no audio links found on %s", pageURL)
	}

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	var downloaded []string
	for i, link := range links {
		log.Printf("Downloading audio %d/%d: %s", i+1, len(links), link)
		localPath, err := DownloadFile(link, dir)
		if err != nil {
			log.Printf("Error downloading %s: %v", link, err)
			continue
		}
		downloaded = append(downloaded, localPath)
	}
	return downloaded, nil
}

// DownloadFile fetches one audio URL into dir, skipping the download when a
// local file with the same name and size already exists.
func DownloadFile(audioURL string, dir string) (string, error) {
	name := fileNameFor(audioURL)
	localPath := filepath.Join(dir, name)

	resp, err := http.Get(audioURL)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", audioURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: status %d", audioURL, resp.StatusCode)
	}

	if info, err := os.Stat(localPath); err == nil && resp.ContentLength > 0 && info.Size() == resp.ContentLength {
		log.Printf("local file %v matches remote size, skipping download", localPath)
		return localPath, nil
	}

	out, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", localPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", localPath, err)
	}
	return localPath, nil
}

func hasAudioExtension(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	for _, supported := range audioExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}

func fileNameFor(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "audio.mp3"
	}
	name := path.Base(u.Path)
	if name == "" || name == "/" || name == "." {
		return "audio.mp3"
	}
	return sanitizeName(name)
}

func sanitizeName(name string) string {
	return strings.ReplaceAll(name, "/", "-")
}
