package download

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"audioscribe/internal/downloader"
)

var (
	pageURL   string
	outputDir string
)

func init() {
	Cmd.Flags().StringVarP(&pageURL, "url", "u", "", "web page to scrape for audio files")
	Cmd.Flags().StringVarP(&outputDir, "dir", "d", "data/downloads", "directory to download into")

	Cmd.MarkFlagRequired("url")
}

// Cmd represents the download command
var Cmd = &cobra.Command{
	Use:   "download",
	Short: "Download every audio file referenced by a web page",
	Long: `Download every audio file referenced by a web page.

The page is scraped for og:audio metadata, <audio> elements and direct
links to audio files; every hit is downloaded into the target directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		paths, err := downloader.DownloadAll(pageURL, outputDir)
		if err != nil {
			log.Fatalf("Download failed: %v\n", err)
		}
		for _, p := range paths {
			fmt.Println(p)
		}
		fmt.Printf("downloaded %d audio files into %s\n", len(paths), outputDir)
	},
}
