package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/app/transcriber"
)

var (
	filePath     string
	providerName string
	language     string
	prompt       string
	outputPath   string
	showSegments bool
)

func init() {
	Cmd.Flags().StringVarP(&filePath, "file", "f", "", "audio file to transcribe")
	Cmd.Flags().StringVarP(&providerName, "provider", "p", "", "provider to use, default comes from configuration")
	Cmd.Flags().StringVarP(&language, "language", "l", "", "language hint, empty lets the provider detect")
	Cmd.Flags().StringVar(&prompt, "prompt", "", "prompt carried into every chunk")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the transcript to this file instead of stdout")
	Cmd.Flags().BoolVar(&showSegments, "segments", false, "print timestamped segments")

	Cmd.MarkFlagRequired("file")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe",
	Short: "Transcribe a single audio file to text",
	Long: `Transcribe a single audio file to text.

Long recordings are split into chunks, each chunk receives the tail of the
text transcribed so far as a context prompt, and segment timestamps are
shifted back to the position in the original file.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := app.LoadProvidersConfig()
		registry, err := app.BuildRegistry(cfg)
		if err != nil {
			log.Fatalf("Failed to build provider registry: %v\n", err)
		}

		p, err := registry.GetDefaultProvider()
		if providerName != "" {
			p, err = registry.GetProvider(providerName)
		}
		if err != nil {
			log.Fatalf("Failed to get provider: %v\n", err)
		}

		ct := transcriber.NewChunkedTranscriber(p, transcriber.Options{
			ChunkSeconds: cfg.ChunkSeconds,
			ContextChars: cfg.ContextChars,
			BasePrompt:   prompt,
			Language:     language,
		})

		resp, err := ct.TranscribeFile(context.Background(), filePath)
		if err != nil {
			log.Fatalf("Transcription failed: %v\n", err)
		}

		if outputPath != "" {
			if err := os.WriteFile(outputPath, []byte(resp.Text), 0644); err != nil {
				log.Fatalf("Failed to write output: %v\n", err)
			}
			fmt.Printf("transcript written to %s\n", outputPath)
		} else {
			fmt.Println(resp.Text)
		}

		if showSegments {
			for _, s := range resp.Segments {
				fmt.Printf("[%8.2f -> %8.2f] %s\n", s.Start, s.End, s.Text)
			}
		}
	},
}
