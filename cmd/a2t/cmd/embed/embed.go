package embed

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"audioscribe/internal/app"
	"audioscribe/internal/app/embedding"
)

var (
	transcriptionID int
	userNickname    string
	query           string
	topK            int
)

func init() {
	generateCmd.Flags().IntVarP(&transcriptionID, "id", "i", 0, "transcription row to embed")
	generateCmd.MarkFlagRequired("id")

	searchCmd.Flags().StringVarP(&userNickname, "userNickname", "n", "", "set userNickname")
	searchCmd.Flags().StringVarP(&query, "query", "q", "", "text to search for")
	searchCmd.Flags().IntVarP(&topK, "topK", "k", 5, "number of results to return")
	searchCmd.MarkFlagRequired("userNickname")
	searchCmd.MarkFlagRequired("query")

	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(searchCmd)
}

// Cmd represents the embed command
var Cmd = &cobra.Command{
	Use:   "embed",
	Short: "Generate and search transcript embeddings",
	Long: `Generate and search transcript embeddings.

Embeddings are computed with OpenAI or Gemini (EMBEDDING_PROVIDER env var,
default openai) and stored next to the transcripts, so past conversions can
be searched by meaning instead of exact words.`,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an embedding for one stored transcription",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		db, err := app.NewTranscriptionDAO()
		if err != nil {
			log.Fatalf("Failed to open transcription database: %v\n", err)
		}
		defer db.Close()

		p, err := newEmbeddingProvider(ctx)
		if err != nil {
			log.Fatalf("Failed to build embedding provider: %v\n", err)
		}

		row, err := db.GetByID(transcriptionID)
		if err != nil {
			log.Fatalf("Failed to load transcription %d: %v\n", transcriptionID, err)
		}
		if row.Transcription == "" {
			log.Fatalf("Transcription %d has no text to embed\n", transcriptionID)
		}

		vector, err := p.Embed(ctx, row.Transcription)
		if err != nil {
			log.Fatalf("Failed to generate embedding: %v\n", err)
		}
		if err := db.SaveEmbedding(row.ID, p.Name(), p.Model(), vector); err != nil {
			log.Fatalf("Failed to save embedding: %v\n", err)
		}

		fmt.Printf("embedded transcription %d with %s/%s, %d dimensions\n",
			row.ID, p.Name(), p.Model(), len(vector))
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stored transcripts by meaning",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		db, err := app.NewTranscriptionDAO()
		if err != nil {
			log.Fatalf("Failed to open transcription database: %v\n", err)
		}
		defer db.Close()

		p, err := newEmbeddingProvider(ctx)
		if err != nil {
			log.Fatalf("Failed to build embedding provider: %v\n", err)
		}

		queryVector, err := p.Embed(ctx, query)
		if err != nil {
			log.Fatalf("Failed to embed query: %v\n", err)
		}

		stored, err := db.GetEmbeddingsByUser(userNickname)
		if err != nil {
			log.Fatalf("Failed to load embeddings: %v\n", err)
		}
		if len(stored) == 0 {
			fmt.Printf("no embeddings stored for user %s, run 'a2t embed generate' first\n", userNickname)
			return
		}

		results := embedding.RankBySimilarity(queryVector, stored, topK)
		for i, r := range results {
			fmt.Printf("%d. [score %.4f] transcription #%d\n   %s\n", i+1, r.Score, r.TranscriptionID, snippet(r.Text, 160))
		}
	},
}

func newEmbeddingProvider(ctx context.Context) (embedding.Provider, error) {
	switch os.Getenv("EMBEDDING_PROVIDER") {
	case "", "openai":
		return embedding.NewOpenAIProviderFromEnv()
	case "gemini":
		return embedding.NewGeminiProviderFromEnv(ctx)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", os.Getenv("EMBEDDING_PROVIDER"))
	}
}

func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
