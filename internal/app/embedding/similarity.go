package embedding

import (
	"errors"
	"math"
	"sort"

	"audioscribe/internal/app/model"
)

// SearchResult is one ranked hit from a similarity search.
type SearchResult struct {
	TranscriptionID int
	Text            string
	Score           float64
}

// CosineSimilarity returns the cosine of the angle between two vectors.
// It returns an error when dimensions differ or either vector is zero.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, errors.New("vector dimensions do not match")
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, errors.New("cannot compare zero vector")
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// RankBySimilarity scores every stored embedding against the query vector and
// returns the topK hits, best first. Embeddings with mismatched dimensions are
// skipped.
func RankBySimilarity(query []float32, embeddings []model.TranscriptEmbedding, topK int) []SearchResult {
	results := make([]SearchResult, 0, len(embeddings))
	for _, e := range embeddings {
		score, err := CosineSimilarity(query, e.Vector)
		if err != nil {
			continue
		}
		results = append(results, SearchResult{
			TranscriptionID: e.TranscriptionID,
			Text:            e.Text,
			Score:           score,
		})
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}
