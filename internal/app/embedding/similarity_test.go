package embedding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audioscribe/internal/app/model"
)

func TestCosineSimilarity(t *testing.T) {
	score, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)

	score, err = CosineSimilarity([]float32{1, 0}, []float32{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, score, 1e-9)

	score, err = CosineSimilarity([]float32{1, 0}, []float32{-1, 0})
	require.NoError(t, err)
	assert.InDelta(t, -1.0, score, 1e-9)
}

func TestCosineSimilarityErrors(t *testing.T) {
	_, err := CosineSimilarity([]float32{1, 0}, []float32{1, 0, 0})
	assert.Error(t, err)

	_, err = CosineSimilarity([]float32{0, 0}, []float32{1, 0})
	assert.Error(t, err)
}

func TestRankBySimilarity(t *testing.T) {
	embeddings := []model.TranscriptEmbedding{
		{TranscriptionID: 1, Text: "orthogonal", Vector: []float32{0, 1}},
		{TranscriptionID: 2, Text: "exact", Vector: []float32{1, 0}},
		{TranscriptionID: 3, Text: "close", Vector: []float32{1, 0.2}},
		{TranscriptionID: 4, Text: "wrong dims", Vector: []float32{1, 0, 0}},
	}

	results := RankBySimilarity([]float32{1, 0}, embeddings, 2)
	require.Len(t, results, 2)
	assert.Equal(t, 2, results[0].TranscriptionID)
	assert.Equal(t, 3, results[1].TranscriptionID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRankBySimilarityNoLimit(t *testing.T) {
	embeddings := []model.TranscriptEmbedding{
		{TranscriptionID: 1, Vector: []float32{0, 1}},
		{TranscriptionID: 2, Vector: []float32{1, 0}},
	}
	results := RankBySimilarity([]float32{1, 0}, embeddings, 0)
	assert.Len(t, results, 2)
}
