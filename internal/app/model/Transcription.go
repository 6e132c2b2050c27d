package model

import "time"

type Transcription struct {
	ID                 int
	User               string
	LastConversionTime time.Time
	AudioFileName      string
	AudioDuration      int
	Language           string
	FileHash           string
	Transcription      string
	ErrorMessage       string
}

// TranscriptEmbedding is a stored embedding vector for one transcription row.
type TranscriptEmbedding struct {
	TranscriptionID int
	User            string
	Provider        string
	Model           string
	Text            string
	Vector          []float32
	CreatedAt       time.Time
}
