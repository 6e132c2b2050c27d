package repository

import (
	"time"

	"audioscribe/internal/app/model"
)

type TranscriptionDAO interface {
	Close() error

	GetAllByUser(userNickname string) ([]model.Transcription, error)

	GetByID(id int) (*model.Transcription, error)

	CheckIfFileProcessed(fileName string) (int, error)

	RecordToDB(user, inputDir, fileName, audioFileName string, audioDuration int, language, fileHash, transcription string,
		lastConversionTime time.Time, hasError int, errorMessage string) error

	SaveEmbedding(transcriptionID int, provider, model string, vector []float32) error

	GetEmbeddingsByUser(userNickname string) ([]model.TranscriptEmbedding, error)
}
