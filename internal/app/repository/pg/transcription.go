package pg

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"audioscribe/internal/app/model"
)

type PostgresDB struct {
	db *sql.DB
}

func NewPostgresDB(connectionString string) (*PostgresDB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, err
	}
	return &PostgresDB{db: db}, nil
}

// NewPostgresDBWithConn wraps an existing connection, used by tests.
func NewPostgresDBWithConn(db *sql.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

func (pdb *PostgresDB) Close() error {
	return pdb.db.Close()
}

func (pdb *PostgresDB) CheckIfFileProcessed(fileName string) (int, error) {
	query := `SELECT id FROM transcriptions WHERE file_name = $1 AND has_error = 0`
	row := pdb.db.QueryRow(query, fileName)
	var id int
	err := row.Scan(&id)
	return id, err
}

func (pdb *PostgresDB) RecordToDB(user, inputDir, fileName, audioFileName string, audioDuration int, language, fileHash, transcription string,
	lastConversionTime time.Time, hasError int, errorMessage string) error {
	insertSQL := `INSERT INTO transcriptions
		(user_nickname, input_dir, file_name, audio_file_name, audio_duration, language, file_hash, transcription, last_conversion_time, has_error, error_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := pdb.db.Exec(insertSQL, user, inputDir, fileName, audioFileName, audioDuration, language, fileHash, transcription,
		lastConversionTime, hasError, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetAllByUser(userNickname string) ([]model.Transcription, error) {
	query := `
		SELECT id, user_nickname, last_conversion_time, audio_file_name, audio_duration, language, file_hash, transcription, error_message
		FROM transcriptions
		WHERE has_error = 0
		  AND user_nickname = $1
		ORDER BY last_conversion_time DESC`

	rows, err := pdb.db.Query(query, userNickname)
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}
	defer rows.Close()

	transcriptions := make([]model.Transcription, 0)

	for rows.Next() {
		var t model.Transcription
		err = rows.Scan(&t.ID, &t.User, &t.LastConversionTime, &t.AudioFileName, &t.AudioDuration, &t.Language, &t.FileHash, &t.Transcription, &t.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("db scan failed: %v", err)
		}

		transcriptions = append(transcriptions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %v", err)
	}

	return transcriptions, nil
}

func (pdb *PostgresDB) GetByID(id int) (*model.Transcription, error) {
	query := `
		SELECT id, user_nickname, last_conversion_time, audio_file_name, audio_duration, language, file_hash, transcription, error_message
		FROM transcriptions
		WHERE id = $1`
	var t model.Transcription
	err := pdb.db.QueryRow(query, id).Scan(&t.ID, &t.User, &t.LastConversionTime, &t.AudioFileName,
		&t.AudioDuration, &t.Language, &t.FileHash, &t.Transcription, &t.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (pdb *PostgresDB) SaveEmbedding(transcriptionID int, provider, model string, vector []float32) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}
	insertSQL := `INSERT INTO embeddings (transcription_id, provider, model, vector) VALUES ($1, $2, $3, $4);`
	_, err = pdb.db.Exec(insertSQL, transcriptionID, provider, model, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to insert embedding: %w", err)
	}
	return nil
}

func (pdb *PostgresDB) GetEmbeddingsByUser(userNickname string) ([]model.TranscriptEmbedding, error) {
	query := `
		SELECT e.transcription_id, t.user_nickname, e.provider, e.model, t.transcription, e.vector, e.created_at
		FROM embeddings e
		JOIN transcriptions t ON t.id = e.transcription_id
		WHERE t.user_nickname = $1
		ORDER BY e.created_at DESC`
	rows, err := pdb.db.Query(query, userNickname)
	if err != nil {
		return nil, fmt.Errorf("query failed: %v", err)
	}
	defer rows.Close()

	embeddings := make([]model.TranscriptEmbedding, 0)
	for rows.Next() {
		var e model.TranscriptEmbedding
		var encoded string
		if err := rows.Scan(&e.TranscriptionID, &e.User, &e.Provider, &e.Model, &e.Text, &encoded, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("db scan failed: %v", err)
		}
		if err := json.Unmarshal([]byte(encoded), &e.Vector); err != nil {
			return nil, fmt.Errorf("failed to decode vector: %w", err)
		}
		embeddings = append(embeddings, e)
	}
	return embeddings, rows.Err()
}
