package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"audioscribe/internal/app/model"
)

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS transcriptions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user TEXT NOT NULL,
	input_dir TEXT,
	file_name TEXT NOT NULL,
	audio_file_name TEXT,
	audio_duration INTEGER DEFAULT 0,
	language TEXT DEFAULT '',
	file_hash TEXT DEFAULT '',
	transcription TEXT DEFAULT '',
	last_conversion_time TIMESTAMP,
	has_error INTEGER DEFAULT 0,
	error_message TEXT DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_transcriptions_user ON transcriptions(user);
CREATE INDEX IF NOT EXISTS idx_transcriptions_file_name ON transcriptions(file_name);

CREATE TABLE IF NOT EXISTS embeddings (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	transcription_id INTEGER NOT NULL REFERENCES transcriptions(id),
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	vector TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_embeddings_transcription ON embeddings(transcription_id);
`

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(dbFilePath string) *SQLiteDB {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		log.Fatal(err)
	}
	if _, err := db.Exec(createTablesSQL); err != nil {
		log.Fatalf("Failed to create tables: %v\n", err)
	}
	return &SQLiteDB{db: db}
}

func (sdb *SQLiteDB) Close() error {
	return sdb.db.Close()
}

func (sdb *SQLiteDB) CheckIfFileProcessed(fileName string) (int, error) {
	query := `SELECT id FROM transcriptions WHERE file_name = ? AND has_error = 0`
	row := sdb.db.QueryRow(query, fileName)
	var id int
	err := row.Scan(&id)
	return id, err
}

func (sdb *SQLiteDB) RecordToDB(user, inputDir, fileName, audioFileName string, audioDuration int, language, fileHash, transcription string,
	lastConversionTime time.Time, hasError int, errorMessage string) error {
	insertSQL := `INSERT INTO transcriptions
		(user, input_dir, file_name, audio_file_name, audio_duration, language, file_hash, transcription, last_conversion_time, has_error, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`
	_, err := sdb.db.Exec(insertSQL, user, inputDir, fileName, audioFileName, audioDuration, language, fileHash, transcription,
		lastConversionTime, hasError, errorMessage)
	if err != nil {
		return fmt.Errorf("failed to insert transcription: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) GetAllByUser(userNickname string) ([]model.Transcription, error) {
	sqlStr := `
		SELECT id, user, last_conversion_time, audio_file_name, audio_duration, language, file_hash, transcription, error_message
		FROM transcriptions
		WHERE has_error = 0
		  AND "user" = ?
		ORDER BY last_conversion_time DESC;`
	rows, err := sdb.db.Query(sqlStr, userNickname)
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
	return transcriptions, rows.Err()
}

func (sdb *SQLiteDB) GetByID(id int) (*model.Transcription, error) {
	sqlStr := `
		SELECT id, user, last_conversion_time, audio_file_name, audio_duration, language, file_hash, transcription, error_message
		FROM transcriptions
		WHERE id = ?;`
	var t model.Transcription
	err := sdb.db.QueryRow(sqlStr, id).Scan(&t.ID, &t.User, &t.LastConversionTime, &t.AudioFileName,
		&t.AudioDuration, &t.Language, &t.FileHash, &t.Transcription, &t.ErrorMessage)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (sdb *SQLiteDB) SaveEmbedding(transcriptionID int, provider, model string, vector []float32) error {
	encoded, err := json.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode vector: %w", err)
	}
	_, err = sdb.db.Exec(`INSERT INTO embeddings (transcription_id, provider, model, vector) VALUES (?, ?, ?, ?);`,
		transcriptionID, provider, model, string(encoded))
	if err != nil {
		return fmt.Errorf("failed to insert embedding: %w", err)
	}
	return nil
}

func (sdb *SQLiteDB) GetEmbeddingsByUser(userNickname string) ([]model.TranscriptEmbedding, error) {
	sqlStr := `
		SELECT e.transcription_id, t.user, e.provider, e.model, t.transcription, e.vector, e.created_at
		FROM embeddings e
		JOIN transcriptions t ON t.id = e.transcription_id
		WHERE t.user = ?
		ORDER BY e.created_at DESC;`
	rows, err := sdb.db.Query(sqlStr, userNickname)
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
