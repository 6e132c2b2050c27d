package pg

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*PostgresDB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresDBWithConn(db), mock
}

func TestCheckIfFileProcessed(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM transcriptions`).
		WithArgs("ep1.mp3").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := pdb.CheckIfFileProcessed("ep1.mp3")
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckIfFileProcessedNotFound(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id FROM transcriptions`).
		WithArgs("missing.mp3").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := pdb.CheckIfFileProcessed("missing.mp3")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRecordToDB(t *testing.T) {
	pdb, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectExec(`INSERT INTO transcriptions`).
		WithArgs("alice", "/audio", "ep1.mp3", "ep1.mp3", 360, "en", "hash", "hello", now, 0, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := pdb.RecordToDB("alice", "/audio", "ep1.mp3", "ep1.mp3", 360, "en", "hash", "hello", now, 0, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllByUser(t *testing.T) {
	pdb, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_nickname", "last_conversion_time", "audio_file_name", "audio_duration", "language", "file_hash", "transcription", "error_message"}).
		AddRow(2, "alice", now, "ep2.mp3", 120, "en", "h2", "second", "").
		AddRow(1, "alice", now.Add(-time.Hour), "ep1.mp3", 360, "en", "h1", "first", "")

	mock.ExpectQuery(`SELECT id, user_nickname`).
		WithArgs("alice").
		WillReturnRows(rows)

	transcriptions, err := pdb.GetAllByUser("alice")
	require.NoError(t, err)
	require.Len(t, transcriptions, 2)
	assert.Equal(t, "ep2.mp3", transcriptions[0].AudioFileName)
	assert.Equal(t, "first", transcriptions[1].Transcription)
}

func TestSaveEmbedding(t *testing.T) {
	pdb, mock := newMockDB(t)

	mock.ExpectExec(`INSERT INTO embeddings`).
		WithArgs(3, "gemini", "gemini-embedding-001", `[0.5,-0.5]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := pdb.SaveEmbedding(3, "gemini", "gemini-embedding-001", []float32{0.5, -0.5})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetEmbeddingsByUser(t *testing.T) {
	pdb, mock := newMockDB(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"transcription_id", "user_nickname", "provider", "model", "transcription", "vector", "created_at"}).
		AddRow(3, "alice", "openai", "text-embedding-3-small", "some text", `[0.1,0.2]`, now)

	mock.ExpectQuery(`SELECT e.transcription_id`).
		WithArgs("alice").
		WillReturnRows(rows)

	embeddings, err := pdb.GetEmbeddingsByUser("alice")
	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Equal(t, []float32{0.1, 0.2}, embeddings[0].Vector)
	assert.Equal(t, "openai", embeddings[0].Provider)
}
