package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()
	db := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndGetAllByUser(t *testing.T) {
	db := newTestDB(t)

	now := time.Now()
	err := db.RecordToDB("alice", "/audio", "ep1.mp3", "ep1.mp3", 360, "en", "hash1", "hello world", now, 0, "")
	require.NoError(t, err)
	err = db.RecordToDB("alice", "/audio", "ep2.mp3", "ep2.mp3", 120, "en", "hash2", "second episode", now.Add(time.Minute), 0, "")
	require.NoError(t, err)
	err = db.RecordToDB("bob", "/audio", "other.mp3", "other.mp3", 60, "en", "hash3", "not alice", now, 0, "")
	require.NoError(t, err)

	transcriptions, err := db.GetAllByUser("alice")
	require.NoError(t, err)
	require.Len(t, transcriptions, 2)

	// Most recent conversion first.
	assert.Equal(t, "ep2.mp3", transcriptions[0].AudioFileName)
	assert.Equal(t, "second episode", transcriptions[0].Transcription)
	assert.Equal(t, 120, transcriptions[0].AudioDuration)
	assert.Equal(t, "en", transcriptions[0].Language)
}

func TestGetAllByUserSkipsErrors(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordToDB("alice", "/audio", "bad.mp3", "bad.mp3", 0, "", "", "", time.Now(), 1, "boom"))

	transcriptions, err := db.GetAllByUser("alice")
	require.NoError(t, err)
	assert.Empty(t, transcriptions)
}

func TestCheckIfFileProcessed(t *testing.T) {
	db := newTestDB(t)

	_, err := db.CheckIfFileProcessed("missing.mp3")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, db.RecordToDB("alice", "/audio", "done.mp3", "done.mp3", 10, "en", "h", "text", time.Now(), 0, ""))

	id, err := db.CheckIfFileProcessed("done.mp3")
	require.NoError(t, err)
	assert.Greater(t, id, 0)
}

func TestGetByID(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordToDB("alice", "/audio", "ep.mp3", "ep.mp3", 42, "zh", "h", "你好", time.Now(), 0, ""))

	id, err := db.CheckIfFileProcessed("ep.mp3")
	require.NoError(t, err)

	got, err := db.GetByID(id)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.User)
	assert.Equal(t, "你好", got.Transcription)
	assert.Equal(t, 42, got.AudioDuration)

	_, err = db.GetByID(999999)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestSaveAndGetEmbeddings(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RecordToDB("alice", "/audio", "ep.mp3", "ep.mp3", 42, "en", "h", "some text", time.Now(), 0, ""))
	id, err := db.CheckIfFileProcessed("ep.mp3")
	require.NoError(t, err)

	require.NoError(t, db.SaveEmbedding(id, "openai", "text-embedding-3-small", []float32{0.1, 0.2, 0.3}))

	embeddings, err := db.GetEmbeddingsByUser("alice")
	require.NoError(t, err)
	require.Len(t, embeddings, 1)
	assert.Equal(t, id, embeddings[0].TranscriptionID)
	assert.Equal(t, "openai", embeddings[0].Provider)
	assert.Equal(t, "some text", embeddings[0].Text)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, embeddings[0].Vector)
}
