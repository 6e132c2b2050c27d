package converter

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audioscribe/internal/app/model"
	"audioscribe/internal/app/utils"
)

type fakeTranscriber struct {
	text  string
	err   error
	calls []string
}

func (f *fakeTranscriber) Transcript(inputFilePath string) (string, error) {
	f.calls = append(f.calls, inputFilePath)
	return f.text, f.err
}

type recordedRow struct {
	user          string
	fileName      string
	transcription string
	hasError      int
	errorMessage  string
}

type fakeDAO struct {
	processed map[string]int
	records   []recordedRow
}

func newFakeDAO() *fakeDAO {
	return &fakeDAO{processed: make(map[string]int)}
}

func (d *fakeDAO) Close() error { return nil }

func (d *fakeDAO) CheckIfFileProcessed(fileName string) (int, error) {
	if id, ok := d.processed[fileName]; ok {
		return id, nil
	}
	return 0, sql.ErrNoRows
}

func (d *fakeDAO) RecordToDB(user, inputDir, fileName, audioFileName string, audioDuration int, language, fileHash, transcription string,
	lastConversionTime time.Time, hasError int, errorMessage string) error {
	d.records = append(d.records, recordedRow{
		user:          user,
		fileName:      fileName,
		transcription: transcription,
		hasError:      hasError,
		errorMessage:  errorMessage,
	})
	return nil
}

func (d *fakeDAO) GetAllByUser(userNickname string) ([]model.Transcription, error) { return nil, nil }
func (d *fakeDAO) GetByID(id int) (*model.Transcription, error)                    { return nil, nil }
func (d *fakeDAO) SaveEmbedding(transcriptionID int, provider, model string, vector []float32) error {
	return nil
}
func (d *fakeDAO) GetEmbeddingsByUser(userNickname string) ([]model.TranscriptEmbedding, error) {
	return nil, nil
}

type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache { return &fakeCache{entries: make(map[string]string)} }

func (c *fakeCache) Get(ctx context.Context, fileHash string) (string, bool, error) {
	v, ok := c.entries[fileHash]
	return v, ok, nil
}

func (c *fakeCache) Set(ctx context.Context, fileHash, transcript string) error {
	c.entries[fileHash] = transcript
	c.sets++
	return nil
}

func (c *fakeCache) Close() error { return nil }

type fakeArchive struct {
	audio       []string
	transcripts []string
}

func (a *fakeArchive) UploadAudio(ctx context.Context, user, localPath string) (string, error) {
	a.audio = append(a.audio, localPath)
	return "audio/" + user, nil
}

func (a *fakeArchive) UploadTranscript(ctx context.Context, user, fileName, transcript string) (string, error) {
	a.transcripts = append(a.transcripts, transcript)
	return "transcripts/" + user, nil
}

func (a *fakeArchive) GetObjectURL(key string) string { return "http://minio/" + key }

func (a *fakeArchive) DeleteObject(ctx context.Context, key string) error { return nil }

func writeAudioFiles(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("fake audio"), 0644))
		// Stagger mod times so ordering is stable.
		ts := time.Now().Add(time.Duration(i-len(names)) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}
	return dir
}

func TestFilterUnProcessedFiles(t *testing.T) {
	dao := newFakeDAO()
	dao.processed["done.mp3"] = 1
	c := NewConverter(&fakeTranscriber{}, dao, nil, nil)

	fileInfos := []model.FileInfo{
		{Name: "done.mp3"},
		{Name: "a.mp3"},
		{Name: "b.mp3"},
		{Name: "c.mp3"},
	}

	filesToProcess := c.filterUnProcessedFiles(fileInfos, 2)
	require.Len(t, filesToProcess, 2)
	assert.Equal(t, "a.mp3", filesToProcess[0].Name)
	assert.Equal(t, "b.mp3", filesToProcess[1].Name)
}

func TestFilterUnProcessedFilesNoLimit(t *testing.T) {
	c := NewConverter(&fakeTranscriber{}, newFakeDAO(), nil, nil)

	fileInfos := []model.FileInfo{{Name: "a.mp3"}, {Name: "b.mp3"}}
	filesToProcess := c.filterUnProcessedFiles(fileInfos, 0)
	assert.Len(t, filesToProcess, 2)
}

func fixedDuration(seconds int) func(string) (int, error) {
	return func(string) (int, error) { return seconds, nil }
}

func TestConvertToTextSuccess(t *testing.T) {
	dir := writeAudioFiles(t, "ok.mp3")
	dao := newFakeDAO()
	tr := &fakeTranscriber{text: "hello world"}
	resultCache := newFakeCache()
	c := NewConverter(tr, dao, resultCache, nil)
	c.probeDuration = fixedDuration(42)

	file := model.FileInfo{Name: "ok.mp3", FullPath: filepath.Join(dir, "ok.mp3")}
	require.NoError(t, c.convertToText("alice", file))

	require.Len(t, dao.records, 1)
	assert.Equal(t, "hello world", dao.records[0].transcription)
	assert.Equal(t, 0, dao.records[0].hasError)
	assert.Equal(t, 1, resultCache.sets)
}

func TestConvertToTextExtractsVideoAudio(t *testing.T) {
	dir := writeAudioFiles(t, "talk.mp4")
	dao := newFakeDAO()
	tr := &fakeTranscriber{text: "from video"}
	c := NewConverter(tr, dao, nil, nil)
	c.probeDuration = fixedDuration(30)
	c.extractAudio = func(fileName, fileFullPath, mp3FilePath string) error {
		return os.WriteFile(mp3FilePath, []byte("extracted audio"), 0644)
	}

	file := model.FileInfo{Name: "talk.mp4", FullPath: filepath.Join(dir, "talk.mp4")}
	require.NoError(t, c.convertToText("alice", file))

	// The transcriber must see the extracted mp3, not the container.
	require.Len(t, tr.calls, 1)
	assert.Equal(t, ".mp3", filepath.Ext(tr.calls[0]))
	require.Len(t, dao.records, 1)
	assert.Equal(t, "from video", dao.records[0].transcription)
}

func TestConvertToTextExtractionFailureRecorded(t *testing.T) {
	dir := writeAudioFiles(t, "broken.webm")
	dao := newFakeDAO()
	c := NewConverter(&fakeTranscriber{}, dao, nil, nil)
	c.extractAudio = func(fileName, fileFullPath, mp3FilePath string) error {
		return errors.New("no audio stream")
	}

	file := model.FileInfo{Name: "broken.webm", FullPath: filepath.Join(dir, "broken.webm")}
	err := c.convertToText("alice", file)
	require.Error(t, err)

	require.Len(t, dao.records, 1)
	assert.Equal(t, 1, dao.records[0].hasError)
	assert.Contains(t, dao.records[0].errorMessage, "no audio stream")
}

func TestConvertToTextArchivesResult(t *testing.T) {
	dir := writeAudioFiles(t, "keep.mp3")
	dao := newFakeDAO()
	archive := &fakeArchive{}
	c := NewConverter(&fakeTranscriber{text: "archived text"}, dao, nil, archive)
	c.probeDuration = fixedDuration(5)

	file := model.FileInfo{Name: "keep.mp3", FullPath: filepath.Join(dir, "keep.mp3")}
	require.NoError(t, c.convertToText("alice", file))

	require.Len(t, archive.audio, 1)
	assert.Equal(t, file.FullPath, archive.audio[0])
	require.Len(t, archive.transcripts, 1)
	assert.Equal(t, "archived text", archive.transcripts[0])
}

func TestConvertToTextRecordsFailure(t *testing.T) {
	dir := writeAudioFiles(t, "broken.mp3")
	dao := newFakeDAO()
	tr := &fakeTranscriber{err: errors.New("api down")}
	c := NewConverter(tr, dao, nil, nil)
	c.probeDuration = fixedDuration(10)

	file := model.FileInfo{Name: "broken.mp3", FullPath: filepath.Join(dir, "broken.mp3")}
	err := c.convertToText("alice", file)
	require.Error(t, err)

	// Errors still leave an audit row behind.
	require.NotEmpty(t, dao.records)
	last := dao.records[len(dao.records)-1]
	assert.Equal(t, 1, last.hasError)
	assert.Contains(t, last.errorMessage, "api down")
}

func TestConvertToTextUsesCachedTranscript(t *testing.T) {
	dir := writeAudioFiles(t, "cached.mp3")
	dao := newFakeDAO()
	tr := &fakeTranscriber{text: "should not be called"}
	resultCache := newFakeCache()
	c := NewConverter(tr, dao, resultCache, nil)
	c.probeDuration = fixedDuration(60)

	file := model.FileInfo{Name: "cached.mp3", FullPath: filepath.Join(dir, "cached.mp3")}

	// Prime the cache under the real content hash.
	hash, err := utils.CalculateFileHash(file.FullPath)
	require.NoError(t, err)
	resultCache.entries[hash] = "cached transcript"

	require.NoError(t, c.convertToText("alice", file))

	assert.Empty(t, tr.calls)
	require.NotEmpty(t, dao.records)
	assert.Equal(t, "cached transcript", dao.records[0].transcription)
	assert.Equal(t, 0, dao.records[0].hasError)
}
