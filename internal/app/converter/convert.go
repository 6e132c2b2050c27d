package converter

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"audioscribe/internal/app/audio"
	"audioscribe/internal/app/cache"
	"audioscribe/internal/app/model"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/app/transcriber"
	"audioscribe/internal/app/util/files"
	"audioscribe/internal/app/utils"
)

// Converter walks a directory of audio files and transcribes the ones that
// have not been processed yet, recording every outcome to the database.
type Converter struct {
	transcriber   transcriber.Transcriber
	db            repository.TranscriptionDAO
	cache         cache.ResultCache
	archive       storage.ArchiveStore
	probeDuration func(filePath string) (int, error)
	extractAudio  func(fileName, fileFullPath, mp3FilePath string) error
}

// videoExtensions are containers whose audio track is extracted to mp3
// before transcription.
var videoExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
}

// NewConverter builds a converter. resultCache and archive may be nil, in
// which case caching and archiving are skipped.
func NewConverter(t transcriber.Transcriber, transcriptionDAO repository.TranscriptionDAO, resultCache cache.ResultCache, archive storage.ArchiveStore) *Converter {
	if resultCache == nil {
		resultCache = cache.NoopCache{}
	}
	return &Converter{
		transcriber:   t,
		db:            transcriptionDAO,
		cache:         resultCache,
		archive:       archive,
		probeDuration: audio.GetAudioDuration,
		extractAudio:  audio.ConvertToMp3,
	}
}

func (c *Converter) Close() error {
	return c.db.Close()
}

// Do transcribes up to convertCount unprocessed audio files from inputDir.
func (c *Converter) Do(userNickname string, inputDir string, convertCount int) error {
	fileInfos := files.GetAllAudioFiles(inputDir)

	filesToProcess := c.filterUnProcessedFiles(fileInfos, convertCount)
	for _, file := range filesToProcess {
		if err := c.convertToText(userNickname, file); err != nil {
			log.Printf("Error converting file %s: %v\n", file.Name, err)
		}
	}
	return nil
}

func (c *Converter) filterUnProcessedFiles(fileInfos []model.FileInfo, convertCount int) []model.FileInfo {
	filesToProcess := make([]model.FileInfo, 0, convertCount)

	for _, fileInfo := range fileInfos {
		id, err := c.db.CheckIfFileProcessed(fileInfo.Name)
		if err == nil {
			fmt.Printf("File '%s' with id '%d' has already been processed, skipping...\n", fileInfo.Name, id)
			continue
		}

		filesToProcess = append(filesToProcess, fileInfo)
		if convertCount > 0 && len(filesToProcess) >= convertCount {
			break
		}
	}
	return filesToProcess
}

func (c *Converter) convertToText(userNickname string, file model.FileInfo) error {
	fmt.Printf("Processing file '%s'\n", file.Name)
	ctx := context.Background()

	sourcePath := file.FullPath
	if videoExtensions[strings.ToLower(filepath.Ext(file.Name))] {
		mp3Path, cleanup, err := c.extractToMp3(file)
		if err != nil {
			c.db.RecordToDB(userNickname, file.FullPath, file.Name, file.Name, 0, "", "", "",
				time.Now(), 1, fmt.Sprintf("Audio extraction error: %v", err))
			return fmt.Errorf("audio extraction error: %w", err)
		}
		defer cleanup()
		sourcePath = mp3Path
	}

	fileHash, err := utils.CalculateFileHash(file.FullPath)
	if err != nil {
		c.db.RecordToDB(userNickname, file.FullPath, file.Name, file.Name, 0, "", "", "",
			time.Now(), 1, fmt.Sprintf("Hash error: %v", err))
		return fmt.Errorf("hash error: %w", err)
	}

	duration, err := c.probeDuration(sourcePath)
	if err != nil {
		c.db.RecordToDB(userNickname, file.FullPath, file.Name, file.Name, 0, "", fileHash, "",
			time.Now(), 1, fmt.Sprintf("Failed to get audio duration: %v", err))
		return fmt.Errorf("failed to get audio duration: %w", err)
	}

	// An identical file may already have a cached transcript.
	if cached, ok, err := c.cache.Get(ctx, fileHash); err == nil && ok {
		fmt.Printf("Cache hit for file '%s'\n", file.Name)
		return c.db.RecordToDB(userNickname, file.FullPath, file.Name, file.Name, duration, "", fileHash, cached,
			time.Now(), 0, "")
	}

	transcription, err := c.transcriber.Transcript(sourcePath)
	if err != nil {
		c.db.RecordToDB(userNickname, file.FullPath, file.Name, file.Name, duration, "", fileHash, "",
			time.Now(), 1, fmt.Sprintf("Transcription error: %v", err))
		return fmt.Errorf("transcription error: %w", err)
	}

	if err := c.cache.Set(ctx, fileHash, transcription); err != nil {
		log.Printf("Failed to cache transcript for %s: %v\n", file.Name, err)
	}

	if err := c.db.RecordToDB(userNickname, file.FullPath, file.Name, file.Name, duration, "", fileHash, transcription,
		time.Now(), 0, ""); err != nil {
		return err
	}

	c.archiveResult(ctx, userNickname, file, transcription)

	fmt.Printf("Transcription completed for file '%s':\n%s\n", file.Name, transcription)
	return nil
}

// extractToMp3 pulls the audio track out of a video container into a
// temporary mp3. The caller must invoke cleanup when done.
func (c *Converter) extractToMp3(file model.FileInfo) (string, func(), error) {
	tmpDir, err := os.MkdirTemp("", "a2t-extract")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create extraction dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	base := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
	mp3Path := filepath.Join(tmpDir, base+".mp3")
	if err := c.extractAudio(file.Name, file.FullPath, mp3Path); err != nil {
		cleanup()
		return "", nil, err
	}
	return mp3Path, cleanup, nil
}

// archiveResult copies the source audio and the transcript into object
// storage when an archive is configured. Archive failures do not fail the
// conversion, the transcript is already persisted.
func (c *Converter) archiveResult(ctx context.Context, userNickname string, file model.FileInfo, transcription string) {
	if c.archive == nil {
		return
	}
	if _, err := c.archive.UploadAudio(ctx, userNickname, file.FullPath); err != nil {
		log.Printf("Failed to archive audio for %s: %v\n", file.Name, err)
	}
	if _, err := c.archive.UploadTranscript(ctx, userNickname, file.Name, transcription); err != nil {
		log.Printf("Failed to archive transcript for %s: %v\n", file.Name, err)
	}
}
