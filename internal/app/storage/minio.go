package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveStore keeps processed audio files and their transcripts in object
// storage so batch runs can be replayed or audited later.
type ArchiveStore interface {
	UploadAudio(ctx context.Context, user, localPath string) (string, error)
	UploadTranscript(ctx context.Context, user, fileName, transcript string) (string, error)
	GetObjectURL(key string) string
	DeleteObject(ctx context.Context, key string) error
}

// MinioArchiveStore implements ArchiveStore using MinIO.
type MinioArchiveStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// NewMinioArchiveStore builds an archive store from MINIO_* environment
// variables and makes sure the bucket exists.
func NewMinioArchiveStore() (*MinioArchiveStore, error) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}

	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin"
	}

	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin"
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "a2t-transcriptions"
	}

	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	store := &MinioArchiveStore{
		client:   client,
		bucket:   bucket,
		endpoint: endpoint,
		useSSL:   useSSL,
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return store, nil
}

// UploadAudio uploads the original audio file and returns its object key.
func (s *MinioArchiveStore) UploadAudio(ctx context.Context, user, localPath string) (string, error) {
	key := s.objectKey(user, "audio", filepath.Base(localPath))

	contentType := "application/octet-stream"
	_, err := s.client.FPutObject(ctx, s.bucket, key, localPath, minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-name": filepath.Base(localPath),
			"user":          user,
			"uploaded-at":   time.Now().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload audio to MinIO: %w", err)
	}
	return key, nil
}

// UploadTranscript uploads a finished transcript as a text object.
func (s *MinioArchiveStore) UploadTranscript(ctx context.Context, user, fileName, transcript string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	key := s.objectKey(user, "transcripts", base+".txt")

	reader := strings.NewReader(transcript)
	_, err := s.client.PutObject(ctx, s.bucket, key, reader, int64(reader.Len()), minio.PutObjectOptions{
		ContentType: "text/plain; charset=utf-8",
		UserMetadata: map[string]string{
			"source-file": filepath.Base(fileName),
			"user":        user,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload transcript to MinIO: %w", err)
	}
	return key, nil
}

// GetObjectURL builds a direct URL for an object key.
func (s *MinioArchiveStore) GetObjectURL(key string) string {
	protocol := "http"
	if s.useSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, s.endpoint, s.bucket, key)
}

// DeleteObject removes an object from the archive.
func (s *MinioArchiveStore) DeleteObject(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (s *MinioArchiveStore) objectKey(user, kind, name string) string {
	fileID := uuid.New().String()[:8]
	return fmt.Sprintf("%s/%s/%d-%s-%s", kind, user, time.Now().Unix(), fileID, name)
}
