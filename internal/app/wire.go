//go:build wireinject
// +build wireinject

package app

import (
	"log"
	"os"
	"time"

	"github.com/google/wire"

	"audioscribe/internal/app/cache"
	"audioscribe/internal/app/converter"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/storage"
	"audioscribe/internal/app/transcriber"
)

// provideTranscriber builds the chunked pipeline over the configured default
// provider.
func provideTranscriber() transcriber.Transcriber {
	cfg := LoadProvidersConfig()
	registry, err := BuildRegistry(cfg)
	if err != nil {
		log.Fatalf("Failed to build provider registry: %v\n", err)
	}

	defaultProvider, err := registry.GetDefaultProvider()
	if err != nil {
		log.Fatalf("Failed to get default provider: %v\n", err)
	}

	return transcriber.NewChunkedTranscriber(defaultProvider, transcriber.Options{
		ChunkSeconds: cfg.ChunkSeconds,
		ContextChars: cfg.ContextChars,
	})
}

// provideTranscriptionDAO wraps NewTranscriptionDAO for injection.
func provideTranscriptionDAO() repository.TranscriptionDAO {
	db, err := NewTranscriptionDAO()
	if err != nil {
		log.Fatalf("Failed to open transcription database: %v\n", err)
	}
	return db
}

// provideResultCache uses Redis when REDIS_ADDR is set, otherwise a no-op.
func provideResultCache() cache.ResultCache {
	if os.Getenv("REDIS_ADDR") == "" {
		return cache.NoopCache{}
	}
	c, err := cache.NewRedisCache(24 * time.Hour)
	if err != nil {
		log.Printf("Redis unavailable, running without result cache: %v\n", err)
		return cache.NoopCache{}
	}
	return c
}

// provideArchiveStore enables the MinIO archive when MINIO_ENDPOINT is set.
func provideArchiveStore() storage.ArchiveStore {
	if os.Getenv("MINIO_ENDPOINT") == "" {
		return nil
	}
	store, err := storage.NewMinioArchiveStore()
	if err != nil {
		log.Printf("MinIO unavailable, running without archive: %v\n", err)
		return nil
	}
	return store
}

func InitializeConverter() *converter.Converter {
	wire.Build(converter.NewConverter, provideTranscriber, provideTranscriptionDAO, provideResultCache, provideArchiveStore)
	return &converter.Converter{}
}

func InitializeProgressAwareConverter(config converter.ProgressConfig) *converter.ProgressAwareConverter {
	wire.Build(converter.NewConverter, converter.NewProgressAwareConverter, provideTranscriber, provideTranscriptionDAO, provideResultCache, provideArchiveStore)
	return &converter.ProgressAwareConverter{}
}
