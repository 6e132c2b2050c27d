package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"audioscribe/internal/app/provider"
	"audioscribe/internal/app/provider/elevenlabs"
	"audioscribe/internal/app/provider/openai"
	"audioscribe/internal/app/provider/whispercpp"
	"audioscribe/internal/app/provider/whisperserver"
	"audioscribe/internal/app/repository"
	"audioscribe/internal/app/repository/pg"
	"audioscribe/internal/app/repository/sqlite"
	"audioscribe/internal/app/util/files"
	"audioscribe/internal/config"
)

// LoadProvidersConfig loads configs/providers.yaml from the project root, or
// the path in A2T_PROVIDERS_CONFIG, falling back to the OpenAI-only default.
func LoadProvidersConfig() *config.ProvidersConfig {
	configPath := os.Getenv("A2T_PROVIDERS_CONFIG")
	if configPath == "" {
		if root, err := files.GetProjectRoot(); err == nil {
			configPath = filepath.Join(root, "configs", "providers.yaml")
		}
	}
	if configPath != "" {
		if cfg, err := config.LoadProvidersConfig(configPath); err == nil {
			return cfg
		}
	}
	return config.DefaultProvidersConfig()
}

// BuildRegistry constructs every enabled provider from the configuration and
// registers it. The default provider is registered first so it stays the
// registry default.
func BuildRegistry(cfg *config.ProvidersConfig) (provider.ProviderRegistry, error) {
	registry := provider.NewProviderRegistry()

	names := make([]string, 0, len(cfg.Providers))
	if cfg.DefaultProvider != "" {
		names = append(names, cfg.DefaultProvider)
	}
	for name := range cfg.Providers {
		if name != cfg.DefaultProvider {
			names = append(names, name)
		}
	}

	var registered int
	for _, name := range names {
		pc := cfg.Providers[name]
		if !pc.Enabled {
			continue
		}

		p, err := buildProvider(pc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Skipping provider %s: %v\n", name, err)
			continue
		}
		if err := registry.RegisterProvider(name, p); err != nil {
			fmt.Fprintf(os.Stderr, "Skipping provider %s: %v\n", name, err)
			continue
		}
		registered++
	}

	if registered == 0 {
		return nil, fmt.Errorf("no usable transcription providers configured")
	}
	if cfg.DefaultProvider != "" {
		// The default may have been skipped, ignore the error in that case.
		_ = registry.SetDefaultProvider(cfg.DefaultProvider)
	}
	return registry, nil
}

func buildProvider(pc config.ProviderConfig) (provider.TranscriptionProvider, error) {
	switch pc.Type {
	case "openai":
		return openai.NewWhisperProviderFromEnv()
	case "whisper_cpp":
		return whispercpp.NewLocalProviderFromEnv()
	case "whisper_server":
		return whisperserver.NewProviderFromSettings(pc.Settings)
	case "elevenlabs":
		return elevenlabs.NewProviderFromEnv()
	default:
		return nil, fmt.Errorf("unknown provider type %q", pc.Type)
	}
}

// NewTranscriptionDAO selects PostgreSQL when POSTGRES_DSN is set, otherwise
// a SQLite database under data/ in the project root.
func NewTranscriptionDAO() (repository.TranscriptionDAO, error) {
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		return pg.NewPostgresDB(dsn)
	}

	projectRoot, err := files.GetProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to get project root: %w", err)
	}
	return sqlite.NewSQLiteDB(filepath.Join(projectRoot, "data/transcription.db")), nil
}

// BuildOrchestrator wires the registry into a fallback orchestrator.
func BuildOrchestrator(registry provider.ProviderRegistry, metrics *provider.Metrics, cfg *config.ProvidersConfig) *provider.Orchestrator {
	return provider.NewOrchestrator(registry, metrics, provider.OrchestratorConfig{
		FallbackChain: cfg.FallbackChain,
		MaxRetries:    3,
		RetryDelay:    2 * time.Second,
	})
}
