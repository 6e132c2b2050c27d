package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ProvidersConfig represents the overall configuration for all transcription providers
type ProvidersConfig struct {
	DefaultProvider string                    `yaml:"default_provider"`
	ChunkSeconds    int                       `yaml:"chunk_seconds,omitempty"`
	ContextChars    int                       `yaml:"context_chars,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
	FallbackChain   []string                  `yaml:"fallback_chain,omitempty"`
}

// ProviderConfig represents configuration for a single provider
type ProviderConfig struct {
	Type     string                 `yaml:"type"`
	Enabled  bool                   `yaml:"enabled"`
	Priority int                    `yaml:"priority,omitempty"`
	Settings map[string]interface{} `yaml:"settings,omitempty"`
	Retry    RetryConfig            `yaml:"retry,omitempty"`
}

// RetryConfig represents retry settings for a provider
type RetryConfig struct {
	MaxAttempts int `yaml:"max_attempts,omitempty"`
	BackoffSec  int `yaml:"backoff_sec,omitempty"`
}

// LoadProvidersConfig loads provider configuration from a YAML file
func LoadProvidersConfig(configPath string) (*ProvidersConfig, error) {
	configPath = os.ExpandEnv(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ProvidersConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.expandEnvironmentVariables()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultProvidersConfig returns the configuration used when no providers.yaml exists:
// the OpenAI Whisper API as sole provider, selected through environment keys.
func DefaultProvidersConfig() *ProvidersConfig {
	config := &ProvidersConfig{
		DefaultProvider: "openai",
		Providers: map[string]ProviderConfig{
			"openai": {Type: "openai", Enabled: true},
		},
	}
	config.setDefaults()
	return config
}

func (c *ProvidersConfig) expandEnvironmentVariables() {
	for name, provider := range c.Providers {
		for key, value := range provider.Settings {
			if s, ok := value.(string); ok && strings.Contains(s, "$") {
				provider.Settings[key] = os.ExpandEnv(s)
			}
		}
		c.Providers[name] = provider
	}
}

func (c *ProvidersConfig) setDefaults() {
	if c.ChunkSeconds == 0 {
		c.ChunkSeconds = 600
	}
	if c.ContextChars == 0 {
		c.ContextChars = 500
	}
	for name, provider := range c.Providers {
		if provider.Retry.MaxAttempts == 0 {
			provider.Retry.MaxAttempts = 3
		}
		if provider.Retry.BackoffSec == 0 {
			provider.Retry.BackoffSec = 2
		}
		c.Providers[name] = provider
	}
}

// Validate checks the configuration for consistency
func (c *ProvidersConfig) Validate() error {
	if len(c.Providers) == 0 {
		return fmt.Errorf("no providers configured")
	}

	if c.DefaultProvider != "" {
		provider, ok := c.Providers[c.DefaultProvider]
		if !ok {
			return fmt.Errorf("default_provider '%s' is not configured", c.DefaultProvider)
		}
		if !provider.Enabled {
			return fmt.Errorf("default_provider '%s' is disabled", c.DefaultProvider)
		}
	}

	for name, provider := range c.Providers {
		if provider.Type == "" {
			return fmt.Errorf("provider '%s' has no type", name)
		}
	}

	for _, name := range c.FallbackChain {
		if _, ok := c.Providers[name]; !ok {
			return fmt.Errorf("fallback_chain references unknown provider '%s'", name)
		}
	}

	return nil
}
