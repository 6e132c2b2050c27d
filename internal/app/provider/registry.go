package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultProviderRegistry implements ProviderRegistry
type DefaultProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]TranscriptionProvider
	default_  string
}

// NewProviderRegistry creates a new provider registry
func NewProviderRegistry() *DefaultProviderRegistry {
	return &DefaultProviderRegistry{
		providers: make(map[string]TranscriptionProvider),
	}
}

// RegisterProvider registers a new transcription provider
func (r *DefaultProviderRegistry) RegisterProvider(name string, provider TranscriptionProvider) error {
	if name == "" {
		return fmt.Errorf("provider name cannot be empty")
	}
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider '%s' already registered", name)
	}

	if err := provider.ValidateConfiguration(); err != nil {
		return fmt.Errorf("provider validation failed: %w", err)
	}

	r.providers[name] = provider

	// First registration becomes the default.
	if r.default_ == "" {
		r.default_ = name
	}

	return nil
}

// GetProvider retrieves a provider by name
func (r *DefaultProviderRegistry) GetProvider(name string) (TranscriptionProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[name]
	if !exists {
		return nil, fmt.Errorf("provider '%s' not found", name)
	}

	return provider, nil
}

// ListProviders returns a list of all registered provider names
func (r *DefaultProviderRegistry) ListProviders() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// GetDefaultProvider returns the default provider
func (r *DefaultProviderRegistry) GetDefaultProvider() (TranscriptionProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.default_ == "" {
		return nil, fmt.Errorf("no default provider set")
	}

	provider, exists := r.providers[r.default_]
	if !exists {
		return nil, fmt.Errorf("default provider '%s' not found", r.default_)
	}

	return provider, nil
}

// SetDefaultProvider sets the default provider
func (r *DefaultProviderRegistry) SetDefaultProvider(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; !exists {
		return fmt.Errorf("provider '%s' not found", name)
	}

	r.default_ = name
	return nil
}

// HealthCheckAll performs health checks on all registered providers
func (r *DefaultProviderRegistry) HealthCheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	providers := make(map[string]TranscriptionProvider, len(r.providers))
	for name, provider := range r.providers {
		providers[name] = provider
	}
	r.mu.RUnlock()

	results := make(map[string]error)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for name, provider := range providers {
		wg.Add(1)
		go func(name string, provider TranscriptionProvider) {
			defer wg.Done()

			err := provider.HealthCheck(ctx)

			mu.Lock()
			results[name] = err
			mu.Unlock()
		}(name, provider)
	}

	wg.Wait()
	return results
}

// OrchestratorConfig controls fallback and retry behavior.
type OrchestratorConfig struct {
	FallbackChain []string
	MaxRetries    int
	RetryDelay    time.Duration
}

// Orchestrator routes requests to a provider and falls back through the chain
// on failure, retrying retryable errors.
type Orchestrator struct {
	registry ProviderRegistry
	metrics  *Metrics
	config   OrchestratorConfig
}

// NewOrchestrator creates a new transcription orchestrator
func NewOrchestrator(registry ProviderRegistry, metrics *Metrics, config OrchestratorConfig) *Orchestrator {
	if config.RetryDelay == 0 {
		config.RetryDelay = 2 * time.Second
	}
	return &Orchestrator{
		registry: registry,
		metrics:  metrics,
		config:   config,
	}
}

// Transcribe runs the request against the default provider, then the fallback chain.
func (o *Orchestrator) Transcribe(ctx context.Context, request *TranscriptionRequest) (*TranscriptionResponse, error) {
	provider, err := o.registry.GetDefaultProvider()
	if err != nil {
		return nil, err
	}
	// The default provider name is not exposed by the interface; resolve it
	// through the chain so metrics get a stable label.
	name := o.resolveName(provider)
	return o.TranscribeWithProvider(ctx, name, request)
}

// TranscribeWithProvider transcribes with a specific provider, falling back to
// the configured chain when it fails.
func (o *Orchestrator) TranscribeWithProvider(ctx context.Context, providerName string, request *TranscriptionRequest) (*TranscriptionResponse, error) {
	tried := map[string]bool{}
	chain := append([]string{providerName}, o.config.FallbackChain...)

	var lastErr error
	for _, name := range chain {
		if name == "" || tried[name] {
			continue
		}
		tried[name] = true

		provider, err := o.registry.GetProvider(name)
		if err != nil {
			lastErr = err
			continue
		}

		response, err := o.tryProvider(ctx, name, provider, request)
		if err == nil {
			return response, nil
		}
		lastErr = err

		if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("provider '%s' and all fallbacks failed: %w", providerName, lastErr)
}

// tryProvider attempts transcription with retry on retryable errors.
func (o *Orchestrator) tryProvider(ctx context.Context, name string, provider TranscriptionProvider, request *TranscriptionRequest) (*TranscriptionResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= o.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(o.config.RetryDelay):
			}
		}

		start := time.Now()
		response, err := provider.TranscriptWithOptions(ctx, request)
		if err == nil {
			if o.metrics != nil {
				o.metrics.RecordSuccess(name, time.Since(start), response.Duration.Seconds())
			}
			return response, nil
		}

		lastErr = err
		if o.metrics != nil {
			o.metrics.RecordFailure(name, errorType(err))
		}

		var transcriptErr *TranscriptionError
		if errors.As(err, &transcriptErr) && !transcriptErr.Retryable {
			break
		}
	}

	return nil, lastErr
}

func (o *Orchestrator) resolveName(target TranscriptionProvider) string {
	for _, name := range o.registry.ListProviders() {
		p, err := o.registry.GetProvider(name)
		if err == nil && p == target {
			return name
		}
	}
	return "unknown"
}

func errorType(err error) string {
	var transcriptErr *TranscriptionError
	if errors.As(err, &transcriptErr) && transcriptErr.Code != "" {
		return transcriptErr.Code
	}
	return "transcription_failed"
}
