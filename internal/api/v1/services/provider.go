package services

import (
	"context"
	"fmt"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
	"audioscribe/internal/app/provider"
)

// ProviderService exposes provider metadata and health to the API handlers.
type ProviderService interface {
	List(ctx context.Context) ([]dto.ProviderResponse, error)
	Get(ctx context.Context, name string) (*dto.ProviderResponse, error)
	Health(ctx context.Context, name string) (*dto.ProviderHealthResponse, error)
	HealthAll(ctx context.Context) ([]dto.ProviderHealthResponse, error)
}

type providerService struct {
	registry provider.ProviderRegistry
}

// NewProviderService builds the default provider service.
func NewProviderService(registry provider.ProviderRegistry) ProviderService {
	return &providerService{registry: registry}
}

func (s *providerService) List(ctx context.Context) ([]dto.ProviderResponse, error) {
	names := s.registry.ListProviders()
	out := make([]dto.ProviderResponse, 0, len(names))
	for _, name := range names {
		p, err := s.registry.GetProvider(name)
		if err != nil {
			continue
		}
		out = append(out, dto.FromProviderInfo(p.GetProviderInfo()))
	}
	return out, nil
}

func (s *providerService) Get(ctx context.Context, name string) (*dto.ProviderResponse, error) {
	p, err := s.registry.GetProvider(name)
	if err != nil {
		return nil, apierrors.NewNotFoundError(fmt.Sprintf("provider %q", name))
	}
	resp := dto.FromProviderInfo(p.GetProviderInfo())
	return &resp, nil
}

func (s *providerService) Health(ctx context.Context, name string) (*dto.ProviderHealthResponse, error) {
	p, err := s.registry.GetProvider(name)
	if err != nil {
		return nil, apierrors.NewNotFoundError(fmt.Sprintf("provider %q", name))
	}

	resp := &dto.ProviderHealthResponse{Name: name, Healthy: true}
	if err := p.HealthCheck(ctx); err != nil {
		resp.Healthy = false
		resp.Error = err.Error()
	}
	return resp, nil
}

func (s *providerService) HealthAll(ctx context.Context) ([]dto.ProviderHealthResponse, error) {
	statuses := s.registry.HealthCheckAll(ctx)
	out := make([]dto.ProviderHealthResponse, 0, len(statuses))
	for name, err := range statuses {
		status := dto.ProviderHealthResponse{Name: name, Healthy: err == nil}
		if err != nil {
			status.Error = err.Error()
		}
		out = append(out, status)
	}
	return out, nil
}
