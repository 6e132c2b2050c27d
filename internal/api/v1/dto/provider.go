package dto

import "audioscribe/internal/app/provider"

// ProviderResponse describes one registered transcription backend.
type ProviderResponse struct {
	Name             string   `json:"name"`
	DisplayName      string   `json:"display_name,omitempty"`
	Type             string   `json:"type,omitempty"`
	Version          string   `json:"version,omitempty"`
	SupportedFormats []string `json:"supported_formats,omitempty"`
	DefaultModel     string   `json:"default_model,omitempty"`
	RequiresInternet bool     `json:"requires_internet"`
	RequiresAPIKey   bool     `json:"requires_api_key"`
}

// FromProviderInfo converts provider metadata into the API shape.
func FromProviderInfo(info provider.ProviderInfo) ProviderResponse {
	formats := make([]string, 0, len(info.SupportedFormats))
	for _, f := range info.SupportedFormats {
		formats = append(formats, string(f))
	}
	return ProviderResponse{
		Name:             info.Name,
		DisplayName:      info.DisplayName,
		Type:             string(info.Type),
		Version:          info.Version,
		SupportedFormats: formats,
		DefaultModel:     info.DefaultModel,
		RequiresInternet: info.RequiresInternet,
		RequiresAPIKey:   info.RequiresAPIKey,
	}
}

// ProviderHealthResponse reports the health of one provider.
type ProviderHealthResponse struct {
	Name    string `json:"name"`
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}
