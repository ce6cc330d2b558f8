package location

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of location provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Maps Geolocation provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeIPAPI represents the free ip-api.com provider.
	ProviderTypeIPAPI ProviderType = "ipapi"
	// ProviderTypeNone disables the startup location fetch entirely.
	ProviderTypeNone ProviderType = "none"
)

// ProviderConfig holds configuration for creating a location provider.
type ProviderConfig struct {
	Type   ProviderType // Type of provider to create
	APIKey string       // API key (used by Google provider)
	Logger *slog.Logger // Logger for the provider
}

// NewProvider creates a location provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Maps Geolocation API (requires API key)
// - "ipapi": ip-api.com (free, no API key required)
// - "none": no provider; the flow keeps its compile-time default position
//
// For "none" both return values are nil. Returns an error if the provider
// type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeIPAPI:
		return NewIPAPIProvider(config.Logger), nil
	case ProviderTypeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Geolocation provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	client, err := maps.NewClient(maps.WithAPIKey(config.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}
