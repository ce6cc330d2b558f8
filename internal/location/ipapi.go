package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/Houeta/devpin/internal/models"
)

// IPAPIBaseURL is the ip-api.com JSON endpoint for the caller's own address.
const IPAPIBaseURL = "http://ip-api.com/json/"

// IPAPIProvider implements the Provider interface using the free ip-api.com
// service. No API key is required; the free tier allows 45 requests/minute,
// far above what a single startup fetch needs.
type IPAPIProvider struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the ip-api endpoint
	log     *slog.Logger // Logger for logging operations
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrNoFix is returned when ip-api cannot resolve the caller's position.
var ErrNoFix = errors.New("ip-api returned no location fix")

// ipapiResponse represents the JSON response from ip-api.com.
type ipapiResponse struct {
	Status  string  `json:"status"`  // "success" or "fail"
	Message string  `json:"message"` // failure reason, only set on "fail"
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// NewIPAPIProvider creates a new ip-api location provider.
func NewIPAPIProvider(log *slog.Logger) *IPAPIProvider {
	const timeout = 10
	return &IPAPIProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: IPAPIBaseURL,
		log:     log,
	}
}

// NewIPAPIProviderWithClient creates an ip-api provider with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewIPAPIProviderWithClient(client HTTPClient, log *slog.Logger) *IPAPIProvider {
	return &IPAPIProvider{
		client:  client,
		baseURL: IPAPIBaseURL,
		log:     log,
	}
}

// Locate resolves the caller's approximate position from its public IP.
func (ip *IPAPIProvider) Locate(ctx context.Context) (*models.Coordinates, error) {
	ip.log.DebugContext(ctx, "Locating using ip-api.com")

	reqURL, err := url.Parse(ip.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("fields", "status,message,lat,lon")
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := ip.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute location request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		ip.log.ErrorContext(ctx, "ip-api error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("ip-api returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var result ipapiResponse
	if err = json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode ip-api response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrNoFix, result.Message)
	}

	ip.log.DebugContext(ctx, "ip-api found position", "lat", result.Lat, "lon", result.Lon)

	return &models.Coordinates{
		Latitude:  result.Lat,
		Longitude: result.Lon,
	}, nil
}
