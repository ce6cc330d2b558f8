package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Houeta/devpin/internal/models"
)

// Interface defines the registration operation the signup flow depends on.
type Interface interface {
	Register(ctx context.Context, reg models.Registration) error
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client submits developer registrations to the backend service.
// Failures are opaque to callers: the backend does not distinguish kinds this
// layer would act on.
type Client struct {
	client  HTTPClient   // HTTP client for making requests
	baseURL string       // Base URL for the backend API
	log     *slog.Logger // Logger for logging operations
}

// NewClient creates a registration client against the given backend base URL.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		log:     log,
	}
}

// NewClientWithHTTP creates a registration client with a custom HTTP client.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTP(client HTTPClient, baseURL string, log *slog.Logger) *Client {
	return &Client{
		client:  client,
		baseURL: baseURL,
		log:     log,
	}
}

// Register persists a new developer record remotely: the GitHub profile fields
// plus the chosen map coordinate. Any non-2xx answer is an error.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	c.log.DebugContext(ctx, "Submitting registration", "login", reg.Login,
		"lat", reg.Latitude, "lon", reg.Longitude)

	payload, err := json.Marshal(reg)
	if err != nil {
		return fmt.Errorf("failed to encode registration: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/users",
		bytes.NewReader(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute registration request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "Backend API error", "status", resp.StatusCode, "body", string(body))
		return fmt.Errorf("backend API returned status %d: %s", resp.StatusCode, string(body))
	}

	c.log.InfoContext(ctx, "Registration accepted", "login", reg.Login)

	return nil
}
