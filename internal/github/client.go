package github

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
	"golang.org/x/time/rate"
)

// Interface defines the profile lookup operation the signup flow depends on.
type Interface interface {
	Lookup(ctx context.Context, username string) (*models.Profile, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches public user profiles from the GitHub REST API.
type Client struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the GitHub API
	token   string        // Optional bearer token, empty means anonymous
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
	// userAgent is required by the GitHub API for all requests
	userAgent string
}

// Common errors for the GitHub client. The not-found case is a distinct
// variant so callers classify it with errors.Is instead of matching strings.
var (
	ErrUserNotFound  = errors.New("github API knows no such user")
	ErrRateLimited   = errors.New("github API rate limit exceeded")
	ErrEmptyUsername = errors.New("github lookup got empty username")
)

// userResponse represents the subset of the GitHub user object the flow uses.
// Null fields decode to empty strings.
type userResponse struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	Name      string `json:"name"`
	Company   string `json:"company"`
	Bio       string `json:"bio"`
}

// NewClient creates a GitHub profile lookup client against the given base URL.
// An empty token keeps the client anonymous; anonymous access is rate limited
// hard by GitHub, so requests go through a conservative local limiter as well.
func NewClient(baseURL, token string, timeout time.Duration, log *slog.Logger) *Client {
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL:   baseURL,
		token:     token,
		log:       log,
		limiter:   rate.NewLimiter(rate.Limit(1), 1),
		userAgent: "devpin/1.0 (https://github.com/Houeta/devpin)",
	}
}

// NewClientWithHTTP creates a client with a custom HTTP client and limiter.
// Useful for testing with mocked HTTP clients.
func NewClientWithHTTP(client HTTPClient, baseURL, token string, limiter *rate.Limiter, log *slog.Logger) *Client {
	return &Client{
		client:    client,
		baseURL:   baseURL,
		token:     token,
		log:       log,
		limiter:   limiter,
		userAgent: "devpin/1.0 (https://github.com/Houeta/devpin)",
	}
}

// Lookup fetches the public profile for the given username.
//
// A 404 from the API maps to ErrUserNotFound, rate-limit responses map to
// ErrRateLimited, and every other failure is returned wrapped with its cause.
// An empty username never reaches the wire: the user listing endpoint lives at
// the same path and would answer 200 with an array.
func (c *Client) Lookup(ctx context.Context, username string) (*models.Profile, error) {
	if username == "" {
		return nil, ErrEmptyUsername
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	c.log.DebugContext(ctx, "Looking up GitHub profile", "username", username)

	reqURL := fmt.Sprintf("%s/users/%s", c.baseURL, url.PathEscape(username))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute profile lookup request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	case http.StatusForbidden, http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		c.log.ErrorContext(ctx, "GitHub API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("github API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var user userResponse
	if err = json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to decode github response: %w", err)
	}

	c.log.DebugContext(ctx, "GitHub profile found", "login", user.Login)

	return &models.Profile{
		Login:     user.Login,
		AvatarURL: user.AvatarURL,
		Name:      user.Name,
		Company:   user.Company,
		Bio:       user.Bio,
	}, nil
}
