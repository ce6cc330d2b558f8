package github_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/Houeta/devpin/internal/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func TestClient_Lookup(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()
	noLimit := rate.NewLimiter(rate.Inf, 0)

	t.Run("successful lookup", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				// Verify request parameters
				assert.Equal(t, "GET", req.Method)
				assert.Equal(t, "https://api.test/users/octocat", req.URL.String())
				assert.Equal(t, "application/vnd.github+json", req.Header.Get("Accept"))
				assert.Equal(t, "devpin/1.0 (https://github.com/Houeta/devpin)", req.Header.Get("User-Agent"))
				assert.Empty(t, req.Header.Get("Authorization"))

				responseBody := `{
					"login": "octocat",
					"avatar_url": "https://avatars.test/u/583231",
					"name": "The Octocat",
					"company": "@github",
					"bio": null
				}`
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "octocat")

		require.NoError(t, err)
		require.NotNil(t, profile)
		assert.Equal(t, "octocat", profile.Login)
		assert.Equal(t, "https://avatars.test/u/583231", profile.AvatarURL)
		assert.Equal(t, "The Octocat", profile.Name)
		assert.Equal(t, "@github", profile.Company)
		assert.Empty(t, profile.Bio)
	})

	t.Run("token is sent as bearer authorization", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))

				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`{"login":"octocat"}`)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "secret-token", noLimit, logger)
		_, err := client.Lookup(ctx, "octocat")

		require.NoError(t, err)
	})

	t.Run("unknown username maps to ErrUserNotFound", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"message":"Not Found","documentation_url":"https://docs.github.com/rest"}`
				return &http.Response{
					StatusCode: http.StatusNotFound,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "doesnotexist123")

		require.Error(t, err)
		require.Nil(t, profile)
		assert.ErrorIs(t, err, github.ErrUserNotFound)
	})

	t.Run("forbidden maps to ErrRateLimited", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"message":"API rate limit exceeded"}`
				return &http.Response{
					StatusCode: http.StatusForbidden,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "octocat")

		require.Error(t, err)
		require.Nil(t, profile)
		assert.ErrorIs(t, err, github.ErrRateLimited)
	})

	t.Run("too many requests maps to ErrRateLimited", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusTooManyRequests,
					Body:       io.NopCloser(bytes.NewBufferString(`{}`)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		_, err := client.Lookup(ctx, "octocat")

		require.ErrorIs(t, err, github.ErrRateLimited)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				responseBody := `{"message":"Server Error"}`
				return &http.Response{
					StatusCode: http.StatusInternalServerError,
					Body:       io.NopCloser(bytes.NewBufferString(responseBody)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "octocat")

		require.Error(t, err)
		require.Nil(t, profile)
		assert.Contains(t, err.Error(), "github API returned status 500")
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return &http.Response{
					StatusCode: http.StatusOK,
					Body:       io.NopCloser(bytes.NewBufferString(`invalid json`)),
				}, nil
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "octocat")

		require.Error(t, err)
		require.Nil(t, profile)
		assert.Contains(t, err.Error(), "failed to decode github response")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, assert.AnError
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "octocat")

		require.Error(t, err)
		require.Nil(t, profile)
		assert.Contains(t, err.Error(), "failed to execute profile lookup request")
	})

	t.Run("empty username never reaches the wire", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("no request expected for empty username")
				return nil, assert.AnError
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(ctx, "")

		require.Error(t, err)
		require.Nil(t, profile)
		assert.ErrorIs(t, err, github.ErrEmptyUsername)
	})

	t.Run("context cancellation", func(t *testing.T) {
		newCtx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		client := github.NewClientWithHTTP(mockClient, "https://api.test", "", noLimit, logger)
		profile, err := client.Lookup(newCtx, "octocat")

		require.Error(t, err)
		require.Nil(t, profile)
	})
}

func TestNewClient(t *testing.T) {
	client := github.NewClient("https://api.github.com", "", 10*time.Second, slog.Default())

	require.NotNil(t, client)
}
