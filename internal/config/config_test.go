package config_test

import (
	"testing"
	"time"

	"github.com/Houeta/devpin/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("DEVPIN_ENV", "local")
	t.Setenv("DEVPIN_HEALTH_PORT", "9090")
	t.Setenv("DEVPIN_GITHUB_API", "https://github.test")
	t.Setenv("DEVPIN_GITHUB_TOKEN", "testToken")
	t.Setenv("DEVPIN_BACKEND_API", "https://backend.test")
	t.Setenv("DEVPIN_LOCATOR_TYPE", "google")
	t.Setenv("DEVPIN_LOCATOR_KEY", "testAPIKey")
	t.Setenv("DEVPIN_HTTP_TIMEOUT", "3s")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "https://github.test", cfg.GithubAPI)
	assert.Equal(t, "testToken", cfg.GithubToken)
	assert.Equal(t, "https://backend.test", cfg.BackendAPI)
	assert.Equal(t, "google", cfg.LocatorType)
	assert.Equal(t, "testAPIKey", cfg.LocatorKey)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
}

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://api.github.com", cfg.GithubAPI)
	assert.Empty(t, cfg.GithubToken)
	assert.Equal(t, "http://localhost:3000", cfg.BackendAPI)
	assert.Equal(t, "ipapi", cfg.LocatorType)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
}

func TestMustLoad_PortError(t *testing.T) {
	t.Setenv("DEVPIN_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_TimeoutError(t *testing.T) {
	t.Setenv("DEVPIN_HTTP_TIMEOUT", "error_value")

	assert.PanicsWithValue(t, "failed to parse http timeout from configuration", func() {
		config.MustLoad()
	})
}
