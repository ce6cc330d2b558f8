package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the signup flow.
// It includes the environment, the monitoring server port, the endpoints of the
// two remote services, the location provider selection, and the outbound HTTP
// timeout.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the monitoring server.
// - GithubAPI: Base URL of the GitHub REST API used for profile lookups.
// - GithubToken: Optional bearer token raising the GitHub rate limit.
// - BackendAPI: Base URL of the backend the registration is submitted to.
// - LocatorType: The type of location provider to use (google, ipapi, none).
// - LocatorKey: The API key for the location provider (required for Google).
// - HTTPTimeout: Timeout applied to outbound HTTP clients.
type Config struct {
	Env         string        // Env is the current environment: local, development, production.
	Port        int           // Port is the monitoring server port.
	GithubAPI   string        // GithubAPI is the profile lookup base URL.
	GithubToken string        // GithubToken is an optional API token, empty means anonymous.
	BackendAPI  string        // BackendAPI is the registration backend base URL.
	LocatorType string        // LocatorType specifies which location provider to use.
	LocatorKey  string        // LocatorKey is the API key for the location provider.
	HTTPTimeout time.Duration // HTTPTimeout bounds every outbound HTTP request.
}

// MustLoad loads the configuration from the environment and returns a Config.
// It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	healthPort, err := strconv.Atoi(setDefaultEnv("DEVPIN_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	timeout, err := time.ParseDuration(setDefaultEnv("DEVPIN_HTTP_TIMEOUT", "10s"))
	if err != nil {
		panic("failed to parse http timeout from configuration")
	}

	return &Config{
		Env:         setDefaultEnv("DEVPIN_ENV", "production"),
		Port:        healthPort,
		GithubAPI:   setDefaultEnv("DEVPIN_GITHUB_API", "https://api.github.com"),
		GithubToken: os.Getenv("DEVPIN_GITHUB_TOKEN"),
		BackendAPI:  setDefaultEnv("DEVPIN_BACKEND_API", "http://localhost:3000"),
		LocatorType: setDefaultEnv("DEVPIN_LOCATOR_TYPE", "ipapi"),
		LocatorKey:  os.Getenv("DEVPIN_LOCATOR_KEY"),
		HTTPTimeout: timeout,
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
