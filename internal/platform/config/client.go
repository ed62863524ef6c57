package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ClientConfig configures the web client shell.
//
// These values are deployment-provided; only the service base URL is
// required.
type ClientConfig struct {
	// APIBaseURL is the root of the activity service, without trailing slash.
	APIBaseURL string

	// Port is the localhost port the dashboard UI listens on.
	Port string

	// TokenFile is where the bearer token is persisted between runs
	// (the localStorage analog).
	TokenFile string

	HTTPTimeout     time.Duration
	NotificationTTL time.Duration

	// LegacyQueryParams selects the deprecated unauthenticated request shape
	// that passes email as a query parameter instead of bearer + JSON body.
	// Kept only for older service deployments.
	LegacyQueryParams bool
}

func LoadClientConfigFromEnv() (ClientConfig, error) {
	base := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if base == "" {
		return ClientConfig{}, fmt.Errorf("missing required env var: API_BASE_URL")
	}

	cfg := ClientConfig{
		APIBaseURL:      strings.TrimRight(base, "/"),
		Port:            getenv("PORT", "8973"),
		HTTPTimeout:     10 * time.Second,
		NotificationTTL: 5 * time.Second,
	}

	if v := os.Getenv("TOKEN_FILE"); v != "" {
		cfg.TokenFile = v
	} else {
		dir, err := os.UserConfigDir()
		if err != nil {
			return ClientConfig{}, fmt.Errorf("TOKEN_FILE not set and user config dir unavailable: %w", err)
		}
		cfg.TokenFile = filepath.Join(dir, "activity-signup-client", "token")
	}

	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("HTTP_TIMEOUT must be a duration (e.g. 10s): %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v := os.Getenv("NOTIFICATION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("NOTIFICATION_TTL must be a duration (e.g. 5s): %w", err)
		}
		cfg.NotificationTTL = d
	}
	if v := os.Getenv("API_LEGACY_QUERY_PARAMS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ClientConfig{}, fmt.Errorf("API_LEGACY_QUERY_PARAMS must be a bool: %w", err)
		}
		cfg.LegacyQueryParams = b
	}

	return cfg, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
