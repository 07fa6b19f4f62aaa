package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/devin-hart/coinmage/internal/api"
)

// Default values for optional configuration fields.
const (
	DefaultBaseURL       = api.DefaultBaseURL
	DefaultAPITimeout    = 15 * time.Second
	DefaultMaxRetries    = 2
	DefaultRetryBackoff  = 1 * time.Second
	DefaultVsCurrency    = "usd"
	DefaultAssetsTTL     = 10 * time.Minute
	DefaultWatchInterval = 60 * time.Second
	DefaultFetchTimeout  = 20 * time.Second
	DefaultStopKeys      = "q"
	DefaultWatchlistDir  = "~/.coinmage/watchlists"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"

	// APIKeyEnv is read when api.api_key is not set in the file.
	APIKeyEnv = "COINGECKO_API_KEY"
)

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return expandHome("~/.coinmage/config.yaml")
}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	c.API.BaseURL = strings.TrimRight(c.API.BaseURL, "/")
	if c.API.APIKey == "" {
		c.API.APIKey = os.Getenv(APIKeyEnv)
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == nil {
		retries := DefaultMaxRetries
		c.API.MaxRetries = &retries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}
	if c.API.VsCurrency == "" {
		c.API.VsCurrency = DefaultVsCurrency
	}
	c.API.VsCurrency = strings.ToLower(c.API.VsCurrency)

	// Assets defaults
	if c.Assets.TTL == 0 {
		c.Assets.TTL = DefaultAssetsTTL
	}

	// Watch defaults
	if c.Watch.Interval == 0 {
		c.Watch.Interval = DefaultWatchInterval
	}
	if c.Watch.FetchTimeout == 0 {
		c.Watch.FetchTimeout = DefaultFetchTimeout
	}
	if c.Watch.StopKeys == "" {
		c.Watch.StopKeys = DefaultStopKeys
	}

	// Watchlist defaults
	if c.Watchlists.Dir == "" {
		c.Watchlists.Dir = DefaultWatchlistDir
	}
	c.Watchlists.Dir = expandHome(c.Watchlists.Dir)

	// Logging defaults
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = DefaultLogFormat
	}
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
