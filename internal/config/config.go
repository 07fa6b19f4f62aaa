package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config is the root coinmage configuration.
type Config struct {
	API        APIConfig        `yaml:"api"`
	Assets     AssetsConfig     `yaml:"assets"`
	Watch      WatchConfig      `yaml:"watch"`
	Watchlists WatchlistsConfig `yaml:"watchlists"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// APIConfig holds CoinGecko API settings.
type APIConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"` // Demo plan key (x-cg-demo-api-key header)
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   *int          `yaml:"max_retries"` // nil means default; 0 disables retries
	RetryBackoff time.Duration `yaml:"retry_backoff"`
	VsCurrency   string        `yaml:"vs_currency"`
}

// Retries returns MaxRetries, or the default when it is unset.
func (a APIConfig) Retries() int {
	if a.MaxRetries == nil {
		return DefaultMaxRetries
	}
	return *a.MaxRetries
}

// AssetsConfig holds asset catalog cache settings.
type AssetsConfig struct {
	TTL time.Duration `yaml:"ttl"`
}

// WatchConfig holds live watch settings.
type WatchConfig struct {
	Interval     time.Duration `yaml:"interval"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	StopKeys     string        `yaml:"stop_keys"`
}

// WatchlistsConfig holds watchlist storage settings.
type WatchlistsConfig struct {
	Dir string `yaml:"dir"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// SlogLevel maps Level to a slog.Level, defaulting to warn.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch strings.ToLower(l.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
