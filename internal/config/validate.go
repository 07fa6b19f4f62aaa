package config

import (
	"errors"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	if c.API.Timeout <= 0 {
		return errors.New("api.timeout must be > 0")
	}
	if c.API.Retries() < 0 {
		return errors.New("api.max_retries must be >= 0")
	}
	if c.API.RetryBackoff <= 0 {
		return errors.New("api.retry_backoff must be > 0")
	}
	if c.API.VsCurrency == "" {
		return errors.New("api.vs_currency is required")
	}

	if c.Assets.TTL <= 0 {
		return errors.New("assets.ttl must be > 0")
	}

	if c.Watch.Interval < time.Second {
		return fmt.Errorf("watch.interval must be >= 1s, got %s", c.Watch.Interval)
	}
	if c.Watch.FetchTimeout <= 0 {
		return errors.New("watch.fetch_timeout must be > 0")
	}
	for _, r := range c.Watch.StopKeys {
		if r >= utf8.RuneSelf || !unicode.IsPrint(r) {
			return fmt.Errorf("watch.stop_keys must be printable ASCII, got %q", c.Watch.StopKeys)
		}
	}

	if c.Watchlists.Dir == "" {
		return errors.New("watchlists.dir is required")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	return nil
}
