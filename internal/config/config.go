// Package config provides configuration loading for the newsroom client.
//
// Configuration is loaded from a YAML file and overridden by environment
// variables. Defaults are good enough to talk to a local news-assistant
// server without any file at all.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete newsroom client configuration.
type Config struct {
	Server ServerConfig `koanf:"server"`
	UI     UIConfig     `koanf:"ui"`
	Log    LogConfig    `koanf:"log"`
}

// ServerConfig holds the backend connection settings.
type ServerConfig struct {
	// URL is the base URL of the news-assistant server. API paths are
	// resolved under <URL>/api/.
	URL string `koanf:"url"`

	// RequestTimeout bounds every API call. Query requests wait on the
	// summarizer, so this is deliberately generous.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// PageSize is the number of bookmarks shown per page.
	PageSize int `koanf:"page_size"`
}

// LogConfig holds logging settings. The TUI owns the terminal, so logs go
// to a file rather than stdout.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
}

// Default returns config with working defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			URL:            "http://localhost:8000",
			RequestTimeout: 30 * time.Second,
		},
		UI: UIConfig{
			PageSize: 10,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			File:   "",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return errors.New("server url is required")
	}
	u, err := url.Parse(c.Server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url %q: %w", c.Server.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server url scheme must be http or https, got %q", u.Scheme)
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("request timeout must be positive")
	}
	if c.UI.PageSize < 1 {
		return fmt.Errorf("page size must be >= 1, got %d", c.UI.PageSize)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log format must be 'json' or 'console', got %q", c.Log.Format)
	}
	return nil
}
