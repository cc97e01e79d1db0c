package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:8000", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 10, cfg.UI.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty server url",
			mutate:  func(c *Config) { c.Server.URL = "" },
			wantErr: "server url is required",
		},
		{
			name:    "bad scheme",
			mutate:  func(c *Config) { c.Server.URL = "ftp://example.com" },
			wantErr: "scheme must be http or https",
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Server.RequestTimeout = 0 },
			wantErr: "request timeout must be positive",
		},
		{
			name:    "zero page size",
			mutate:  func(c *Config) { c.UI.PageSize = 0 },
			wantErr: "page size must be >= 1",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log format must be 'json' or 'console'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoad_FileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  url: http://news.internal:9000
  request_timeout: 45s
ui:
  page_size: 25
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("NEWSROOM_SERVER_URL", "http://override:7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Env wins over file, file wins over default.
	assert.Equal(t, "http://override:7000", cfg.Server.URL)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 25, cfg.UI.PageSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not: closed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  page_size: -3\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestTransformEnvKey(t *testing.T) {
	assert.Equal(t, "server.url", transformEnvKey("NEWSROOM_SERVER_URL"))
	assert.Equal(t, "server.request_timeout", transformEnvKey("NEWSROOM_SERVER_REQUEST_TIMEOUT"))
	assert.Equal(t, "ui.page_size", transformEnvKey("NEWSROOM_UI_PAGE_SIZE"))
	assert.Equal(t, "log.file", transformEnvKey("NEWSROOM_LOG_FILE"))
}
