package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, DefaultModelName, cfg.Model.Name)
	assert.Equal(t, DefaultModelTimeoutSeconds, cfg.Model.TimeoutSeconds)
	assert.Equal(t, int64(DefaultModelMaxConcurrent), cfg.Model.MaxConcurrent)
	assert.Empty(t, cfg.Model.APIKey)
	assert.False(t, cfg.HasAPIKey())
	assert.True(t, cfg.Analysis.Recursive)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
	assert.Equal(t, DefaultConfig().Output, cfg.Output)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	content := `
[server]
port = 9000
allowed_origins = ["https://example.com"]

[model]
name = "gemini-2.0-flash"
timeout_seconds = 5

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"https://example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model.Name)
	assert.Equal(t, 5, cfg.Model.TimeoutSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Unspecified values keep their defaults.
	assert.Equal(t, DefaultServerHost, cfg.Server.Host)
	assert.Equal(t, int64(DefaultModelMaxConcurrent), cfg.Model.MaxConcurrent)
}

func TestLoadConfig_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key-123")
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "test-key-123", cfg.Model.APIKey)
	assert.True(t, cfg.HasAPIKey())
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("not [valid toml"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)

	require.NoError(t, WriteDefaultConfig(path))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)

	// Second write refuses to clobber.
	assert.Error(t, WriteDefaultConfig(path))
}

func TestServerConfig_Address(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8000}
	assert.Equal(t, "127.0.0.1:8000", cfg.Address())
}
