package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, key := range []string{"SERVER_PORT", "OTEL_ENABLED", "STORAGE_DIR", "GEMINI_API_KEY", "API_KEY", "GEMINI_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.True(t, cfg.OTLP.Enabled)
	assert.Equal(t, "./data", cfg.Storage.Dir)
	assert.Empty(t, cfg.GenAI.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GenAI.Model)
	assert.Equal(t, 30*time.Second, cfg.GenAI.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("STORAGE_DIR", "")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_TIMEOUT", "5s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.False(t, cfg.OTLP.Enabled)
	assert.Empty(t, cfg.Storage.Dir, "an explicitly empty dir selects in-memory slots")
	assert.Equal(t, "key", cfg.GenAI.APIKey)
	assert.Equal(t, 5*time.Second, cfg.GenAI.Timeout)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OTEL_SERVICE_NAME=from-dotenv\nSERVER_HOST=127.0.0.1\n"), 0o600))
	t.Setenv("SERVER_HOST", "10.0.0.1")
	t.Setenv("OTEL_SERVICE_NAME", "")
	os.Unsetenv("OTEL_SERVICE_NAME")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.OTLP.ServiceName)
	assert.Equal(t, "10.0.0.1", cfg.Server.Host, "the environment wins over .env")
}
