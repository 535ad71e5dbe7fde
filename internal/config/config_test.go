package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost/intake")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.telegram.org", cfg.TelegramAPIBaseURL)
	assert.Equal(t, "http://localhost:8000/classify", cfg.ProcessingServerURL)
	assert.Equal(t, "http://localhost:8000", cfg.RAGServiceURL)
	assert.Equal(t, 120*time.Second, cfg.SessionTTL())
	assert.Equal(t, 2*time.Second, cfg.ResetDelay())
	assert.Equal(t, "temp", cfg.TempDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL_SECONDS", "300")
	t.Setenv("RESET_DELAY_SECONDS", "0")
	t.Setenv("TEMP_DIR", "/var/lib/intake/files")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	assert.Equal(t, time.Duration(0), cfg.ResetDelay())
	assert.Equal(t, "/var/lib/intake/files", cfg.TempDir)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/intake")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	// t.Setenv registers the restore; unsetting afterwards leaves the
	// variable genuinely absent for the duration of the test.
	t.Setenv("TELEGRAM_BOT_TOKEN", "placeholder")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}
