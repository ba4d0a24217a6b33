package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "STATIC_DIR",
		"DB_PATH", "DB_MAX_OPEN_CONNS", "DB_BUSY_TIMEOUT_MS",
		"AUTH_TOKEN_SECRET", "AUTH_TOKEN_TTL_HOURS", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

// chdir changes the working directory for the test and restores it on
// cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "./data/finance.db", cfg.Database.Path)
	assert.Equal(t, 5*time.Second, cfg.Database.BusyTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Empty(t, cfg.Auth.TokenSecret)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/finance-test.db")
	t.Setenv("AUTH_TOKEN_TTL_HOURS", "2")
	t.Setenv("AUTH_TOKEN_SECRET", "0123456789abcdef0123")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "/tmp/finance-test.db", cfg.Database.Path)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "0123456789abcdef0123", cfg.Auth.TokenSecret)
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_MAX_OPEN_CONNS")
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Port: "99999", ReadTimeout: time.Second, WriteTimeout: time.Second},
		Database: DatabaseConfig{Path: "", MaxOpenConns: 0},
		Auth:     AuthConfig{TokenSecret: "short", TokenTTL: 0},
	}

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "invalid port 99999")
	assert.Contains(t, msg, "database path cannot be empty")
	assert.Contains(t, msg, "max open connections")
	assert.Contains(t, msg, "token lifetime")
	assert.Contains(t, msg, "AUTH_TOKEN_SECRET")
}
