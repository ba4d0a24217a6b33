package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"finance-tracker/internal/repository"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storedHash(t *testing.T, dbPath string) *string {
	t.Helper()
	ctx := context.Background()
	cfg := &config.DatabaseConfig{Path: dbPath, MaxOpenConns: 1, BusyTimeout: time.Second}
	db, err := sqlite.Open(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	hash, err := repository.NewSettingsRepository(db, zap.NewNop()).PasswordHash(ctx)
	require.NoError(t, err)
	return hash
}

func TestRun_SetsPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finance.db")
	stdout := new(bytes.Buffer)

	err := run([]string{"-password", "secret", "-db", dbPath}, new(bytes.Buffer), stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password updated")

	hash := storedHash(t, dbPath)
	require.NotNil(t, hash)
	assert.True(t, auth.CheckPasswordHash("secret", *hash))
}

func TestRun_ResetsExistingPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finance.db")

	require.NoError(t, run([]string{"-password", "first", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))
	require.NoError(t, run([]string{"-password", "second", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer)))

	hash := storedHash(t, dbPath)
	require.NotNil(t, hash)
	assert.False(t, auth.CheckPasswordHash("first", *hash))
	assert.True(t, auth.CheckPasswordHash("second", *hash))
}

func TestRun_InteractivePassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finance.db")
	stdout := new(bytes.Buffer)

	err := run([]string{"-db", dbPath}, bytes.NewBufferString("typed-secret\n"), stdout, new(bytes.Buffer))
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "New password: ")

	hash := storedHash(t, dbPath)
	require.NotNil(t, hash)
	assert.True(t, auth.CheckPasswordHash("typed-secret", *hash))
}

func TestRun_ShortPassword(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "finance.db")

	err := run([]string{"-password", "abc", "-db", dbPath}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 4 characters")
	assert.NoFileExists(t, dbPath)
}

func TestRun_EmptyInput(t *testing.T) {
	err := run([]string{"-db", filepath.Join(t.TempDir(), "finance.db")}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read password")
}

func TestRun_EnvVarOverride(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "env.db")
	t.Setenv("DB_PATH", dbPath)

	err := run([]string{"-password", "secret"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.NoError(t, err)
	assert.FileExists(t, dbPath)
}

func TestRun_InvalidFlag(t *testing.T) {
	err := run([]string{"-invalid"}, new(bytes.Buffer), new(bytes.Buffer), new(bytes.Buffer))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
