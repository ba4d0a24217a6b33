// Package sqlitetest opens initialized throwaway databases for tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"finance-tracker/pkg/config"
	"finance-tracker/pkg/sqlite"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Config returns a database config pointing into a fresh temp dir. A file is
// used rather than :memory: because every pooled connection would otherwise
// see its own empty database.
func Config(t testing.TB) *config.DatabaseConfig {
	t.Helper()
	return &config.DatabaseConfig{
		Path:         filepath.Join(t.TempDir(), "finance.db"),
		MaxOpenConns: 4,
		BusyTimeout:  5 * time.Second,
	}
}

// New opens and initializes a database that is closed when the test ends.
func New(t testing.TB) *sql.DB {
	t.Helper()

	cfg := Config(t)
	ctx := context.Background()
	logger := zap.NewNop()

	db, err := sqlite.Open(ctx, cfg, logger)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { db.Close() })

	require.NoError(t, sqlite.Initialize(ctx, db, cfg, logger), "failed to initialize test database")
	return db
}
