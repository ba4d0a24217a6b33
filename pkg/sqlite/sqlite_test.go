package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"finance-tracker/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type SQLiteTestSuite struct {
	suite.Suite
	cfg *config.DatabaseConfig
	db  *sql.DB
}

func (s *SQLiteTestSuite) SetupTest() {
	s.cfg = &config.DatabaseConfig{
		Path:         filepath.Join(s.T().TempDir(), "nested", "finance.db"),
		MaxOpenConns: 2,
		BusyTimeout:  time.Second,
	}
	db, err := Open(context.Background(), s.cfg, zap.NewNop())
	require.NoError(s.T(), err)
	s.db = db
}

func (s *SQLiteTestSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *SQLiteTestSuite) count(query string) int {
	var n int
	require.NoError(s.T(), s.db.QueryRow(query).Scan(&n))
	return n
}

func (s *SQLiteTestSuite) TestInitializeCreatesSchemaAndSeeds() {
	require.NoError(s.T(), Initialize(context.Background(), s.db, s.cfg, zap.NewNop()))

	assert.Equal(s.T(), len(defaultCategories), s.count("SELECT COUNT(*) FROM categories"))
	assert.Equal(s.T(), 1, s.count("SELECT COUNT(*) FROM app_settings"))
	assert.Equal(s.T(), 1, s.count("SELECT COUNT(*) FROM app_settings WHERE id = 1 AND password_hash IS NULL"))
	assert.Equal(s.T(), 0, s.count("SELECT COUNT(*) FROM transactions"))
}

func (s *SQLiteTestSuite) TestInitializeIsIdempotent() {
	ctx := context.Background()
	require.NoError(s.T(), Initialize(ctx, s.db, s.cfg, zap.NewNop()))

	// User edits must survive a second initialization.
	_, err := s.db.Exec("UPDATE categories SET color = '#000000' WHERE name = 'Продукты'")
	require.NoError(s.T(), err)
	_, err = s.db.Exec("UPDATE app_settings SET password_hash = 'hash' WHERE id = 1")
	require.NoError(s.T(), err)

	require.NoError(s.T(), Initialize(ctx, s.db, s.cfg, zap.NewNop()))

	assert.Equal(s.T(), len(defaultCategories), s.count("SELECT COUNT(*) FROM categories"))
	assert.Equal(s.T(), 1, s.count("SELECT COUNT(*) FROM categories WHERE name = 'Продукты' AND color = '#000000'"))
	assert.Equal(s.T(), 1, s.count("SELECT COUNT(*) FROM app_settings WHERE password_hash = 'hash'"))
}

func (s *SQLiteTestSuite) TestForeignKeysAreEnforced() {
	require.NoError(s.T(), Initialize(context.Background(), s.db, s.cfg, zap.NewNop()))

	_, err := s.db.Exec("INSERT INTO transactions (amount_cents, category_id, date) VALUES (100, 9999, '2024-01-01')")
	assert.Error(s.T(), err)
}

func (s *SQLiteTestSuite) TestAmountMustBePositive() {
	require.NoError(s.T(), Initialize(context.Background(), s.db, s.cfg, zap.NewNop()))

	for _, cents := range []int64{0, -100} {
		_, err := s.db.Exec("INSERT INTO transactions (amount_cents, category_id, date) SELECT ?, id, '2024-01-01' FROM categories LIMIT 1", cents)
		assert.Error(s.T(), err, cents)
	}
	assert.Equal(s.T(), 0, s.count("SELECT COUNT(*) FROM transactions"))
}

func (s *SQLiteTestSuite) TestWithConnReleasesOnError() {
	boom := errors.New("boom")
	err := WithConn(context.Background(), s.db, func(conn *sql.Conn) error {
		assert.Equal(s.T(), 1, s.db.Stats().InUse)
		return boom
	})
	assert.ErrorIs(s.T(), err, boom)
	assert.Equal(s.T(), 0, s.db.Stats().InUse)
}

func (s *SQLiteTestSuite) TestWithConnReleasesOnPanic() {
	assert.Panics(s.T(), func() {
		_ = WithConn(context.Background(), s.db, func(conn *sql.Conn) error {
			panic("boom")
		})
	})
	assert.Equal(s.T(), 0, s.db.Stats().InUse)
}

func (s *SQLiteTestSuite) TestWithConnHonoursCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := WithConn(ctx, s.db, func(conn *sql.Conn) error {
		called = true
		return nil
	})
	assert.Error(s.T(), err)
	assert.False(s.T(), called)
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func TestDSN(t *testing.T) {
	cfg := &config.DatabaseConfig{BusyTimeout: 2500 * time.Millisecond}
	assert.Equal(t, "file:/tmp/f.db?_pragma=busy_timeout(2500)&_pragma=foreign_keys(1)", DSN("/tmp/f.db", cfg))
}
