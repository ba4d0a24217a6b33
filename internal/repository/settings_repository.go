package repository

import (
	"context"
	"database/sql"
	"errors"

	"finance-tracker/internal/models"
	"finance-tracker/pkg/sqlite"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// SettingsRepository reads and writes the singleton app_settings row that
// holds the password hash.
type SettingsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSettingsRepository(db *sql.DB, logger *zap.Logger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// PasswordHash returns the stored hash, or nil when no password is set.
func (r *SettingsRepository) PasswordHash(ctx context.Context) (*string, error) {
	sqlStr, args, err := sq.Select("password_hash").
		From("app_settings").
		Where(squirrel.Eq{"id": models.SettingsID}).
		ToSql()
	if err != nil {
		return nil, dataAccess(r.logger, "read password hash", err)
	}

	var hash sql.NullString
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		err := conn.QueryRowContext(ctx, sqlStr, args...).Scan(&hash)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	})
	if err != nil {
		return nil, dataAccess(r.logger, "read password hash", err)
	}

	if !hash.Valid {
		return nil, nil
	}
	return &hash.String, nil
}

// ClaimPasswordHash stores hash only if no password is set yet. It reports
// false when another password already exists, so concurrent setups cannot
// both succeed.
func (r *SettingsRepository) ClaimPasswordHash(ctx context.Context, hash string) (bool, error) {
	sqlStr, args, err := sq.Insert("app_settings").
		Columns("id", "password_hash").
		Values(models.SettingsID, hash).
		Suffix("ON CONFLICT(id) DO UPDATE SET password_hash = excluded.password_hash, updated_at = CURRENT_TIMESTAMP WHERE app_settings.password_hash IS NULL").
		ToSql()
	if err != nil {
		return false, dataAccess(r.logger, "set initial password", err)
	}

	var claimed bool
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		claimed = n > 0
		return err
	})
	if err != nil {
		return false, dataAccess(r.logger, "set initial password", err)
	}
	return claimed, nil
}

// SetPasswordHash replaces the stored hash unconditionally.
func (r *SettingsRepository) SetPasswordHash(ctx context.Context, hash string) error {
	sqlStr, args, err := sq.Insert("app_settings").
		Columns("id", "password_hash").
		Values(models.SettingsID, hash).
		Suffix("ON CONFLICT(id) DO UPDATE SET password_hash = excluded.password_hash, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return dataAccess(r.logger, "set password", err)
	}

	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		_, err := conn.ExecContext(ctx, sqlStr, args...)
		return err
	})
	if err != nil {
		return dataAccess(r.logger, "set password", err)
	}
	return nil
}
