package repository

import (
	"context"
	"database/sql"
	"errors"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/pkg/sqlite"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type CategoryRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCategoryRepository(db *sql.DB, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

// List returns active categories ordered by type then name. A nil typeFilter
// returns every type.
func (r *CategoryRepository) List(ctx context.Context, typeFilter *models.CategoryType) ([]models.Category, error) {
	query := sq.Select("id", "name", "type", "color", "is_active", "created_at").
		From("categories").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("type", "name")
	if typeFilter != nil {
		query = query.Where(squirrel.Eq{"type": string(*typeFilter)})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, dataAccess(r.logger, "list categories", err)
	}

	categories := make([]models.Category, 0)
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var c models.Category
			if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Color, &c.IsActive, timestamp{&c.CreatedAt}); err != nil {
				return err
			}
			categories = append(categories, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, dataAccess(r.logger, "list categories", err)
	}

	return categories, nil
}

// Create inserts a category and returns its id. A duplicate (name, type) pair
// is reported as a conflict.
func (r *CategoryRepository) Create(ctx context.Context, name string, categoryType models.CategoryType, color string) (int64, error) {
	sqlStr, args, err := sq.Insert("categories").
		Columns("name", "type", "color").
		Values(name, string(categoryType), color).
		ToSql()
	if err != nil {
		return 0, dataAccess(r.logger, "create category", err)
	}

	var id int64
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			if isUniqueViolation(err) {
				return apperr.Conflict("category with this name and type already exists")
			}
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, dataAccess(r.logger, "create category", err)
	}

	return id, nil
}

func (r *CategoryRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		var err error
		exists, err = categoryExists(ctx, conn, id)
		return err
	})
	if err != nil {
		return false, dataAccess(r.logger, "check category", err)
	}
	return exists, nil
}

// Deactivate hides a category from listings. Its transactions keep
// referencing it.
func (r *CategoryRepository) Deactivate(ctx context.Context, id int64) error {
	sqlStr, args, err := sq.Update("categories").
		Set("is_active", false).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return dataAccess(r.logger, "deactivate category", err)
	}

	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound("category not found")
		}
		return nil
	})
	if err != nil {
		return dataAccess(r.logger, "deactivate category", err)
	}
	return nil
}

func categoryExists(ctx context.Context, conn *sql.Conn, id int64) (bool, error) {
	return rowExists(ctx, conn, "categories", id)
}

func rowExists(ctx context.Context, conn *sql.Conn, table string, id int64) (bool, error) {
	sqlStr, args, err := sq.Select("1").
		From(table).
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, err
	}

	var one int
	err = conn.QueryRowContext(ctx, sqlStr, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
