package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"finance-tracker/internal/models"
	"finance-tracker/pkg/config"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type defaultCategory struct {
	Name  string
	Type  models.CategoryType
	Color string
}

var defaultCategories = []defaultCategory{
	{"Пенсия", models.CategoryIncome, "#28a745"},
	{"Зарплата", models.CategoryIncome, "#20c997"},
	{"Перевод частный", models.CategoryIncome, "#17a2b8"},
	{"Перевод между счетами", models.CategoryIncome, "#6f42c1"},
	{"Инвестиции", models.CategoryIncome, "#6610f2"},

	{"WB", models.CategoryExpense, "#dc3545"},
	{"OZON", models.CategoryExpense, "#fd7e14"},
	{"Продукты", models.CategoryExpense, "#e83e8c"},
	{"Оплата за квартиру", models.CategoryExpense, "#007bff"},
	{"Оплата за дачу", models.CategoryExpense, "#28a745"},
	{"Транспорт", models.CategoryExpense, "#ffc107"},
	{"Развлечения", models.CategoryExpense, "#6610f2"},
	{"Кафе и рестораны", models.CategoryExpense, "#e83e8c"},
	{"Здоровье", models.CategoryExpense, "#dc3545"},
	{"Одежда", models.CategoryExpense, "#fd7e14"},

	{"Пополнение копилки", models.CategorySavingsIncome, "#ffc107"},
	{"Снятие из копилки", models.CategorySavingsExpense, "#6c757d"},
}

// Initialize brings the schema up to date and seeds default data. It is
// idempotent: seeding only inserts rows that are absent and never touches
// rows the user has edited.
func Initialize(ctx context.Context, db *sql.DB, cfg *config.DatabaseConfig, logger *zap.Logger) error {
	if err := RunMigrations(DSN(cfg.Path, cfg)); err != nil {
		return err
	}

	err := WithConn(ctx, db, func(conn *sql.Conn) error {
		seeded, err := seedCategories(ctx, conn)
		if err != nil {
			return err
		}
		created, err := seedSettings(ctx, conn)
		if err != nil {
			return err
		}
		logger.Info("Database initialized",
			zap.Int64("categories_seeded", seeded),
			zap.Bool("settings_created", created),
		)
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed defaults: %w", err)
	}
	return nil
}

func seedCategories(ctx context.Context, conn *sql.Conn) (int64, error) {
	builder := squirrel.Insert("categories").
		Options("OR IGNORE").
		Columns("name", "type", "color").
		PlaceholderFormat(squirrel.Question)

	for _, c := range defaultCategories {
		builder = builder.Values(c.Name, string(c.Type), c.Color)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("insert default categories: %w", err)
	}
	return res.RowsAffected()
}

func seedSettings(ctx context.Context, conn *sql.Conn) (bool, error) {
	query, args, err := squirrel.Insert("app_settings").
		Options("OR IGNORE").
		Columns("id", "password_hash").
		Values(models.SettingsID, nil).
		PlaceholderFormat(squirrel.Question).
		ToSql()
	if err != nil {
		return false, err
	}

	res, err := conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("insert app settings: %w", err)
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
