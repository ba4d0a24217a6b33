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

type TransactionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewTransactionRepository(db *sql.DB, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func selectTransactions() squirrel.SelectBuilder {
	return sq.Select(
		"t.id", "t.amount_cents", "t.category_id", "t.date", "t.description", "t.created_at",
		"c.name", "c.type", "c.color",
	).
		From("transactions t").
		Join("categories c ON t.category_id = c.id")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.TransactionWithCategory, error) {
	var (
		t           models.TransactionWithCategory
		cents       int64
		description sql.NullString
	)
	err := row.Scan(
		&t.ID, &cents, &t.CategoryID, &t.Date, &description, timestamp{&t.CreatedAt},
		&t.CategoryName, &t.CategoryType, &t.CategoryColor,
	)
	if err != nil {
		return t, err
	}
	t.Amount = models.NewMoneyFromCents(cents)
	if description.Valid {
		t.Description = &description.String
	}
	return t, nil
}

// Create inserts a transaction after checking that its category exists.
func (r *TransactionRepository) Create(ctx context.Context, tx models.NewTransaction) (int64, error) {
	sqlStr, args, err := sq.Insert("transactions").
		Columns("amount_cents", "category_id", "date", "description").
		Values(tx.Amount.Cents(), tx.CategoryID, tx.Date.String(), nullableString(tx.Description)).
		ToSql()
	if err != nil {
		return 0, dataAccess(r.logger, "create transaction", err)
	}

	var id int64
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		exists, err := categoryExists(ctx, conn, tx.CategoryID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("category not found")
		}

		res, err := conn.ExecContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, dataAccess(r.logger, "create transaction", err)
	}

	return id, nil
}

func (r *TransactionRepository) Get(ctx context.Context, id int64) (*models.TransactionWithCategory, error) {
	sqlStr, args, err := selectTransactions().
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, dataAccess(r.logger, "get transaction", err)
	}

	var t models.TransactionWithCategory
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		var err error
		t, err = scanTransaction(conn.QueryRowContext(ctx, sqlStr, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NotFound("transaction not found")
		}
		return err
	})
	if err != nil {
		return nil, dataAccess(r.logger, "get transaction", err)
	}

	return &t, nil
}

// Update writes only the fields present in patch. The patch must not be empty
// and must not null out required fields; the service checks both.
func (r *TransactionRepository) Update(ctx context.Context, id int64, patch models.TransactionPatch) (int64, error) {
	query := sq.Update("transactions").Where(squirrel.Eq{"id": id})
	if patch.Amount.Set {
		query = query.Set("amount_cents", patch.Amount.Value.Cents())
	}
	if patch.CategoryID.Set {
		query = query.Set("category_id", patch.CategoryID.Value)
	}
	if patch.Date.Set {
		query = query.Set("date", patch.Date.Value.String())
	}
	if patch.Description.Set {
		query = query.Set("description", nullableString(patch.Description.Value))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, dataAccess(r.logger, "update transaction", err)
	}

	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		exists, err := rowExists(ctx, conn, "transactions", id)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("transaction not found")
		}

		if patch.CategoryID.Set {
			exists, err := categoryExists(ctx, conn, patch.CategoryID.Value)
			if err != nil {
				return err
			}
			if !exists {
				return apperr.NotFound("category not found")
			}
		}

		_, err = conn.ExecContext(ctx, sqlStr, args...)
		return err
	})
	if err != nil {
		return 0, dataAccess(r.logger, "update transaction", err)
	}

	return id, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) (int64, error) {
	sqlStr, args, err := sq.Delete("transactions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return 0, dataAccess(r.logger, "delete transaction", err)
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
			return apperr.NotFound("transaction not found")
		}
		return nil
	})
	if err != nil {
		return 0, dataAccess(r.logger, "delete transaction", err)
	}

	return id, nil
}

// List returns transactions joined with their category, newest first. Bounds
// are inclusive and nil bounds are open.
func (r *TransactionRepository) List(ctx context.Context, filter models.TransactionFilter) ([]models.TransactionWithCategory, error) {
	conds := excludeSavings(dateRange(filter.Start, filter.End), filter.IncludeSavings)
	query := selectTransactions().OrderBy("t.date DESC", "t.created_at DESC", "t.id DESC")
	if len(conds) > 0 {
		query = query.Where(conds)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, dataAccess(r.logger, "list transactions", err)
	}

	transactions := make([]models.TransactionWithCategory, 0)
	err = sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		rows, err := conn.QueryContext(ctx, sqlStr, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTransaction(rows)
			if err != nil {
				return err
			}
			transactions = append(transactions, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, dataAccess(r.logger, "list transactions", err)
	}

	return transactions, nil
}
