package repository

import (
	"context"
	"database/sql"

	"finance-tracker/internal/models"
	"finance-tracker/pkg/sqlite"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

type AnalyticsRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewAnalyticsRepository(db *sql.DB, logger *zap.Logger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: logger,
	}
}

// sumOf totals amount_cents of rows whose category has the given type.
func sumOf(categoryType models.CategoryType, alias string) squirrel.Sqlizer {
	return squirrel.Alias(
		squirrel.Expr("COALESCE(SUM(CASE WHEN c.type = ? THEN t.amount_cents ELSE 0 END), 0)", string(categoryType)),
		alias,
	)
}

func fromJoined(columns ...string) squirrel.SelectBuilder {
	return sq.Select(columns...).
		From("transactions t").
		Join("categories c ON t.category_id = c.id")
}

// Compute builds the analytics report for the period. Ordinary totals,
// by-category and daily series honour includeSavings; savings totals and
// the savings daily series are always computed over the same range.
func (r *AnalyticsRepository) Compute(ctx context.Context, period models.Period, includeSavings bool) (*models.Analytics, error) {
	inRange := dateRange(period.StartDate, period.EndDate)
	filtered := excludeSavings(inRange, includeSavings)
	savingsOnly := append(squirrel.And{squirrel.Eq{"c.type": savingsTypes()}}, inRange...)

	report := &models.Analytics{
		ByCategory:         make([]models.CategoryTotal, 0),
		DailyTotals:        make([]models.DailyTotal, 0),
		SavingsDailyTotals: make([]models.DailyTotal, 0),
		Period:             period,
	}

	err := sqlite.WithConn(ctx, r.db, func(conn *sql.Conn) error {
		income, expense, err := r.totals(ctx, conn, models.CategoryIncome, models.CategoryExpense, filtered)
		if err != nil {
			return err
		}
		report.TotalIncome = income
		report.TotalExpense = expense
		report.Balance = income.Sub(expense)

		savingsIn, savingsOut, err := r.totals(ctx, conn, models.CategorySavingsIncome, models.CategorySavingsExpense, savingsOnly)
		if err != nil {
			return err
		}
		report.SavingsIncome = savingsIn
		report.SavingsExpense = savingsOut
		report.SavingsBalance = savingsIn.Sub(savingsOut)

		if report.ByCategory, err = r.byCategory(ctx, conn, filtered); err != nil {
			return err
		}
		if report.DailyTotals, err = r.daily(ctx, conn, models.CategoryIncome, models.CategoryExpense, filtered); err != nil {
			return err
		}
		report.SavingsDailyTotals, err = r.daily(ctx, conn, models.CategorySavingsIncome, models.CategorySavingsExpense, savingsOnly)
		return err
	})
	if err != nil {
		return nil, dataAccess(r.logger, "compute analytics", err)
	}

	return report, nil
}

func where(query squirrel.SelectBuilder, conds squirrel.And) squirrel.SelectBuilder {
	if len(conds) == 0 {
		return query
	}
	return query.Where(conds)
}

func (r *AnalyticsRepository) totals(ctx context.Context, conn *sql.Conn, in, out models.CategoryType, conds squirrel.And) (models.Money, models.Money, error) {
	query := fromJoined().
		Column(sumOf(in, "total_in")).
		Column(sumOf(out, "total_out"))

	sqlStr, args, err := where(query, conds).ToSql()
	if err != nil {
		return models.Money{}, models.Money{}, err
	}

	var inCents, outCents int64
	if err := conn.QueryRowContext(ctx, sqlStr, args...).Scan(&inCents, &outCents); err != nil {
		return models.Money{}, models.Money{}, err
	}
	return models.NewMoneyFromCents(inCents), models.NewMoneyFromCents(outCents), nil
}

func (r *AnalyticsRepository) byCategory(ctx context.Context, conn *sql.Conn, conds squirrel.And) ([]models.CategoryTotal, error) {
	query := fromJoined("c.id", "c.name", "c.type", "c.color", "SUM(t.amount_cents) AS total").
		GroupBy("c.id", "c.name", "c.type", "c.color").
		OrderBy("c.type", "total DESC")

	sqlStr, args, err := where(query, conds).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]models.CategoryTotal, 0)
	for rows.Next() {
		var (
			ct    models.CategoryTotal
			cents int64
		)
		if err := rows.Scan(&ct.CategoryID, &ct.CategoryName, &ct.CategoryType, &ct.CategoryColor, &cents); err != nil {
			return nil, err
		}
		ct.Total = models.NewMoneyFromCents(cents)
		totals = append(totals, ct)
	}
	return totals, rows.Err()
}

func (r *AnalyticsRepository) daily(ctx context.Context, conn *sql.Conn, in, out models.CategoryType, conds squirrel.And) ([]models.DailyTotal, error) {
	query := fromJoined("t.date").
		Column(sumOf(in, "income")).
		Column(sumOf(out, "expense")).
		GroupBy("t.date").
		OrderBy("t.date")

	sqlStr, args, err := where(query, conds).ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	days := make([]models.DailyTotal, 0)
	for rows.Next() {
		var (
			d                 models.DailyTotal
			inCents, outCents int64
		)
		if err := rows.Scan(&d.Date, &inCents, &outCents); err != nil {
			return nil, err
		}
		d.Income = models.NewMoneyFromCents(inCents)
		d.Expense = models.NewMoneyFromCents(outCents)
		days = append(days, d)
	}
	return days, rows.Err()
}
