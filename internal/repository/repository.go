package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var sq = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func savingsTypes() []string {
	types := make([]string, 0, len(models.SavingsCategoryTypes))
	for _, t := range models.SavingsCategoryTypes {
		types = append(types, string(t))
	}
	return types
}

// dateRange returns inclusive bounds on t.date for the non-nil ends.
func dateRange(start, end *models.Date) squirrel.And {
	conds := squirrel.And{}
	if start != nil {
		conds = append(conds, squirrel.GtOrEq{"t.date": start.String()})
	}
	if end != nil {
		conds = append(conds, squirrel.LtOrEq{"t.date": end.String()})
	}
	return conds
}

func excludeSavings(conds squirrel.And, includeSavings bool) squirrel.And {
	if includeSavings {
		return conds
	}
	return append(conds, squirrel.NotEq{"c.type": savingsTypes()})
}

// nullableString turns a nil pointer into SQL NULL.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func isUniqueViolation(err error) bool {
	var se *sqlitedriver.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// dataAccess logs a store failure and converts it to the tagged error that
// leaves the repository layer.
func dataAccess(logger *zap.Logger, op string, err error) error {
	var tagged *apperr.Error
	if errors.As(err, &tagged) {
		return err
	}
	logger.Error("Database operation failed", zap.String("operation", op), zap.Error(err))
	return apperr.DataAccess(op, err)
}

// timestamp scans SQLite timestamps whether the driver hands back a parsed
// time or the raw CURRENT_TIMESTAMP text.
type timestamp struct {
	dst *time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02",
}

func (ts timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*ts.dst = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		*ts.dst = time.Time{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}

func (ts timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			*ts.dst = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
