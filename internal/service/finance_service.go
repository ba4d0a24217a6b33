package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"finance-tracker/internal/apperr"
	"finance-tracker/internal/models"
	"finance-tracker/internal/period"
	"finance-tracker/internal/repository"

	"go.uber.org/zap"
)

// PeriodQuery selects a date range by token, with explicit bounds used only
// for the custom token.
type PeriodQuery struct {
	Period    string
	StartDate *models.Date
	EndDate   *models.Date
}

type FinanceService struct {
	categories   *repository.CategoryRepository
	transactions *repository.TransactionRepository
	analytics    *repository.AnalyticsRepository
	logger       *zap.Logger
	now          func() time.Time
}

func NewFinanceService(
	categories *repository.CategoryRepository,
	transactions *repository.TransactionRepository,
	analytics *repository.AnalyticsRepository,
	logger *zap.Logger,
) *FinanceService {
	return &FinanceService{
		categories:   categories,
		transactions: transactions,
		analytics:    analytics,
		logger:       logger,
		now:          time.Now,
	}
}

// WithClock replaces the clock used to resolve relative periods.
func (s *FinanceService) WithClock(now func() time.Time) *FinanceService {
	s.now = now
	return s
}

func (s *FinanceService) ListCategories(ctx context.Context, categoryType string) ([]models.Category, error) {
	if categoryType == "" {
		return s.categories.List(ctx, nil)
	}
	t := models.CategoryType(categoryType)
	if !t.Valid() {
		return nil, apperr.Validation("invalid category type: " + categoryType)
	}
	return s.categories.List(ctx, &t)
}

func (s *FinanceService) CreateCategory(ctx context.Context, name, categoryType, color string) (int64, error) {
	name = cleanText(name)
	if name == "" {
		return 0, apperr.Validation("category name is required")
	}
	t := models.CategoryType(categoryType)
	if !t.Valid() {
		return 0, apperr.Validation("invalid category type: " + categoryType)
	}
	if color == "" {
		color = models.DefaultCategoryColor
	}

	id, err := s.categories.Create(ctx, name, t, color)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Category created", zap.Int64("id", id), zap.String("name", name), zap.String("type", string(t)))
	return id, nil
}

func (s *FinanceService) DeactivateCategory(ctx context.Context, id int64) error {
	if err := s.categories.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Category deactivated", zap.Int64("id", id))
	return nil
}

// MaxDescriptionLength caps descriptions, in characters.
const MaxDescriptionLength = 500

func validateAmount(amount models.Money) error {
	if !amount.IsPositive() {
		return apperr.Validation("amount must be greater than zero")
	}
	if amount.GreaterThan(models.MaxMoney.Decimal) {
		return apperr.Validation("amount must not exceed " + models.MaxMoney.String())
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > MaxDescriptionLength {
		return apperr.Validation(fmt.Sprintf("description must be at most %d characters", MaxDescriptionLength))
	}
	return nil
}

func (s *FinanceService) CreateTransaction(ctx context.Context, tx models.NewTransaction) (int64, error) {
	if err := validateAmount(tx.Amount); err != nil {
		return 0, err
	}
	if tx.Date.IsZero() {
		return 0, apperr.Validation("date is required")
	}
	if tx.CategoryID <= 0 {
		return 0, apperr.Validation("category_id must be greater than 0")
	}
	tx.Description = cleanDescription(tx.Description)
	if err := validateDescription(tx.Description); err != nil {
		return 0, err
	}

	id, err := s.transactions.Create(ctx, tx)
	if err != nil {
		return 0, err
	}

	s.logger.Info("Transaction created",
		zap.Int64("id", id),
		zap.Int64("category_id", tx.CategoryID),
		zap.String("date", tx.Date.String()),
	)
	return id, nil
}

func (s *FinanceService) GetTransaction(ctx context.Context, id int64) (*models.TransactionWithCategory, error) {
	return s.transactions.Get(ctx, id)
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, id int64, patch models.TransactionPatch) (int64, error) {
	if patch.IsEmpty() {
		return 0, apperr.Validation("no fields to update")
	}
	if patch.Amount.Set {
		if patch.Amount.Null {
			return 0, apperr.Validation("amount cannot be null")
		}
		if err := validateAmount(patch.Amount.Value); err != nil {
			return 0, err
		}
	}
	if patch.CategoryID.Set {
		if patch.CategoryID.Null {
			return 0, apperr.Validation("category_id cannot be null")
		}
		if patch.CategoryID.Value <= 0 {
			return 0, apperr.Validation("category_id must be greater than 0")
		}
	}
	if patch.Date.Set && (patch.Date.Null || patch.Date.Value.IsZero()) {
		return 0, apperr.Validation("date cannot be null")
	}
	if patch.Description.Set {
		patch.Description.Value = cleanDescription(patch.Description.Value)
		if err := validateDescription(patch.Description.Value); err != nil {
			return 0, err
		}
	}

	if _, err := s.transactions.Update(ctx, id, patch); err != nil {
		return 0, err
	}

	s.logger.Info("Transaction updated", zap.Int64("id", id))
	return id, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id int64) (int64, error) {
	if _, err := s.transactions.Delete(ctx, id); err != nil {
		return 0, err
	}
	s.logger.Info("Transaction deleted", zap.Int64("id", id))
	return id, nil
}

func (s *FinanceService) ListTransactions(ctx context.Context, q PeriodQuery, includeSavings bool) ([]models.TransactionWithCategory, error) {
	p := s.resolve(q)
	return s.transactions.List(ctx, models.TransactionFilter{
		Start:          p.StartDate,
		End:            p.EndDate,
		IncludeSavings: includeSavings,
	})
}

func (s *FinanceService) Analytics(ctx context.Context, q PeriodQuery, includeSavings bool) (*models.Analytics, error) {
	return s.analytics.Compute(ctx, s.resolve(q), includeSavings)
}

func (s *FinanceService) resolve(q PeriodQuery) models.Period {
	token := q.Period
	if token == "" {
		token = period.Month
	}
	return period.ResolveCustom(token, q.StartDate, q.EndDate, s.now())
}
