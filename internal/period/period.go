// Package period maps named period tokens to concrete inclusive date ranges.
package period

import (
	"time"

	"finance-tracker/internal/models"
)

const (
	Today   = "today"
	Week    = "week"
	Month   = "month"
	Quarter = "quarter"
	Year    = "year"
	All     = "all"
	Custom  = "custom"
)

// Option is a supported period token with its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var options = []Option{
	{Value: Today, Label: "Сегодня"},
	{Value: Week, Label: "Текущая неделя"},
	{Value: Month, Label: "Текущий месяц"},
	{Value: Quarter, Label: "Текущий квартал"},
	{Value: Year, Label: "Текущий год"},
	{Value: All, Label: "Все время"},
	{Value: Custom, Label: "Произвольный период"},
}

// Options returns the supported period tokens in display order.
func Options() []Option {
	out := make([]Option, len(options))
	copy(out, options)
	return out
}

// Resolve returns the range of token relative to now. Unknown tokens and
// custom fall back to the current month.
func Resolve(token string, now time.Time) models.Period {
	start, end := bounds(token, models.DateOf(now))
	return models.Period{StartDate: start, EndDate: end, Type: token}
}

// ResolveCustom uses start and end verbatim when token is custom and both are
// given; otherwise it behaves like Resolve.
func ResolveCustom(token string, start, end *models.Date, now time.Time) models.Period {
	if token == Custom && start != nil && end != nil {
		return models.Period{StartDate: start, EndDate: end, Type: token}
	}
	return Resolve(token, now)
}

func bounds(token string, today models.Date) (*models.Date, *models.Date) {
	switch token {
	case Today:
		return ptr(today), ptr(today)
	case Week:
		// Weeks start on Monday.
		offset := (int(today.Weekday()) + 6) % 7
		start := today.AddDays(-offset)
		return ptr(start), ptr(start.AddDays(6))
	case Quarter:
		first := time.Month((int(today.Month())-1)/3*3 + 1)
		start := models.NewDate(today.Year(), first, 1)
		return ptr(start), ptr(lastDayOfMonth(today.Year(), first+2))
	case Year:
		return ptr(models.NewDate(today.Year(), time.January, 1)), ptr(models.NewDate(today.Year(), time.December, 31))
	case All:
		return nil, nil
	default:
		start := models.NewDate(today.Year(), today.Month(), 1)
		return ptr(start), ptr(lastDayOfMonth(today.Year(), today.Month()))
	}
}

func lastDayOfMonth(year int, month time.Month) models.Date {
	// Day 0 of the next month normalizes to the last day of month.
	return models.Date{Time: time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)}
}

func ptr(d models.Date) *models.Date {
	return &d
}
