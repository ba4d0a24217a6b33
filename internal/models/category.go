package models

import "time"

type CategoryType string

const (
	CategoryIncome         CategoryType = "income"
	CategoryExpense        CategoryType = "expense"
	CategorySavingsIncome  CategoryType = "savings_income"
	CategorySavingsExpense CategoryType = "savings_expense"
)

const DefaultCategoryColor = "#007bff"

var SavingsCategoryTypes = []CategoryType{CategorySavingsIncome, CategorySavingsExpense}

func (t CategoryType) Valid() bool {
	switch t {
	case CategoryIncome, CategoryExpense, CategorySavingsIncome, CategorySavingsExpense:
		return true
	}
	return false
}

func (t CategoryType) IsSavings() bool {
	return t == CategorySavingsIncome || t == CategorySavingsExpense
}

type Category struct {
	ID        int64        `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Type      CategoryType `json:"type" db:"type"`
	Color     string       `json:"color" db:"color"`
	IsActive  bool         `json:"is_active" db:"is_active"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}
