package models

import "time"

type Transaction struct {
	ID          int64     `json:"id" db:"id"`
	Amount      Money     `json:"amount" db:"amount_cents"`
	CategoryID  int64     `json:"category_id" db:"category_id"`
	Date        Date      `json:"date" db:"date"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TransactionWithCategory is a transaction joined with its category.
type TransactionWithCategory struct {
	Transaction
	CategoryName  string       `json:"category_name" db:"category_name"`
	CategoryType  CategoryType `json:"category_type" db:"category_type"`
	CategoryColor string       `json:"category_color" db:"category_color"`
}

type NewTransaction struct {
	Amount      Money
	CategoryID  int64
	Date        Date
	Description *string
}

// TransactionPatch holds the fields of a partial update. Only fields with
// Set == true are written; Description may be explicitly cleared with null.
type TransactionPatch struct {
	Amount      Optional[Money]
	CategoryID  Optional[int64]
	Date        Optional[Date]
	Description Optional[*string]
}

func (p TransactionPatch) IsEmpty() bool {
	return !p.Amount.Set && !p.CategoryID.Set && !p.Date.Set && !p.Description.Set
}

// TransactionFilter narrows a transaction listing. Nil bounds are open.
type TransactionFilter struct {
	Start          *Date
	End            *Date
	IncludeSavings bool
}
