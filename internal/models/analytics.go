package models

// Period is a resolved date range. Nil bounds mean no filter on that side.
type Period struct {
	StartDate *Date  `json:"start_date"`
	EndDate   *Date  `json:"end_date"`
	Type      string `json:"type"`
}

type CategoryTotal struct {
	CategoryID    int64        `json:"category_id"`
	CategoryName  string       `json:"category_name"`
	CategoryType  CategoryType `json:"category_type"`
	CategoryColor string       `json:"category_color"`
	Total         Money        `json:"total"`
}

type DailyTotal struct {
	Date    Date  `json:"date"`
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
}

type Analytics struct {
	TotalIncome        Money           `json:"total_income"`
	TotalExpense       Money           `json:"total_expense"`
	Balance            Money           `json:"balance"`
	SavingsIncome      Money           `json:"savings_income"`
	SavingsExpense     Money           `json:"savings_expense"`
	SavingsBalance     Money           `json:"savings_balance"`
	ByCategory         []CategoryTotal `json:"by_category"`
	DailyTotals        []DailyTotal    `json:"daily_totals"`
	SavingsDailyTotals []DailyTotal    `json:"savings_daily_totals"`
	Period             Period          `json:"period"`
}
