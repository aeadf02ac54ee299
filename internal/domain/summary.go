package domain

import "github.com/shopspring/decimal"

// CategoryTotal is one slice of a home's monthly expense breakdown.
// Percentage is rounded to two decimals; the totals are raw sums.
type CategoryTotal struct {
	CategoryID int32           `json:"category_id"`
	NameTr     string          `json:"name_tr"`
	NameEn     string          `json:"name_en"`
	Icon       string          `json:"icon"`
	Color      string          `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// HomeSummary is the home-level monthly report. Transfers never appear in any
// of its figures; shared and personal expenses are combined undivided.
type HomeSummary struct {
	HomeID       int32           `json:"home_id"`
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Balance      decimal.Decimal `json:"balance"`
	ByCategory   []CategoryTotal `json:"by_category"`
}

// UserSummary is one member's monthly report. SharedExpenseShare is the
// home-wide shared total divided equally by member count, independent of who
// created the shared entries. CreditCardDebt follows card ownership, not
// entry authorship. All money fields are rounded to two decimals at build
// time, after every division.
type UserSummary struct {
	UserID             int32           `json:"user_id"`
	TotalIncome        decimal.Decimal `json:"total_income"`
	TotalExpense       decimal.Decimal `json:"total_expense"`
	PersonalExpense    decimal.Decimal `json:"personal_expense"`
	SharedExpenseShare decimal.Decimal `json:"shared_expense_share"`
	CreditCardDebt     decimal.Decimal `json:"credit_card_debt"`
	Balance            decimal.Decimal `json:"balance"`
}

// MemberSummary is a UserSummary in the all-members report, annotated with the
// member and with TotalSharedExpense: the sum of shared expenses this member
// created. That figure is attribution for display and is deliberately a
// different quantity from the home-wide shared total behind
// SharedExpenseShare; the two are never reconciled.
type MemberSummary struct {
	Member             User            `json:"member"`
	Summary            UserSummary     `json:"summary"`
	TotalSharedExpense decimal.Decimal `json:"total_shared_expense"`
}
