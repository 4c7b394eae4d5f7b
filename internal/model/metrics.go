package model

import "github.com/shopspring/decimal"

// SummaryStats holds the top-level figures across all finance collections.
type SummaryStats struct {
	Income       decimal.Decimal `json:"income"`
	Expense      decimal.Decimal `json:"expense"`
	NetCashflow  decimal.Decimal `json:"net_cashflow"`
	SavingsTotal decimal.Decimal `json:"savings_total"`
	TargetsTotal decimal.Decimal `json:"targets_total"`
	Portfolio    decimal.Decimal `json:"portfolio"` // net cashflow + savings
}

// MonthStats holds the tracker figures for one calendar month.
type MonthStats struct {
	Month     string          `json:"month"` // "YYYY-MM"
	Income    decimal.Decimal `json:"income"`
	Expense   decimal.Decimal `json:"expense"`
	Savings   decimal.Decimal `json:"savings"`
	Portfolio decimal.Decimal `json:"portfolio"` // income - expense + savings
}

// SavingsTypeStats holds the savings total for one instrument.
type SavingsTypeStats struct {
	Type    SavingsType     `json:"type"`
	Entries int             `json:"entries"`
	Amount  decimal.Decimal `json:"amount"`
}

// PortfolioStats holds fund holding totals.
type PortfolioStats struct {
	Funds        int             `json:"funds"`
	Value        decimal.Decimal `json:"value"`
	Withdrawals  decimal.Decimal `json:"withdrawals"`   // per month
	RunwayMonths decimal.Decimal `json:"runway_months"` // zero when there are no withdrawals
}

// TaskCounts buckets tasks by status.
type TaskCounts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	DueSoon   int `json:"due_soon"`
	Completed int `json:"completed"`
}
