// Package seed provides the default collections written on first use.
package seed

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

func todayOffset(now time.Time, days int) model.Date {
	return model.DateOf(now).AddDays(days)
}

// Cashflow returns the default cashflow: one salary credit and one rent debit.
func Cashflow(now time.Time) []model.CashflowEntry {
	return []model.CashflowEntry{
		{ID: uuid.NewString(), Kind: model.KindIncome, Amount: decimal.NewFromInt(72000), Date: todayOffset(now, -2), Notes: "Monthly salary"},
		{ID: uuid.NewString(), Kind: model.KindExpense, Amount: decimal.NewFromInt(18500), Date: todayOffset(now, -1), Notes: "Home rent"},
	}
}

// Savings returns the default savings transactions.
func Savings(now time.Time) []model.SavingsEntry {
	return []model.SavingsEntry{
		{ID: uuid.NewString(), Type: model.SavingsFixedDeposit, Amount: decimal.NewFromInt(50000), Date: todayOffset(now, -10), Notes: "Axis Bank FD"},
		{ID: uuid.NewString(), Type: model.SavingsMutualFund, Amount: decimal.NewFromInt(12000), Date: todayOffset(now, -5), Notes: "Nifty Index Fund"},
		{ID: uuid.NewString(), Type: model.SavingsStocks, Amount: decimal.NewFromInt(15000), Date: todayOffset(now, -3), Notes: "Tata Motors"},
	}
}

// Targets returns the default savings targets.
func Targets(now time.Time) []model.Target {
	return []model.Target{
		{ID: uuid.NewString(), Name: "Emergency Fund", Amount: decimal.NewFromInt(300000), Date: todayOffset(now, 240), Notes: "6 months coverage"},
		{ID: uuid.NewString(), Name: "Dream Vacation", Amount: decimal.NewFromInt(150000), Date: todayOffset(now, 180), Notes: "Family trip"},
	}
}

// Goal returns the default savings goal snapshot.
func Goal(now time.Time) model.SavingsGoal {
	return model.SavingsGoal{
		TargetAmount: decimal.NewFromInt(500000),
		TargetDate:   todayOffset(now, 365),
		CurrentSaved: decimal.NewFromInt(120000),
		MonthlyAdd:   decimal.NewFromInt(15000),
	}
}

// Portfolio returns the default fund holdings.
func Portfolio(_ time.Time) []model.PortfolioFund {
	return []model.PortfolioFund{
		{
			ID:                uuid.NewString(),
			Name:              "Nifty 50 Index Fund",
			Units:             decimal.RequireFromString("1250.500"),
			NAV:               decimal.RequireFromString("212.34"),
			MonthlyWithdrawal: decimal.NewFromInt(5000),
		},
		{
			ID:                uuid.NewString(),
			Name:              "Short Duration Debt Fund",
			Units:             decimal.RequireFromString("830.210"),
			NAV:               decimal.RequireFromString("41.87"),
			MonthlyWithdrawal: decimal.Zero,
		},
	}
}

// Tasks returns the default reminders.
func Tasks(now time.Time) []model.Task {
	return []model.Task{
		{ID: uuid.NewString(), Title: "Pay credit card bill", Notes: "Statement closes on the 20th", DueAt: now.Add(2 * time.Hour).Truncate(time.Minute)},
		{ID: uuid.NewString(), Title: "Renew FD", Notes: "Axis Bank", DueAt: now.AddDate(0, 0, 1).Truncate(time.Minute)},
	}
}
