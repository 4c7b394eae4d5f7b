// Package pipeline derives summary figures from fully materialized collections.
// Every function here is pure: same collections in, same figures out.
package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// approxMonth is the month length used for goal projections.
const approxMonth = 30 * 24 * time.Hour

// Summarize computes the top-level summary panel figures.
func Summarize(cashflow []model.CashflowEntry, savings []model.SavingsEntry, targets []model.Target) model.SummaryStats {
	var stats model.SummaryStats

	stats.Income, stats.Expense = CashflowTotals(cashflow)
	stats.NetCashflow = stats.Income.Sub(stats.Expense)
	stats.SavingsTotal = SavingsTotal(savings)
	stats.TargetsTotal = TargetsTotal(targets)
	stats.Portfolio = stats.NetCashflow.Add(stats.SavingsTotal)

	return stats
}

// CashflowTotals returns the income and outflow sums.
func CashflowTotals(entries []model.CashflowEntry) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.Kind {
		case model.KindIncome:
			income = income.Add(e.Amount)
		case model.KindExpense, model.KindPayment:
			expense = expense.Add(e.Amount)
		}
	}
	return income, expense
}

// NetCashflow returns income minus expenses and payments.
func NetCashflow(entries []model.CashflowEntry) decimal.Decimal {
	income, expense := CashflowTotals(entries)
	return income.Sub(expense)
}

// SavingsTotal sums every savings transaction.
func SavingsTotal(entries []model.SavingsEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// SavingsRecordsTotal folds a mixed list of savings transactions and goal
// snapshots. A snapshot contributes its current saved amount.
func SavingsRecordsTotal(records []model.SavingsRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		switch {
		case r.Transaction != nil:
			total = total.Add(r.Transaction.Amount)
		case r.Goal != nil:
			total = total.Add(r.Goal.CurrentSaved)
		}
	}
	return total
}

// AggregateSavingsByType breaks savings down per instrument, largest first.
func AggregateSavingsByType(entries []model.SavingsEntry) []model.SavingsTypeStats {
	typeMap := make(map[model.SavingsType]*model.SavingsTypeStats)

	for _, e := range entries {
		ts, ok := typeMap[e.Type]
		if !ok {
			ts = &model.SavingsTypeStats{Type: e.Type, Amount: decimal.Zero}
			typeMap[e.Type] = ts
		}
		ts.Entries++
		ts.Amount = ts.Amount.Add(e.Amount)
	}

	types := make([]model.SavingsTypeStats, 0, len(typeMap))
	for _, ts := range typeMap {
		types = append(types, *ts)
	}
	sort.Slice(types, func(i, j int) bool {
		if types[i].Amount.Equal(types[j].Amount) {
			return types[i].Type < types[j].Type
		}
		return types[i].Amount.GreaterThan(types[j].Amount)
	})

	return types
}

// TargetsTotal sums every target amount.
func TargetsTotal(targets []model.Target) decimal.Decimal {
	total := decimal.Zero
	for _, t := range targets {
		total = total.Add(t.Amount)
	}
	return total
}

// NearestTarget returns the target with the earliest date.
func NearestTarget(targets []model.Target) (model.Target, bool) {
	sorted := SortTargets(targets)
	if len(sorted) == 0 {
		return model.Target{}, false
	}
	return sorted[0], true
}

// AggregatePortfolio values fund holdings at units × nav.
func AggregatePortfolio(funds []model.PortfolioFund) model.PortfolioStats {
	stats := model.PortfolioStats{
		Funds:        len(funds),
		Value:        decimal.Zero,
		Withdrawals:  decimal.Zero,
		RunwayMonths: decimal.Zero,
	}
	for _, f := range funds {
		stats.Value = stats.Value.Add(f.Value())
		stats.Withdrawals = stats.Withdrawals.Add(f.MonthlyWithdrawal)
	}
	if stats.Withdrawals.IsPositive() {
		stats.RunwayMonths = stats.Value.Div(stats.Withdrawals).Round(1)
	}
	return stats
}

// MonthlyTracker buckets cashflow and savings by month key. Buckets are sorted
// descending by key string, which is chronological because months are
// zero-padded.
func MonthlyTracker(cashflow []model.CashflowEntry, savings []model.SavingsEntry) []model.MonthStats {
	monthMap := make(map[string]*model.MonthStats)

	bucket := func(key string) *model.MonthStats {
		ms, ok := monthMap[key]
		if !ok {
			ms = &model.MonthStats{
				Month:   key,
				Income:  decimal.Zero,
				Expense: decimal.Zero,
				Savings: decimal.Zero,
			}
			monthMap[key] = ms
		}
		return ms
	}

	for _, e := range cashflow {
		ms := bucket(e.Date.MonthKey())
		switch e.Kind {
		case model.KindIncome:
			ms.Income = ms.Income.Add(e.Amount)
		case model.KindExpense, model.KindPayment:
			ms.Expense = ms.Expense.Add(e.Amount)
		}
	}
	for _, e := range savings {
		ms := bucket(e.Date.MonthKey())
		ms.Savings = ms.Savings.Add(e.Amount)
	}

	months := make([]model.MonthStats, 0, len(monthMap))
	for _, ms := range monthMap {
		ms.Portfolio = ms.Income.Sub(ms.Expense).Add(ms.Savings)
		months = append(months, *ms)
	}
	sort.Slice(months, func(i, j int) bool {
		return months[i].Month > months[j].Month
	})

	return months
}

// ProjectGoal forecasts the savings goal as of now. A target date in the past
// gives zero months left, and the whole gap becomes the per-month figure.
func ProjectGoal(goal model.SavingsGoal, now time.Time) model.GoalProjection {
	var p model.GoalProjection

	p.Gap = goal.TargetAmount.Sub(goal.CurrentSaved)
	if p.Gap.IsNegative() {
		p.Gap = decimal.Zero
	}

	remaining := goal.TargetDate.Time().Sub(now)
	if remaining > 0 {
		p.MonthsLeft = int(math.Ceil(float64(remaining) / float64(approxMonth)))
	}

	if p.MonthsLeft == 0 {
		p.RequiredPerMonth = p.Gap
	} else {
		p.RequiredPerMonth = p.Gap.Div(decimal.NewFromInt(int64(p.MonthsLeft))).Round(2)
	}

	p.Projected = goal.CurrentSaved.Add(goal.MonthlyAdd.Mul(decimal.NewFromInt(int64(p.MonthsLeft))))
	p.OnTrack = p.Projected.GreaterThanOrEqual(goal.TargetAmount)

	if goal.TargetAmount.IsPositive() {
		p.ProgressPercent = goal.CurrentSaved.Div(goal.TargetAmount).Mul(decimal.NewFromInt(100)).InexactFloat64()
		if p.ProgressPercent > 100 {
			p.ProgressPercent = 100
		}
	}

	return p
}
