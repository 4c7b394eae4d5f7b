package pipeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

func d(y int, m time.Month, day int) model.Date { return model.NewDate(y, m, day) }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestNetCashflowSeedScenario(t *testing.T) {
	entries := []model.CashflowEntry{
		{ID: "1", Kind: model.KindIncome, Amount: dec("72000")},
		{ID: "2", Kind: model.KindExpense, Amount: dec("18500")},
	}
	assertDec(t, "NetCashflow", NetCashflow(entries), "53500")
}

func TestNetCashflowCountsPayments(t *testing.T) {
	entries := []model.CashflowEntry{
		{Kind: model.KindIncome, Amount: dec("1000")},
		{Kind: model.KindPayment, Amount: dec("250.50")},
		{Kind: model.KindExpense, Amount: dec("100")},
	}
	income, expense := CashflowTotals(entries)
	assertDec(t, "income", income, "1000")
	assertDec(t, "expense", expense, "350.50")
	assertDec(t, "net", NetCashflow(entries), "649.50")
}

func TestEmptyCollectionsGiveZero(t *testing.T) {
	s := Summarize(nil, nil, nil)
	for name, v := range map[string]decimal.Decimal{
		"income": s.Income, "expense": s.Expense, "net": s.NetCashflow,
		"savings": s.SavingsTotal, "targets": s.TargetsTotal, "portfolio": s.Portfolio,
	} {
		if !v.IsZero() {
			t.Errorf("%s = %s, want 0", name, v)
		}
	}
	if len(MonthlyTracker(nil, nil)) != 0 {
		t.Error("expected no tracker rows for empty input")
	}
	p := AggregatePortfolio(nil)
	if !p.Value.IsZero() || !p.RunwayMonths.IsZero() {
		t.Errorf("empty portfolio = %+v", p)
	}
}

func TestSummarizePortfolioIsNetPlusSavings(t *testing.T) {
	cash := []model.CashflowEntry{{Kind: model.KindIncome, Amount: dec("100")}, {Kind: model.KindExpense, Amount: dec("40")}}
	sav := []model.SavingsEntry{{Amount: dec("25")}, {Amount: dec("5")}}
	tg := []model.Target{{Amount: dec("1000")}}
	s := Summarize(cash, sav, tg)
	assertDec(t, "Portfolio", s.Portfolio, "90")
	assertDec(t, "TargetsTotal", s.TargetsTotal, "1000")
}

func TestMonthlyTracker(t *testing.T) {
	cash := []model.CashflowEntry{
		{Kind: model.KindIncome, Amount: dec("1000"), Date: d(2026, time.September, 1)},
		{Kind: model.KindExpense, Amount: dec("300"), Date: d(2026, time.September, 15)},
		{Kind: model.KindIncome, Amount: dec("500"), Date: d(2026, time.October, 2)},
	}
	sav := []model.SavingsEntry{
		{Amount: dec("200"), Date: d(2026, time.September, 20)},
		{Amount: dec("50"), Date: d(2025, time.December, 31)},
	}

	rows := MonthlyTracker(cash, sav)
	if len(rows) != 3 {
		t.Fatalf("buckets = %d, want 3", len(rows))
	}
	wantOrder := []string{"2026-10", "2026-09", "2025-12"}
	for i, w := range wantOrder {
		if rows[i].Month != w {
			t.Errorf("rows[%d].Month = %s, want %s", i, rows[i].Month, w)
		}
	}
	sep := rows[1]
	assertDec(t, "sep income", sep.Income, "1000")
	assertDec(t, "sep expense", sep.Expense, "300")
	assertDec(t, "sep savings", sep.Savings, "200")
	assertDec(t, "sep portfolio", sep.Portfolio, "900")
	assertDec(t, "dec portfolio", rows[2].Portfolio, "50")

	for _, r := range rows {
		want := r.Income.Sub(r.Expense).Add(r.Savings)
		if !r.Portfolio.Equal(want) {
			t.Errorf("%s portfolio = %s, want %s", r.Month, r.Portfolio, want)
		}
	}
}

func TestProjectGoalPastDate(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	goal := model.SavingsGoal{
		TargetAmount: dec("500000"),
		TargetDate:   d(2026, time.January, 1),
		CurrentSaved: dec("120000"),
		MonthlyAdd:   dec("15000"),
	}
	p := ProjectGoal(goal, now)
	if p.MonthsLeft != 0 {
		t.Fatalf("MonthsLeft = %d, want 0", p.MonthsLeft)
	}
	assertDec(t, "Gap", p.Gap, "380000")
	assertDec(t, "RequiredPerMonth", p.RequiredPerMonth, "380000")
	assertDec(t, "Projected", p.Projected, "120000")
	if p.OnTrack {
		t.Error("OnTrack = true, want false")
	}
}

func TestProjectGoalFuture(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	goal := model.SavingsGoal{
		TargetAmount: dec("100000"),
		TargetDate:   d(2026, time.March, 2), // 60 days
		CurrentSaved: dec("40000"),
		MonthlyAdd:   dec("30000"),
	}
	p := ProjectGoal(goal, now)
	if p.MonthsLeft != 2 {
		t.Fatalf("MonthsLeft = %d, want 2", p.MonthsLeft)
	}
	assertDec(t, "RequiredPerMonth", p.RequiredPerMonth, "30000")
	assertDec(t, "Projected", p.Projected, "100000")
	if !p.OnTrack {
		t.Error("OnTrack = false, want true")
	}
	if p.ProgressPercent != 40 {
		t.Errorf("ProgressPercent = %.1f, want 40", p.ProgressPercent)
	}

	// One day past a whole month rounds up.
	goal.TargetDate = d(2026, time.February, 1)
	if got := ProjectGoal(goal, now).MonthsLeft; got != 2 {
		t.Errorf("31 days MonthsLeft = %d, want 2", got)
	}
}

func TestProjectGoalAlreadyReached(t *testing.T) {
	goal := model.SavingsGoal{TargetAmount: dec("100"), CurrentSaved: dec("150"), TargetDate: d(2020, time.January, 1)}
	p := ProjectGoal(goal, time.Now())
	if !p.Gap.IsZero() || !p.RequiredPerMonth.IsZero() {
		t.Errorf("gap=%s required=%s, want 0", p.Gap, p.RequiredPerMonth)
	}
	if p.ProgressPercent != 100 {
		t.Errorf("ProgressPercent = %.1f, want capped 100", p.ProgressPercent)
	}
}

func TestAggregatePortfolio(t *testing.T) {
	funds := []model.PortfolioFund{
		{Units: dec("10"), NAV: dec("12.5"), MonthlyWithdrawal: dec("50")},
		{Units: dec("4"), NAV: dec("100"), MonthlyWithdrawal: dec("0")},
	}
	p := AggregatePortfolio(funds)
	assertDec(t, "Value", p.Value, "525")
	assertDec(t, "Withdrawals", p.Withdrawals, "50")
	assertDec(t, "RunwayMonths", p.RunwayMonths, "10.5")
}

func TestSavingsRecordsTotal(t *testing.T) {
	records := []model.SavingsRecord{
		{Transaction: &model.SavingsEntry{Amount: dec("10")}},
		{Goal: &model.SavingsGoal{CurrentSaved: dec("90")}},
		{},
	}
	assertDec(t, "SavingsRecordsTotal", SavingsRecordsTotal(records), "100")
}

func TestAggregateSavingsByType(t *testing.T) {
	entries := []model.SavingsEntry{
		{Type: model.SavingsFixedDeposit, Amount: dec("50000")},
		{Type: model.SavingsStocks, Amount: dec("15000")},
		{Type: model.SavingsFixedDeposit, Amount: dec("1000")},
	}
	types := AggregateSavingsByType(entries)
	if len(types) != 2 {
		t.Fatalf("types = %d, want 2", len(types))
	}
	if types[0].Type != model.SavingsFixedDeposit || types[0].Entries != 2 {
		t.Errorf("types[0] = %+v", types[0])
	}
	assertDec(t, "fd amount", types[0].Amount, "51000")
}

func TestNearestTarget(t *testing.T) {
	if _, ok := NearestTarget(nil); ok {
		t.Error("NearestTarget(nil) ok = true")
	}
	targets := []model.Target{
		{Name: "late", Date: d(2027, time.June, 1)},
		{Name: "soon", Date: d(2026, time.December, 1)},
	}
	got, ok := NearestTarget(targets)
	if !ok || got.Name != "soon" {
		t.Errorf("NearestTarget = %+v", got)
	}
	if targets[0].Name != "late" {
		t.Error("NearestTarget reordered its input")
	}
}
