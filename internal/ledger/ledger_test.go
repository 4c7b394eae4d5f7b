package ledger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/view"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*Ledger, *store.DB) {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return New(db, func() time.Time { return fixedNow }), db
}

func TestSeededNetCashflow(t *testing.T) {
	l, _ := newTestLedger(t)
	vm, err := l.Render(view.Options{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !vm.Summary.NetCashflow.Equal(decimal.NewFromInt(53500)) {
		t.Errorf("net cashflow = %s, want 53500", vm.Summary.NetCashflow)
	}
	if len(vm.Cashflow.Rows) != 2 || len(vm.Savings.Rows) != 3 || len(vm.Targets.Rows) != 2 {
		t.Errorf("seed rows: cashflow=%d savings=%d targets=%d",
			len(vm.Cashflow.Rows), len(vm.Savings.Rows), len(vm.Targets.Rows))
	}
}

func TestAddCashflowGrowsByOneWithUniqueID(t *testing.T) {
	l, _ := newTestLedger(t)
	before, err := l.Cashflow.Load()
	if err != nil {
		t.Fatal(err)
	}

	added, err := l.AddCashflow(model.CashflowEntry{
		Kind:   model.KindPayment,
		Amount: decimal.NewFromInt(1200),
		Date:   model.NewDate(2026, time.October, 19),
		Notes:  "  electricity  ",
	})
	if err != nil {
		t.Fatalf("AddCashflow: %v", err)
	}
	if added.Notes != "electricity" {
		t.Errorf("notes not trimmed: %q", added.Notes)
	}

	after, err := l.Cashflow.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("len = %d, want %d", len(after), len(before)+1)
	}
	seen := make(map[string]bool)
	for _, e := range after {
		if seen[e.ID] {
			t.Fatalf("duplicate id %s", e.ID)
		}
		seen[e.ID] = true
	}
	if after[len(after)-1].ID != added.ID {
		t.Error("new entry not appended at the end")
	}
}

func TestAddRejectsIncomplete(t *testing.T) {
	l, _ := newTestLedger(t)
	before, _ := l.Cashflow.Load()

	_, err := l.AddCashflow(model.CashflowEntry{Kind: model.KindIncome, Amount: decimal.Zero, Date: model.NewDate(2026, 1, 1)})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("zero amount err = %v, want ErrIncomplete", err)
	}
	_, err = l.AddCashflow(model.CashflowEntry{Kind: model.KindIncome, Amount: decimal.NewFromInt(5)})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("missing date err = %v, want ErrIncomplete", err)
	}
	_, err = l.AddTarget(model.Target{Name: "  ", Amount: decimal.NewFromInt(5), Date: model.NewDate(2026, 1, 1)})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("blank name err = %v, want ErrIncomplete", err)
	}
	_, err = l.AddTask(model.Task{Title: "no due time"})
	if !errors.Is(err, ErrIncomplete) {
		t.Fatalf("task without due err = %v, want ErrIncomplete", err)
	}

	after, _ := l.Cashflow.Load()
	if len(after) != len(before) {
		t.Error("incomplete submit wrote to storage")
	}
}

func TestRemovePreservesOrder(t *testing.T) {
	l, _ := newTestLedger(t)
	orig, err := l.Savings.Load()
	if err != nil {
		t.Fatal(err)
	}
	victim := orig[1].ID

	if err := l.RemoveSavings(victim); err != nil {
		t.Fatalf("RemoveSavings: %v", err)
	}
	got, _ := l.Savings.Load()
	want := []string{orig[0].ID, orig[2].ID}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i] {
			t.Errorf("got[%d] = %s, want %s", i, got[i].ID, want[i])
		}
	}

	if err := l.RemoveSavings(victim); !errors.Is(err, ErrNotFound) {
		t.Errorf("second remove err = %v, want ErrNotFound", err)
	}
}

func TestRemoveRereadsStorage(t *testing.T) {
	l, db := newTestLedger(t)
	if _, err := l.Targets.Load(); err != nil {
		t.Fatal(err)
	}

	// Another writer replaces the collection behind our back.
	other := New(db, func() time.Time { return fixedNow })
	if err := other.Targets.Save([]model.Target{
		{ID: "x", Name: "X", Amount: decimal.NewFromInt(1), Date: model.NewDate(2027, 1, 1)},
		{ID: "y", Name: "Y", Amount: decimal.NewFromInt(2), Date: model.NewDate(2027, 2, 1)},
	}); err != nil {
		t.Fatal(err)
	}

	if err := l.RemoveTarget("x"); err != nil {
		t.Fatalf("RemoveTarget: %v", err)
	}
	got, _ := l.Targets.Load()
	if len(got) != 1 || got[0].ID != "y" {
		t.Errorf("after remove = %+v, want [y]", got)
	}
}

func TestToggleHidesTaskButKeepsIt(t *testing.T) {
	l, _ := newTestLedger(t)
	tasks, err := l.Tasks.Load()
	if err != nil {
		t.Fatal(err)
	}
	id := tasks[0].ID

	toggled, err := l.ToggleTask(id)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !toggled.Completed {
		t.Fatal("task not marked completed")
	}

	vm, err := l.Render(view.Options{ShowCompleted: false})
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range vm.Tasks.Rows {
		if r.ID == id {
			t.Fatal("completed task still visible")
		}
	}

	stored, _ := l.Tasks.Load()
	found := false
	for _, task := range stored {
		if task.ID == id {
			found = task.Completed
		}
	}
	if !found {
		t.Error("completed task missing from storage")
	}

	if _, err := l.ToggleTask("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("toggle missing err = %v, want ErrNotFound", err)
	}
}

func TestSetGoalAndProjection(t *testing.T) {
	l, _ := newTestLedger(t)
	goal := model.SavingsGoal{
		TargetAmount: decimal.NewFromInt(100000),
		TargetDate:   model.NewDate(2026, time.January, 1),
		CurrentSaved: decimal.NewFromInt(25000),
		MonthlyAdd:   decimal.NewFromInt(5000),
	}
	if err := l.SetGoal(goal); err != nil {
		t.Fatalf("SetGoal: %v", err)
	}
	vm, err := l.Render(view.Options{})
	if err != nil {
		t.Fatal(err)
	}
	p := vm.Goal.Projection
	if p.MonthsLeft != 0 || !p.RequiredPerMonth.Equal(decimal.NewFromInt(75000)) {
		t.Errorf("projection = %+v, want 0 months and 75000/month", p)
	}

	if err := l.SetGoal(model.SavingsGoal{}); !errors.Is(err, ErrIncomplete) {
		t.Errorf("empty goal err = %v, want ErrIncomplete", err)
	}
}

func TestCorruptCollectionFailsRender(t *testing.T) {
	l, db := newTestLedger(t)
	if err := db.Put(store.KeyTasks, []byte(`{"oops":`)); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Render(view.Options{}); err == nil {
		t.Fatal("expected render failure for corrupt tasks blob")
	}
}

func TestAddFundAndTask(t *testing.T) {
	l, _ := newTestLedger(t)
	f, err := l.AddFund(model.PortfolioFund{
		Name:  "Gold ETF",
		Units: decimal.NewFromInt(10),
		NAV:   decimal.NewFromInt(60),
	})
	if err != nil {
		t.Fatalf("AddFund: %v", err)
	}
	if f.ID == "" {
		t.Error("fund id not assigned")
	}

	task, err := l.AddTask(model.Task{Title: "File taxes", DueAt: fixedNow.Add(-time.Hour), Completed: true})
	if err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	if task.Completed {
		t.Error("new task should start open")
	}

	vm, err := l.Render(view.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if vm.Tasks.Counts.Overdue != 1 {
		t.Errorf("overdue = %d, want 1", vm.Tasks.Counts.Overdue)
	}
	if vm.Portfolio.Stats.Funds != 3 {
		t.Errorf("funds = %d, want 3", vm.Portfolio.Stats.Funds)
	}
}
