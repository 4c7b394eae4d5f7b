package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/view"
)

func TestRenderEmptyStates(t *testing.T) {
	vm := view.Recompute(view.State{}, view.Options{Now: time.Now()})
	if got := RenderCashflow(vm.Cashflow, "INR"); !strings.Contains(got, view.EmptyCashflow) {
		t.Errorf("cashflow empty render = %q", got)
	}
	if got := RenderTracker(vm.Tracker, "INR"); !strings.Contains(got, view.EmptyTracker) {
		t.Errorf("tracker empty render = %q", got)
	}
	if got := RenderTargets(vm.Targets, "INR"); !strings.Contains(got, "No targets yet.") {
		t.Errorf("targets empty render = %q", got)
	}
}

func TestRenderCashflowRows(t *testing.T) {
	s := view.State{Cashflow: []model.CashflowEntry{
		{ID: "0123456789abcdef", Kind: model.KindExpense, Amount: decimal.NewFromInt(18500), Date: model.NewDate(2026, time.October, 18), Notes: "Home rent"},
	}}
	vm := view.Recompute(s, view.Options{Now: time.Now()})
	out := RenderCashflow(vm.Cashflow, "INR")
	for _, want := range []string{"Expense", "Oct 18, 2026", "Home rent", "18,500.00", "01234567"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789") {
		t.Error("id not shortened")
	}
}

func TestRenderProgressBarClamps(t *testing.T) {
	if got := RenderProgressBar(150, 10); !strings.Contains(got, "100.0%") {
		t.Errorf("RenderProgressBar(150) = %q", got)
	}
	if got := RenderProgressBar(50, 0); got != "" {
		t.Errorf("zero width = %q", got)
	}
}

func TestRenderTableAlignsRows(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Cashflow",
		Headers: []string{"Type", "Amount"},
		Rows: [][]string{
			{"Income", "₹72,000.00"},
			{"---"},
			{"Net", "₹53,500.00"},
		},
	})
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")[1:]
	if len(lines) != 7 {
		t.Fatalf("table lines = %d, want 7:\n%s", len(lines), out)
	}
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d: %q", i, w, want, line)
		}
	}
	if !strings.Contains(lines[4], "├") {
		t.Errorf("separator row = %q", lines[4])
	}
}
