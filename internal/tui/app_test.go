package tui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func newTestLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return ledger.New(db, func() time.Time { return fixedNow })
}

func loadedApp(t *testing.T, l *ledger.Ledger) App {
	t.Helper()
	a := NewApp(l, Options{Currency: "INR", DueSoon: 24 * time.Hour})
	m, _ := a.Update(renderCmd(l, a.viewOptions())())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	app := m.(App)
	if !app.loaded || app.err != nil {
		t.Fatalf("app not loaded: err=%v", app.err)
	}
	return app
}

func press(t *testing.T, a App, keys ...tea.KeyMsg) App {
	t.Helper()
	for _, k := range keys {
		m, _ := a.Update(k)
		a = m.(App)
	}
	return a
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSwitchTabsByDigit(t *testing.T) {
	a := loadedApp(t, newTestLedger(t))
	a = press(t, a, runeKey('5'))
	if a.activeTab != tabGoal {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabGoal)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabTasks {
		t.Fatalf("activeTab = %d, want %d", a.activeTab, tabTasks)
	}
	a = press(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != tabOverview {
		t.Fatalf("right from last tab = %d, want wrap to overview", a.activeTab)
	}
}

func TestRemoveRowReReadsAndRecomputes(t *testing.T) {
	l := newTestLedger(t)
	a := loadedApp(t, l)

	// Cashflow is listed newest first: the seeded rent expense, then salary.
	a = press(t, a, runeKey('2'), runeKey('d'))

	if got := len(a.vm.Cashflow.Rows); got != 1 {
		t.Fatalf("cashflow rows = %d, want 1", got)
	}
	if !a.vm.Summary.NetCashflow.Equal(decimal.NewFromInt(72000)) {
		t.Errorf("net cashflow = %s, want 72000", a.vm.Summary.NetCashflow)
	}
	stored, err := l.Cashflow.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Errorf("stored cashflow = %d, want 1", len(stored))
	}
	if a.status != "Removed" {
		t.Errorf("status = %q", a.status)
	}
}

func TestRemoveAfterExternalDeleteReportsNotFound(t *testing.T) {
	l := newTestLedger(t)
	a := loadedApp(t, l)
	a = press(t, a, runeKey('4'))

	id, ok := a.selectedID()
	if !ok {
		t.Fatal("no target selected")
	}
	if err := l.RemoveTarget(id); err != nil {
		t.Fatal(err)
	}

	a = press(t, a, runeKey('d'))
	if !strings.Contains(a.status, "Already gone") {
		t.Errorf("status = %q, want not-found message", a.status)
	}
	if got := len(a.vm.Targets.Rows); got != 1 {
		t.Errorf("targets after reload = %d, want 1", got)
	}
}

func TestToggleHidesCompletedTask(t *testing.T) {
	l := newTestLedger(t)
	a := loadedApp(t, l)
	before := len(a.vm.Tasks.Rows)

	a = press(t, a, runeKey('6'), tea.KeyMsg{Type: tea.KeySpace})

	if got := len(a.vm.Tasks.Rows); got != before-1 {
		t.Fatalf("visible tasks = %d, want %d", got, before-1)
	}
	if a.vm.Tasks.Counts.Completed != 1 {
		t.Errorf("completed = %d, want 1", a.vm.Tasks.Counts.Completed)
	}
	stored, err := l.Tasks.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != before {
		t.Errorf("stored tasks = %d, want %d", len(stored), before)
	}

	a = press(t, a, runeKey('h'))
	if got := len(a.vm.Tasks.Rows); got != before {
		t.Errorf("with completed shown = %d, want %d", got, before)
	}
}

func TestCursorClampsAfterRemove(t *testing.T) {
	a := loadedApp(t, newTestLedger(t))
	a = press(t, a, runeKey('3'), runeKey('G'))
	last := len(a.vm.Savings.Rows) - 1
	if a.cursors[tabSavings] != last {
		t.Fatalf("cursor = %d, want %d", a.cursors[tabSavings], last)
	}
	a = press(t, a, runeKey('d'))
	if a.cursors[tabSavings] != last-1 {
		t.Errorf("cursor after remove = %d, want %d", a.cursors[tabSavings], last-1)
	}
}

func TestSubmitFormPresenceCheck(t *testing.T) {
	l := newTestLedger(t)
	vals := newFormValues(fixedNow)

	_, err := submitForm(l, formTarget, vals)
	if !errors.Is(err, ledger.ErrIncomplete) {
		t.Fatalf("empty target err = %v, want ErrIncomplete", err)
	}

	vals.Amount = "2500"
	vals.Notes = "groceries"
	vals.Kind = "expense"
	msg, err := submitForm(l, formCashflow, vals)
	if err != nil {
		t.Fatalf("submit cashflow: %v", err)
	}
	if msg != "Added Expense" {
		t.Errorf("status = %q", msg)
	}
	rows, _ := l.Cashflow.Load()
	if len(rows) != 3 {
		t.Errorf("cashflow rows = %d, want 3", len(rows))
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t, newTestLedger(t))
	for i := 0; i < numTabs; i++ {
		a.activeTab = i
		out := a.View()
		if out == "" {
			t.Fatalf("tab %d rendered empty", i)
		}
		if !strings.Contains(out, "Overview") {
			t.Errorf("tab %d missing tab bar", i)
		}
	}
}

func TestNarrowTerminal(t *testing.T) {
	a := loadedApp(t, newTestLedger(t))
	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	if out := m.(App).View(); !strings.Contains(out, "too narrow") {
		t.Errorf("narrow view = %q", out)
	}
}

func TestTickReReadsAndReclassifies(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "fintrack.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	clock := fixedNow
	l := ledger.New(db, func() time.Time { return clock })
	a := loadedApp(t, l)

	status := func(a App, title string) model.TaskStatus {
		t.Helper()
		for _, r := range a.vm.Tasks.Rows {
			if r.Title == title {
				return r.Status
			}
		}
		t.Fatalf("task %q not in view", title)
		return ""
	}
	if got := status(a, "Pay credit card bill"); got != model.TaskDueSoon {
		t.Fatalf("before tick: status = %q, want due-soon", got)
	}

	// Another process writes a reminder; nothing in the app is touched.
	if _, err := l.AddTask(model.Task{Title: "Call insurer", DueAt: clock.Add(time.Hour)}); err != nil {
		t.Fatalf("AddTask: %v", err)
	}
	clock = clock.Add(3 * time.Hour)

	m, cmd := a.Update(tickMsg(clock))
	a = m.(App)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if got := status(a, "Call insurer"); got != model.TaskOverdue {
		t.Errorf("external task status = %q, want overdue", got)
	}
	if got := status(a, "Pay credit card bill"); got != model.TaskOverdue {
		t.Errorf("seeded task status = %q, want overdue", got)
	}
	if !a.vm.At.Equal(clock) {
		t.Errorf("view at %v, want %v", a.vm.At, clock)
	}
}
