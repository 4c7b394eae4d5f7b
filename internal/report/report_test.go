package report

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/fintrack/internal/seed"
	"github.com/theirongolddev/fintrack/internal/view"
)

var now = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

func seededView() view.ViewModel {
	s := view.State{
		Cashflow:  seed.Cashflow(now),
		Savings:   seed.Savings(now),
		Targets:   seed.Targets(now),
		Goal:      seed.Goal(now),
		Portfolio: seed.Portfolio(now),
		Tasks:     seed.Tasks(now),
	}
	return view.Recompute(s, view.Options{Now: now})
}

func TestMarkdownSections(t *testing.T) {
	md := Markdown(seededView(), "INR")
	for _, want := range []string{
		"# Finance report",
		"| Net cashflow | **₹53,500.00** |",
		"## Monthly tracker",
		"Emergency Fund",
		"Nifty 50 Index Fund",
		"## Reminders",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestMarkdownEmptyState(t *testing.T) {
	md := Markdown(view.Recompute(view.State{}, view.Options{Now: now}), "INR")
	for _, want := range []string{view.EmptyTracker, view.EmptyTargets, view.EmptyPortfolio, view.EmptyTasks} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing empty state %q", want)
		}
	}
}

func TestHTMLRendersTables(t *testing.T) {
	out, err := HTML(Markdown(seededView(), "INR"))
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	if !strings.Contains(html, "<table>") {
		t.Error("expected GFM table in HTML output")
	}
	if !strings.Contains(html, "<h1>Finance report</h1>") {
		t.Error("missing heading")
	}
}

func TestTerminal(t *testing.T) {
	out, err := Terminal("# Hello\n\nworld", 40)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "world") {
		t.Errorf("terminal output = %q", out)
	}
}
