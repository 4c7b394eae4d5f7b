package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutRowSumsToTotal(t *testing.T) {
	widths := LayoutRow(100, 3)
	sum := 0
	for _, w := range widths {
		sum += w
	}
	if sum != 100 {
		t.Fatalf("widths %v sum to %d, want 100", widths, sum)
	}
	if widths[0] != 34 || widths[2] != 33 {
		t.Errorf("remainder not given to first items: %v", widths)
	}
}

func TestHBarChartNegative(t *testing.T) {
	out := HBarChart([]Bar{
		{Label: "Oct 2026", Value: 100, Text: "100"},
		{Label: "Sep 2026", Value: -50, Text: "-50"},
	}, 40)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	full := strings.Count(lines[0], "█")
	half := strings.Count(lines[1], "█")
	if half == 0 || half >= full {
		t.Errorf("bar lengths full=%d half=%d", full, half)
	}
	if lipgloss.Width(lines[0]) != lipgloss.Width(lines[1]) {
		t.Errorf("rows differ in width: %d vs %d", lipgloss.Width(lines[0]), lipgloss.Width(lines[1]))
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('6'); got != 5 {
		t.Errorf("TabIdxByKey('6') = %d, want 5", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
}

func TestStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(60, "[q]uit", "saved")
	if w := lipgloss.Width(bar); w != 60 {
		t.Errorf("status bar width = %d, want 60", w)
	}
}
