package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available tabs. Keys are the digit shortcuts.
var Tabs = []Tab{
	{Name: "Overview", Key: '1'},
	{Name: "Cashflow", Key: '2'},
	{Name: "Savings", Key: '3'},
	{Name: "Targets", Key: '4'},
	{Name: "Goal", Key: '5'},
	{Name: "Tasks", Key: '6'},
}

func tabLabel(tab Tab, active bool) string {
	t := theme.Active
	if active {
		return lipgloss.NewStyle().
			Foreground(t.Accent).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}
	key := lipgloss.NewStyle().Foreground(t.TextDim).Render(string(tab.Key))
	name := lipgloss.NewStyle().Foreground(t.TextMuted).Render(tab.Name)
	return lipgloss.NewStyle().Padding(0, 1).Render(key + " " + name)
}

// TabVisualWidth returns the rendered width of a tab label.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(tabLabel(tab, active))
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	sep := lipgloss.NewStyle().Foreground(t.Border).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = tabLabel(tab, i == activeIdx)
	}

	return lipgloss.NewStyle().
		Background(t.Surface).
		Width(width).
		Render(strings.Join(parts, sep))
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
