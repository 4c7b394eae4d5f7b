package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
	"github.com/theirongolddev/fintrack/internal/view"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.vm.Summary
	cur := a.opts.Currency
	var b strings.Builder

	// Row 1: Metric cards
	net := components.Metric{
		Label: "Net Cashflow",
		Value: cli.FormatCurrency(s.NetCashflow, cur),
		Note:  "in " + cli.FormatCurrency(s.Income, cur) + " / out " + cli.FormatCurrency(s.Expense, cur),
		Color: t.ForAmount(s.NetCashflow.IsNegative()),
	}
	cards := []components.Metric{
		net,
		{Label: "Total Savings", Value: cli.FormatCurrency(s.SavingsTotal, cur), Note: fmt.Sprintf("%d entries", len(a.vm.Savings.Rows))},
		{Label: "Targets", Value: cli.FormatCurrency(s.TargetsTotal, cur), Note: nearestNote(a.vm.Targets)},
		{Label: "Portfolio", Value: cli.FormatCurrency(s.Portfolio, cur), Note: "net cashflow + savings"},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Monthly tracker | Reminders
	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Monthly Tracker", a.trackerBody(components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Reminders", a.reminderSummary(), halves[1]),
	}))
	b.WriteString("\n")

	// Row 3: Fund holdings
	b.WriteString(components.ContentCard("Funds", a.fundsBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func nearestNote(tv view.TargetsView) string {
	if tv.Nearest == nil {
		return "none set"
	}
	return "next: " + tv.Nearest.Name
}

func (a App) trackerBody(w int) string {
	months := a.vm.Tracker.Months
	if len(months) == 0 {
		return mutedLine(a.vm.Tracker.Empty)
	}
	trend := make([]float64, len(months))
	for i, m := range months {
		trend[len(months)-1-i] = m.Portfolio.InexactFloat64()
	}

	// Newest first; cap at six months.
	if len(months) > 6 {
		months = months[:6]
	}
	bars := make([]components.Bar, len(months))
	for i, m := range months {
		bars[i] = components.Bar{
			Label: cli.MonthLabel(m.Month),
			Value: m.Portfolio.InexactFloat64(),
			Text:  cli.FormatCurrency(m.Portfolio, a.opts.Currency),
		}
	}
	return components.HBarChart(bars, w) + "\n\n" +
		mutedLine("trend ") + components.Sparkline(trend, theme.Active.Accent)
}

func (a App) reminderSummary() string {
	t := theme.Active
	c := a.vm.Tasks.Counts
	label := lipgloss.NewStyle().Foreground(t.TextMuted)

	lines := []string{
		label.Render("Pending   ") + lipgloss.NewStyle().Foreground(t.TextPrimary).Render(fmt.Sprintf("%d", c.Pending)),
		label.Render("Overdue   ") + lipgloss.NewStyle().Foreground(t.Red).Render(fmt.Sprintf("%d", c.Overdue)),
		label.Render("Due soon  ") + lipgloss.NewStyle().Foreground(t.Yellow).Render(fmt.Sprintf("%d", c.DueSoon)),
		label.Render("Completed ") + lipgloss.NewStyle().Foreground(t.Green).Render(fmt.Sprintf("%d", c.Completed)),
	}
	if c.Pending == 0 {
		lines = append(lines, "", mutedLine(view.AllCaughtUp))
	}
	return strings.Join(lines, "\n")
}

func (a App) fundsBody(w int) string {
	t := theme.Active
	pv := a.vm.Portfolio
	if len(pv.Funds) == 0 {
		return mutedLine(pv.Empty)
	}
	cur := a.opts.Currency

	nameW := max(10, w-56)
	head := lipgloss.NewStyle().Foreground(t.TextDim)
	lines := []string{head.Render(fmt.Sprintf("%-*s %12s %14s %14s %12s", nameW, "Fund", "Units", "NAV", "Value", "Withdraw/mo"))}

	cursor := a.cursors[tabOverview]
	for i, f := range pv.Funds {
		line := fmt.Sprintf("%-*s %12s %14s %14s %12s",
			nameW, truncStr(f.Name, nameW),
			cli.FormatDecimal(f.Units),
			cli.FormatCurrency(f.NAV, cur),
			cli.FormatCurrency(f.Value, cur),
			cli.FormatCurrency(f.MonthlyWithdrawal, cur))
		lines = append(lines, selectable(line, i == cursor, w))
	}

	st := pv.Stats
	total := fmt.Sprintf("Total %s", cli.FormatCurrency(st.Value, cur))
	if st.Withdrawals.IsPositive() {
		total += fmt.Sprintf("  ·  runway %s months", st.RunwayMonths.StringFixed(1))
	}
	lines = append(lines, "", lipgloss.NewStyle().Foreground(t.AccentBright).Render(total))
	return strings.Join(lines, "\n")
}

func mutedLine(s string) string {
	return lipgloss.NewStyle().Foreground(theme.Active.TextMuted).Render(s)
}

// selectable highlights the row under the cursor.
func selectable(line string, selected bool, w int) string {
	t := theme.Active
	if selected {
		return lipgloss.NewStyle().
			Foreground(t.TextPrimary).
			Background(t.SurfaceHover).
			Bold(true).
			Width(w).
			Render("▸" + line)
	}
	return lipgloss.NewStyle().Foreground(t.TextPrimary).Render(" " + line)
}
