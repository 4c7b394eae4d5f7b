package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderGoalTab(cw int) string {
	t := theme.Active
	g := a.vm.Goal.Goal
	p := a.vm.Goal.Projection
	cur := a.opts.Currency

	status := components.Metric{Label: "Status", Value: "On track", Color: t.Green, Note: "projection meets target"}
	if !p.OnTrack {
		status = components.Metric{Label: "Status", Value: "Behind", Color: t.Red, Note: "increase monthly savings"}
	}

	cards := []components.Metric{
		{Label: "Target", Value: cli.FormatCurrency(g.TargetAmount, cur), Note: "by " + cli.FormatDate(g.TargetDate)},
		{Label: "Saved", Value: cli.FormatCurrency(g.CurrentSaved, cur), Note: "+" + cli.FormatCurrency(g.MonthlyAdd, cur) + "/mo"},
		{Label: "Required / Month", Value: cli.FormatCurrency(p.RequiredPerMonth, cur), Note: fmt.Sprintf("%d months left", p.MonthsLeft)},
		status,
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	innerW := components.CardInnerWidth(cw)
	barW := max(10, innerW-40)
	label := lipgloss.NewStyle().Foreground(t.TextMuted)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary)

	body := []string{
		components.GoalBar("Progress", p.ProgressPercent/100, "gap "+cli.FormatCurrency(p.Gap, cur), 10, barW),
		"",
		label.Render(fmt.Sprintf("%-20s", "Projected at target")) + value.Render(cli.FormatCurrency(p.Projected, cur)),
		label.Render(fmt.Sprintf("%-20s", "Gap")) + value.Render(cli.FormatCurrency(p.Gap, cur)),
		label.Render(fmt.Sprintf("%-20s", "Months left")) + value.Render(fmt.Sprintf("%d", p.MonthsLeft)),
	}
	b.WriteString(components.ContentCard("Savings Goal", strings.Join(body, "\n"), cw))
	return b.String()
}
