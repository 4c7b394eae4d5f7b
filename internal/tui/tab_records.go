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

func (a App) renderCashflowTab(cw int) string {
	s := a.vm.Summary
	cur := a.opts.Currency
	t := theme.Active

	cards := []components.Metric{
		{Label: "Income", Value: cli.FormatCurrency(s.Income, cur), Color: t.Green},
		{Label: "Outflow", Value: cli.FormatCurrency(s.Expense, cur), Note: "expenses + payments", Color: t.Red},
		{Label: "Net", Value: cli.FormatCurrency(s.NetCashflow, cur), Color: t.ForAmount(s.NetCashflow.IsNegative())},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Cashflow", a.listBody(a.vm.Cashflow, tabCashflow, components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) renderSavingsTab(cw int) string {
	cur := a.opts.Currency
	var b strings.Builder

	halves := components.LayoutRow(cw, 2)
	mix := mutedLine(view.EmptySavings)
	if len(a.vm.ByType) > 0 {
		bars := make([]components.Bar, len(a.vm.ByType))
		for i, st := range a.vm.ByType {
			f, _ := st.Amount.Float64()
			bars[i] = components.Bar{Label: st.Type.Label(), Value: f, Text: cli.FormatCurrency(st.Amount, cur)}
		}
		mix = components.HBarChart(bars, components.CardInnerWidth(halves[1]))
	}

	b.WriteString(components.CardRow([]string{
		components.MetricCard(components.Metric{
			Label: "Total Savings",
			Value: cli.FormatCurrency(a.vm.Summary.SavingsTotal, cur),
			Note:  fmt.Sprintf("%d entries", len(a.vm.Savings.Rows)),
		}, halves[0]),
		components.ContentCard("By Instrument", mix, halves[1]),
	}))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Savings", a.listBody(a.vm.Savings, tabSavings, components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) renderTargetsTab(cw int) string {
	tv := a.vm.Targets
	cur := a.opts.Currency

	next := components.Metric{Label: "Next Target", Value: "None"}
	if tv.Nearest != nil {
		next = components.Metric{
			Label: "Next Target",
			Value: tv.Nearest.Name,
			Note:  "by " + cli.FormatDate(tv.Nearest.Date),
		}
	}
	halves := components.LayoutRow(cw, 2)

	var b strings.Builder
	b.WriteString(components.CardRow([]string{
		components.MetricCard(components.Metric{
			Label: "Targets Total",
			Value: cli.FormatCurrency(tv.Total, cur),
			Note:  fmt.Sprintf("%d targets", len(tv.Rows)),
		}, halves[0]),
		components.MetricCard(next, halves[1]),
	}))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Targets", a.listBody(tv.ListView, tabTargets, components.CardInnerWidth(cw)), cw))
	return b.String()
}

// listBody renders a record list with the tab's cursor row highlighted.
func (a App) listBody(lv view.ListView, tab int, w int) string {
	if len(lv.Rows) == 0 {
		return mutedLine(lv.Empty)
	}
	t := theme.Active
	cur := a.opts.Currency

	const dateW, amtW, badgeW = 13, 16, 14
	titleW := max(10, w-dateW-amtW-badgeW-5)

	head := lipgloss.NewStyle().Foreground(t.TextDim)
	lines := []string{head.Render(fmt.Sprintf(" %-*s %-*s %-*s %*s", badgeW, "Type", dateW, "Date", titleW, "Notes", amtW, "Amount"))}

	cursor := a.cursors[tab]
	for i, r := range lv.Rows {
		label := r.Title
		if r.Badge != "" {
			label = r.Badge
		}
		amount := cli.FormatCurrency(r.Amount, cur)
		if r.Negative {
			amount = "-" + amount
		}

		text := fmt.Sprintf("%-*s %-*s %-*s ",
			badgeW, truncStr(label, badgeW),
			dateW, cli.FormatDate(r.Date),
			titleW, truncStr(r.Notes, titleW))
		amt := fmt.Sprintf("%*s", amtW, amount)

		if i == cursor {
			lines = append(lines, selectable(text+amt, true, w))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(t.TextPrimary).Render(" "+text)+
			lipgloss.NewStyle().Foreground(t.ForAmount(r.Negative)).Render(amt))
	}
	return strings.Join(lines, "\n")
}
