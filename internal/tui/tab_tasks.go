package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderTasksTab(cw int) string {
	t := theme.Active
	tv := a.vm.Tasks
	c := tv.Counts

	cards := []components.Metric{
		{Label: "Pending", Value: fmt.Sprintf("%d", c.Pending)},
		{Label: "Overdue", Value: fmt.Sprintf("%d", c.Overdue), Color: t.Red},
		{Label: "Due Soon", Value: fmt.Sprintf("%d", c.DueSoon), Color: t.Yellow},
		{Label: "Completed", Value: fmt.Sprintf("%d", c.Completed), Color: t.Green},
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	if c.Total > 0 {
		done := float64(c.Completed) / float64(c.Total)
		b.WriteString(components.ContentCard("Completed",
			components.ProgressBar(done, max(10, components.CardInnerWidth(cw)-8))+
				mutedLine(fmt.Sprintf("  %d/%d", c.Completed, c.Total)), cw))
		b.WriteString("\n")
	}

	title := "Reminders"
	if !a.opts.ShowCompleted && c.Completed > 0 {
		title = fmt.Sprintf("Reminders (%d done hidden)", c.Completed)
	}
	b.WriteString(components.ContentCard(title, a.tasksBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) tasksBody(w int) string {
	t := theme.Active
	tv := a.vm.Tasks
	if len(tv.Rows) == 0 {
		return mutedLine(tv.Empty)
	}

	const dueW, relW, statusW = 18, 12, 9
	titleW := max(10, w-dueW-relW-statusW-8)
	cursor := a.cursors[tabTasks]

	var lines []string
	for i, r := range tv.Rows {
		box := "[ ]"
		if r.Completed {
			box = "[x]"
		}
		text := r.Title
		if r.Notes != "" {
			text += " · " + r.Notes
		}
		line := fmt.Sprintf("%s %-*s %-*s %-*s %-*s",
			box,
			titleW, truncStr(text, titleW),
			dueW, cli.FormatDateTime(r.DueAt),
			relW, cli.FormatDue(r.DueAt, a.vm.At),
			statusW, cli.StatusLabel(r.Status))

		if i == cursor {
			lines = append(lines, selectable(line, true, w))
			continue
		}
		style := lipgloss.NewStyle().Foreground(t.ForStatus(r.Status))
		if r.Completed {
			style = style.Strikethrough(true)
		}
		lines = append(lines, " "+style.Render(line))
	}
	return strings.Join(lines, "\n")
}
