package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/view"
)

// ShortID returns the first 8 characters of a record id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func signed(amount string, negative bool) string {
	if negative {
		return negativeStyle.Render("-" + amount)
	}
	return amount
}

func renderEmpty(msg string) string {
	return "  " + mutedStyle.Render(msg) + "\n"
}

// RenderSummary renders the summary panel.
func RenderSummary(vm view.ViewModel, cur string) string {
	s := vm.Summary
	rows := [][]string{
		{"Income", FormatCurrency(s.Income, cur)},
		{"Expenses", FormatCurrency(s.Expense, cur)},
		{"Net cashflow", FormatCurrency(s.NetCashflow, cur)},
		{"---"},
		{"Total savings", FormatCurrency(s.SavingsTotal, cur)},
		{"Targets total", FormatCurrency(s.TargetsTotal, cur)},
		{"Portfolio (net + savings)", FormatCurrency(s.Portfolio, cur)},
		{"---"},
		{"Fund holdings", FormatCurrency(vm.Portfolio.Stats.Value, cur)},
		{"Reminders", fmt.Sprintf("%d open, %d overdue", vm.Tasks.Counts.Pending, vm.Tasks.Counts.Overdue)},
	}
	return RenderTable(Table{Headers: []string{"Metric", "Value"}, Rows: rows})
}

// RenderCashflow renders the cashflow list, newest first.
func RenderCashflow(lv view.ListView, cur string) string {
	if len(lv.Rows) == 0 {
		return renderEmpty(lv.Empty)
	}
	t := Table{Title: "Cashflow", Headers: []string{"Type", "Date", "Notes", "Amount", "ID"}}
	for _, r := range lv.Rows {
		t.Rows = append(t.Rows, []string{
			r.Badge,
			FormatDate(r.Date),
			r.Notes,
			signed(FormatCurrency(r.Amount, cur), r.Negative),
			ShortID(r.ID),
		})
	}
	return RenderTable(t)
}

// RenderSavings renders the savings list, newest first.
func RenderSavings(lv view.ListView, byType []model.SavingsTypeStats, cur string) string {
	if len(lv.Rows) == 0 {
		return renderEmpty(lv.Empty)
	}
	t := Table{Title: "Savings", Headers: []string{"Type", "Date", "Notes", "Amount", "ID"}}
	for _, r := range lv.Rows {
		t.Rows = append(t.Rows, []string{r.Badge, FormatDate(r.Date), r.Notes, FormatCurrency(r.Amount, cur), ShortID(r.ID)})
	}

	var b strings.Builder
	b.WriteString(RenderTable(t))

	if len(byType) > 0 {
		maxAmt := byType[0].Amount.InexactFloat64()
		b.WriteString("\n")
		for _, ts := range byType {
			b.WriteString(RenderHorizontalBar(ts.Type.Label(), ts.Amount.InexactFloat64(), maxAmt, 30))
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(FormatCurrency(ts.Amount, cur)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

// RenderTargets renders the targets header and list, earliest first.
func RenderTargets(tv view.TargetsView, cur string) string {
	if len(tv.Rows) == 0 {
		return "  " + headerStyle.Render("No targets yet.") + " " +
			mutedStyle.Render("Add a target to start tracking.") + "\n" + renderEmpty(tv.Empty)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s\n", valueStyle.Bold(true).Render(FormatCurrency(tv.Total, cur)), mutedStyle.Render("total across all targets")))
	if tv.Nearest != nil {
		b.WriteString(fmt.Sprintf("  Next target: %s by %s\n", tv.Nearest.Name, FormatDate(tv.Nearest.Date)))
	}
	b.WriteString("\n")

	t := Table{Title: "Targets", Headers: []string{"Name", "Date", "Notes", "Amount", "ID"}}
	for _, r := range tv.Rows {
		t.Rows = append(t.Rows, []string{r.Title, FormatDate(r.Date), r.Notes, FormatCurrency(r.Amount, cur), ShortID(r.ID)})
	}
	b.WriteString(RenderTable(t))
	return b.String()
}

// RenderTracker renders the monthly tracker, newest month first.
func RenderTracker(tv view.TrackerView, cur string) string {
	if len(tv.Months) == 0 {
		return renderEmpty(tv.Empty)
	}
	t := Table{Title: "Monthly tracker", Headers: []string{"Month", "Income", "Expenses", "Savings", "Portfolio"}}
	values := make([]float64, len(tv.Months))
	for i, m := range tv.Months {
		t.Rows = append(t.Rows, []string{
			MonthLabel(m.Month),
			FormatCurrency(m.Income, cur),
			signed(FormatCurrency(m.Expense, cur), m.Expense.IsPositive()),
			FormatCurrency(m.Savings, cur),
			FormatCurrency(m.Portfolio, cur),
		})
		values[len(tv.Months)-1-i] = m.Portfolio.InexactFloat64()
	}
	return RenderTable(t) + "  " + mutedStyle.Render("trend ") + RenderSparkline(values) + "\n"
}

// RenderGoal renders the goal snapshot and its projection.
func RenderGoal(gv view.GoalView, cur string) string {
	g, p := gv.Goal, gv.Projection
	status := positiveStyle.Render("on track")
	if !p.OnTrack {
		status = warnStyle.Render("behind")
	}
	rows := [][]string{
		{"Target", FormatCurrency(g.TargetAmount, cur)},
		{"Target date", FormatDate(g.TargetDate)},
		{"Saved so far", FormatCurrency(g.CurrentSaved, cur)},
		{"Monthly add", FormatCurrency(g.MonthlyAdd, cur)},
		{"---"},
		{"Gap", FormatCurrency(p.Gap, cur)},
		{"Months left", fmt.Sprintf("%d", p.MonthsLeft)},
		{"Required / month", FormatCurrency(p.RequiredPerMonth, cur)},
		{"Projected", FormatCurrency(p.Projected, cur)},
	}
	return RenderTable(Table{Title: "Savings goal", Headers: []string{"Goal", "Value"}, Rows: rows}) +
		"  " + RenderProgressBar(p.ProgressPercent, 30) + "  " + status + "\n"
}

// RenderPortfolio renders fund holdings and totals.
func RenderPortfolio(pv view.PortfolioView, cur string) string {
	if len(pv.Funds) == 0 {
		return renderEmpty(pv.Empty)
	}
	t := Table{Title: "Portfolio", Headers: []string{"Fund", "Units", "NAV", "Value", "Withdrawal/mo", "ID"}}
	for _, f := range pv.Funds {
		t.Rows = append(t.Rows, []string{
			f.Name,
			FormatDecimal(f.Units),
			FormatCurrency(f.NAV, cur),
			FormatCurrency(f.Value, cur),
			FormatCurrency(f.MonthlyWithdrawal, cur),
			ShortID(f.ID),
		})
	}
	t.Rows = append(t.Rows, []string{"---"})
	t.Rows = append(t.Rows, []string{"Total", "", "", FormatCurrency(pv.Stats.Value, cur), FormatCurrency(pv.Stats.Withdrawals, cur), ""})

	out := RenderTable(t)
	if pv.Stats.Withdrawals.IsPositive() {
		out += "  " + mutedStyle.Render(fmt.Sprintf("Runway at current withdrawals: %s months", pv.Stats.RunwayMonths.String())) + "\n"
	}
	return out
}

// StatusLabel returns the badge text for a task status.
func StatusLabel(s model.TaskStatus) string {
	switch s {
	case model.TaskOverdue:
		return "Overdue"
	case model.TaskDueSoon:
		return "Due soon"
	case model.TaskDone:
		return "Done"
	default:
		return "Upcoming"
	}
}

// RenderTasks renders the visible reminders, earliest due first.
func RenderTasks(tv view.TaskView, vm view.ViewModel) string {
	if len(tv.Rows) == 0 {
		return renderEmpty(tv.Empty)
	}
	t := Table{Title: "Reminders", Headers: []string{"Title", "Status", "Due", "When", "Notes", "ID"}}
	for _, r := range tv.Rows {
		t.Rows = append(t.Rows, []string{
			r.Title,
			StatusLabel(r.Status),
			FormatDateTime(r.DueAt),
			FormatDue(r.DueAt, vm.At),
			NotesOr(r.Notes, view.NoNotes),
			ShortID(r.ID),
		})
	}
	c := tv.Counts
	return RenderTable(t) + "  " + mutedStyle.Render(fmt.Sprintf("%d open · %d overdue · %d due soon · %d done",
		c.Pending, c.Overdue, c.DueSoon, c.Completed)) + "\n"
}
