// Package report builds a markdown summary of the view model and renders it
// for the terminal or as HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/view"
)

// Markdown renders vm as a markdown document with amounts in currency cur.
func Markdown(vm view.ViewModel, cur string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Finance report\n\n_Generated %s_\n\n", vm.At.Format("Jan 2, 2006 15:04"))

	s := vm.Summary
	b.WriteString("## Summary\n\n| Metric | Value |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Income | %s |\n", cli.FormatCurrency(s.Income, cur))
	fmt.Fprintf(&b, "| Expenses | %s |\n", cli.FormatCurrency(s.Expense, cur))
	fmt.Fprintf(&b, "| Net cashflow | **%s** |\n", cli.FormatCurrency(s.NetCashflow, cur))
	fmt.Fprintf(&b, "| Total savings | %s |\n", cli.FormatCurrency(s.SavingsTotal, cur))
	fmt.Fprintf(&b, "| Targets total | %s |\n", cli.FormatCurrency(s.TargetsTotal, cur))
	fmt.Fprintf(&b, "| Portfolio (net + savings) | %s |\n\n", cli.FormatCurrency(s.Portfolio, cur))

	b.WriteString("## Savings goal\n\n")
	g, p := vm.Goal.Goal, vm.Goal.Projection
	fmt.Fprintf(&b, "- Target: %s by %s\n", cli.FormatCurrency(g.TargetAmount, cur), cli.FormatDate(g.TargetDate))
	fmt.Fprintf(&b, "- Saved: %s (%s)\n", cli.FormatCurrency(g.CurrentSaved, cur), cli.FormatPercent(p.ProgressPercent))
	fmt.Fprintf(&b, "- Months left: %d, required %s per month\n", p.MonthsLeft, cli.FormatCurrency(p.RequiredPerMonth, cur))
	status := "on track"
	if !p.OnTrack {
		status = "behind"
	}
	fmt.Fprintf(&b, "- Projected: %s (%s)\n\n", cli.FormatCurrency(p.Projected, cur), status)

	b.WriteString("## Monthly tracker\n\n")
	if len(vm.Tracker.Months) == 0 {
		fmt.Fprintf(&b, "%s\n\n", vm.Tracker.Empty)
	} else {
		b.WriteString("| Month | Income | Expenses | Savings | Portfolio |\n|---|---:|---:|---:|---:|\n")
		for _, m := range vm.Tracker.Months {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cli.MonthLabel(m.Month),
				cli.FormatCurrency(m.Income, cur),
				cli.FormatCurrency(m.Expense, cur),
				cli.FormatCurrency(m.Savings, cur),
				cli.FormatCurrency(m.Portfolio, cur))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Targets\n\n")
	if len(vm.Targets.Rows) == 0 {
		fmt.Fprintf(&b, "%s\n\n", vm.Targets.Empty)
	} else {
		for _, r := range vm.Targets.Rows {
			fmt.Fprintf(&b, "- **%s**: %s by %s\n", r.Title, cli.FormatCurrency(r.Amount, cur), cli.FormatDate(r.Date))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Portfolio\n\n")
	if len(vm.Portfolio.Funds) == 0 {
		fmt.Fprintf(&b, "%s\n\n", vm.Portfolio.Empty)
	} else {
		b.WriteString("| Fund | Value | Withdrawal/mo |\n|---|---:|---:|\n")
		for _, f := range vm.Portfolio.Funds {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", f.Name, cli.FormatCurrency(f.Value, cur), cli.FormatCurrency(f.MonthlyWithdrawal, cur))
		}
		fmt.Fprintf(&b, "| **Total** | **%s** | %s |\n\n",
			cli.FormatCurrency(vm.Portfolio.Stats.Value, cur), cli.FormatCurrency(vm.Portfolio.Stats.Withdrawals, cur))
	}

	b.WriteString("## Reminders\n\n")
	if len(vm.Tasks.Rows) == 0 {
		fmt.Fprintf(&b, "%s\n", vm.Tasks.Empty)
	} else {
		for _, t := range vm.Tasks.Rows {
			box := " "
			if t.Completed {
				box = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (%s, %s)\n", box, t.Title, cli.StatusLabel(t.Status), cli.FormatDue(t.DueAt, vm.At))
		}
	}
	return b.String()
}

// Terminal renders markdown for display in a terminal of the given width.
func Terminal(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

// HTML converts markdown to a standalone HTML page.
func HTML(md string) ([]byte, error) {
	conv := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := conv.Convert([]byte(md), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>Finance report</title></head><body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")
	return page.Bytes(), nil
}
