package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/theirongolddev/fintrack/internal/model"
)

const dateFormat = "2006-01-02"

type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// Workbook builds the spreadsheet: a summary sheet followed by one sheet per
// collection and the monthly tracker.
func Workbook(doc Document) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	sheets := []sheet{
		summarySheet(doc),
		cashflowSheet(doc.State.Cashflow),
		savingsSheet(doc.State.Savings),
		targetsSheet(doc.State.Targets),
		goalSheet(doc),
		portfolioSheet(doc.State.Portfolio),
		tasksSheet(doc.State.Tasks),
		trackerSheet(doc.View.Tracker.Months),
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return nil, err
		}
		if err := fillSheet(f, sh, bold); err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func fillSheet(f *excelize.File, sh sheet, headerStyle int) error {
	header := make([]any, len(sh.headers))
	for i, h := range sh.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(sh.headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(sh.headers))
	if err != nil {
		return err
	}
	return f.SetColWidth(sh.name, "A", lastCol, 18)
}

func writeXLSX(w io.Writer, doc Document) error {
	f, err := Workbook(doc)
	if err != nil {
		return fmt.Errorf("building workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func date(d model.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(dateFormat)
}

func summarySheet(doc Document) sheet {
	s := doc.View.Summary
	return sheet{
		name:    "Summary",
		headers: []string{"Metric", "Value"},
		rows: [][]any{
			{"Currency", doc.Currency},
			{"Exported at", doc.ExportedAt.Format("2006-01-02 15:04")},
			{"Income", s.Income.InexactFloat64()},
			{"Expenses", s.Expense.InexactFloat64()},
			{"Net cashflow", s.NetCashflow.InexactFloat64()},
			{"Total savings", s.SavingsTotal.InexactFloat64()},
			{"Targets total", s.TargetsTotal.InexactFloat64()},
			{"Portfolio (net + savings)", s.Portfolio.InexactFloat64()},
			{"Fund holdings", doc.View.Portfolio.Stats.Value.InexactFloat64()},
		},
	}
}

func cashflowSheet(entries []model.CashflowEntry) sheet {
	sh := sheet{name: "Cashflow", headers: []string{"ID", "Type", "Amount", "Date", "Notes"}}
	for _, e := range entries {
		sh.rows = append(sh.rows, []any{e.ID, string(e.Kind), e.Amount.InexactFloat64(), date(e.Date), e.Notes})
	}
	return sh
}

func savingsSheet(entries []model.SavingsEntry) sheet {
	sh := sheet{name: "Savings", headers: []string{"ID", "Type", "Amount", "Date", "Notes"}}
	for _, e := range entries {
		sh.rows = append(sh.rows, []any{e.ID, e.Type.Label(), e.Amount.InexactFloat64(), date(e.Date), e.Notes})
	}
	return sh
}

func targetsSheet(targets []model.Target) sheet {
	sh := sheet{name: "Targets", headers: []string{"ID", "Name", "Amount", "Date", "Notes"}}
	for _, t := range targets {
		sh.rows = append(sh.rows, []any{t.ID, t.Name, t.Amount.InexactFloat64(), date(t.Date), t.Notes})
	}
	return sh
}

func goalSheet(doc Document) sheet {
	g, p := doc.State.Goal, doc.View.Goal.Projection
	return sheet{
		name:    "Goal",
		headers: []string{"Field", "Value"},
		rows: [][]any{
			{"Target amount", g.TargetAmount.InexactFloat64()},
			{"Target date", date(g.TargetDate)},
			{"Current saved", g.CurrentSaved.InexactFloat64()},
			{"Monthly add", g.MonthlyAdd.InexactFloat64()},
			{"Gap", p.Gap.InexactFloat64()},
			{"Months left", p.MonthsLeft},
			{"Required per month", p.RequiredPerMonth.InexactFloat64()},
			{"Projected", p.Projected.InexactFloat64()},
			{"On track", p.OnTrack},
		},
	}
}

func portfolioSheet(funds []model.PortfolioFund) sheet {
	sh := sheet{name: "Portfolio", headers: []string{"ID", "Fund", "Units", "NAV", "Value", "Monthly withdrawal"}}
	for _, fd := range funds {
		sh.rows = append(sh.rows, []any{
			fd.ID, fd.Name,
			fd.Units.InexactFloat64(), fd.NAV.InexactFloat64(),
			fd.Value().InexactFloat64(), fd.MonthlyWithdrawal.InexactFloat64(),
		})
	}
	return sh
}

func tasksSheet(tasks []model.Task) sheet {
	sh := sheet{name: "Tasks", headers: []string{"ID", "Title", "Due", "Completed", "Notes"}}
	for _, t := range tasks {
		sh.rows = append(sh.rows, []any{t.ID, t.Title, t.DueAt.Format("2006-01-02 15:04"), t.Completed, t.Notes})
	}
	return sh
}

func trackerSheet(months []model.MonthStats) sheet {
	sh := sheet{name: "Tracker", headers: []string{"Month", "Income", "Expenses", "Savings", "Portfolio"}}
	for _, m := range months {
		sh.rows = append(sh.rows, []any{
			m.Month,
			m.Income.InexactFloat64(), m.Expense.InexactFloat64(),
			m.Savings.InexactFloat64(), m.Portfolio.InexactFloat64(),
		})
	}
	return sh
}
