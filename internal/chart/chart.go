// Package chart renders PNG charts of the monthly tracker and savings mix.
package chart

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/theirongolddev/fintrack/internal/model"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no data to chart")

var (
	colorPositive = drawing.ColorFromHex("879A39")
	colorNegative = drawing.ColorFromHex("D14D41")
)

// Tracker writes a bar chart of each month's portfolio figure, oldest month
// on the left. months is expected newest first, as the tracker returns it.
func Tracker(w io.Writer, months []model.MonthStats, format func(float64) string) error {
	if len(months) == 0 {
		return ErrNoData
	}
	if format == nil {
		format = func(v float64) string { return fmt.Sprintf("%.0f", v) }
	}

	bars := make([]chart.Value, 0, len(months))
	lo, hi := 0.0, 0.0
	for i := len(months) - 1; i >= 0; i-- {
		m := months[i]
		v := m.Portfolio.InexactFloat64()
		lo, hi = min(lo, v), max(hi, v)
		fill := colorPositive
		if v < 0 {
			fill = colorNegative
		}
		bars = append(bars, chart.Value{
			Label: m.Month,
			Value: v,
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}

	if hi == lo {
		hi = lo + 1
	}

	graph := chart.BarChart{
		Title:    "Monthly portfolio",
		Width:    max(480, 120*len(bars)),
		Height:   480,
		BarWidth: 60,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return format(f)
				}
				return ""
			},
		},
		Bars: bars,
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering tracker chart: %w", err)
	}
	return nil
}

// SavingsMix writes a pie chart of savings by instrument.
func SavingsMix(w io.Writer, byType []model.SavingsTypeStats) error {
	values := make([]chart.Value, 0, len(byType))
	for _, s := range byType {
		if !s.Amount.IsPositive() {
			continue
		}
		values = append(values, chart.Value{Label: s.Type.Label(), Value: s.Amount.InexactFloat64()})
	}
	if len(values) == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  "Savings mix",
		Width:  512,
		Height: 512,
		Values: values,
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering savings chart: %w", err)
	}
	return nil
}
