// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

// DefaultCurrency is used when the configured currency tag is unknown.
const DefaultCurrency = money.INR

// FormatCurrency formats an amount in the given ISO currency.
// e.g., 72000 INR -> "₹72,000.00"
func FormatCurrency(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// FormatDate formats a calendar date for display.
// e.g., 2026-10-17 -> "Oct 17, 2026"
func FormatDate(d model.Date) string {
	if d.IsZero() {
		return "No date"
	}
	return d.Time().Format("Jan 2, 2006")
}

// FormatDateTime formats a due timestamp in local time.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "No date"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

// MonthLabel turns a "YYYY-MM" month key into "Oct 2026".
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// FormatDue describes a due time relative to now.
// e.g., "in 2h 5m", "3d ago"
func FormatDue(due, now time.Time) string {
	d := due.Sub(now)
	if d < 0 {
		return FormatSpan(-d) + " ago"
	}
	return "in " + FormatSpan(d)
}

// FormatSpan formats a duration coarsely.
// e.g., 50h -> "2d 2h", 125m -> "2h 5m", 45s -> "<1m"
func FormatSpan(d time.Duration) string {
	mins := int64(d / time.Minute)
	days := mins / (60 * 24)
	hours := (mins % (60 * 24)) / 60
	mins %= 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case mins > 0:
		return fmt.Sprintf("%dm", mins)
	default:
		return "<1m"
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 value as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f)
}

// FormatDecimal formats a quantity such as fund units, trimming trailing zeros.
func FormatDecimal(d decimal.Decimal) string {
	return d.String()
}

// NotesOr returns notes, or the placeholder when empty.
func NotesOr(notes, placeholder string) string {
	if notes == "" {
		return placeholder
	}
	return notes
}
