package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
)

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(decimal.NewFromInt(72000), "INR")
	if !strings.Contains(got, "72,000.00") || !strings.Contains(got, "₹") {
		t.Errorf("FormatCurrency INR = %q", got)
	}

	got = FormatCurrency(decimal.RequireFromString("12.345"), "usd")
	if !strings.Contains(got, "12.35") || !strings.Contains(got, "$") {
		t.Errorf("FormatCurrency USD = %q", got)
	}

	got = FormatCurrency(decimal.NewFromInt(5), "NOPE")
	if !strings.Contains(got, "₹") {
		t.Errorf("unknown currency should fall back to INR, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(model.NewDate(2026, time.October, 17)); got != "Oct 17, 2026" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(model.Date{}); got != "No date" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("2026-03"); got != "Mar 2026" {
		t.Errorf("MonthLabel = %q, want Mar 2026", got)
	}
	if got := MonthLabel("bogus"); got != "bogus" {
		t.Errorf("MonthLabel(bogus) = %q", got)
	}
}

func TestFormatDue(t *testing.T) {
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		due  time.Time
		want string
	}{
		{now.Add(2*time.Hour + 5*time.Minute), "in 2h 5m"},
		{now.Add(-50 * time.Hour), "2d 2h ago"},
		{now.Add(30 * time.Second), "in <1m"},
	}
	for _, tc := range cases {
		if got := FormatDue(tc.due, now); got != tc.want {
			t.Errorf("FormatDue(%v) = %q, want %q", tc.due.Sub(now), got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q", got)
	}
	if got := FormatNumber(-1000); got != "-1,000" {
		t.Errorf("FormatNumber(-1000) = %q", got)
	}
}
