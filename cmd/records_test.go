package cmd

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
)

var now = time.Date(2026, time.October, 19, 9, 30, 0, 0, time.Local)

func TestParseAmount(t *testing.T) {
	got, err := parseAmount("72,000.50")
	if err != nil {
		t.Fatalf("parseAmount: %v", err)
	}
	if !got.Equal(decimal.RequireFromString("72000.50")) {
		t.Errorf("amount = %s", got)
	}
	if _, err := parseAmount("-5"); err == nil {
		t.Error("negative amount accepted")
	}
	if _, err := parseAmount("abc"); err == nil {
		t.Error("non-numeric amount accepted")
	}
}

func TestParseDay(t *testing.T) {
	tests := []struct {
		in   string
		want model.Date
	}{
		{"", model.NewDate(2026, time.October, 19)},
		{"today", model.NewDate(2026, time.October, 19)},
		{"+240", model.NewDate(2027, time.June, 16)},
		{"-2", model.NewDate(2026, time.October, 17)},
		{"2026-12-31", model.NewDate(2026, time.December, 31)},
	}
	for _, tt := range tests {
		got, err := parseDay(tt.in, now)
		if err != nil {
			t.Fatalf("parseDay(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseDay(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
	if _, err := parseDay("31/12/2026", now); err == nil {
		t.Error("bad date accepted")
	}
}

func TestParseDue(t *testing.T) {
	got, err := parseDue("+2h", now)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(now.Add(2 * time.Hour)) {
		t.Errorf("+2h = %v", got)
	}

	got, err = parseDue("2026-10-20 18:00", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 18 || got.Day() != 20 {
		t.Errorf("absolute due = %v", got)
	}

	got, err = parseDue("2026-10-21", now)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 9 {
		t.Errorf("date-only due hour = %d, want 9", got.Hour())
	}

	if _, err := parseDue("soon", now); err == nil {
		t.Error("bad due accepted")
	}
}

func TestResolveID(t *testing.T) {
	ids := []string{"3f2a9c10-aaaa", "3f2b0000-bbbb", "c81e728d-cccc"}

	got, err := resolveID("c81e", ids)
	if err != nil || got != "c81e728d-cccc" {
		t.Errorf("resolveID(c81e) = %q, %v", got, err)
	}
	if got, err := resolveID("3f2b0000-bbbb", ids); err != nil || got != "3f2b0000-bbbb" {
		t.Errorf("exact match = %q, %v", got, err)
	}
	if _, err := resolveID("3f2", ids); err == nil {
		t.Error("ambiguous prefix accepted")
	}
	if _, err := resolveID("ffff", ids); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("missing id err = %v, want ErrNotFound", err)
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", "x", "--detach=true"})
	if len(got) != 3 || got[0] != "daemon" || got[1] != "--addr" || got[2] != "x" {
		t.Errorf("filterDetachArg = %v", got)
	}
}

func TestPIDFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fintrackd.pid")
	if err := writePID(path, 4242); err != nil {
		t.Fatal(err)
	}
	pid, err := readPID(path)
	if err != nil || pid != 4242 {
		t.Fatalf("readPID = %d, %v", pid, err)
	}

	st := daemonRuntimeState{PID: 4242, Addr: "127.0.0.1:8797", DBPath: "/tmp/x.db"}
	if err := writeState(statePath(path), st); err != nil {
		t.Fatal(err)
	}
	back, err := readState(statePath(path))
	if err != nil || back.Addr != st.Addr || back.DBPath != st.DBPath {
		t.Fatalf("readState = %+v, %v", back, err)
	}

	if err := ensureDaemonNotRunning(filepath.Join(t.TempDir(), "missing.pid")); err != nil {
		t.Errorf("missing pid file: %v", err)
	}
}
