package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/fintrack/internal/store"
)

// writeDump creates a temp dump file and returns a DiscoveredFile for it.
func writeDump(t *testing.T, name, content string) DiscoveredFile {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return discovered(path)
}

func TestParseFile_ObjectWithStringValues(t *testing.T) {
	df := writeDump(t, "dump.json", `{
		"finance_cashflow_v2": "[{\"id\":\"a\",\"type\":\"income\",\"amount\":72000,\"date\":\"2026-10-17\",\"notes\":\"Monthly salary\"}]",
		"finance_targets_v2": [{"id":"t","name":"Emergency Fund","amount":300000,"date":"2027-06-16","notes":""}],
		"theme": "dark"
	}`)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(result.Items))
	}
	if result.Items[0].Key != store.KeyCashflow || result.Items[0].Records != 1 {
		t.Errorf("first item = %+v", result.Items[0])
	}
	if !strings.HasPrefix(string(result.Items[0].Value), `[{"id":"a"`) {
		t.Errorf("cashflow value not unwrapped: %s", result.Items[0].Value)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "theme" {
		t.Errorf("Skipped = %v, want [theme]", result.Skipped)
	}
}

func TestParseFile_BadShapeCounted(t *testing.T) {
	df := writeDump(t, "dump.json", `{"finance_savings_v2": {"not":"a list"}, "finance_goal_v1": {"targetAmount":500000,"targetDate":"2027-10-19","currentSaved":120000,"monthlyAdd":15000}}`)

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", result.ParseErrors)
	}
	if len(result.Items) != 1 || result.Items[0].Key != store.KeyGoal || result.Items[0].Records != -1 {
		t.Errorf("Items = %+v", result.Items)
	}
}

func TestParseFile_Lines(t *testing.T) {
	df := writeDump(t, "dump.jsonl", strings.Join([]string{
		`{"key":"reminders_tasks_v1","value":"[]"}`,
		`not json`,
		`{"key":"reminders_tasks_v1","value":[{"id":"x","title":"Pay card bill","notes":"","dueAt":"2026-10-19T11:00:00Z","completed":false}]}`,
	}, "\n"))

	result := ParseFile(df)
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if result.ParseErrors != 1 {
		t.Errorf("ParseErrors = %d, want 1", result.ParseErrors)
	}
	if len(result.Items) != 1 || result.Items[0].Records != 1 {
		t.Errorf("later line did not replace earlier: %+v", result.Items)
	}
}

func TestParseFile_NotAnObject(t *testing.T) {
	df := writeDump(t, "dump.json", `[1,2,3]`)
	if result := ParseFile(df); result.Err == nil {
		t.Fatal("expected error for array dump")
	}
}

func TestScanDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.jsonl", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o600); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ScanDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %d, want 2", len(files))
	}
	if !files[0].Lines || files[1].Lines {
		t.Errorf("layout detection wrong: %+v", files)
	}
}
