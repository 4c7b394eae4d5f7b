package pipeline

import (
	"sort"

	"github.com/theirongolddev/fintrack/internal/model"
)

// SortCashflow returns a copy of entries, most recent date first.
func SortCashflow(entries []model.CashflowEntry) []model.CashflowEntry {
	out := append([]model.CashflowEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SortSavings returns a copy of entries, most recent date first.
func SortSavings(entries []model.SavingsEntry) []model.SavingsEntry {
	out := append([]model.SavingsEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SortTargets returns a copy of targets, earliest date first.
func SortTargets(targets []model.Target) []model.Target {
	out := append([]model.Target(nil), targets...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// SortTasks returns a copy of tasks, earliest due first.
func SortTasks(tasks []model.Task) []model.Task {
	out := append([]model.Task(nil), tasks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}
