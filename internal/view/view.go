// Package view projects collections and their aggregates into the view model
// every front-end renders. Recompute is pure and idempotent.
package view

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// Empty-state messages.
const (
	EmptyCashflow  = "No entries yet."
	EmptySavings   = "No savings logged yet."
	EmptyTargets   = "No targets added."
	EmptyTracker   = "No monthly data yet."
	EmptyPortfolio = "No funds added."
	EmptyTasks     = "No reminders yet."
	AllCaughtUp    = "All caught up."
	NoNotes        = "No notes"
)

// Action is what a row's button does.
type Action string

// Row actions.
const (
	ActionRemove Action = "remove"
	ActionToggle Action = "toggle"
)

// State is every collection as currently stored.
type State struct {
	Cashflow  []model.CashflowEntry `json:"cashflow"`
	Savings   []model.SavingsEntry  `json:"savings"`
	Targets   []model.Target        `json:"targets"`
	Goal      model.SavingsGoal     `json:"goal"`
	Portfolio []model.PortfolioFund `json:"portfolio"`
	Tasks     []model.Task          `json:"tasks"`
}

// Options controls view-dependent filtering.
type Options struct {
	Now           time.Time
	ShowCompleted bool
	DueSoon       time.Duration
}

// Row is one rendered list entry.
type Row struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Badge    string          `json:"badge,omitempty"`
	Date     model.Date      `json:"date"`
	Notes    string          `json:"notes"`
	Amount   decimal.Decimal `json:"amount"`
	Negative bool            `json:"negative,omitempty"`
	Action   Action          `json:"action"`
}

// ListView is a list plus the message shown when it is empty.
type ListView struct {
	Rows  []Row  `json:"rows"`
	Empty string `json:"empty,omitempty"`
}

// TargetsView is the targets list and its header summary.
type TargetsView struct {
	ListView
	Total   decimal.Decimal `json:"total"`
	Nearest *model.Target   `json:"nearest,omitempty"`
}

// TrackerView holds the monthly tracker rows, newest month first.
type TrackerView struct {
	Months []model.MonthStats `json:"months"`
	Empty  string             `json:"empty,omitempty"`
}

// GoalView pairs the goal snapshot with its projection.
type GoalView struct {
	Goal       model.SavingsGoal    `json:"goal"`
	Projection model.GoalProjection `json:"projection"`
}

// FundRow is one portfolio holding.
type FundRow struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Units             decimal.Decimal `json:"units"`
	NAV               decimal.Decimal `json:"nav"`
	Value             decimal.Decimal `json:"value"`
	MonthlyWithdrawal decimal.Decimal `json:"monthly_withdrawal"`
	Action            Action          `json:"action"`
}

// PortfolioView is the fund list and its totals.
type PortfolioView struct {
	Funds []FundRow            `json:"funds"`
	Stats model.PortfolioStats `json:"stats"`
	Empty string               `json:"empty,omitempty"`
}

// TaskRow is one reminder.
type TaskRow struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Notes     string           `json:"notes"`
	DueAt     time.Time        `json:"due_at"`
	Status    model.TaskStatus `json:"status"`
	Completed bool             `json:"completed"`
	Action    Action           `json:"action"`
}

// TaskView is the visible reminders and the status counts over all of them.
type TaskView struct {
	Rows   []TaskRow        `json:"rows"`
	Counts model.TaskCounts `json:"counts"`
	Empty  string           `json:"empty,omitempty"`
}

// ViewModel is everything the front-ends display.
type ViewModel struct {
	At        time.Time                `json:"at"`
	Summary   model.SummaryStats       `json:"summary"`
	Cashflow  ListView                 `json:"cashflow"`
	Savings   ListView                 `json:"savings"`
	ByType    []model.SavingsTypeStats `json:"savings_by_type"`
	Targets   TargetsView              `json:"targets"`
	Tracker   TrackerView              `json:"tracker"`
	Goal      GoalView                 `json:"goal"`
	Portfolio PortfolioView            `json:"portfolio"`
	Tasks     TaskView                 `json:"tasks"`
}

// Recompute derives every view from s. It does no I/O.
func Recompute(s State, opts Options) ViewModel {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.DueSoon <= 0 {
		opts.DueSoon = pipeline.DefaultDueSoon
	}

	return ViewModel{
		At:        opts.Now,
		Summary:   pipeline.Summarize(s.Cashflow, s.Savings, s.Targets),
		Cashflow:  cashflowList(s.Cashflow),
		Savings:   savingsList(s.Savings),
		ByType:    pipeline.AggregateSavingsByType(s.Savings),
		Targets:   targetsView(s.Targets),
		Tracker:   trackerView(s.Cashflow, s.Savings),
		Goal:      GoalView{Goal: s.Goal, Projection: pipeline.ProjectGoal(s.Goal, opts.Now)},
		Portfolio: portfolioView(s.Portfolio),
		Tasks:     taskView(s.Tasks, opts),
	}
}

func notesOrDefault(n string) string {
	if n == "" {
		return NoNotes
	}
	return n
}

func cashflowList(entries []model.CashflowEntry) ListView {
	if len(entries) == 0 {
		return ListView{Empty: EmptyCashflow}
	}
	var lv ListView
	for _, e := range pipeline.SortCashflow(entries) {
		lv.Rows = append(lv.Rows, Row{
			ID:       e.ID,
			Title:    e.Kind.Label(),
			Badge:    e.Kind.Label(),
			Date:     e.Date,
			Notes:    notesOrDefault(e.Notes),
			Amount:   e.Amount,
			Negative: e.Kind.IsOutflow(),
			Action:   ActionRemove,
		})
	}
	return lv
}

func savingsList(entries []model.SavingsEntry) ListView {
	if len(entries) == 0 {
		return ListView{Empty: EmptySavings}
	}
	var lv ListView
	for _, e := range pipeline.SortSavings(entries) {
		lv.Rows = append(lv.Rows, Row{
			ID:     e.ID,
			Title:  e.Type.Label(),
			Badge:  e.Type.Label(),
			Date:   e.Date,
			Notes:  notesOrDefault(e.Notes),
			Amount: e.Amount,
			Action: ActionRemove,
		})
	}
	return lv
}

func targetsView(targets []model.Target) TargetsView {
	tv := TargetsView{Total: pipeline.TargetsTotal(targets)}
	if len(targets) == 0 {
		tv.Empty = EmptyTargets
		return tv
	}
	if nearest, ok := pipeline.NearestTarget(targets); ok {
		tv.Nearest = &nearest
	}
	for _, t := range pipeline.SortTargets(targets) {
		tv.Rows = append(tv.Rows, Row{
			ID:     t.ID,
			Title:  t.Name,
			Date:   t.Date,
			Notes:  notesOrDefault(t.Notes),
			Amount: t.Amount,
			Action: ActionRemove,
		})
	}
	return tv
}

func trackerView(cashflow []model.CashflowEntry, savings []model.SavingsEntry) TrackerView {
	months := pipeline.MonthlyTracker(cashflow, savings)
	if len(months) == 0 {
		return TrackerView{Empty: EmptyTracker}
	}
	return TrackerView{Months: months}
}

func portfolioView(funds []model.PortfolioFund) PortfolioView {
	pv := PortfolioView{Stats: pipeline.AggregatePortfolio(funds)}
	if len(funds) == 0 {
		pv.Empty = EmptyPortfolio
		return pv
	}
	for _, f := range funds {
		pv.Funds = append(pv.Funds, FundRow{
			ID:                f.ID,
			Name:              f.Name,
			Units:             f.Units,
			NAV:               f.NAV,
			Value:             f.Value(),
			MonthlyWithdrawal: f.MonthlyWithdrawal,
			Action:            ActionRemove,
		})
	}
	return pv
}

func taskView(tasks []model.Task, opts Options) TaskView {
	tv := TaskView{Counts: pipeline.CountTasks(tasks, opts.Now, opts.DueSoon)}

	visible := pipeline.FilterVisibleTasks(pipeline.SortTasks(tasks), opts.ShowCompleted)
	for _, t := range visible {
		tv.Rows = append(tv.Rows, TaskRow{
			ID:        t.ID,
			Title:     t.Title,
			Notes:     t.Notes,
			DueAt:     t.DueAt,
			Status:    pipeline.TaskStatusAt(t, opts.Now, opts.DueSoon),
			Completed: t.Completed,
			Action:    ActionToggle,
		})
	}

	switch {
	case len(tasks) == 0:
		tv.Empty = EmptyTasks
	case len(tv.Rows) == 0:
		tv.Empty = AllCaughtUp
	}
	return tv
}
