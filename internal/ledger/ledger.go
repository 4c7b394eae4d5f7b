// Package ledger runs the read-modify-persist-render cycle over every
// collection. Each mutation re-reads the stored collection before changing it
// and then rewrites it in full.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/seed"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/view"
)

var (
	// ErrIncomplete is returned when a submitted record is missing a required field.
	ErrIncomplete = errors.New("record is missing a required field")
	// ErrNotFound is returned when no record has the given id.
	ErrNotFound = errors.New("record not found")
)

// Ledger holds one typed collection per storage key.
type Ledger struct {
	Cashflow  *store.Collection[[]model.CashflowEntry]
	Savings   *store.Collection[[]model.SavingsEntry]
	Targets   *store.Collection[[]model.Target]
	Goal      *store.Collection[model.SavingsGoal]
	Portfolio *store.Collection[[]model.PortfolioFund]
	Tasks     *store.Collection[[]model.Task]

	now func() time.Time
}

// New binds every collection to db with its default seed. now is the clock
// used for seeds and projections; nil means time.Now.
func New(db *store.DB, now func() time.Time) *Ledger {
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		Cashflow:  store.NewCollection(db, store.KeyCashflow, func() []model.CashflowEntry { return seed.Cashflow(now()) }),
		Savings:   store.NewCollection(db, store.KeySavings, func() []model.SavingsEntry { return seed.Savings(now()) }),
		Targets:   store.NewCollection(db, store.KeyTargets, func() []model.Target { return seed.Targets(now()) }),
		Goal:      store.NewCollection(db, store.KeyGoal, func() model.SavingsGoal { return seed.Goal(now()) }),
		Portfolio: store.NewCollection(db, store.KeyPortfolio, func() []model.PortfolioFund { return seed.Portfolio(now()) }),
		Tasks:     store.NewCollection(db, store.KeyTasks, func() []model.Task { return seed.Tasks(now()) }),
		now:       now,
	}
}

// Now returns the ledger clock.
func (l *Ledger) Now() time.Time { return l.now() }

// State loads every collection. Any unreadable collection fails the whole call.
func (l *Ledger) State() (view.State, error) {
	var (
		s   view.State
		err error
	)
	if s.Cashflow, err = l.Cashflow.Load(); err != nil {
		return s, err
	}
	if s.Savings, err = l.Savings.Load(); err != nil {
		return s, err
	}
	if s.Targets, err = l.Targets.Load(); err != nil {
		return s, err
	}
	if s.Goal, err = l.Goal.Load(); err != nil {
		return s, err
	}
	if s.Portfolio, err = l.Portfolio.Load(); err != nil {
		return s, err
	}
	if s.Tasks, err = l.Tasks.Load(); err != nil {
		return s, err
	}
	return s, nil
}

// Render loads every collection and recomputes every view.
func (l *Ledger) Render(opts view.Options) (view.ViewModel, error) {
	s, err := l.State()
	if err != nil {
		return view.ViewModel{}, err
	}
	if opts.Now.IsZero() {
		opts.Now = l.now()
	}
	return view.Recompute(s, opts), nil
}

// AddCashflow validates and appends a cashflow entry, returning it with its new id.
func (l *Ledger) AddCashflow(e model.CashflowEntry) (model.CashflowEntry, error) {
	if !e.Amount.IsPositive() || e.Date.IsZero() {
		return e, ErrIncomplete
	}
	switch e.Kind {
	case model.KindIncome, model.KindExpense, model.KindPayment:
	default:
		return e, fmt.Errorf("unknown cashflow type %q: %w", e.Kind, ErrIncomplete)
	}
	e.ID = uuid.NewString()
	e.Notes = strings.TrimSpace(e.Notes)
	return e, appendRecord(l.Cashflow, e)
}

// AddSavings validates and appends a savings transaction.
func (l *Ledger) AddSavings(e model.SavingsEntry) (model.SavingsEntry, error) {
	if !e.Amount.IsPositive() || e.Date.IsZero() {
		return e, ErrIncomplete
	}
	if e.Type == "" {
		e.Type = model.SavingsFixedDeposit
	}
	e.ID = uuid.NewString()
	e.Notes = strings.TrimSpace(e.Notes)
	return e, appendRecord(l.Savings, e)
}

// AddTarget validates and appends a target.
func (l *Ledger) AddTarget(t model.Target) (model.Target, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" || !t.Amount.IsPositive() || t.Date.IsZero() {
		return t, ErrIncomplete
	}
	t.ID = uuid.NewString()
	t.Notes = strings.TrimSpace(t.Notes)
	return t, appendRecord(l.Targets, t)
}

// AddFund validates and appends a portfolio holding.
func (l *Ledger) AddFund(f model.PortfolioFund) (model.PortfolioFund, error) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" || !f.Units.IsPositive() || !f.NAV.IsPositive() || f.MonthlyWithdrawal.IsNegative() {
		return f, ErrIncomplete
	}
	f.ID = uuid.NewString()
	return f, appendRecord(l.Portfolio, f)
}

// AddTask validates and appends a reminder. New tasks always start open.
func (l *Ledger) AddTask(t model.Task) (model.Task, error) {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" || t.DueAt.IsZero() {
		return t, ErrIncomplete
	}
	t.ID = uuid.NewString()
	t.Notes = strings.TrimSpace(t.Notes)
	t.Completed = false
	return t, appendRecord(l.Tasks, t)
}

// RemoveCashflow deletes the cashflow entry with the given id.
func (l *Ledger) RemoveCashflow(id string) error { return removeRecord(l.Cashflow, id) }

// RemoveSavings deletes the savings transaction with the given id.
func (l *Ledger) RemoveSavings(id string) error { return removeRecord(l.Savings, id) }

// RemoveTarget deletes the target with the given id.
func (l *Ledger) RemoveTarget(id string) error { return removeRecord(l.Targets, id) }

// RemoveFund deletes the portfolio holding with the given id.
func (l *Ledger) RemoveFund(id string) error { return removeRecord(l.Portfolio, id) }

// RemoveTask deletes the reminder with the given id.
func (l *Ledger) RemoveTask(id string) error { return removeRecord(l.Tasks, id) }

// ToggleTask flips the completed flag of the reminder with the given id and
// returns the updated task.
func (l *Ledger) ToggleTask(id string) (model.Task, error) {
	tasks, err := l.Tasks.Load()
	if err != nil {
		return model.Task{}, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			return tasks[i], l.Tasks.Save(tasks)
		}
	}
	return model.Task{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
}

// SetGoal overwrites the savings goal snapshot.
func (l *Ledger) SetGoal(g model.SavingsGoal) error {
	if !g.TargetAmount.IsPositive() || g.TargetDate.IsZero() ||
		g.CurrentSaved.IsNegative() || g.MonthlyAdd.IsNegative() {
		return ErrIncomplete
	}
	return l.Goal.Save(g)
}

func appendRecord[T model.Record](c *store.Collection[[]T], rec T) error {
	records, err := c.Load()
	if err != nil {
		return err
	}
	records = append(records, rec)
	return c.Save(records)
}

func removeRecord[T model.Record](c *store.Collection[[]T], id string) error {
	records, err := c.Load()
	if err != nil {
		return err
	}

	kept := make([]T, 0, len(records))
	for _, r := range records {
		if r.RecordID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("%s %s: %w", c.Key(), id, ErrNotFound)
	}
	return c.Save(kept)
}
