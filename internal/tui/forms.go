package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
)

// formKind identifies which record an open form creates.
type formKind int

const (
	formNone formKind = iota
	formCashflow
	formSavings
	formTarget
	formFund
	formTask
	formGoal
)

// formValues is bound to whichever add form is open.
type formValues struct {
	Kind       string
	Amount     string
	Date       string
	Notes      string
	Name       string
	Units      string
	NAV        string
	Withdrawal string
	Due        string
	Saved      string
	Monthly    string
}

const dueLayout = "2006-01-02 15:04"

func newFormValues(now time.Time) *formValues {
	return &formValues{
		Kind: string(model.KindIncome),
		Date: now.Format("2006-01-02"),
		Due:  now.Add(time.Hour).Format(dueLayout),
	}
}

func validateAmount(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if !d.IsPositive() {
		return fmt.Errorf("must be above zero")
	}
	return nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return fmt.Errorf("enter a number, zero or more")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := model.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateDue(s string) error {
	if _, err := time.ParseInLocation(dueLayout, strings.TrimSpace(s), time.Local); err != nil {
		return fmt.Errorf("use YYYY-MM-DD HH:MM")
	}
	return nil
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func amountInput(title string, v *string) *huh.Input {
	return huh.NewInput().Title(title).Value(v).Validate(validateAmount)
}

func dateInput(title string, v *string) *huh.Input {
	return huh.NewInput().Title(title).Placeholder("YYYY-MM-DD").Value(v).Validate(validateDate)
}

func notesInput(v *string) *huh.Input {
	return huh.NewInput().Title("Notes").Value(v)
}

// newAddForm builds the form for kind bound to vals.
func newAddForm(kind formKind, vals *formValues) *huh.Form {
	var fields []huh.Field

	switch kind {
	case formCashflow:
		fields = []huh.Field{
			huh.NewSelect[string]().Title("Type").Options(
				huh.NewOption("Income", string(model.KindIncome)),
				huh.NewOption("Expense", string(model.KindExpense)),
				huh.NewOption("Payment", string(model.KindPayment)),
			).Value(&vals.Kind),
			amountInput("Amount", &vals.Amount),
			dateInput("Date", &vals.Date),
			notesInput(&vals.Notes),
		}
	case formSavings:
		fields = []huh.Field{
			huh.NewSelect[string]().Title("Type").Options(
				huh.NewOption(model.SavingsFixedDeposit.Label(), string(model.SavingsFixedDeposit)),
				huh.NewOption(model.SavingsMutualFund.Label(), string(model.SavingsMutualFund)),
				huh.NewOption(model.SavingsStocks.Label(), string(model.SavingsStocks)),
			).Value(&vals.Kind),
			amountInput("Amount", &vals.Amount),
			dateInput("Date", &vals.Date),
			notesInput(&vals.Notes),
		}
	case formTarget:
		fields = []huh.Field{
			huh.NewInput().Title("Name").Value(&vals.Name).Validate(required("name")),
			amountInput("Amount", &vals.Amount),
			dateInput("Target date", &vals.Date),
			notesInput(&vals.Notes),
		}
	case formFund:
		fields = []huh.Field{
			huh.NewInput().Title("Fund name").Value(&vals.Name).Validate(required("name")),
			amountInput("Units", &vals.Units),
			amountInput("NAV", &vals.NAV),
			huh.NewInput().Title("Monthly withdrawal").Value(&vals.Withdrawal).Validate(validateOptionalAmount),
		}
	case formTask:
		fields = []huh.Field{
			huh.NewInput().Title("Title").Value(&vals.Name).Validate(required("title")),
			huh.NewInput().Title("Due").Placeholder(dueLayout).Value(&vals.Due).Validate(validateDue),
			notesInput(&vals.Notes),
		}
	case formGoal:
		fields = []huh.Field{
			amountInput("Target amount", &vals.Amount),
			dateInput("Target date", &vals.Date),
			huh.NewInput().Title("Saved so far").Value(&vals.Saved).Validate(validateOptionalAmount),
			huh.NewInput().Title("Monthly add").Value(&vals.Monthly).Validate(validateOptionalAmount),
		}
	default:
		return nil
	}

	return huh.NewForm(huh.NewGroup(fields...)).WithShowHelp(true)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func date(s string) model.Date {
	d, _ := model.ParseDate(strings.TrimSpace(s))
	return d
}

// submitForm persists the completed form through the ledger and returns a
// status message.
func submitForm(l *ledger.Ledger, kind formKind, v *formValues) (string, error) {
	switch kind {
	case formCashflow:
		e, err := l.AddCashflow(model.CashflowEntry{
			Kind: model.CashflowKind(v.Kind), Amount: dec(v.Amount), Date: date(v.Date), Notes: v.Notes,
		})
		return "Added " + e.Kind.Label(), err
	case formSavings:
		e, err := l.AddSavings(model.SavingsEntry{
			Type: model.SavingsType(v.Kind), Amount: dec(v.Amount), Date: date(v.Date), Notes: v.Notes,
		})
		return "Added " + e.Type.Label(), err
	case formTarget:
		t, err := l.AddTarget(model.Target{Name: v.Name, Amount: dec(v.Amount), Date: date(v.Date), Notes: v.Notes})
		return "Added target " + t.Name, err
	case formFund:
		f, err := l.AddFund(model.PortfolioFund{
			Name: v.Name, Units: dec(v.Units), NAV: dec(v.NAV), MonthlyWithdrawal: dec(v.Withdrawal),
		})
		return "Added fund " + f.Name, err
	case formTask:
		due, _ := time.ParseInLocation(dueLayout, strings.TrimSpace(v.Due), time.Local)
		t, err := l.AddTask(model.Task{Title: v.Name, DueAt: due, Notes: v.Notes})
		return "Added reminder " + t.Title, err
	case formGoal:
		err := l.SetGoal(model.SavingsGoal{
			TargetAmount: dec(v.Amount), TargetDate: date(v.Date), CurrentSaved: dec(v.Saved), MonthlyAdd: dec(v.Monthly),
		})
		return "Goal updated", err
	}
	return "", nil
}
