// Package model defines the record and aggregate types for fintrack collections.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored blobs keep amounts as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Record is implemented by every entity stored in an id-keyed collection.
type Record interface {
	RecordID() string
}

// CashflowKind tags a cashflow entry as money in or money out.
type CashflowKind string

// Cashflow kinds. Expense and payment are both outflows.
const (
	KindIncome  CashflowKind = "income"
	KindExpense CashflowKind = "expense"
	KindPayment CashflowKind = "payment"
)

// IsOutflow reports whether the kind reduces net cashflow.
func (k CashflowKind) IsOutflow() bool {
	return k == KindExpense || k == KindPayment
}

// Label returns the display name of the kind.
func (k CashflowKind) Label() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindPayment:
		return "Payment"
	default:
		return "Expense"
	}
}

// CashflowEntry is one income or expense line.
type CashflowEntry struct {
	ID     string          `json:"id" yaml:"id"`
	Kind   CashflowKind    `json:"type" yaml:"type"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   Date            `json:"date" yaml:"date"`
	Notes  string          `json:"notes" yaml:"notes"`
}

// RecordID implements Record.
func (e CashflowEntry) RecordID() string { return e.ID }

// SavingsType is the instrument a savings transaction went into.
type SavingsType string

// Savings instruments.
const (
	SavingsFixedDeposit SavingsType = "fd"
	SavingsMutualFund   SavingsType = "mutual"
	SavingsStocks       SavingsType = "stocks"
)

// Label returns the display name of the instrument. Unknown tags read as stocks.
func (t SavingsType) Label() string {
	switch t {
	case SavingsFixedDeposit:
		return "Fixed Deposit"
	case SavingsMutualFund:
		return "Mutual Fund"
	default:
		return "Stocks"
	}
}

// SavingsEntry is one savings transaction.
type SavingsEntry struct {
	ID     string          `json:"id" yaml:"id"`
	Type   SavingsType     `json:"type" yaml:"type"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   Date            `json:"date" yaml:"date"`
	Notes  string          `json:"notes" yaml:"notes"`
}

// RecordID implements Record.
func (e SavingsEntry) RecordID() string { return e.ID }

// SavingsGoal is the single goal snapshot of the savings planner.
type SavingsGoal struct {
	TargetAmount decimal.Decimal `json:"targetAmount" yaml:"target_amount"`
	TargetDate   Date            `json:"targetDate" yaml:"target_date"`
	CurrentSaved decimal.Decimal `json:"currentSaved" yaml:"current_saved"`
	MonthlyAdd   decimal.Decimal `json:"monthlyAdd" yaml:"monthly_add"`
}

// SavingsRecord is either a savings transaction or a goal snapshot.
// Exactly one of the fields is set.
type SavingsRecord struct {
	Transaction *SavingsEntry
	Goal        *SavingsGoal
}

// Target is a named amount to reach by a date.
type Target struct {
	ID     string          `json:"id" yaml:"id"`
	Name   string          `json:"name" yaml:"name"`
	Amount decimal.Decimal `json:"amount" yaml:"amount"`
	Date   Date            `json:"date" yaml:"date"`
	Notes  string          `json:"notes" yaml:"notes"`
}

// RecordID implements Record.
func (t Target) RecordID() string { return t.ID }

// PortfolioFund is a fund holding valued at units × nav.
type PortfolioFund struct {
	ID                string          `json:"id" yaml:"id"`
	Name              string          `json:"name" yaml:"name"`
	Units             decimal.Decimal `json:"units" yaml:"units"`
	NAV               decimal.Decimal `json:"nav" yaml:"nav"`
	MonthlyWithdrawal decimal.Decimal `json:"monthlyWithdrawal" yaml:"monthly_withdrawal"`
}

// RecordID implements Record.
func (f PortfolioFund) RecordID() string { return f.ID }

// Value returns units × nav.
func (f PortfolioFund) Value() decimal.Decimal {
	return f.Units.Mul(f.NAV)
}

// Task is a reminder with a due time and a completion flag.
type Task struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Notes     string    `json:"notes" yaml:"notes"`
	DueAt     time.Time `json:"dueAt" yaml:"due_at"`
	Completed bool      `json:"completed" yaml:"completed"`
}

// RecordID implements Record.
func (t Task) RecordID() string { return t.ID }
