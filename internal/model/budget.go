package model

import "github.com/shopspring/decimal"

// GoalProjection holds the savings goal forecast.
type GoalProjection struct {
	Gap              decimal.Decimal `json:"gap"`
	MonthsLeft       int             `json:"months_left"`
	RequiredPerMonth decimal.Decimal `json:"required_per_month"`
	Projected        decimal.Decimal `json:"projected"`
	OnTrack          bool            `json:"on_track"`
	ProgressPercent  float64         `json:"progress_percent"`
}

// TaskStatus is the derived due-state of a task at a given instant.
type TaskStatus string

// Task statuses.
const (
	TaskUpcoming TaskStatus = "upcoming"
	TaskDueSoon  TaskStatus = "due-soon"
	TaskOverdue  TaskStatus = "overdue"
	TaskDone     TaskStatus = "done"
)
