package pipeline

import (
	"time"

	"github.com/theirongolddev/fintrack/internal/model"
)

// DefaultDueSoon is the window before the due time in which a task counts as due soon.
const DefaultDueSoon = 24 * time.Hour

// TaskStatusAt classifies a task against the wall clock.
func TaskStatusAt(t model.Task, now time.Time, dueSoon time.Duration) model.TaskStatus {
	switch {
	case t.Completed:
		return model.TaskDone
	case t.DueAt.Before(now):
		return model.TaskOverdue
	case t.DueAt.Sub(now) <= dueSoon:
		return model.TaskDueSoon
	default:
		return model.TaskUpcoming
	}
}

// CountTasks buckets tasks by status.
func CountTasks(tasks []model.Task, now time.Time, dueSoon time.Duration) model.TaskCounts {
	var c model.TaskCounts
	for _, t := range tasks {
		c.Total++
		switch TaskStatusAt(t, now, dueSoon) {
		case model.TaskDone:
			c.Completed++
			continue
		case model.TaskOverdue:
			c.Overdue++
		case model.TaskDueSoon:
			c.DueSoon++
		}
		c.Pending++
	}
	return c
}

// FilterVisibleTasks drops completed tasks unless showCompleted is set.
func FilterVisibleTasks(tasks []model.Task, showCompleted bool) []model.Task {
	if showCompleted {
		return tasks
	}
	var result []model.Task
	for _, t := range tasks {
		if !t.Completed {
			result = append(result, t)
		}
	}
	return result
}
