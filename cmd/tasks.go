package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
)

var (
	flagTaskDue   string
	flagTaskNotes string
)

var tasksCmd = &cobra.Command{
	Use:     "tasks",
	Aliases: []string{"reminders"},
	Short:   "List reminders, earliest due first",
	RunE:    runTasksList,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a reminder",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksAdd,
}

var tasksToggleCmd = &cobra.Command{
	Use:     "toggle <id>",
	Aliases: []string{"done"},
	Short:   "Mark a reminder complete, or reopen it",
	Args:    cobra.ExactArgs(1),
	RunE:    runTasksToggle,
}

func init() {
	tasksAddCmd.Flags().StringVar(&flagTaskDue, "due", "", `Due time: "YYYY-MM-DD HH:MM", "YYYY-MM-DD", or "+2h30m"`)
	tasksAddCmd.Flags().StringVar(&flagTaskNotes, "notes", "", "Free-form notes")
	_ = tasksAddCmd.MarkFlagRequired("due")

	tasksCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List reminders", RunE: runTasksList},
		tasksAddCmd,
		tasksToggleCmd,
		newRemoveCmd("reminder",
			func(l *ledger.Ledger) ([]string, error) {
				rs, err := l.Tasks.Load()
				return recordIDs(rs), err
			},
			(*ledger.Ledger).RemoveTask),
	)
	rootCmd.AddCommand(tasksCmd)
}

// parseDue accepts an absolute local time, a bare date (09:00 local), or a
// duration from now prefixed with "+".
func parseDue(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "+") {
		d, err := time.ParseDuration(s[1:])
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid due offset %q", s)
		}
		return now.Add(d), nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", time.RFC3339} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t.Add(9 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("invalid due time %q", s)
}

func runTasksList(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderTasks(vm.Tasks, vm))
		if !cfg.General.ShowCompleted && vm.Tasks.Counts.Completed > 0 {
			fmt.Printf("  %d completed hidden, use --show-completed to list them\n", vm.Tasks.Counts.Completed)
		}
		return nil
	})
}

func runTasksAdd(_ *cobra.Command, args []string) error {
	return withLedger(func(_ config.Config, l *ledger.Ledger) error {
		due, err := parseDue(flagTaskDue, l.Now())
		if err != nil {
			return err
		}
		t, err := l.AddTask(model.Task{Title: args[0], DueAt: due, Notes: flagTaskNotes})
		if err != nil {
			return explainAdd(err, "a title and due time are required")
		}
		fmt.Printf("  Added reminder %q due %s (%s)\n", t.Title, cli.FormatDateTime(t.DueAt), cli.ShortID(t.ID))
		return nil
	})
}

func runTasksToggle(_ *cobra.Command, args []string) error {
	return withLedger(func(_ config.Config, l *ledger.Ledger) error {
		tasks, err := l.Tasks.Load()
		if err != nil {
			return err
		}
		id, err := resolveID(args[0], recordIDs(tasks))
		if err != nil {
			return err
		}
		t, err := l.ToggleTask(id)
		if err != nil {
			return err
		}
		if t.Completed {
			fmt.Printf("  Completed %q\n", t.Title)
		} else {
			fmt.Printf("  Reopened %q\n", t.Title)
		}
		return nil
	})
}
