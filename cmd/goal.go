package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
)

var (
	flagGoalTarget  string
	flagGoalDate    string
	flagGoalSaved   string
	flagGoalMonthly string
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the savings goal and its projection",
	RunE:  runGoalShow,
}

var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update the savings goal; omitted flags keep their current value",
	Args:  cobra.NoArgs,
	RunE:  runGoalSet,
}

func init() {
	goalSetCmd.Flags().StringVar(&flagGoalTarget, "target", "", "Target amount")
	goalSetCmd.Flags().StringVar(&flagGoalDate, "date", "", "Target date (YYYY-MM-DD or +days)")
	goalSetCmd.Flags().StringVar(&flagGoalSaved, "saved", "", "Amount saved so far")
	goalSetCmd.Flags().StringVar(&flagGoalMonthly, "monthly", "", "Planned monthly addition")

	goalCmd.AddCommand(
		&cobra.Command{Use: "show", Short: "Show the savings goal", RunE: runGoalShow},
		goalSetCmd,
	)
	rootCmd.AddCommand(goalCmd)
}

func runGoalShow(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderGoal(vm.Goal, cfg.General.Currency))
		return nil
	})
}

func runGoalSet(cmd *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		g, err := l.Goal.Load()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("target") {
			if g.TargetAmount, err = parseAmount(flagGoalTarget); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("date") {
			if g.TargetDate, err = parseDay(flagGoalDate, l.Now()); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("saved") {
			if g.CurrentSaved, err = parseAmount(flagGoalSaved); err != nil {
				return err
			}
		}
		if cmd.Flags().Changed("monthly") {
			if g.MonthlyAdd, err = parseAmount(flagGoalMonthly); err != nil {
				return err
			}
		}
		if err := l.SetGoal(g); err != nil {
			return explainAdd(err, "target amount above zero and a target date are required")
		}

		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderGoal(vm.Goal, cfg.General.Currency))
		return nil
	})
}
