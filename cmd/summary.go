package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Totals across cashflow, savings, targets and reminders",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		cur := cfg.General.Currency

		fmt.Println()
		fmt.Println(cli.RenderTitle("FINTRACK  " + vm.At.Format("Mon Jan 2, 2006")))
		fmt.Println()
		fmt.Print(cli.RenderSummary(vm, cur))
		fmt.Println()
		fmt.Print(cli.RenderGoal(vm.Goal, cur))

		c := vm.Tasks.Counts
		if c.Overdue > 0 || c.DueSoon > 0 {
			fmt.Printf("\n  Reminders: %d overdue, %d due soon. Run `fintrack tasks`.\n", c.Overdue, c.DueSoon)
		}
		return nil
	})
}
