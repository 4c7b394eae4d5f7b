package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
)

var (
	flagTargetDate  string
	flagTargetNotes string
)

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "List savings targets, nearest first",
	RunE:  runTargetsList,
}

var targetsAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a savings target",
	Args:  cobra.ExactArgs(2),
	RunE:  runTargetsAdd,
}

func init() {
	targetsAddCmd.Flags().StringVar(&flagTargetDate, "date", "", "Target date (YYYY-MM-DD or +days)")
	targetsAddCmd.Flags().StringVar(&flagTargetNotes, "notes", "", "Free-form notes")
	_ = targetsAddCmd.MarkFlagRequired("date")

	targetsCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List targets", RunE: runTargetsList},
		targetsAddCmd,
		newRemoveCmd("target",
			func(l *ledger.Ledger) ([]string, error) {
				rs, err := l.Targets.Load()
				return recordIDs(rs), err
			},
			(*ledger.Ledger).RemoveTarget),
	)
	rootCmd.AddCommand(targetsCmd)
}

func runTargetsList(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderTargets(vm.Targets, cfg.General.Currency))
		return nil
	})
}

func runTargetsAdd(_ *cobra.Command, args []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		date, err := parseDay(flagTargetDate, l.Now())
		if err != nil {
			return err
		}
		t, err := l.AddTarget(model.Target{Name: args[0], Amount: amount, Date: date, Notes: flagTargetNotes})
		if err != nil {
			return explainAdd(err, "name and an amount above zero are required")
		}
		fmt.Printf("  Added target %s: %s by %s (%s)\n", t.Name,
			cli.FormatCurrency(t.Amount, cfg.General.Currency), cli.FormatDate(t.Date), cli.ShortID(t.ID))
		return nil
	})
}
