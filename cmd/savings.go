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
	flagSavingsDate  string
	flagSavingsNotes string
)

var savingsCmd = &cobra.Command{
	Use:   "savings",
	Short: "List savings transactions by instrument",
	RunE:  runSavingsList,
}

var savingsAddCmd = &cobra.Command{
	Use:       "add <fd|mutual|stocks> <amount>",
	Short:     "Log a savings transaction",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"fd", "mutual", "stocks"},
	RunE:      runSavingsAdd,
}

func init() {
	savingsAddCmd.Flags().StringVar(&flagSavingsDate, "date", "", "Date (YYYY-MM-DD or +/-days, default today)")
	savingsAddCmd.Flags().StringVar(&flagSavingsNotes, "notes", "", "Free-form notes")

	savingsCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List savings transactions", RunE: runSavingsList},
		savingsAddCmd,
		newRemoveCmd("savings entry",
			func(l *ledger.Ledger) ([]string, error) {
				rs, err := l.Savings.Load()
				return recordIDs(rs), err
			},
			(*ledger.Ledger).RemoveSavings),
	)
	rootCmd.AddCommand(savingsCmd)
}

func runSavingsList(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderSavings(vm.Savings, vm.ByType, cfg.General.Currency))
		fmt.Printf("\n  Total savings: %s\n", cli.FormatCurrency(vm.Summary.SavingsTotal, cfg.General.Currency))
		return nil
	})
}

func runSavingsAdd(_ *cobra.Command, args []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		typ := model.SavingsType(args[0])
		switch typ {
		case model.SavingsFixedDeposit, model.SavingsMutualFund, model.SavingsStocks:
		default:
			return fmt.Errorf("unknown savings type %q (want fd, mutual or stocks)", args[0])
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		date, err := parseDay(flagSavingsDate, l.Now())
		if err != nil {
			return err
		}
		e, err := l.AddSavings(model.SavingsEntry{Type: typ, Amount: amount, Date: date, Notes: flagSavingsNotes})
		if err != nil {
			return explainAdd(err, "amount must be above zero")
		}
		fmt.Printf("  Logged %s %s on %s (%s)\n", e.Type.Label(),
			cli.FormatCurrency(e.Amount, cfg.General.Currency), cli.FormatDate(e.Date), cli.ShortID(e.ID))
		return nil
	})
}
