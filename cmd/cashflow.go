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
	flagCashflowDate  string
	flagCashflowNotes string
)

var cashflowCmd = &cobra.Command{
	Use:     "cashflow",
	Aliases: []string{"cf"},
	Short:   "List income, expenses and payments",
	RunE:    runCashflowList,
}

var cashflowAddCmd = &cobra.Command{
	Use:       "add <income|expense|payment> <amount>",
	Short:     "Record a cashflow entry",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"income", "expense", "payment"},
	RunE:      runCashflowAdd,
}

func init() {
	cashflowAddCmd.Flags().StringVar(&flagCashflowDate, "date", "", "Date (YYYY-MM-DD or +/-days, default today)")
	cashflowAddCmd.Flags().StringVar(&flagCashflowNotes, "notes", "", "Free-form notes")

	cashflowCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List cashflow entries", RunE: runCashflowList},
		cashflowAddCmd,
		newRemoveCmd("cashflow entry",
			func(l *ledger.Ledger) ([]string, error) {
				rs, err := l.Cashflow.Load()
				return recordIDs(rs), err
			},
			(*ledger.Ledger).RemoveCashflow),
	)
	rootCmd.AddCommand(cashflowCmd)
}

func runCashflowList(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderCashflow(vm.Cashflow, cfg.General.Currency))
		fmt.Printf("\n  Net cashflow: %s\n", cli.FormatCurrency(vm.Summary.NetCashflow, cfg.General.Currency))
		return nil
	})
}

func runCashflowAdd(_ *cobra.Command, args []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		amount, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		date, err := parseDay(flagCashflowDate, l.Now())
		if err != nil {
			return err
		}
		e, err := l.AddCashflow(model.CashflowEntry{
			Kind:   model.CashflowKind(args[0]),
			Amount: amount,
			Date:   date,
			Notes:  flagCashflowNotes,
		})
		if err != nil {
			return explainAdd(err, "type must be income, expense or payment and amount above zero")
		}
		fmt.Printf("  Added %s %s on %s (%s)\n", e.Kind.Label(),
			cli.FormatCurrency(e.Amount, cfg.General.Currency), cli.FormatDate(e.Date), cli.ShortID(e.ID))
		return nil
	})
}
