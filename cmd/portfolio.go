package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
)

var flagFundWithdrawal string

var portfolioCmd = &cobra.Command{
	Use:     "portfolio",
	Aliases: []string{"funds"},
	Short:   "List fund holdings, value and withdrawal runway",
	RunE:    runPortfolioList,
}

var portfolioAddCmd = &cobra.Command{
	Use:   "add <name> <units> <nav>",
	Short: "Add a fund holding",
	Args:  cobra.ExactArgs(3),
	RunE:  runPortfolioAdd,
}

func init() {
	portfolioAddCmd.Flags().StringVar(&flagFundWithdrawal, "withdrawal", "0", "Monthly withdrawal from this fund")

	portfolioCmd.AddCommand(
		&cobra.Command{Use: "list", Short: "List fund holdings", RunE: runPortfolioList},
		portfolioAddCmd,
		newRemoveCmd("fund",
			func(l *ledger.Ledger) ([]string, error) {
				rs, err := l.Portfolio.Load()
				return recordIDs(rs), err
			},
			(*ledger.Ledger).RemoveFund),
	)
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolioList(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(cli.RenderPortfolio(vm.Portfolio, cfg.General.Currency))
		return nil
	})
}

func runPortfolioAdd(_ *cobra.Command, args []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		units, err := parseAmount(args[1])
		if err != nil {
			return err
		}
		nav, err := parseAmount(args[2])
		if err != nil {
			return err
		}
		withdrawal, err := parseAmount(flagFundWithdrawal)
		if err != nil {
			return err
		}
		f, err := l.AddFund(model.PortfolioFund{Name: args[0], Units: units, NAV: nav, MonthlyWithdrawal: withdrawal})
		if err != nil {
			return explainAdd(err, "name, units and NAV above zero are required")
		}
		fmt.Printf("  Added fund %s worth %s (%s)\n", f.Name,
			cli.FormatCurrency(f.Value(), cfg.General.Currency), cli.ShortID(f.ID))
		return nil
	})
}
