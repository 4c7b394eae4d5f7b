package cmd

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/chart"
	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
)

var (
	flagTrackerChart string
	flagSavingsChart string
)

var trackerCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Monthly income, expenses, savings and portfolio",
	RunE:  runTracker,
}

func init() {
	trackerCmd.Flags().StringVar(&flagTrackerChart, "chart", "", "Also write a PNG bar chart of monthly portfolio to this path")
	trackerCmd.Flags().StringVar(&flagSavingsChart, "savings-chart", "", "Also write a PNG pie chart of savings by instrument to this path")
	rootCmd.AddCommand(trackerCmd)
}

func runTracker(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		cur := cfg.General.Currency

		fmt.Println()
		fmt.Print(cli.RenderTracker(vm.Tracker, cur))

		if flagTrackerChart != "" {
			err := writePNG(flagTrackerChart, func(f *os.File) error {
				return chart.Tracker(f, vm.Tracker.Months, func(v float64) string {
					return cli.FormatCurrency(decimal.NewFromFloat(v), cur)
				})
			})
			if err != nil {
				return err
			}
			progress("  Wrote %s\n", flagTrackerChart)
		}
		if flagSavingsChart != "" {
			err := writePNG(flagSavingsChart, func(f *os.File) error {
				return chart.SavingsMix(f, vm.ByType)
			})
			if err != nil {
				return err
			}
			progress("  Wrote %s\n", flagSavingsChart)
		}
		return nil
	})
}

func writePNG(path string, draw func(*os.File) error) error {
	f, err := os.Create(path) //nolint:gosec // output path is chosen by the local user
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	if err := draw(f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("rendering chart: %w", err)
	}
	return f.Close()
}
