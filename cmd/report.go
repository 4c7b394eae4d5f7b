package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/report"
)

var (
	flagReportHTML     string
	flagReportMarkdown bool
	flagReportWidth    int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render a full finance report",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&flagReportHTML, "html", "", "Write the report as an HTML page to this path")
	reportCmd.Flags().BoolVar(&flagReportMarkdown, "markdown", false, "Print raw markdown instead of styled output")
	reportCmd.Flags().IntVarP(&flagReportWidth, "width", "w", 100, "Wrap width for terminal output")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		md := report.Markdown(vm, cfg.General.Currency)

		if flagReportHTML != "" {
			page, err := report.HTML(md)
			if err != nil {
				return err
			}
			if err := os.WriteFile(flagReportHTML, page, 0o600); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			progress("  Wrote %s\n", flagReportHTML)
			return nil
		}

		if flagReportMarkdown {
			fmt.Print(md)
			return nil
		}
		out, err := report.Terminal(md, flagReportWidth)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	})
}
