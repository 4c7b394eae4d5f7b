package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/export"
	"github.com/theirongolddev/fintrack/internal/ledger"
)

var flagExportFormat string

var exportCmd = &cobra.Command{
	Use:   "export <file|->",
	Short: "Export every collection to xlsx, yaml or json",
	Long: "Export every collection to a file. The format is taken from the file extension\n" +
		"unless --format is given. Use - to write to stdout (yaml or json only).\n" +
		"Amounts are written as numbers in yaml and json.",
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "", "xlsx, yaml or json")
	rootCmd.AddCommand(exportCmd)
}

func runExport(_ *cobra.Command, args []string) error {
	path := args[0]

	var format export.Format
	var err error
	switch {
	case flagExportFormat != "":
		format, err = export.ParseFormat(flagExportFormat)
	case path == "-":
		format = export.FormatJSON
	default:
		format, err = export.FormatFromPath(path)
	}
	if err != nil {
		return err
	}
	if path == "-" && format == export.FormatXLSX {
		return fmt.Errorf("xlsx cannot be written to stdout")
	}

	return withLedger(func(cfg config.Config, l *ledger.Ledger) error {
		state, err := l.State()
		if err != nil {
			return err
		}
		vm, err := render(cfg, l)
		if err != nil {
			return err
		}
		doc := export.Document{
			ExportedAt: vm.At,
			Currency:   cfg.General.Currency,
			State:      state,
			View:       vm,
		}

		if path == "-" {
			return export.Write(os.Stdout, format, doc)
		}

		f, err := os.Create(path) //nolint:gosec // output path is chosen by the local user
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		if err := export.Write(f, format, doc); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		progress("  Exported %d cashflow, %d savings, %d targets, %d funds, %d reminders to %s\n",
			len(state.Cashflow), len(state.Savings), len(state.Targets), len(state.Portfolio), len(state.Tasks), path)
		return nil
	})
}
