// Package cmd implements the fintrack CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/view"
)

var (
	flagDB            string
	flagCurrency      string
	flagShowCompleted bool
	flagQuiet         bool
)

var rootCmd = &cobra.Command{
	Use:          "fintrack",
	Short:        "Personal cashflow, savings and reminder tracker",
	Long:         "Track cashflow, savings, targets, a savings goal, fund holdings and reminders from the terminal.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Set here because runSummary reaches loadConfig, which reads rootCmd.
	rootCmd.RunE = runSummary
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Store database path (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagCurrency, "currency", "c", "", "Currency tag for display, e.g. INR, USD")
	rootCmd.PersistentFlags().BoolVarP(&flagShowCompleted, "show-completed", "a", false, "Include completed reminders")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDB != "" {
		cfg.General.DBPath = flagDB
	}
	if flagCurrency != "" {
		cfg.General.Currency = strings.ToUpper(flagCurrency)
	}
	if rootCmd.PersistentFlags().Changed("show-completed") {
		cfg.General.ShowCompleted = flagShowCompleted
	}
	return cfg, nil
}

// openStore opens the configured store database.
func openStore(cfg config.Config) (*store.DB, error) {
	db, err := store.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return db, nil
}

// openLedger opens the configured store. The returned func closes it.
func openLedger(cfg config.Config) (*ledger.Ledger, func(), error) {
	db, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	return ledger.New(db, time.Now), func() { _ = db.Close() }, nil
}

// withLedger loads config, opens the ledger, and runs fn.
func withLedger(fn func(cfg config.Config, l *ledger.Ledger) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	l, closeFn, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(cfg, l)
}

// render recomputes every view at the current time.
func render(cfg config.Config, l *ledger.Ledger) (view.ViewModel, error) {
	return l.Render(viewOptions(cfg, l.Now()))
}

func viewOptions(cfg config.Config, now time.Time) view.Options {
	return view.Options{
		Now:           now,
		ShowCompleted: cfg.General.ShowCompleted,
		DueSoon:       time.Duration(cfg.Reminders.DueSoonHours) * time.Hour,
	}
}

func progress(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}
