package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Store:          %s\n", cfg.DBPath())
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	fmt.Printf("    Show completed: %v\n", cfg.General.ShowCompleted)
	fmt.Println()

	fmt.Println("  [Reminders]")
	fmt.Printf("    Refresh every:  %ds\n", cfg.Reminders.RefreshIntervalSec)
	fmt.Printf("    Due-soon window: %dh\n", cfg.Reminders.DueSoonHours)
	fmt.Println()

	fmt.Println("  [Daemon]")
	fmt.Printf("    Address:        %s\n", cfg.Daemon.Addr)
	fmt.Printf("    Events buffer:  %d\n", cfg.Daemon.EventsBuffer)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `fintrack setup` to reconfigure.")
	return nil
}
