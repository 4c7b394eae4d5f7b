package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/store"
)

var (
	flagStorePath     string
	flagStoreResetAll bool
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect or reset the raw stored collections",
}

var storeKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List storage keys with size and last write",
	Args:  cobra.NoArgs,
	RunE:  runStoreKeys,
}

var storeGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print a stored blob, optionally filtered by a JSONPath expression",
	Example: "  fintrack store get finance_cashflow_v2 --path '$[?(@.type==\"income\")].amount'\n" +
		"  fintrack store get finance_goal_v1 --path '$.targetAmount'",
	Args: cobra.ExactArgs(1),
	RunE: runStoreGet,
}

var storeResetCmd = &cobra.Command{
	Use:   "reset [key...]",
	Short: "Delete stored collections; the next read re-seeds them",
	RunE:  runStoreReset,
}

func init() {
	storeGetCmd.Flags().StringVarP(&flagStorePath, "path", "p", "", "JSONPath expression to evaluate")
	storeResetCmd.Flags().BoolVar(&flagStoreResetAll, "all", false, "Reset every collection")

	storeCmd.AddCommand(storeKeysCmd, storeGetCmd, storeResetCmd)
	rootCmd.AddCommand(storeCmd)
}

func withStore(fn func(db *store.DB) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

func runStoreKeys(_ *cobra.Command, _ []string) error {
	return withStore(func(db *store.DB) error {
		infos, err := db.Keys()
		if err != nil {
			return err
		}
		seen := make(map[string]bool, len(infos))
		t := cli.Table{Title: "Store", Headers: []string{"Key", "Bytes", "Updated"}}
		for _, ki := range infos {
			seen[ki.Key] = true
			t.Rows = append(t.Rows, []string{ki.Key, cli.FormatNumber(int64(ki.SizeBytes)), ki.UpdatedAt.Local().Format("2006-01-02 15:04:05")})
		}
		for _, k := range store.AllKeys {
			if !seen[k] {
				t.Rows = append(t.Rows, []string{k, "-", "not seeded"})
			}
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(t))
		return nil
	})
}

func runStoreGet(_ *cobra.Command, args []string) error {
	return withStore(func(db *store.DB) error {
		raw, ok, err := db.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("key %q not stored", args[0])
		}

		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decoding %s: %w", args[0], err)
		}
		if flagStorePath != "" {
			v, err = jsonpath.Get(flagStorePath, v)
			if err != nil {
				return fmt.Errorf("evaluating %q: %w", flagStorePath, err)
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}

func runStoreReset(_ *cobra.Command, args []string) error {
	keys := args
	if flagStoreResetAll {
		keys = store.AllKeys
	}
	if len(keys) == 0 {
		return errors.New("name at least one key, or pass --all")
	}
	for _, k := range keys {
		if !slices.Contains(store.AllKeys, k) {
			return fmt.Errorf("unknown key %q", k)
		}
	}

	return withStore(func(db *store.DB) error {
		for _, k := range keys {
			if err := db.Delete(k); err != nil {
				return fmt.Errorf("resetting %s: %w", k, err)
			}
			fmt.Printf("  Reset %s\n", k)
		}
		return nil
	})
}
