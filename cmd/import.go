package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/source"
)

var flagImportDryRun bool

var importCmd = &cobra.Command{
	Use:   "import <file|dir>",
	Short: "Import a browser local-storage dump",
	Long: "Import collections from a local-storage dump: a .json object keyed by storage key,\n" +
		"or .jsonl lines of {\"key\",\"value\"}. Each known key replaces the stored collection.\n" +
		"Unknown keys are skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVarP(&flagImportDryRun, "dry-run", "n", false, "Validate and report without writing")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	files, err := source.ScanDir(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .json or .jsonl files found in %s", args[0])
	}
	progress("  Found %d dump file(s)\n", len(files))

	// Later files win, matching key order within a file.
	items := make(map[string]source.Item)
	skipped := make(map[string]bool)
	var parseErrors int
	for _, df := range files {
		res := source.ParseFile(df)
		if res.Err != nil {
			return res.Err
		}
		parseErrors += res.ParseErrors
		for _, it := range res.Items {
			items[it.Key] = it
		}
		for _, k := range res.Skipped {
			skipped[k] = true
		}
	}

	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := cli.Table{Title: "Import", Headers: []string{"Key", "Records", "Bytes"}}
	for _, k := range keys {
		it := items[k]
		records := "snapshot"
		if it.Records >= 0 {
			records = fmt.Sprintf("%d", it.Records)
		}
		t.Rows = append(t.Rows, []string{k, records, fmt.Sprintf("%d", len(it.Value))})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(t))

	if len(skipped) > 0 {
		progress("  Skipped %d unknown key(s)\n", len(skipped))
	}
	if parseErrors > 0 {
		progress("  %d value(s) could not be parsed\n", parseErrors)
	}
	if len(keys) == 0 {
		return fmt.Errorf("nothing to import")
	}
	if flagImportDryRun {
		fmt.Println("  Dry run: nothing written.")
		return nil
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	for _, k := range keys {
		if err := db.Put(k, items[k].Value); err != nil {
			return fmt.Errorf("writing %s: %w", k, err)
		}
	}
	fmt.Printf("  Imported %d collection(s) into %s\n", len(keys), cfg.DBPath())
	return nil
}
