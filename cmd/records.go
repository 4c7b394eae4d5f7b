package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/ledger"
	"github.com/theirongolddev/fintrack/internal/model"
)

// parseAmount parses a non-negative decimal amount.
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q must not be negative", s)
	}
	return d, nil
}

// parseDay parses YYYY-MM-DD, or a day offset such as "+30" or "-2"
// relative to today. Empty means today.
func parseDay(s string, now time.Time) (model.Date, error) {
	s = strings.TrimSpace(s)
	today := model.DateOf(now)
	if s == "" || s == "today" {
		return today, nil
	}
	if s[0] == '+' || s[0] == '-' {
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return model.Date{}, fmt.Errorf("invalid day offset %q", s)
		}
		return today.AddDays(n), nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// resolveID expands an id prefix, as printed in list output, to the full id.
func resolveID(prefix string, ids []string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", errors.New("empty id")
	}
	var match string
	for _, id := range ids {
		if id == prefix {
			return id, nil
		}
		if strings.HasPrefix(id, prefix) {
			if match != "" {
				return "", fmt.Errorf("id %q is ambiguous", prefix)
			}
			match = id
		}
	}
	if match == "" {
		return "", fmt.Errorf("id %q: %w", prefix, ledger.ErrNotFound)
	}
	return match, nil
}

func recordIDs[T model.Record](records []T) []string {
	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.RecordID()
	}
	return ids
}

// newRemoveCmd builds an "rm <id>" subcommand over one collection.
func newRemoveCmd(noun string, ids func(*ledger.Ledger) ([]string, error), remove func(*ledger.Ledger, string) error) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a " + noun + " by id (a unique prefix is enough)",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withLedger(func(_ config.Config, l *ledger.Ledger) error {
				all, err := ids(l)
				if err != nil {
					return err
				}
				id, err := resolveID(args[0], all)
				if err != nil {
					return err
				}
				if err := remove(l, id); err != nil {
					return err
				}
				fmt.Printf("  Removed %s %s\n", noun, id[:min(8, len(id))])
				return nil
			})
		},
	}
}

// explainAdd turns a presence-check failure into a hint.
func explainAdd(err error, hint string) error {
	if errors.Is(err, ledger.ErrIncomplete) {
		return fmt.Errorf("%w: %s", err, hint)
	}
	return err
}
