package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// SetupValues holds the answers collected by the setup wizard.
type SetupValues struct {
	Currency     string
	Theme        string
	DueSoonHours string
	DBPath       string
}

// SetupValuesFrom seeds the wizard with the current configuration.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Currency:     cfg.General.Currency,
		Theme:        cfg.Appearance.Theme,
		DueSoonHours: strconv.Itoa(cfg.Reminders.DueSoonHours),
		DBPath:       cfg.DBPath(),
	}
}

var currencyOptions = []string{"INR", "USD", "EUR", "GBP", "JPY", "AUD", "CAD", "SGD"}

// NewSetupForm builds the setup wizard bound to vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	currencies := make([]huh.Option[string], 0, len(currencyOptions))
	for _, c := range currencyOptions {
		currencies = append(currencies, huh.NewOption(c, c))
	}
	themes := make([]huh.Option[string], 0, len(theme.All))
	for _, name := range theme.Names() {
		themes = append(themes, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to fintrack").
				Description("Track cashflow, savings, targets and reminders.\nA few settings first."),
			huh.NewSelect[string]().
				Title("Currency").
				Description("Amounts are shown in this currency. No conversion is done.").
				Options(currencies...).
				Value(&vals.Currency),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&vals.Theme),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Due-soon window (hours)").
				Description("Open reminders due within this window are flagged.").
				Value(&vals.DueSoonHours).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Database path").
				Value(&vals.DBPath).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("path is required")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a whole number above zero")
	}
	return nil
}

// Apply writes the wizard answers into cfg.
func (v *SetupValues) Apply(cfg *config.Config) {
	if v.Currency != "" {
		cfg.General.Currency = v.Currency
	}
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	if n, err := strconv.Atoi(strings.TrimSpace(v.DueSoonHours)); err == nil && n > 0 {
		cfg.Reminders.DueSoonHours = n
	}
	path := strings.TrimSpace(v.DBPath)
	if path != "" && path != config.DefaultDBPath() {
		cfg.General.DBPath = path
	}
}
