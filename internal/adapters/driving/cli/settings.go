package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the target BMI, display language and history storage.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsTargetCmd = &cobra.Command{
	Use:   "target <bmi>",
	Short: "Set the target BMI",
	Long: fmt.Sprintf(`Set the target BMI used for ideal weight and weight advice.
Must be between %.1f and %.1f.`, domain.MinTargetBMI, domain.MaxTargetBMI),
	Args: cobra.ExactArgs(1),
	RunE: runSettingsTarget,
}

var settingsLocaleCmd = &cobra.Command{
	Use:       "locale <en|ja>",
	Short:     "Set the display language",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.LocaleEnglish), string(domain.LocaleJapanese)},
	RunE:      runSettingsLocale,
}

var settingsThemeCmd = &cobra.Command{
	Use:   "theme <system|light|dark>",
	Short: "Set the TUI colour theme",
	Long: `Set the colour theme of the terminal UI.

  system - follow the terminal background
  light  - dark text on a light background
  dark   - light text on a dark background`,
	Args: cobra.ExactArgs(1),
	ValidArgs: []string{
		string(domain.AppearanceSystem),
		string(domain.AppearanceLight),
		string(domain.AppearanceDark),
	},
	RunE: runSettingsTheme,
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend <json|sqlite>",
	Short: "Set the history storage backend",
	Long: `Set where measurement history is stored.

Available backends:
  json   - bmi_history.json in the data directory
  sqlite - history.db in the data directory

Existing history is not migrated between backends.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(domain.HistoryBackendJSON), string(domain.HistoryBackendSQLite)},
	RunE:      runSettingsBackend,
}

var settingsLimitCmd = &cobra.Command{
	Use:   "limit <n>",
	Short: "Set how many history entries are listed",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLimit,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsTargetCmd)
	settingsCmd.AddCommand(settingsLocaleCmd)
	settingsCmd.AddCommand(settingsThemeCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	settingsCmd.AddCommand(settingsLimitCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Current Settings")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Calculator]")
	fmt.Fprintf(out, "  Target BMI: %.1f\n", settings.Calculator.TargetBMI)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[Display]")
	fmt.Fprintf(out, "  Locale: %s\n", settings.Display.Locale.Description())
	fmt.Fprintf(out, "  Theme: %s\n", settings.Display.Appearance.Description())
	fmt.Fprintln(out)

	fmt.Fprintln(out, "[History]")
	fmt.Fprintf(out, "  Backend: %s\n", settings.History.Backend.Description())
	fmt.Fprintf(out, "  Display limit: %d\n", settings.History.DisplayLimit)

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	current, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	updated := *current

	out := cmd.OutOrStdout()
	reader := bufio.NewReader(cmd.InOrStdin())

	fmt.Fprintln(out, "BMI Settings Wizard")
	fmt.Fprintln(out, "===================")
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 1: Target BMI")
	fmt.Fprintf(out, "Enter target BMI (%.1f-%.1f) [%.1f]: ",
		domain.MinTargetBMI, domain.MaxTargetBMI, current.Calculator.TargetBMI)
	input, _ := readLine(reader)
	updated.Calculator.TargetBMI = parseFloatOr(input, current.Calculator.TargetBMI)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 2: Display Language")
	locales := domain.AllLocales()
	updated.Display.Locale = locales[choose(out, reader, locales, current.Display.Locale)-1]
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 3: History Storage")
	backends := domain.AllHistoryBackends()
	updated.History.Backend = backends[choose(out, reader, backends, current.History.Backend)-1]
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 4: History Display Limit")
	fmt.Fprintf(out, "Enter number of entries [%d]: ", current.History.DisplayLimit)
	input, _ = readLine(reader)
	updated.History.DisplayLimit = current.History.DisplayLimit
	if n, err := strconv.Atoi(input); err == nil {
		updated.History.DisplayLimit = n
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Step 5: Theme")
	appearances := domain.AllAppearances()
	updated.Display.Appearance = appearances[choose(out, reader, appearances, current.Display.Appearance)-1]
	fmt.Fprintln(out)

	if err := settingsService.Save(&updated); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Fprintln(out, "All settings are valid and saved.")
	return nil
}

func runSettingsTarget(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	target, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
	if err != nil || !domain.IsFinite(target) {
		return fmt.Errorf("%w: target BMI must be a number", domain.ErrInvalidSetting)
	}
	if err := settingsService.SetTargetBMI(target); err != nil {
		return fmt.Errorf("failed to set target BMI: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Target BMI set to: %.1f\n", target)
	return nil
}

func runSettingsLocale(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	locale := domain.Locale(strings.ToLower(args[0]))
	if err := settingsService.SetLocale(locale); err != nil {
		return fmt.Errorf("failed to set locale: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Locale set to: %s\n", locale.Description())
	return nil
}

func runSettingsTheme(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	appearance := domain.Appearance(strings.ToLower(args[0]))
	if err := settingsService.SetAppearance(appearance); err != nil {
		return fmt.Errorf("failed to set theme: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme set to: %s\n", appearance.Description())
	return nil
}

func runSettingsBackend(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	backend := domain.HistoryBackend(strings.ToLower(args[0]))
	if err := settingsService.SetHistoryBackend(backend); err != nil {
		return fmt.Errorf("failed to set history backend: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "History backend set to: %s\n", backend.Description())
	return nil
}

func runSettingsLimit(cmd *cobra.Command, args []string) error {
	if err := requireSettings(); err != nil {
		return err
	}

	limit, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return fmt.Errorf("%w: limit must be a whole number", domain.ErrInvalidSetting)
	}
	if err := settingsService.SetDisplayLimit(limit); err != nil {
		return fmt.Errorf("failed to set display limit: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Display limit set to: %d\n", limit)
	return nil
}

// Helper functions.

type describer interface {
	comparable
	Description() string
}

// choose prints a numbered menu of options and returns the 1-based choice.
// The current value is the default.
func choose[T describer](out io.Writer, reader *bufio.Reader, options []T, current T) int {
	defaultVal := 1
	for i, opt := range options {
		marker := " "
		if opt == current {
			marker = "*"
			defaultVal = i + 1
		}
		fmt.Fprintf(out, " %s%d. %s\n", marker, i+1, opt.Description())
	}
	fmt.Fprintf(out, "\nEnter choice [%d]: ", defaultVal)
	input, _ := readLine(reader)
	return parseChoice(input, len(options), defaultVal)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func parseFloatOr(input string, fallback float64) float64 {
	v, err := strconv.ParseFloat(input, 64)
	if err != nil || !domain.IsFinite(v) {
		return fallback
	}
	return v
}
