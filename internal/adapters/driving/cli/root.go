// Package cli provides the bmi command line interface built on cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/bmi-cli/internal/config"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Global flags.
var (
	verbose bool
	dataDir string
)

// Services used by commands. Set by the bootstrap or directly in tests.
var (
	calculatorService driving.CalculatorService
	historyService    driving.HistoryService
	settingsService   driving.SettingsService
	historyWatcher    driven.HistoryWatcher
)

// Options are the process-level settings resolved from flags and the
// environment before services are built.
type Options struct {
	// Home holds config.toml and the history files.
	Home string

	// Backend overrides the configured history backend when set.
	Backend domain.HistoryBackend

	// Locale overrides the configured display locale when set.
	Locale domain.Locale
}

// Services are the wired core services.
type Services struct {
	Calculator driving.CalculatorService
	History    driving.HistoryService
	Settings   driving.SettingsService
	Watcher    driven.HistoryWatcher

	// Close releases resources such as open history stores. Optional.
	Close func() error
}

// Bootstrap builds services from resolved options.
type Bootstrap func(opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	closer    func() error
)

var rootCmd = &cobra.Command{
	Use:   "bmi",
	Short: "Body mass index calculator and tracker",
	Long: `bmi calculates body mass index from height (cm) and weight (kg),
classifies it into a health category and keeps a history of measurements.

Run 'bmi calc' for an interactive session, 'bmi calc 170 65' for a single
result, or 'bmi tui' for the full terminal interface.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for settings and history (default ~/.bmi)")
}

// SetVersion sets the version reported by 'bmi version'.
func SetVersion(v string) {
	version = v
}

// SetServices injects services directly, bypassing the bootstrap.
func SetServices(s *Services) {
	if s == nil {
		calculatorService, historyService, settingsService, historyWatcher = nil, nil, nil, nil
		closer = nil
		return
	}
	calculatorService = s.Calculator
	historyService = s.History
	settingsService = s.Settings
	historyWatcher = s.Watcher
	closer = s.Close
}

// Execute runs the root command, building services with boot on first use.
// Errors are printed to stderr in the configured language.
func Execute(ctx context.Context, boot Bootstrap) error {
	bootstrap = boot
	defer func() {
		if closer != nil {
			if err := closer(); err != nil {
				logger.Error("closing services: %v", err)
			}
		}
	}()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, translatef(i18n.MsgError, errorText(err)))
	}
	return err
}

// setup resolves options and builds services before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if verbose || env.Verbose {
		logger.SetVerbose(true)
	}

	if bootstrap == nil || calculatorService != nil {
		return nil
	}

	home, err := env.HomeDir(dataDir)
	if err != nil {
		return err
	}
	logger.Debug("using home %s", home)

	services, err := bootstrap(Options{
		Home:    home,
		Backend: domain.HistoryBackend(env.HistoryBackend),
		Locale:  domain.Locale(env.Locale),
	})
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}

func requireCalculator() error {
	if calculatorService == nil {
		return errors.New("calculator service not configured")
	}
	return nil
}

func requireHistory() error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	return nil
}

func requireSettings() error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	return nil
}

// translate renders a plain message key in the configured language, or
// as-is when no calculator service is available.
func translate(key string) string {
	if calculatorService == nil {
		return key
	}
	return calculatorService.Translate(key)
}

// translatef renders a format key with arguments in the configured language.
func translatef(format string, args ...any) string {
	if calculatorService == nil {
		return fmt.Sprintf(format, args...)
	}
	return calculatorService.Translate(format, args...)
}

// errorText returns the user-facing text for err. Invalid input errors
// show only their reason.
func errorText(err error) string {
	if reason := domain.ReasonOf(err); reason != "" {
		return reason
	}
	return err.Error()
}
