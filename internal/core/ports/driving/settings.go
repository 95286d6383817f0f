package driving

import "github.com/custodia-labs/bmi-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// SetTargetBMI updates the target BMI.
	SetTargetBMI(target float64) error

	// SetLocale updates the display language.
	SetLocale(locale domain.Locale) error

	// SetAppearance updates the terminal UI colour theme.
	SetAppearance(appearance domain.Appearance) error

	// SetHistoryBackend updates the history storage backend.
	SetHistoryBackend(backend domain.HistoryBackend) error

	// SetDisplayLimit updates how many history entries list views show.
	SetDisplayLimit(limit int) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
