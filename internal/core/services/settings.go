package services

import (
	"fmt"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTargetBMI      = "calculator.target_bmi"
	keyLocale         = "display.locale"
	keyAppearance     = "display.theme"
	keyHistoryBackend = "history.backend"
	keyDisplayLimit   = "history.display_limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Calculator: domain.CalculatorSettings{
			TargetBMI: s.getTargetBMI(defaults.Calculator.TargetBMI),
		},
		Display: domain.DisplaySettings{
			Locale:     s.getLocale(defaults.Display.Locale),
			Appearance: s.getAppearance(defaults.Display.Appearance),
		},
		History: domain.HistorySettings{
			Backend:      s.getBackend(defaults.History.Backend),
			DisplayLimit: s.getPositiveInt(keyDisplayLimit, defaults.History.DisplayLimit),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidSetting)
	}
	if err := domain.ValidateTargetBMI(settings.Calculator.TargetBMI); err != nil {
		return err
	}
	if !settings.Display.Locale.IsValid() {
		return fmt.Errorf("%w: invalid locale: %s", domain.ErrInvalidSetting, settings.Display.Locale)
	}
	if !settings.Display.Appearance.IsValid() {
		return fmt.Errorf("%w: invalid theme: %s", domain.ErrInvalidSetting, settings.Display.Appearance)
	}
	if !settings.History.Backend.IsValid() {
		return fmt.Errorf("%w: invalid history backend: %s", domain.ErrInvalidSetting, settings.History.Backend)
	}
	if settings.History.DisplayLimit <= 0 {
		return fmt.Errorf("%w: display limit must be positive", domain.ErrInvalidSetting)
	}

	if err := s.configStore.Set(keyTargetBMI, settings.Calculator.TargetBMI); err != nil {
		return fmt.Errorf("save target bmi: %w", err)
	}
	if err := s.configStore.Set(keyLocale, settings.Display.Locale.String()); err != nil {
		return fmt.Errorf("save locale: %w", err)
	}
	if err := s.configStore.Set(keyAppearance, settings.Display.Appearance.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := s.configStore.Set(keyHistoryBackend, settings.History.Backend.String()); err != nil {
		return fmt.Errorf("save history backend: %w", err)
	}
	if err := s.configStore.Set(keyDisplayLimit, settings.History.DisplayLimit); err != nil {
		return fmt.Errorf("save display limit: %w", err)
	}

	return nil
}

// SetTargetBMI updates the target BMI.
func (s *SettingsService) SetTargetBMI(target float64) error {
	if err := domain.ValidateTargetBMI(target); err != nil {
		return err
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Calculator.TargetBMI = target
	})
}

// SetLocale updates the display language.
func (s *SettingsService) SetLocale(locale domain.Locale) error {
	if !locale.IsValid() {
		return fmt.Errorf("%w: invalid locale: %s", domain.ErrInvalidSetting, locale)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Display.Locale = locale
	})
}

// SetAppearance updates the terminal UI colour theme.
func (s *SettingsService) SetAppearance(appearance domain.Appearance) error {
	if !appearance.IsValid() {
		return fmt.Errorf("%w: invalid theme: %s", domain.ErrInvalidSetting, appearance)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.Display.Appearance = appearance
	})
}

// SetHistoryBackend updates the history storage backend.
// The change takes effect the next time the application starts.
func (s *SettingsService) SetHistoryBackend(backend domain.HistoryBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: %s", domain.ErrUnsupportedBackend, backend)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.History.Backend = backend
	})
}

// SetDisplayLimit updates how many history entries list views show.
func (s *SettingsService) SetDisplayLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: display limit must be positive", domain.ErrInvalidSetting)
	}
	return s.update(func(settings *domain.AppSettings) {
		settings.History.DisplayLimit = limit
	})
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (s *SettingsService) update(apply func(*domain.AppSettings)) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	apply(settings)
	return s.Save(settings)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getTargetBMI(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(keyTargetBMI); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(keyTargetBMI)
	if domain.ValidateTargetBMI(val) != nil {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getLocale(defaultVal domain.Locale) domain.Locale {
	val := s.configStore.GetString(keyLocale)
	if val == "" {
		return defaultVal
	}
	locale := domain.Locale(val)
	if !locale.IsValid() {
		return defaultVal
	}
	return locale
}

func (s *SettingsService) getAppearance(defaultVal domain.Appearance) domain.Appearance {
	appearance := domain.Appearance(s.configStore.GetString(keyAppearance))
	if !appearance.IsValid() {
		return defaultVal
	}
	return appearance
}

func (s *SettingsService) getBackend(defaultVal domain.HistoryBackend) domain.HistoryBackend {
	val := s.configStore.GetString(keyHistoryBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.HistoryBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
