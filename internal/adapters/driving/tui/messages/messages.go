// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewCalculator is the measurement form and result panel.
	ViewCalculator
	// ViewHistory lists recent measurements.
	ViewHistory
	// ViewChart draws the BMI trend.
	ViewChart
	// ViewSettings is the settings configuration view.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewCalculator:
		return "calculator"
	case ViewHistory:
		return "history"
	case ViewChart:
		return "chart"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// ResultCalculated carries a processed measurement back to the model.
// Saved is true when the result was recorded in history.
type ResultCalculated struct {
	Result *domain.BMIResult
	Saved  bool
	Err    error
}

// HistoryLoaded carries recent measurements, newest first.
type HistoryLoaded struct {
	Results []domain.BMIResult
	Err     error
}

// HistoryCleared signals the history was cleared.
type HistoryCleared struct {
	Err error
}

// MeasurementDeleted signals a single measurement was deleted.
type MeasurementDeleted struct {
	ID  string
	Err error
}

// HistoryChanged signals the persisted history changed on disk.
type HistoryChanged struct{}

// TrendLoaded carries the BMI trend for charting.
type TrendLoaded struct {
	Trend domain.Trend
	Err   error
}

// SettingsLoaded carries the application settings.
type SettingsLoaded struct {
	Settings *domain.AppSettings
	Err      error
}

// SettingsSaved signals settings were saved.
type SettingsSaved struct {
	Err error
}
