package domain

const unknownDescription = "Unknown"

// Target BMI bounds accepted in settings.
const (
	MinTargetBMI = 18.0
	MaxTargetBMI = 25.0
)

// DefaultDisplayLimit is how many history entries are shown by default.
const DefaultDisplayLimit = 10

// Locale selects the language used for labels and messages.
type Locale string

// Available locales.
const (
	// LocaleEnglish renders English output.
	LocaleEnglish Locale = "en"

	// LocaleJapanese renders Japanese output.
	LocaleJapanese Locale = "ja"
)

// IsValid returns true if the locale is recognised.
func (l Locale) IsValid() bool {
	switch l {
	case LocaleEnglish, LocaleJapanese:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (l Locale) String() string {
	return string(l)
}

// Description returns a human-readable description of the locale.
func (l Locale) Description() string {
	switch l {
	case LocaleEnglish:
		return "English"
	case LocaleJapanese:
		return "Japanese (日本語)"
	default:
		return unknownDescription
	}
}

// Appearance selects the colour theme of the terminal UI.
type Appearance string

// Available appearances.
const (
	// AppearanceSystem follows the terminal background.
	AppearanceSystem Appearance = "system"

	// AppearanceLight uses dark text on a light background.
	AppearanceLight Appearance = "light"

	// AppearanceDark uses light text on a dark background.
	AppearanceDark Appearance = "dark"
)

// IsValid returns true if the appearance is recognised.
func (a Appearance) IsValid() bool {
	switch a {
	case AppearanceSystem, AppearanceLight, AppearanceDark:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (a Appearance) String() string {
	return string(a)
}

// Description returns a human-readable description of the appearance.
func (a Appearance) Description() string {
	switch a {
	case AppearanceSystem:
		return "System (follow terminal)"
	case AppearanceLight:
		return "Light"
	case AppearanceDark:
		return "Dark"
	default:
		return unknownDescription
	}
}

// HistoryBackend identifies where measurement history is stored.
type HistoryBackend string

// Available history backends.
const (
	// HistoryBackendJSON stores history in a JSON file.
	HistoryBackendJSON HistoryBackend = "json"

	// HistoryBackendSQLite stores history in a SQLite database.
	HistoryBackendSQLite HistoryBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b HistoryBackend) IsValid() bool {
	switch b {
	case HistoryBackendJSON, HistoryBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b HistoryBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b HistoryBackend) Description() string {
	switch b {
	case HistoryBackendJSON:
		return "JSON file (bmi_history.json)"
	case HistoryBackendSQLite:
		return "SQLite database (history.db)"
	default:
		return unknownDescription
	}
}

// CalculatorSettings holds calculation preferences.
type CalculatorSettings struct {
	// TargetBMI is used for ideal weight and weight advice.
	TargetBMI float64
}

// DisplaySettings holds presentation preferences.
type DisplaySettings struct {
	// Locale is the output language.
	Locale Locale

	// Appearance is the terminal UI colour theme.
	Appearance Appearance
}

// HistorySettings holds history storage preferences.
type HistorySettings struct {
	// Backend selects the storage adapter.
	Backend HistoryBackend

	// DisplayLimit is how many recent entries list views show.
	DisplayLimit int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Calculator CalculatorSettings
	Display    DisplaySettings
	History    HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Calculator: CalculatorSettings{
			TargetBMI: DefaultTargetBMI,
		},
		Display: DisplaySettings{
			Locale:     LocaleEnglish,
			Appearance: AppearanceSystem,
		},
		History: HistorySettings{
			Backend:      HistoryBackendJSON,
			DisplayLimit: DefaultDisplayLimit,
		},
	}
}

// AllLocales returns all available locales.
func AllLocales() []Locale {
	return []Locale{LocaleEnglish, LocaleJapanese}
}

// AllAppearances returns all available appearances.
func AllAppearances() []Appearance {
	return []Appearance{AppearanceSystem, AppearanceLight, AppearanceDark}
}

// AllHistoryBackends returns all available history backends.
func AllHistoryBackends() []HistoryBackend {
	return []HistoryBackend{HistoryBackendJSON, HistoryBackendSQLite}
}
