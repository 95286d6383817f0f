// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// Theme defines the colour palette and styling for the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary is the secondary accent colour.
	Secondary lipgloss.Color

	// Background is the background colour.
	Background lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for less important text.
	Muted lipgloss.Color

	// Success indicates positive outcomes.
	Success lipgloss.Color

	// Warning indicates caution.
	Warning lipgloss.Color

	// Error indicates problems.
	Error lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color

	// Surface is the status bar background.
	Surface lipgloss.Color
}

// DarkTheme returns the palette for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2ECC71"), // Green
		Secondary:  lipgloss.Color("#3498DB"), // Blue
		Background: lipgloss.Color("#1E1E2E"), // Dark gray
		Foreground: lipgloss.Color("#CDD6F4"), // Light gray
		Muted:      lipgloss.Color("#6C7086"), // Medium gray
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F9E2AF"), // Yellow
		Error:      lipgloss.Color("#F38BA8"), // Red
		Border:     lipgloss.Color("#45475A"), // Border gray
		Surface:    lipgloss.Color("#181825"),
	}
}

// LightTheme returns the palette for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#1E8449"), // Green
		Secondary:  lipgloss.Color("#1F618D"), // Blue
		Background: lipgloss.Color("#EFF1F5"), // Off white
		Foreground: lipgloss.Color("#4C4F69"), // Slate
		Muted:      lipgloss.Color("#8C8FA1"), // Gray
		Success:    lipgloss.Color("#40A02B"), // Green
		Warning:    lipgloss.Color("#DF8E1D"), // Amber
		Error:      lipgloss.Color("#D20F39"), // Red
		Border:     lipgloss.Color("#BCC0CC"), // Light gray
		Surface:    lipgloss.Color("#DCE0E8"),
	}
}

// ThemeFor returns the palette for an appearance. AppearanceSystem, and
// anything unrecognised, picks by the terminal background.
func ThemeFor(appearance domain.Appearance) *Theme {
	switch appearance {
	case domain.AppearanceLight:
		return LightTheme()
	case domain.AppearanceDark:
		return DarkTheme()
	case domain.AppearanceSystem:
	}
	if lipgloss.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return DarkTheme()
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title style for headers.
	Title lipgloss.Style

	// Subtitle style for secondary headers.
	Subtitle lipgloss.Style

	// Normal style for regular text.
	Normal lipgloss.Style

	// Muted style for less important text.
	Muted lipgloss.Style

	// Selected style for highlighted items.
	Selected lipgloss.Style

	// Error style for error messages.
	Error lipgloss.Style

	// Success style for success messages.
	Success lipgloss.Style

	// Warning style for warning messages.
	Warning lipgloss.Style

	// InputField style for input areas.
	InputField lipgloss.Style

	// StatusBar style for the status bar.
	StatusBar lipgloss.Style

	// Help style for help text.
	Help lipgloss.Style

	// Border style for bordered containers.
	Border lipgloss.Style

	// Panel style for the result block.
	Panel lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Surface).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 2),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Apply rebuilds every style from theme in place, so views holding s
// pick up the new palette on their next render.
func (s *Styles) Apply(theme *Theme) {
	*s = *NewStyles(theme)
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// CategoryColor returns the display colour of a health category.
func CategoryColor(c domain.HealthCategory) lipgloss.Color {
	if !c.IsValid() {
		return DefaultTheme().Muted
	}
	return lipgloss.Color(c.Color())
}

// Category returns a bold style in the category's colour.
func (s *Styles) Category(c domain.HealthCategory) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(CategoryColor(c))
}

// ResultPanel returns the panel style bordered in the category's colour.
func (s *Styles) ResultPanel(c domain.HealthCategory) lipgloss.Style {
	return s.Panel.BorderForeground(CategoryColor(c))
}
