package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Secondary))
	assert.NotEmpty(t, string(theme.Background))
	assert.NotEmpty(t, string(theme.Foreground))
	assert.NotEmpty(t, string(theme.Muted))
	assert.NotEmpty(t, string(theme.Success))
	assert.NotEmpty(t, string(theme.Warning))
	assert.NotEmpty(t, string(theme.Error))
	assert.NotEmpty(t, string(theme.Border))
}

func TestDefaultTheme_ColorsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	//nolint:misspell // using colors for technical accuracy
	colors := []lipgloss.Color{
		theme.Primary,
		theme.Secondary,
		theme.Success,
		theme.Warning,
		theme.Error,
	}

	seen := make(map[string]bool)
	for _, c := range colors { //nolint:misspell // using colors for technical accuracy
		s := string(c)
		assert.False(t, seen[s], "duplicate color: %s", s) //nolint:misspell // using color for technical accuracy
		seen[s] = true
	}
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, LightTheme(), ThemeFor(domain.AppearanceLight))
	assert.Equal(t, DarkTheme(), ThemeFor(domain.AppearanceDark))
	assert.NotEqual(t, LightTheme().Foreground, DarkTheme().Foreground)
	assert.NotEqual(t, LightTheme().Surface, DarkTheme().Surface)

	system := ThemeFor(domain.AppearanceSystem)
	require.NotNil(t, system)
	assert.Contains(t, []*Theme{LightTheme(), DarkTheme()}, system)
}

func TestStyles_Apply(t *testing.T) {
	s := NewStyles(DarkTheme())
	shared := s

	s.Apply(LightTheme())

	assert.Equal(t, LightTheme(), shared.Theme())
	assert.Equal(t, LightTheme().Foreground, shared.Normal.GetForeground())
	assert.Equal(t, LightTheme().Surface, shared.StatusBar.GetBackground())
}

func TestNewStyles_WithTheme(t *testing.T) {
	theme := DefaultTheme()
	styles := NewStyles(theme)

	require.NotNil(t, styles)
	assert.Equal(t, theme, styles.Theme())
}

func TestNewStyles_NilTheme(t *testing.T) {
	styles := NewStyles(nil)

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestDefaultStyles(t *testing.T) {
	styles := DefaultStyles()

	require.NotNil(t, styles)
	assert.NotNil(t, styles.Theme())
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	// All style fields should be initialised (not zero-value)
	assert.NotEqual(t, lipgloss.Style{}, styles.Title)
	assert.NotEqual(t, lipgloss.Style{}, styles.Subtitle)
	assert.NotEqual(t, lipgloss.Style{}, styles.Normal)
	assert.NotEqual(t, lipgloss.Style{}, styles.Muted)
	assert.NotEqual(t, lipgloss.Style{}, styles.Selected)
	assert.NotEqual(t, lipgloss.Style{}, styles.Error)
	assert.NotEqual(t, lipgloss.Style{}, styles.Success)
	assert.NotEqual(t, lipgloss.Style{}, styles.InputField)
	assert.NotEqual(t, lipgloss.Style{}, styles.StatusBar)
	assert.NotEqual(t, lipgloss.Style{}, styles.Help)
	assert.NotEqual(t, lipgloss.Style{}, styles.Border)
	assert.NotEqual(t, lipgloss.Style{}, styles.Panel)
}

func TestCategoryColor(t *testing.T) {
	for _, c := range domain.AllCategories() {
		t.Run(c.Name(), func(t *testing.T) {
			assert.Equal(t, lipgloss.Color(c.Color()), CategoryColor(c))
		})
	}
}

func TestCategoryColor_Invalid(t *testing.T) {
	assert.Equal(t, DefaultTheme().Muted, CategoryColor(domain.HealthCategory(-1)))
}

func TestStyles_Category(t *testing.T) {
	styles := DefaultStyles()

	style := styles.Category(domain.Overweight)

	assert.True(t, style.GetBold())
	assert.Equal(t, lipgloss.Color(domain.Overweight.Color()), style.GetForeground())
}

func TestStyles_ResultPanel(t *testing.T) {
	styles := DefaultStyles()

	panel := styles.ResultPanel(domain.ObeseII)

	assert.Equal(t, lipgloss.Color(domain.ObeseII.Color()), panel.GetBorderTopForeground())
	assert.Contains(t, panel.Render("BMI: 36.0"), "BMI: 36.0")
}

func TestStyles_CanRenderText(t *testing.T) {
	styles := DefaultStyles()

	testCases := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Title", styles.Title},
		{"Subtitle", styles.Subtitle},
		{"Normal", styles.Normal},
		{"Muted", styles.Muted},
		{"Selected", styles.Selected},
		{"Error", styles.Error},
		{"Success", styles.Success},
		{"Help", styles.Help},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.style.Render("test text")
			assert.NotEmpty(t, result)
		})
	}
}
