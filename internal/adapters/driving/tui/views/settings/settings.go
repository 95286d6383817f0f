// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
)

// Row identifies an editable setting.
type Row int

const (
	RowTargetBMI Row = iota
	RowLocale
	RowBackend
	RowDisplayLimit
	RowTheme
	rowCount
)

// Adjustment steps.
const (
	targetStep = 0.1
	maxLimit   = 100
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	keymap          *keymap.KeyMap
	settingsService driving.SettingsService

	// Current settings
	settings *domain.AppSettings
	err      error
	notice   string

	selected Row

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		keymap:          keymap.DefaultKeyMap(),
		settingsService: settingsService,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		// Reload settings after save
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
		return v, nil
	case keymap.Matches(k, v.keymap.Down):
		if v.selected < rowCount-1 {
			v.selected++
		}
		return v, nil
	}

	if v.settings == nil || v.settingsService == nil {
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Increase):
		return v, v.adjust(1)
	case keymap.Matches(k, v.keymap.Decrease):
		return v, v.adjust(-1)
	case k == "enter" || k == " ":
		return v, v.adjust(1)
	case k == "D":
		return v, v.resetDefaults()
	}
	return v, nil
}

// adjust steps the selected setting in direction dir and saves it.
func (v *View) adjust(dir int) tea.Cmd {
	current := *v.settings

	switch v.selected {
	case RowTargetBMI:
		target := math.Round((current.Calculator.TargetBMI+float64(dir)*targetStep)*10) / 10
		target = math.Max(domain.MinTargetBMI, math.Min(domain.MaxTargetBMI, target))
		if target == current.Calculator.TargetBMI {
			return nil
		}
		v.notice = fmt.Sprintf("Target BMI set to %.1f", target)
		return v.save(func() error { return v.settingsService.SetTargetBMI(target) })

	case RowLocale:
		locale := cycle(domain.AllLocales(), current.Display.Locale, dir)
		v.notice = "Locale set to " + locale.Description()
		return v.save(func() error { return v.settingsService.SetLocale(locale) })

	case RowBackend:
		backend := cycle(domain.AllHistoryBackends(), current.History.Backend, dir)
		v.notice = "History backend set to " + backend.String() + " (applies on next start)"
		return v.save(func() error { return v.settingsService.SetHistoryBackend(backend) })

	case RowDisplayLimit:
		limit := max(1, min(maxLimit, current.History.DisplayLimit+dir))
		if limit == current.History.DisplayLimit {
			return nil
		}
		v.notice = fmt.Sprintf("Display limit set to %d", limit)
		return v.save(func() error { return v.settingsService.SetDisplayLimit(limit) })

	case RowTheme:
		appearance := cycle(domain.AllAppearances(), current.Display.Appearance, dir)
		v.notice = "Theme set to " + appearance.Description()
		return v.save(func() error { return v.settingsService.SetAppearance(appearance) })
	}
	return nil
}

// resetDefaults returns a command that restores default settings.
func (v *View) resetDefaults() tea.Cmd {
	defaults := v.settingsService.GetDefaults()
	v.notice = "Settings reset to defaults"
	return v.save(func() error { return v.settingsService.Save(&defaults) })
}

func (v *View) save(apply func() error) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingsSaved{Err: apply()}
	}
}

// cycle returns the option dir steps away from current, wrapping around.
func cycle[T comparable](options []T, current T, dir int) T {
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+dir)%n+n)%n]
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	rows := [rowCount][2]string{
		RowTargetBMI:    {"Target BMI", fmt.Sprintf("%.1f", v.settings.Calculator.TargetBMI)},
		RowLocale:       {"Language", v.settings.Display.Locale.Description()},
		RowBackend:      {"History storage", v.settings.History.Backend.Description()},
		RowDisplayLimit: {"History entries", fmt.Sprintf("%d", v.settings.History.DisplayLimit)},
		RowTheme:        {"Theme", v.settings.Display.Appearance.Description()},
	}
	for i, row := range rows {
		line := fmt.Sprintf("%-18s < %s >", row[0], row[1])
		if Row(i) == v.selected {
			b.WriteString(v.styles.Selected.Render("> " + line))
		} else {
			b.WriteString(v.styles.Normal.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.notice != "" && v.err == nil {
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[j/k] select  [←/→] change  [D] defaults  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset returns to the first row and clears messages.
func (v *View) Reset() {
	v.selected = RowTargetBMI
	v.err = nil
	v.notice = ""
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Selected returns the selected row.
func (v *View) Selected() Row {
	return v.selected
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
