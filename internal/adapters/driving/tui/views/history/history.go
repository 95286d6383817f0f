// Package history provides the measurement history table for the TUI.
package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
)

// View is the history table.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	history    driving.HistoryService
	settings   driving.SettingsService
	calculator driving.CalculatorService

	table      table.Model
	results    []domain.BMIResult
	confirming bool
	loading    bool
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new history view. settings and calculator are optional;
// without them the default display limit and English labels are used.
func NewView(
	s *styles.Styles,
	history driving.HistoryService,
	settings driving.SettingsService,
	calculator driving.CalculatorService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		history:    history,
		settings:   settings,
		calculator: calculator,
		table: table.New(
			table.WithColumns(columns(80)),
			table.WithFocused(true),
			table.WithHeight(10),
		),
	}
	v.applyTableStyles()
	return v
}

// applyTableStyles colours the table from the current theme.
func (v *View) applyTableStyles() {
	theme := v.styles.Theme()
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	ts.Selected = ts.Selected.
		Foreground(theme.Foreground).
		Background(theme.Secondary)
	v.table.SetStyles(ts)
}

// columns sizes the table columns for a terminal width.
func columns(width int) []table.Column {
	note := max(10, width-19-7-20-8-10)
	return []table.Column{
		{Title: "Measured", Width: 19},
		{Title: "BMI", Width: 5},
		{Title: "Category", Width: 18},
		{Title: "Weight", Width: 6},
		{Title: "Note", Width: note},
	}
}

// Init loads the history.
func (v *View) Init() tea.Cmd {
	v.applyTableStyles()
	v.loading = true
	return v.loadHistory()
}

// loadHistory returns a command that loads the latest entries.
func (v *View) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryLoaded{Err: errors.New("history service not available")}
		}

		limit := domain.DefaultDisplayLimit
		if v.settings != nil {
			if settings, err := v.settings.Get(); err == nil {
				limit = settings.History.DisplayLimit
			}
		}

		results, err := v.history.List(context.Background(), limit)
		return messages.HistoryLoaded{Results: results, Err: err}
	}
}

// clearHistory returns a command that clears the history.
func (v *View) clearHistory() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.HistoryCleared{Err: errors.New("history service not available")}
		}
		return messages.HistoryCleared{Err: v.history.Clear(context.Background())}
	}
}

// deleteMeasurement returns a command that deletes one measurement.
func (v *View) deleteMeasurement(id string) tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.MeasurementDeleted{ID: id, Err: errors.New("history service not available")}
		}
		return messages.MeasurementDeleted{ID: id, Err: v.history.Delete(context.Background(), id)}
	}
}

// Update handles messages for the history view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.HistoryLoaded:
		v.loading = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.SetResults(msg.Results)
		return v, nil

	case messages.HistoryCleared:
		return v.afterChange(msg.Err)

	case messages.MeasurementDeleted:
		return v.afterChange(msg.Err)

	case messages.HistoryChanged:
		return v, v.loadHistory()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// afterChange reloads the table after a clear or delete.
func (v *View) afterChange(err error) (*View, tea.Cmd) {
	if err != nil {
		v.err = err
		return v, nil
	}
	return v, v.loadHistory()
}

// handleKeyMsg handles key presses.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()

	if v.confirming {
		v.confirming = false
		if k == "y" || k == "Y" {
			return v, v.clearHistory()
		}
		return v, nil
	}

	switch {
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(k, v.keymap.Clear):
		if len(v.results) > 0 {
			v.confirming = true
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Delete):
		if r := v.Selected(); r != nil {
			return v, v.deleteMeasurement(r.ID)
		}
		return v, nil

	case keymap.Matches(k, v.keymap.Reload):
		v.loading = true
		return v, v.loadHistory()
	}

	var cmd tea.Cmd
	v.table, cmd = v.table.Update(msg)
	return v, cmd
}

// View renders the history view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.translate(i18n.MsgHistoryTitle)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading history..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.translatef(i18n.MsgError, v.err.Error())))
	case len(v.results) == 0:
		b.WriteString(v.styles.Muted.Render(v.translate(i18n.MsgNoHistory)))
	default:
		b.WriteString(v.styles.Border.Render(v.table.View()))
		if r := v.Selected(); r != nil {
			b.WriteString("\n")
			b.WriteString(v.styles.Category(r.Category).Render(
				fmt.Sprintf("%.1f  %s", r.BMI, v.translate(r.Category.Label()))))
			b.WriteString(v.styles.Muted.Render("  " + r.ID))
		}
	}
	b.WriteString("\n\n")

	if v.confirming {
		b.WriteString(v.styles.Warning.Render(v.translate(i18n.MsgConfirmClear)))
		return b.String()
	}
	b.WriteString(v.styles.Help.Render("[j/k] navigate  [d] delete  [c] clear all  [r] reload  [esc] back"))
	return b.String()
}

func (v *View) translate(key string) string {
	if v.calculator == nil {
		return key
	}
	return v.calculator.Translate(key)
}

func (v *View) translatef(format string, args ...any) string {
	if v.calculator == nil {
		return fmt.Sprintf(format, args...)
	}
	return v.calculator.Translate(format, args...)
}

// SetResults replaces the table rows.
func (v *View) SetResults(results []domain.BMIResult) {
	v.results = results
	rows := make([]table.Row, len(results))
	for i, r := range results {
		rows[i] = table.Row{
			r.Timestamp.Format(domain.TimestampLayout),
			fmt.Sprintf("%.1f", r.BMI),
			v.translate(r.Category.Label()),
			domain.FormatNumber(r.Weight),
			r.Note,
		}
	}
	v.table.SetRows(rows)
	if v.table.Cursor() >= len(rows) {
		v.table.SetCursor(max(0, len(rows)-1))
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.table.SetColumns(columns(width))
	v.table.SetHeight(max(3, height-10))
}

// Results returns the loaded measurements, newest first.
func (v *View) Results() []domain.BMIResult {
	return v.results
}

// Selected returns the measurement under the cursor, or nil.
func (v *View) Selected() *domain.BMIResult {
	i := v.table.Cursor()
	if i < 0 || i >= len(v.results) {
		return nil
	}
	return &v.results[i]
}

// Confirming reports whether the clear confirmation is shown.
func (v *View) Confirming() bool {
	return v.confirming
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
