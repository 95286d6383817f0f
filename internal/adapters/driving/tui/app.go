package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/views/calculator"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/views/history"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/views/trend"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// cancel stops the history watcher; watchDone closes with it.
	cancel    context.CancelFunc
	watchDone <-chan struct{}

	// appearance is the theme the shared styles were built for.
	appearance domain.Appearance
	styles     *styles.Styles
	keymap     *keymap.KeyMap

	// statusBar is rendered below every view.
	statusBar *status.Bar

	menuView       *menu.View
	calculatorView *calculator.View
	historyView    *history.View
	trendView      *trend.View
	settingsView   *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// changes receives a signal for every external history change.
	changes chan struct{}

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	appearance := appearanceOf(ports.Settings)
	s := styles.NewStyles(styles.ThemeFor(appearance))
	km := keymap.DefaultKeyMap()

	return &App{
		ports:          ports,
		appearance:     appearance,
		ctx:            context.Background(),
		styles:         s,
		keymap:         km,
		statusBar:      status.NewBar(s, km),
		menuView:       menu.NewView(s),
		calculatorView: calculator.NewView(s, ports.Calculator, ports.History),
		historyView:    history.NewView(s, ports.History, ports.Settings, ports.Calculator),
		trendView:      trend.NewView(s, ports.History, ports.Calculator),
		settingsView:   settings.NewView(s, ports.Settings),
		currentView:    messages.ViewMenu,
		changes:        make(chan struct{}, 1),
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("bmi"),
		a.watchHistory(),
	)
}

// watchHistory starts the history watcher, if one is configured, and
// subscribes to its change notifications.
func (a *App) watchHistory() tea.Cmd {
	if a.ports.Watcher == nil || a.cancel != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel
	a.watchDone = ctx.Done()

	return tea.Batch(a.watchCmd(ctx), a.waitForChange())
}

// watchCmd runs the watcher until ctx is cancelled, forwarding change
// notifications without blocking.
func (a *App) watchCmd(ctx context.Context) tea.Cmd {
	watcher := a.ports.Watcher
	changes := a.changes

	return func() tea.Msg {
		err := watcher.Watch(ctx, func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("history watcher stopped: %v", err)
			return messages.ErrorOccurred{Err: fmt.Errorf("watching history: %w", err)}
		}
		return nil
	}
}

// waitForChange blocks until the watcher reports a change.
func (a *App) waitForChange() tea.Cmd {
	if a.watchDone == nil {
		return nil
	}
	changes := a.changes
	done := a.watchDone
	return func() tea.Msg {
		select {
		case <-changes:
			return messages.HistoryChanged{}
		case <-done:
			return nil
		}
	}
}

// Close stops the history watcher.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.resize()
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

		// Forward key messages to active view
		switch a.currentView {
		case messages.ViewMenu:
			a.menuView, cmd = a.menuView.Update(msg)
		case messages.ViewCalculator:
			a.calculatorView, cmd = a.calculatorView.Update(msg)
			if a.calculatorView.Busy() {
				a.statusBar.SetState(status.StateSaving)
			}
		case messages.ViewHistory:
			a.historyView, cmd = a.historyView.Update(msg)
		case messages.ViewChart:
			a.trendView, cmd = a.trendView.Update(msg)
		case messages.ViewSettings:
			a.settingsView, cmd = a.settingsView.Update(msg)
		case messages.ViewHelp:
			switch {
			case keymap.Matches(msg.String(), a.keymap.Back), keymap.Matches(msg.String(), a.keymap.Help):
				return a, a.switchTo(messages.ViewMenu)
			case keymap.Matches(msg.String(), a.keymap.Quit):
				return a, tea.Quit
			}
		}
		return a, cmd

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ResultCalculated:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
		switch {
		case msg.Err != nil:
			a.setError(msg.Err)
		case msg.Saved:
			a.statusBar.SetState(status.StateSaved)
			a.statusBar.SetMessage("Saved to history")
			return a, tea.Batch(cmd, a.historyChanged())
		default:
			a.statusBar.SetState(status.StateReady)
		}
		return a, cmd

	case messages.HistoryChanged:
		return a, tea.Batch(a.historyChanged(), a.waitForChange())

	case messages.HistoryLoaded:
		a.historyView, cmd = a.historyView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
		} else if a.currentView == messages.ViewHistory {
			a.statusBar.SetState(status.StateHistory)
			a.statusBar.SetEntryCount(len(msg.Results))
		}
		return a, cmd

	case messages.HistoryCleared, messages.MeasurementDeleted:
		a.historyView, cmd = a.historyView.Update(msg)
		var trendCmd tea.Cmd
		a.trendView, trendCmd = a.trendView.Update(messages.HistoryChanged{})
		return a, tea.Batch(cmd, trendCmd)

	case messages.TrendLoaded:
		a.trendView, cmd = a.trendView.Update(msg)
		return a, cmd

	case messages.SettingsLoaded:
		a.settingsView, cmd = a.settingsView.Update(msg)
		if msg.Err == nil && msg.Settings != nil {
			a.applyAppearance(msg.Settings.Display.Appearance)
		}
		return a, cmd

	case messages.SettingsSaved:
		a.settingsView, cmd = a.settingsView.Update(msg)
		if msg.Err != nil {
			a.setError(msg.Err)
			return a, cmd
		}
		a.statusBar.SetState(status.StateSaved)
		a.statusBar.SetMessage("Settings saved")
		return a, cmd

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewCalculator:
		a.calculatorView, cmd = a.calculatorView.Update(msg)
	case messages.ViewHistory:
		a.historyView, cmd = a.historyView.Update(msg)
	case messages.ViewChart:
		a.trendView, cmd = a.trendView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// switchTo activates a view and initialises it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	a.currentView = view
	a.err = nil
	a.statusBar.Clear()

	switch view {
	case messages.ViewCalculator:
		a.statusBar.SetBindings(a.keymap.CalculatorHelp())
		a.calculatorView.Reset()
		return a.calculatorView.Init()
	case messages.ViewHistory:
		a.statusBar.SetBindings(a.keymap.HistoryHelp())
		return a.historyView.Init()
	case messages.ViewChart:
		a.statusBar.SetBindings(nil)
		return a.trendView.Init()
	case messages.ViewSettings:
		a.statusBar.SetBindings(a.keymap.SettingsHelp())
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewHelp:
		a.statusBar.SetState(status.StateHelp)
		a.statusBar.SetBindings(nil)
	case messages.ViewMenu:
		a.statusBar.SetBindings(nil)
	}
	return nil
}

// applyAppearance rebuilds the shared styles when the theme changes.
func (a *App) applyAppearance(appearance domain.Appearance) {
	if appearance == a.appearance || !appearance.IsValid() {
		return
	}
	a.appearance = appearance
	a.styles.Apply(styles.ThemeFor(appearance))
}

// appearanceOf reads the configured theme, falling back to the system one.
func appearanceOf(settings driving.SettingsService) domain.Appearance {
	if settings == nil {
		return domain.AppearanceSystem
	}
	current, err := settings.Get()
	if err != nil || current == nil {
		logger.Debug("using system theme: %v", err)
		return domain.AppearanceSystem
	}
	return current.Display.Appearance
}

// historyChanged reloads every view that shows history.
func (a *App) historyChanged() tea.Cmd {
	var historyCmd, trendCmd tea.Cmd
	a.historyView, historyCmd = a.historyView.Update(messages.HistoryChanged{})
	a.trendView, trendCmd = a.trendView.Update(messages.HistoryChanged{})
	return tea.Batch(historyCmd, trendCmd)
}

func (a *App) setError(err error) {
	a.err = err
	a.statusBar.SetState(status.StateError)
	a.statusBar.SetMessage(err.Error())
}

// resize forwards the usable area to every view, reserving a line for the
// status bar.
func (a *App) resize() {
	h := max(a.height-1, 0)
	a.menuView.SetDimensions(a.width, h)
	a.calculatorView.SetDimensions(a.width, h)
	a.historyView.SetDimensions(a.width, h)
	a.trendView.SetDimensions(a.width, h)
	a.settingsView.SetDimensions(a.width, h)
	a.statusBar.SetWidth(a.width)
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewCalculator:
		body = a.calculatorView.View()
	case messages.ViewHistory:
		body = a.historyView.View()
	case messages.ViewChart:
		body = a.trendView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.viewHelp()
	default:
		body = a.menuView.View()
	}

	return body + "\n" + a.statusBar.View()
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-12s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render("[esc] back to menu"))
	return b.String()
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// Styles returns the styles shared by every view.
func (a *App) Styles() *styles.Styles {
	return a.styles
}

// StatusBar returns the status bar.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.resize()
}
