// Package trend provides the BMI trend chart view for the TUI.
package trend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/components/chart"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
)

// View draws the BMI trend chart.
type View struct {
	styles     *styles.Styles
	history    driving.HistoryService
	calculator driving.CalculatorService

	trend   *domain.Trend
	loading bool
	err     error

	width  int
	height int
	ready  bool
}

// NewView creates a new trend view.
func NewView(
	s *styles.Styles,
	history driving.HistoryService,
	calculator driving.CalculatorService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:     s,
		history:    history,
		calculator: calculator,
		width:      chart.DefaultWidth,
		height:     chart.DefaultHeight + 8,
	}
}

// Init loads the trend.
func (v *View) Init() tea.Cmd {
	v.loading = true
	return v.loadTrend()
}

// loadTrend returns a command that builds the trend from history.
func (v *View) loadTrend() tea.Cmd {
	return func() tea.Msg {
		if v.history == nil {
			return messages.TrendLoaded{Err: errors.New("history service not available")}
		}
		trend, err := v.history.Trend(context.Background())
		return messages.TrendLoaded{Trend: trend, Err: err}
	}
}

// Update handles messages for the trend view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.TrendLoaded:
		v.loading = false
		if msg.Err != nil {
			v.trend = nil
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		trend := msg.Trend
		v.trend = &trend
		return v, nil

	case messages.HistoryChanged:
		return v, v.loadTrend()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "r":
			v.loading = true
			return v, v.loadTrend()
		}
	}

	return v, nil
}

// View renders the chart.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.translate(i18n.MsgTrendTitle)))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading trend..."))
	case errors.Is(v.err, domain.ErrNotEnoughData):
		b.WriteString(v.styles.Muted.Render(v.translate(i18n.MsgNotEnoughData)))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.translatef(i18n.MsgError, v.err.Error())))
	case v.trend != nil:
		b.WriteString(chart.Render(*v.trend, v.chartWidth(), v.chartHeight(), chart.WithColor()))
		b.WriteString("\n")
		latest := v.trend.Points[len(v.trend.Points)-1]
		b.WriteString(v.styles.Category(latest.Category).Render(chart.Summary(*v.trend)))
	}
	b.WriteString("\n\n")

	b.WriteString(v.styles.Help.Render("[r] reload  [esc] back"))
	return b.String()
}

func (v *View) chartWidth() int {
	return max(chart.MinWidth, v.width-4)
}

func (v *View) chartHeight() int {
	return max(chart.MinHeight, min(v.height-10, 2*chart.DefaultHeight))
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

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Trend returns the loaded trend, or nil.
func (v *View) Trend() *domain.Trend {
	return v.trend
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
