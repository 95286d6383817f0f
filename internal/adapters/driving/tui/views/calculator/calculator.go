// Package calculator provides the measurement form and result panel for the TUI.
package calculator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
)

// Form fields in focus order.
const (
	FieldHeight = iota
	FieldWeight
	FieldNote
	fieldCount
)

const progressWidth = 40

// View is the calculator form.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	calculator driving.CalculatorService
	history    driving.HistoryService

	fields   [fieldCount]*input.Field
	focused  int
	progress progress.Model

	result *domain.BMIResult
	saved  bool
	err    error
	busy   bool

	// issue is the live validation error for the height and weight fields.
	issue error

	width  int
	height int
	ready  bool
}

// NewView creates a new calculator view. history may be nil, in which
// case results are calculated but not recorded.
func NewView(
	s *styles.Styles,
	calculator driving.CalculatorService,
	history driving.HistoryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	v := &View{
		styles:     s,
		keymap:     keymap.DefaultKeyMap(),
		calculator: calculator,
		history:    history,
		progress: progress.New(
			progress.WithSolidFill(string(s.Theme().Primary)),
			progress.WithWidth(progressWidth),
			progress.WithoutPercentage(),
		),
	}
	v.fields[FieldHeight] = input.NewField(s, "Height (cm)", "170", 6)
	v.fields[FieldWeight] = input.NewField(s, "Weight (kg)", "65", 6)
	v.fields[FieldNote] = input.NewField(s, "Note", "optional", 200)
	return v
}

// Init focuses the first field.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.focus(FieldHeight), v.fields[FieldHeight].Init())
}

// Update handles messages for the calculator view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ResultCalculated:
		v.busy = false
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.result = msg.Result
		v.saved = msg.Saved
		v.fields[FieldNote].Reset()
		v.progress.FullColor = string(styles.CategoryColor(msg.Result.Category))
		return v, nil

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

	case k == "ctrl+r":
		v.Reset()
		return v, v.focus(FieldHeight)

	case keymap.Matches(k, v.keymap.Submit):
		if v.focused == FieldNote || v.complete() {
			return v, v.submit()
		}
		return v, v.focus(v.focused + 1)

	case keymap.Matches(k, v.keymap.NextField):
		return v, v.focus((v.focused + 1) % fieldCount)

	case keymap.Matches(k, v.keymap.PrevField):
		return v, v.focus((v.focused + fieldCount - 1) % fieldCount)
	}

	var cmd tea.Cmd
	v.fields[v.focused], cmd = v.fields[v.focused].Update(msg)
	if v.focused != FieldNote {
		v.err = nil
		v.validate()
	}
	return v, cmd
}

// validate re-checks the measurements after an edit. Incomplete input is
// not reported so the form stays quiet until both fields are filled.
func (v *View) validate() {
	v.issue = nil
	if !v.complete() {
		return
	}
	height, errH := v.fields[FieldHeight].Float()
	weight, errW := v.fields[FieldWeight].Float()
	if errH != nil || errW != nil {
		v.issue = &domain.InvalidInputError{Reason: v.translate(domain.ReasonNotNumeric)}
		return
	}
	if v.calculator != nil {
		v.issue = v.calculator.Validate(height, weight)
		return
	}
	v.issue = domain.Validate(height, weight)
}

// Valid reports whether both measurements are filled in and pass validation.
func (v *View) Valid() bool {
	return v.complete() && v.issue == nil
}

// Issue returns the live validation error, nil while the input is valid or
// incomplete.
func (v *View) Issue() error {
	return v.issue
}

// complete reports whether both numeric fields have input.
func (v *View) complete() bool {
	return v.fields[FieldHeight].Value() != "" && v.fields[FieldWeight].Value() != ""
}

// focus moves focus to field i.
func (v *View) focus(i int) tea.Cmd {
	for j, f := range v.fields {
		if j != i {
			f.Blur()
		}
	}
	v.focused = i
	return v.fields[i].Focus()
}

// submit validates the form and returns a command that processes it.
func (v *View) submit() tea.Cmd {
	if v.calculator == nil {
		v.err = errors.New("calculator service not available")
		return nil
	}
	if v.busy {
		return nil
	}
	if v.issue != nil {
		v.err = v.issue
		return nil
	}

	height, errH := v.fields[FieldHeight].Float()
	weight, errW := v.fields[FieldWeight].Float()
	if errH != nil || errW != nil {
		v.err = &domain.InvalidInputError{Reason: v.calculator.Translate(domain.ReasonNotNumeric)}
		return nil
	}
	note := v.fields[FieldNote].Value()

	v.busy = true
	calc, history := v.calculator, v.history
	return func() tea.Msg {
		if history == nil {
			result, err := calc.Process(height, weight, note)
			return messages.ResultCalculated{Result: result, Err: err}
		}
		result, err := history.Record(context.Background(), height, weight, note)
		return messages.ResultCalculated{Result: result, Saved: err == nil, Err: err}
	}
}

// View renders the calculator.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render(v.translate(i18n.MsgCalculatorTitle)))
	b.WriteString("\n\n")

	for _, f := range v.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case v.busy:
		b.WriteString(v.styles.Muted.Render("Calculating..."))
		b.WriteString("\n\n")
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(v.translatef(i18n.MsgError, errorText(v.err))))
		b.WriteString("\n\n")
	}

	if v.result != nil {
		b.WriteString(v.renderResult())
		b.WriteString("\n\n")
	}

	b.WriteString(v.renderHint())
	return b.String()
}

// renderHint shows the calculate key only while the input is valid and
// the live validation reason otherwise.
func (v *View) renderHint() string {
	if v.Valid() && !v.busy {
		return v.styles.Help.Render("[tab] next field  [enter] calculate  [ctrl+r] clear  [esc] back")
	}
	hint := v.styles.Help.Render("[tab] next field  [ctrl+r] clear  [esc] back")
	if v.issue != nil && v.err == nil {
		return v.styles.Warning.Render(errorText(v.issue)) + "\n" + hint
	}
	return hint
}

// renderResult renders the result panel coloured by category.
func (v *View) renderResult() string {
	r := *v.result
	advice := v.calculator.WeightDifference(r.Weight, r.Height)
	pct, _ := v.calculator.Progress(r.BMI)

	var b strings.Builder
	b.WriteString(v.styles.Category(r.Category).Render(v.translate(r.Category.Label())))
	b.WriteString("\n\n")
	b.WriteString(v.calculator.Format(r))
	b.WriteString("\n\n")
	b.WriteString(v.translatef(domain.FormatIdeal, domain.FormatNumber(advice.Ideal)))
	b.WriteString("\n")
	b.WriteString(advice.MessageWith(v.translatef))
	b.WriteString("\n\n")
	b.WriteString(v.progress.ViewAs(pct))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.translatef(domain.FormatProgress, pct*100)))
	if v.saved {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render("Saved to history"))
	}

	return v.styles.ResultPanel(r.Category).Render(b.String())
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

func errorText(err error) string {
	if reason := domain.ReasonOf(err); reason != "" {
		return reason
	}
	return err.Error()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	for _, f := range v.fields {
		f.SetWidth(min(width, 60))
	}
	v.progress.Width = min(progressWidth, max(10, width-8))
}

// Reset clears the form and the last result.
func (v *View) Reset() {
	for _, f := range v.fields {
		f.Reset()
	}
	v.result = nil
	v.saved = false
	v.err = nil
	v.issue = nil
	v.busy = false
	v.progress.FullColor = string(v.styles.Theme().Primary)
}

// Result returns the last calculated result.
func (v *View) Result() *domain.BMIResult {
	return v.result
}

// Saved reports whether the last result was recorded in history.
func (v *View) Saved() bool {
	return v.saved
}

// Focused returns the index of the focused field.
func (v *View) Focused() int {
	return v.focused
}

// Busy reports whether a calculation is in progress.
func (v *View) Busy() bool {
	return v.busy
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Field returns the form field at index i.
func (v *View) Field(i int) *input.Field {
	return v.fields[i]
}
