package settings

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	args := m.Called(settings)
	return args.Error(0)
}

func (m *MockSettingsService) SetTargetBMI(target float64) error {
	args := m.Called(target)
	return args.Error(0)
}

func (m *MockSettingsService) SetLocale(locale domain.Locale) error {
	args := m.Called(locale)
	return args.Error(0)
}

func (m *MockSettingsService) SetAppearance(appearance domain.Appearance) error {
	args := m.Called(appearance)
	return args.Error(0)
}

func (m *MockSettingsService) SetHistoryBackend(backend domain.HistoryBackend) error {
	args := m.Called(backend)
	return args.Error(0)
}

func (m *MockSettingsService) SetDisplayLimit(limit int) error {
	args := m.Called(limit)
	return args.Error(0)
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	args := m.Called()
	return args.Get(0).(domain.AppSettings)
}

// Helper function to create test settings.
func testSettings() *domain.AppSettings {
	s := domain.DefaultAppSettings()
	return &s
}

func loadedView(t *testing.T, svc *MockSettingsService) *View {
	t.Helper()
	view := NewView(styles.DefaultStyles(), svc)
	view, _ = view.Update(messages.SettingsLoaded{Settings: testSettings()})
	require.NotNil(t, view.Settings())
	return view
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func TestNewView(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	require.NotNil(t, view)
	assert.Nil(t, view.Settings())
	assert.Equal(t, RowTargetBMI, view.Selected())
}

func TestNewView_NilStyles(t *testing.T) {
	view := NewView(nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
}

func TestView_Init_LoadsSettings(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("Get").Return(testSettings(), nil)

	view := NewView(styles.DefaultStyles(), svc)
	cmd := view.Init()
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsLoaded)
	require.True(t, ok)
	require.NoError(t, msg.Err)
	assert.InDelta(t, domain.DefaultTargetBMI, msg.Settings.Calculator.TargetBMI, 0.001)
	svc.AssertExpectations(t)
}

func TestView_Init_NilService(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	msg, ok := view.Init()().(messages.SettingsLoaded)
	require.True(t, ok)
	assert.Error(t, msg.Err)
}

func TestView_Update_SettingsLoadedError(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	view, _ = view.Update(messages.SettingsLoaded{Err: errors.New("read failed")})

	assert.Nil(t, view.Settings())
	assert.EqualError(t, view.Err(), "read failed")
	assert.Contains(t, view.View(), "read failed")
}

func TestView_Navigation(t *testing.T) {
	view := loadedView(t, new(MockSettingsService))

	view, _ = view.Update(keyMsg("up"))
	assert.Equal(t, RowTargetBMI, view.Selected())

	view, _ = view.Update(keyMsg("j"))
	view, _ = view.Update(keyMsg("down"))
	assert.Equal(t, RowBackend, view.Selected())

	view, _ = view.Update(keyMsg("down"))
	view, _ = view.Update(keyMsg("down"))
	view, _ = view.Update(keyMsg("down"))
	assert.Equal(t, RowTheme, view.Selected())

	view, _ = view.Update(keyMsg("k"))
	assert.Equal(t, RowDisplayLimit, view.Selected())
}

func TestView_CycleTheme(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetAppearance", domain.AppearanceLight).Return(nil)

	view := loadedView(t, svc)
	for i := 0; i < 4; i++ {
		view, _ = view.Update(keyMsg("down"))
	}
	require.Equal(t, RowTheme, view.Selected())
	assert.Contains(t, view.View(), "System (follow terminal)")

	view, cmd := view.Update(keyMsg("right"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Contains(t, view.View(), "Theme set to Light")
	svc.AssertExpectations(t)
}

func TestView_ThemeWrapsBackwards(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetAppearance", domain.AppearanceDark).Return(nil)

	view := loadedView(t, svc)
	for i := 0; i < 4; i++ {
		view, _ = view.Update(keyMsg("down"))
	}
	_, cmd := view.Update(keyMsg("left"))
	require.NotNil(t, cmd)

	cmd()
	svc.AssertExpectations(t)
}

func TestView_IncreaseTargetBMI(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetTargetBMI", 22.1).Return(nil)

	view := loadedView(t, svc)
	view, cmd := view.Update(keyMsg("right"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	assert.Contains(t, view.View(), "Target BMI set to 22.1")
	svc.AssertExpectations(t)
}

func TestView_TargetBMIClampedAtBounds(t *testing.T) {
	svc := new(MockSettingsService)
	view := NewView(styles.DefaultStyles(), svc)
	settings := testSettings()
	settings.Calculator.TargetBMI = domain.MaxTargetBMI
	view, _ = view.Update(messages.SettingsLoaded{Settings: settings})

	_, cmd := view.Update(keyMsg("+"))

	assert.Nil(t, cmd)
	svc.AssertNotCalled(t, "SetTargetBMI", mock.Anything)
}

func TestView_ToggleLocale(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetLocale", domain.LocaleJapanese).Return(nil)

	view := loadedView(t, svc)
	view, _ = view.Update(keyMsg("down"))
	_, cmd := view.Update(keyMsg("enter"))
	require.NotNil(t, cmd)

	cmd()
	svc.AssertExpectations(t)
}

func TestView_ToggleBackendWraps(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetHistoryBackend", domain.HistoryBackendSQLite).Return(nil)

	view := loadedView(t, svc)
	view, _ = view.Update(keyMsg("down"))
	view, _ = view.Update(keyMsg("down"))
	view, cmd := view.Update(keyMsg("left"))
	require.NotNil(t, cmd)

	cmd()
	assert.Contains(t, view.View(), "applies on next start")
	svc.AssertExpectations(t)
}

func TestView_DecreaseDisplayLimit(t *testing.T) {
	svc := new(MockSettingsService)
	svc.On("SetDisplayLimit", domain.DefaultDisplayLimit-1).Return(nil)

	view := loadedView(t, svc)
	for i := 0; i < 3; i++ {
		view, _ = view.Update(keyMsg("down"))
	}
	_, cmd := view.Update(keyMsg("-"))
	require.NotNil(t, cmd)

	cmd()
	svc.AssertExpectations(t)
}

func TestView_DisplayLimitFloor(t *testing.T) {
	svc := new(MockSettingsService)
	view := NewView(styles.DefaultStyles(), svc)
	settings := testSettings()
	settings.History.DisplayLimit = 1
	view, _ = view.Update(messages.SettingsLoaded{Settings: settings})
	for i := 0; i < 3; i++ {
		view, _ = view.Update(keyMsg("down"))
	}

	_, cmd := view.Update(keyMsg("left"))

	assert.Nil(t, cmd)
}

func TestView_ResetDefaults(t *testing.T) {
	svc := new(MockSettingsService)
	defaults := domain.DefaultAppSettings()
	svc.On("GetDefaults").Return(defaults)
	svc.On("Save", &defaults).Return(nil)

	view := loadedView(t, svc)
	_, cmd := view.Update(keyMsg("D"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.SettingsSaved)
	require.True(t, ok)
	assert.NoError(t, msg.Err)
	svc.AssertExpectations(t)
}

func TestView_SettingsSaved_ReloadsOnSuccess(t *testing.T) {
	svc := new(MockSettingsService)
	updated := testSettings()
	updated.Display.Locale = domain.LocaleJapanese
	svc.On("Get").Return(updated, nil)

	view := loadedView(t, svc)
	view, cmd := view.Update(messages.SettingsSaved{})
	require.NotNil(t, cmd)

	view, _ = view.Update(cmd())
	assert.Equal(t, domain.LocaleJapanese, view.Settings().Display.Locale)
}

func TestView_SettingsSaved_Error(t *testing.T) {
	view := loadedView(t, new(MockSettingsService))

	view, cmd := view.Update(messages.SettingsSaved{Err: domain.ErrInvalidSetting})

	assert.Nil(t, cmd)
	assert.ErrorIs(t, view.Err(), domain.ErrInvalidSetting)
}

func TestView_EscReturnsToMenu(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	_, cmd := view.Update(keyMsg("esc"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(messages.ViewChanged)
	require.True(t, ok)
	assert.Equal(t, messages.ViewMenu, msg.View)
}

func TestView_KeysIgnoredBeforeLoad(t *testing.T) {
	svc := new(MockSettingsService)
	view := NewView(styles.DefaultStyles(), svc)

	_, cmd := view.Update(keyMsg("right"))

	assert.Nil(t, cmd)
	svc.AssertExpectations(t)
}

func TestView_Render(t *testing.T) {
	view := loadedView(t, new(MockSettingsService))

	out := view.View()
	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, "Target BMI")
	assert.Contains(t, out, "22.0")
	assert.Contains(t, out, "English")
	assert.Contains(t, out, "JSON file")
	assert.Contains(t, out, "History entries")
}

func TestView_RenderLoading(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)

	assert.Contains(t, view.View(), "Loading settings")
}

func TestView_Reset(t *testing.T) {
	view := loadedView(t, new(MockSettingsService))
	view, _ = view.Update(keyMsg("down"))
	view, _ = view.Update(messages.SettingsSaved{Err: errors.New("x")})

	view.Reset()

	assert.Equal(t, RowTargetBMI, view.Selected())
	assert.NoError(t, view.Err())
}

func TestView_SetDimensions(t *testing.T) {
	view := NewView(styles.DefaultStyles(), nil)
	view.SetDimensions(80, 24)

	assert.Equal(t, 80, view.width)
	assert.Equal(t, 24, view.height)
	assert.True(t, view.ready)
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}

	assert.Equal(t, "b", cycle(opts, "a", 1))
	assert.Equal(t, "a", cycle(opts, "c", 1))
	assert.Equal(t, "c", cycle(opts, "a", -1))
	assert.Equal(t, "b", cycle(opts, "missing", 1))
}
