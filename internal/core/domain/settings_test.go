package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocale_IsValid(t *testing.T) {
	tests := []struct {
		name     string
		locale   Locale
		expected bool
	}{
		{"en is valid", LocaleEnglish, true},
		{"ja is valid", LocaleJapanese, true},
		{"empty is invalid", Locale(""), false},
		{"fr is invalid", Locale("fr"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.locale.IsValid())
		})
	}
}

func TestLocale_Description(t *testing.T) {
	assert.Equal(t, "English", LocaleEnglish.Description())
	assert.Contains(t, LocaleJapanese.Description(), "Japanese")
	assert.Equal(t, unknownDescription, Locale("xx").Description())
}

func TestHistoryBackend_IsValid(t *testing.T) {
	assert.True(t, HistoryBackendJSON.IsValid())
	assert.True(t, HistoryBackendSQLite.IsValid())
	assert.False(t, HistoryBackend("postgres").IsValid())
	assert.Equal(t, unknownDescription, HistoryBackend("postgres").Description())
	assert.Equal(t, "sqlite", HistoryBackendSQLite.String())
}

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, DefaultTargetBMI, settings.Calculator.TargetBMI)
	assert.Equal(t, LocaleEnglish, settings.Display.Locale)
	assert.Equal(t, AppearanceSystem, settings.Display.Appearance)
	assert.Equal(t, HistoryBackendJSON, settings.History.Backend)
	assert.Equal(t, DefaultDisplayLimit, settings.History.DisplayLimit)
	assert.NoError(t, ValidateTargetBMI(settings.Calculator.TargetBMI))
}

func TestAllLocalesAndBackendsAreValid(t *testing.T) {
	for _, l := range AllLocales() {
		assert.True(t, l.IsValid(), l.String())
	}
	for _, a := range AllAppearances() {
		assert.True(t, a.IsValid(), a.String())
		assert.NotEqual(t, unknownDescription, a.Description())
	}
	assert.False(t, Appearance("neon").IsValid())
	assert.Equal(t, unknownDescription, Appearance("neon").Description())
	for _, b := range AllHistoryBackends() {
		assert.True(t, b.IsValid(), b.String())
	}
}
