// Package tui provides an interactive terminal user interface for the BMI
// calculator. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
)

// Ports aggregates all port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator computes and classifies BMI.
	Calculator driving.CalculatorService

	// History records and queries past measurements.
	History driving.HistoryService

	// Settings manages application settings.
	Settings driving.SettingsService

	// Watcher reports history changes made by other processes.
	Watcher driven.HistoryWatcher
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	calculator driving.CalculatorService,
	history driving.HistoryService,
	settings driving.SettingsService,
) *Ports {
	return &Ports{
		Calculator: calculator,
		History:    history,
		Settings:   settings,
	}
}

// Validate ensures all required ports are set.
// Only the calculator is mandatory; history, settings and watcher views
// degrade when their port is missing.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	return nil
}
