package mcp

import (
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Calculator validates, classifies and formats measurements.
	Calculator driving.CalculatorService

	// History records measurements and serves the history resource.
	// Optional: without it, results cannot be saved and history reads as empty.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Calculator == nil {
		return ErrMissingCalculatorService
	}
	return nil
}
