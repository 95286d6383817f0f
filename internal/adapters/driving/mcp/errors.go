// Package mcp provides an MCP (Model Context Protocol) server adapter for bmi.
// It lets AI assistants calculate BMI and read the measurement history.
package mcp

import "errors"

// ErrMissingCalculatorService is returned when the calculator service is not provided.
var ErrMissingCalculatorService = errors.New("mcp: calculator service is required")

// ErrHistoryUnavailable is returned by history operations when no history
// service is configured.
var ErrHistoryUnavailable = errors.New("mcp: history is not available")
