// Package domain defines the core business entities and rules for bmi.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - HealthCategory: One of six WHO-style weight classifications
//   - BMIResult: A single validated, classified measurement
//   - Trend: A time series of past results for charting
//   - AppSettings: User-tunable application settings
//
// The calculation rules (Validate, ComputeBMI, Classify, IdealWeight,
// WeightDifference, CategoryProgress, ProcessMeasurement, FormatResult)
// are pure functions and safe to call from any goroutine.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
