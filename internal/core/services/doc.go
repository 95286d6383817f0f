// Package services implements the driving port interfaces.
// Services apply the domain rules with the configured settings and
// orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no CGO dependencies.
package services
