// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - HistoryStore: Measurement history persistence (JSON file, SQLite, memory)
//   - ConfigStore: Application configuration (TOML file, memory)
//   - HistoryWatcher: Change notifications for the history file
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
