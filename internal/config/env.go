// Package config resolves process-level configuration from the environment.
// Persistent user settings live in the TOML config store instead.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// Env holds environment overrides.
type Env struct {
	// Home is the directory holding config.toml and history files.
	Home string `env:"BMI_HOME"`

	// HistoryBackend overrides history.backend for this process.
	HistoryBackend string `env:"BMI_HISTORY_BACKEND"`

	// Locale overrides display.locale for this process.
	Locale string `env:"BMI_LOCALE"`

	// Verbose enables debug logging.
	Verbose bool `env:"BMI_VERBOSE"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv reads and validates the BMI_* environment variables.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// Validate checks the overrides that name enumerated values.
func (e Env) Validate() error {
	if e.HistoryBackend != "" && !domain.HistoryBackend(e.HistoryBackend).IsValid() {
		return fmt.Errorf("BMI_HISTORY_BACKEND: %w: %q", domain.ErrUnsupportedBackend, e.HistoryBackend)
	}
	if e.Locale != "" && !domain.Locale(e.Locale).IsValid() {
		return fmt.Errorf("BMI_LOCALE: %w: unknown locale %q", domain.ErrInvalidSetting, e.Locale)
	}
	return nil
}

// HomeDir returns the first non-empty of flagDir and Home, falling back to
// ~/.bmi. The result is absolute.
func (e Env) HomeDir(flagDir string) (string, error) {
	dir := flagDir
	if dir == "" {
		dir = e.Home
	}
	if dir == "" {
		def, err := file.DefaultDir()
		if err != nil {
			return "", err
		}
		dir = def
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}
	return abs, nil
}
