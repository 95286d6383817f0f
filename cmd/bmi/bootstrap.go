package main

import (
	"fmt"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/storage"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/watch"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/bmi-cli/internal/core/services"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// newServices wires the core services to their file-backed adapters.
func newServices(opts cli.Options) (*cli.Services, error) {
	if err := i18n.Register(); err != nil {
		return nil, fmt.Errorf("load translations: %w", err)
	}

	configStore, err := file.NewConfigStore(opts.Home)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	backend := opts.Backend
	if backend == "" {
		settings, err := settingsService.Get()
		if err != nil {
			return nil, fmt.Errorf("load settings: %w", err)
		}
		backend = settings.History.Backend
	}

	store, err := storage.Open(backend, opts.Home)
	if err != nil {
		return nil, err
	}
	logger.Debug("history at %s", store.Path())

	calculatorService := services.NewCalculatorService(settingsService)
	if opts.Locale != "" {
		calculatorService.OverrideLocale(opts.Locale)
	}

	return &cli.Services{
		Calculator: calculatorService,
		History:    services.NewHistoryService(store, calculatorService),
		Settings:   settingsService,
		Watcher:    watch.NewWatcher(store.Path()),
		Close:      store.Close,
	}, nil
}
