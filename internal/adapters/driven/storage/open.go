// Package storage selects a history store implementation for a backend.
package storage

import (
	"fmt"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// Open returns the history store for backend rooted at dataDir.
func Open(backend domain.HistoryBackend, dataDir string) (driven.HistoryStore, error) {
	logger.Debug("opening %s history store in %s", backend, dataDir)

	var (
		store driven.HistoryStore
		err   error
	)
	switch backend {
	case domain.HistoryBackendJSON:
		store, err = jsonfile.NewStore(dataDir)
	case domain.HistoryBackendSQLite:
		store, err = sqlite.NewStore(dataDir)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedBackend, backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s history: %w", backend, err)
	}
	return store, nil
}
