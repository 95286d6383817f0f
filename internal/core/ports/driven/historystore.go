package driven

import (
	"context"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// HistoryStore persists measurement results.
// Implementations must tolerate malformed persisted records: they are
// skipped (and logged) rather than failing the whole List.
type HistoryStore interface {
	// Append adds a result to the end of the history.
	Append(ctx context.Context, result domain.BMIResult) error

	// List returns all results, oldest first.
	List(ctx context.Context) ([]domain.BMIResult, error)

	// Delete removes a single result by ID.
	// Returns domain.ErrNotFound if no result has that ID.
	Delete(ctx context.Context, id string) error

	// Clear removes every result.
	Clear(ctx context.Context) error

	// Path returns the backing file path, or "" for in-memory stores.
	Path() string

	// Close releases resources held by the store.
	Close() error
}
