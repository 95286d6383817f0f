package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// HistoryService manages the measurement history.
type HistoryService interface {
	// Record processes a measurement and appends it to history.
	Record(ctx context.Context, height, weight float64, note string) (*domain.BMIResult, error)

	// Save assigns an ID to an already processed result and appends it.
	Save(ctx context.Context, result domain.BMIResult) (*domain.BMIResult, error)

	// List returns up to limit results, newest first. limit <= 0 returns all.
	List(ctx context.Context, limit int) ([]domain.BMIResult, error)

	// Delete removes a single result by ID.
	Delete(ctx context.Context, id string) error

	// Clear removes every result.
	Clear(ctx context.Context) error

	// Trend summarises history for charting.
	// Returns domain.ErrNotEnoughData when fewer than two results exist.
	Trend(ctx context.Context) (domain.Trend, error)

	// Export writes the full history to w in the given format.
	Export(ctx context.Context, w io.Writer, format domain.ExportFormat) error
}
