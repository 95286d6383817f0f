package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService records measurements and reads them back for display.
type HistoryService struct {
	store      driven.HistoryStore
	calculator driving.CalculatorService
	newID      func() string
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore, calculator driving.CalculatorService) *HistoryService {
	return &HistoryService{
		store:      store,
		calculator: calculator,
		newID:      uuid.NewString,
	}
}

// Record processes a measurement and appends it to history.
func (s *HistoryService) Record(
	ctx context.Context,
	height, weight float64,
	note string,
) (*domain.BMIResult, error) {
	result, err := s.calculator.Process(height, weight, note)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, *result)
}

// Save assigns an ID to an already processed result and appends it.
func (s *HistoryService) Save(ctx context.Context, result domain.BMIResult) (*domain.BMIResult, error) {
	if result.ID == "" {
		result = result.WithID(s.newID())
	}
	if err := s.store.Append(ctx, result); err != nil {
		return nil, fmt.Errorf("save measurement: %w", err)
	}
	logger.Debug("saved measurement %s to %s", result.ID, s.store.Path())
	return &result, nil
}

// List returns up to limit results, newest first. limit <= 0 returns all.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.BMIResult, error) {
	results, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	reversed := make([]domain.BMIResult, len(results))
	for i, r := range results {
		reversed[len(results)-1-i] = r
	}

	if limit > 0 && len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

// Delete removes a single result by ID.
func (s *HistoryService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete measurement %s: %w", id, err)
	}
	return nil
}

// Clear removes every result.
func (s *HistoryService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	logger.Info("history cleared")
	return nil
}

// Trend summarises history for charting.
func (s *HistoryService) Trend(ctx context.Context) (domain.Trend, error) {
	results, err := s.store.List(ctx)
	if err != nil {
		return domain.Trend{}, fmt.Errorf("load trend: %w", err)
	}
	return domain.NewTrend(results)
}

// exportRecord is the external shape of a measurement.
type exportRecord struct {
	ID        string  `json:"id" yaml:"id"`
	Timestamp string  `json:"timestamp" yaml:"timestamp"`
	Height    float64 `json:"height" yaml:"height"`
	Weight    float64 `json:"weight" yaml:"weight"`
	BMI       float64 `json:"bmi" yaml:"bmi"`
	Category  string  `json:"category" yaml:"category"`
	Label     string  `json:"label" yaml:"label"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`
}

var csvHeader = []string{"id", "timestamp", "height", "weight", "bmi", "category", "label", "note"}

// Export writes the full history to w in the given format, oldest first.
func (s *HistoryService) Export(ctx context.Context, w io.Writer, format domain.ExportFormat) error {
	if !format.IsValid() {
		return fmt.Errorf("unsupported export format: %s", format)
	}

	results, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("export history: %w", err)
	}

	records := make([]exportRecord, 0, len(results))
	for _, r := range results {
		records = append(records, exportRecord{
			ID:        r.ID,
			Timestamp: r.Timestamp.Format(time.RFC3339),
			Height:    r.Height,
			Weight:    r.Weight,
			BMI:       r.BMI,
			Category:  r.Category.Name(),
			Label:     s.calculator.Translate(r.Category.Label()),
			Note:      r.Note,
		})
	}

	switch format {
	case domain.ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case domain.ExportYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return writeCSV(w, records)
	}
}

func writeCSV(w io.Writer, records []exportRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Timestamp,
			domain.FormatNumber(r.Height),
			domain.FormatNumber(r.Weight),
			strconv.FormatFloat(r.BMI, 'f', 1, 64),
			r.Category,
			r.Label,
			r.Note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
