package mcp

import (
	"context"
	"io"
	"testing"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/services"
)

// newPorts wires real services over in-memory stores.
func newPorts(t *testing.T) *Ports {
	t.Helper()
	settings := services.NewSettingsService(memory.NewConfigStore())
	calc := services.NewCalculatorService(settings)
	history := services.NewHistoryService(memory.NewHistoryStore(), calc)
	return &Ports{Calculator: calc, History: history}
}

// mockHistoryService is a mock implementation of driving.HistoryService.
type mockHistoryService struct {
	results []domain.BMIResult
	err     error
}

func (m *mockHistoryService) Record(_ context.Context, _, _ float64, _ string) (*domain.BMIResult, error) {
	return nil, m.err
}

func (m *mockHistoryService) Save(_ context.Context, r domain.BMIResult) (*domain.BMIResult, error) {
	return &r, m.err
}

func (m *mockHistoryService) List(_ context.Context, _ int) ([]domain.BMIResult, error) {
	return m.results, m.err
}

func (m *mockHistoryService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockHistoryService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockHistoryService) Trend(_ context.Context) (domain.Trend, error) {
	return domain.Trend{}, m.err
}

func (m *mockHistoryService) Export(_ context.Context, _ io.Writer, _ domain.ExportFormat) error {
	return m.err
}
