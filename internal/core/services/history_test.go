package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// --- Mock implementations ---

// brokenHistoryStore implements driven.HistoryStore and fails every call.
type brokenHistoryStore struct {
	err error
}

func (s *brokenHistoryStore) Append(_ context.Context, _ domain.BMIResult) error { return s.err }

func (s *brokenHistoryStore) List(_ context.Context) ([]domain.BMIResult, error) { return nil, s.err }

func (s *brokenHistoryStore) Delete(_ context.Context, _ string) error { return s.err }

func (s *brokenHistoryStore) Clear(_ context.Context) error { return s.err }

func (s *brokenHistoryStore) Path() string { return "broken" }

func (s *brokenHistoryStore) Close() error { return nil }

func newHistory(t *testing.T) (*HistoryService, *memory.HistoryStore, *time.Time) {
	t.Helper()
	store := memory.NewHistoryStore()
	calc := NewCalculatorService(nil)

	now := fixedNow
	calc.SetClock(func() time.Time {
		now = now.Add(time.Hour)
		return now
	})

	service := NewHistoryService(store, calc)
	seq := 0
	service.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return service, store, &now
}

func TestHistoryService_Record(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newHistory(t)

	result, err := service.Record(ctx, 170, 65, "morning")

	require.NoError(t, err)
	assert.Equal(t, "id-1", result.ID)
	assert.InDelta(t, 22.5, result.BMI, 1e-9)

	stored, _ := store.List(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, *result, stored[0])
}

func TestHistoryService_Record_InvalidNotSaved(t *testing.T) {
	ctx := context.Background()
	service, store, _ := newHistory(t)

	_, err := service.Record(ctx, 90, 65, "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	stored, _ := store.List(ctx)
	assert.Empty(t, stored)
}

func TestHistoryService_Record_UsesRealUUID(t *testing.T) {
	service := NewHistoryService(memory.NewHistoryStore(), NewCalculatorService(nil))

	result, err := service.Record(context.Background(), 170, 65, "")

	require.NoError(t, err)
	assert.Len(t, result.ID, 36)
}

func TestHistoryService_Save_KeepsExistingID(t *testing.T) {
	service, _, _ := newHistory(t)
	r, err := domain.ProcessMeasurement(170, 65, "", fixedNow)
	require.NoError(t, err)

	saved, err := service.Save(context.Background(), r.WithID("imported"))

	require.NoError(t, err)
	assert.Equal(t, "imported", saved.ID)
}

func TestHistoryService_Save_StoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	service := NewHistoryService(&brokenHistoryStore{err: storeErr}, NewCalculatorService(nil))

	_, err := service.Record(context.Background(), 170, 65, "")

	assert.ErrorIs(t, err, storeErr)
}

func TestHistoryService_List_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newHistory(t)
	for _, w := range []float64{60, 62, 64, 66} {
		_, err := service.Record(ctx, 170, w, "")
		require.NoError(t, err)
	}

	all, err := service.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "id-4", all[0].ID)
	assert.Equal(t, "id-1", all[3].ID)

	limited, err := service.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "id-4", limited[0].ID)
	assert.Equal(t, "id-3", limited[1].ID)

	more, err := service.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, more, 4)
}

func TestHistoryService_List_StoreError(t *testing.T) {
	service := NewHistoryService(&brokenHistoryStore{err: errors.New("boom")}, NewCalculatorService(nil))

	_, err := service.List(context.Background(), 10)

	assert.Error(t, err)
}

func TestHistoryService_DeleteAndClear(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newHistory(t)
	_, _ = service.Record(ctx, 170, 65, "")
	_, _ = service.Record(ctx, 170, 66, "")

	require.NoError(t, service.Delete(ctx, "id-1"))
	assert.ErrorIs(t, service.Delete(ctx, "id-1"), domain.ErrNotFound)

	require.NoError(t, service.Clear(ctx))
	results, _ := service.List(ctx, 0)
	assert.Empty(t, results)
}

func TestHistoryService_Trend(t *testing.T) {
	ctx := context.Background()
	service, _, _ := newHistory(t)

	_, err := service.Trend(ctx)
	assert.ErrorIs(t, err, domain.ErrNotEnoughData)

	_, _ = service.Record(ctx, 170, 70, "")
	_, err = service.Trend(ctx)
	assert.ErrorIs(t, err, domain.ErrNotEnoughData)

	_, _ = service.Record(ctx, 170, 65, "")
	trend, err := service.Trend(ctx)
	require.NoError(t, err)
	require.Len(t, trend.Points, 2)
	assert.InDelta(t, 24.2, trend.Points[0].BMI, 1e-9)
	assert.InDelta(t, 22.5, trend.Latest, 1e-9)
	assert.InDelta(t, -1.7, trend.Change, 1e-9)
}

func seedExport(t *testing.T) *HistoryService {
	t.Helper()
	service, _, _ := newHistory(t)
	ctx := context.Background()
	_, err := service.Record(ctx, 170, 65, "")
	require.NoError(t, err)
	_, err = service.Record(ctx, 170.5, 80, "after holidays, heavy")
	require.NoError(t, err)
	return service
}

func TestHistoryService_Export_JSON(t *testing.T) {
	service := seedExport(t)
	var buf bytes.Buffer

	require.NoError(t, service.Export(context.Background(), &buf, domain.ExportJSON))

	var records []exportRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "id-1", records[0].ID)
	assert.Equal(t, "NORMAL", records[0].Category)
	assert.Equal(t, "Normal weight", records[0].Label)
	assert.Equal(t, "2024-03-01T10:00:00Z", records[0].Timestamp)
	assert.Equal(t, "OVERWEIGHT", records[1].Category)
}

func TestHistoryService_Export_YAML(t *testing.T) {
	service := seedExport(t)
	var buf bytes.Buffer

	require.NoError(t, service.Export(context.Background(), &buf, domain.ExportYAML))

	var records []exportRecord
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "after holidays, heavy", records[1].Note)
	assert.InDelta(t, 170.5, records[1].Height, 1e-9)
}

func TestHistoryService_Export_CSV(t *testing.T) {
	service := seedExport(t)
	var buf bytes.Buffer

	require.NoError(t, service.Export(context.Background(), &buf, domain.ExportCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"id-1", "2024-03-01T10:00:00Z", "170", "65", "22.5", "NORMAL", "Normal weight", ""}, rows[1])
	assert.Equal(t, "170.5", rows[2][2])
	assert.Equal(t, "after holidays, heavy", rows[2][7])
}

func TestHistoryService_Export_UnknownFormat(t *testing.T) {
	service := seedExport(t)

	err := service.Export(context.Background(), &bytes.Buffer{}, domain.ExportFormat("xml"))

	assert.Error(t, err)
}
