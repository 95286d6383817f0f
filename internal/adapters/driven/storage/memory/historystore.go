package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore.
type HistoryStore struct {
	mu      sync.RWMutex
	results []domain.BMIResult
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// Append adds a result to the end of the history.
func (s *HistoryStore) Append(_ context.Context, result domain.BMIResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

// List returns all results, oldest first.
func (s *HistoryStore) List(_ context.Context) ([]domain.BMIResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BMIResult, len(s.results))
	copy(out, s.results)
	return out, nil
}

// Delete removes a single result by ID.
func (s *HistoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.results {
		if r.ID == id {
			s.results = append(s.results[:i], s.results[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Clear removes every result.
func (s *HistoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = nil
	return nil
}

// Path returns "" as nothing is persisted.
func (s *HistoryStore) Path() string {
	return ""
}

// Close is a no-op.
func (s *HistoryStore) Close() error {
	return nil
}
