// Package jsonfile stores measurement history as a JSON array in a single
// file. The format is compatible with bmi_history.json files written by
// earlier versions of the tool, whose records carry no ID and use zone-less
// timestamps.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/custodia-labs/bmi-cli/internal/adapters/driven/storage/record"
	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.HistoryStore = (*Store)(nil)

// FileName is the history file name inside the data directory.
const FileName = "bmi_history.json"

// Store is a JSON file implementation of driven.HistoryStore.
// The file is re-read on every call so writes from other processes are seen.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a store for dataDir/bmi_history.json, creating dataDir
// if needed. The file itself is created on first write.
func NewStore(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{path: filepath.Join(dataDir, FileName)}, nil
}

// Append adds a result to the end of the history.
func (s *Store) Append(_ context.Context, result domain.BMIResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readRaw()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(record.FromResult(result))
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return s.writeRaw(append(raw, encoded))
}

// List returns all readable results, oldest first.
// Malformed records are skipped and logged.
func (s *Store) List(_ context.Context) ([]domain.BMIResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readRaw()
	if err != nil {
		return nil, err
	}

	decoded := s.decodeAll(raw)
	results := make([]domain.BMIResult, 0, len(decoded))
	for _, d := range decoded {
		results = append(results, d.result)
	}
	return results, nil
}

// Delete removes a single result by ID. Malformed records are kept.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.readRaw()
	if err != nil {
		return err
	}

	for _, d := range s.decodeAll(raw) {
		if d.result.ID == id {
			return s.writeRaw(slices.Delete(raw, d.index, d.index+1))
		}
	}
	return domain.ErrNotFound
}

// Clear removes every result.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeRaw(nil)
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// Close is a no-op; the file is not held open.
func (s *Store) Close() error {
	return nil
}

type decoded struct {
	index  int
	result domain.BMIResult
}

// decodeAll decodes the readable records, skipping and logging malformed
// ones. Records without an ID that repeat an earlier record's content are
// numbered so every result has a distinct ID.
func (s *Store) decodeAll(raw []json.RawMessage) []decoded {
	out := make([]decoded, 0, len(raw))
	seen := make(map[string]int)
	for i, item := range raw {
		var rec record.Record
		if err := json.Unmarshal(item, &rec); err != nil {
			logger.Warn("skipping history record %d in %s: %v: %v", i, s.path, domain.ErrInvalidRecord, err)
			continue
		}
		result, err := rec.ToResult()
		if err != nil {
			logger.Warn("skipping history record %d in %s: %v", i, s.path, err)
			continue
		}
		if rec.ID == "" {
			n := seen[result.ID]
			seen[result.ID] = n + 1
			if n > 0 {
				result = result.WithID(record.LegacyID(rec, n))
			}
		}
		out = append(out, decoded{index: i, result: result})
	}
	return out
}

// readRaw loads the array without decoding individual records.
// A missing or empty file is an empty history.
func (s *Store) readRaw() ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", s.path, err)
	}
	return raw, nil
}

// writeRaw replaces the file atomically with the given records.
func (s *Store) writeRaw(raw []json.RawMessage) error {
	if raw == nil {
		raw = []json.RawMessage{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".history-*.json")
	if err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("writing history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
