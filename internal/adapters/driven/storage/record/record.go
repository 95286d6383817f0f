// Package record converts measurements to and from their persisted form.
//
// The persisted shape is shared by the JSON file and SQLite stores and
// stays readable for histories written before records carried an ID.
package record

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// Record is a measurement as it is written to disk.
type Record struct {
	ID        string  `json:"id,omitempty"`
	Height    float64 `json:"height"`
	Weight    float64 `json:"weight"`
	BMI       float64 `json:"bmi"`
	Category  string  `json:"category"`
	Timestamp string  `json:"timestamp"`
	Notes     string  `json:"notes"`
}

// timestampLayouts are tried in order when parsing. Zone-less layouts are
// interpreted in local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// FromResult converts a result into its persisted form.
func FromResult(r domain.BMIResult) Record {
	return Record{
		ID:        r.ID,
		Height:    r.Height,
		Weight:    r.Weight,
		BMI:       r.BMI,
		Category:  r.Category.Name(),
		Timestamp: FormatTimestamp(r.Timestamp),
		Notes:     r.Note,
	}
}

// ToResult converts a persisted record back into a result.
// Malformed records return an error matching domain.ErrInvalidRecord.
// Records without an ID get a stable one derived from their content.
func (r Record) ToResult() (domain.BMIResult, error) {
	if !(r.Height > 0) || !(r.Weight > 0) {
		return domain.BMIResult{}, fmt.Errorf("%w: height and weight must be positive", domain.ErrInvalidRecord)
	}

	category, err := domain.ParseCategory(r.Category)
	if err != nil {
		return domain.BMIResult{}, err
	}

	ts, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return domain.BMIResult{}, err
	}

	result, err := domain.NewBMIResult(r.Height, r.Weight, r.BMI, category, ts, r.Notes)
	if err != nil {
		return domain.BMIResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	id := r.ID
	if id == "" {
		id = LegacyID(r, 0)
	}
	return result.WithID(id), nil
}

// LegacyID derives a deterministic ID for a record written without one.
// occurrence counts earlier records with identical content, so repeated
// entries in one history get distinct IDs.
func LegacyID(r Record, occurrence int) string {
	parts := []string{
		r.Timestamp,
		strconv.FormatFloat(r.Height, 'f', -1, 64),
		strconv.FormatFloat(r.Weight, 'f', -1, 64),
	}
	if occurrence > 0 {
		parts = append(parts, strconv.Itoa(occurrence))
	}
	key := strings.Join(parts, "|")
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// FormatTimestamp renders t for storage.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp parses a stored timestamp, accepting RFC 3339 and the
// zone-less ISO 8601 forms found in older histories.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised timestamp %q", domain.ErrInvalidRecord, s)
}
