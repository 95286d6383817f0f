package domain

import (
	"fmt"
	"strings"
	"time"
)

// BMIResult is a single validated, classified measurement.
// Values are immutable once constructed; copy and use WithID to
// attach an identifier.
type BMIResult struct {
	// ID identifies the result once recorded in history.
	// Empty for results that were never persisted.
	ID string

	// Height is in centimetres.
	Height float64

	// Weight is in kilograms.
	Weight float64

	// BMI is rounded to one decimal place.
	BMI float64

	// Category is the classification of BMI.
	Category HealthCategory

	// Timestamp is when the measurement was processed.
	Timestamp time.Time

	// Note is an optional free-text note. Empty means no note.
	Note string
}

// NewBMIResult constructs a result, enforcing that bmi is strictly positive
// and the category is known.
func NewBMIResult(
	height, weight, bmi float64,
	category HealthCategory,
	timestamp time.Time,
	note string,
) (*BMIResult, error) {
	if !(bmi > 0) {
		return nil, fmt.Errorf("%w: BMI must be positive, got %v", ErrInvalidInput, bmi)
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %d", ErrInvalidInput, int(category))
	}

	return &BMIResult{
		Height:    height,
		Weight:    weight,
		BMI:       bmi,
		Category:  category,
		Timestamp: timestamp,
		Note:      strings.TrimSpace(note),
	}, nil
}

// HasNote returns true if a note was attached.
func (r BMIResult) HasNote() bool {
	return r.Note != ""
}

// WithID returns a copy of the result carrying id.
func (r BMIResult) WithID(id string) BMIResult {
	r.ID = id
	return r
}

// Progress returns the in-category progress of the result's BMI.
func (r BMIResult) Progress() float64 {
	p, _ := CategoryProgress(r.BMI)
	return p
}
