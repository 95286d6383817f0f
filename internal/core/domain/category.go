package domain

import (
	"fmt"
	"math"
	"strings"
)

// HealthCategory is a WHO-style weight status derived from a BMI value.
type HealthCategory int

// Available health categories, ordered by BMI range.
const (
	// Underweight covers BMI in [0, 18.5).
	Underweight HealthCategory = iota

	// Normal covers BMI in [18.5, 25.0).
	Normal

	// Overweight covers BMI in [25.0, 30.0).
	Overweight

	// ObeseI covers BMI in [30.0, 35.0).
	ObeseI

	// ObeseII covers BMI in [35.0, 40.0).
	ObeseII

	// ObeseIII covers BMI of 40.0 and above.
	ObeseIII
)

type categoryInfo struct {
	name   string
	label  string
	color  string
	advice string
	min    float64
	max    float64
}

// categoryTable is the classification table, checked in order.
var categoryTable = [...]categoryInfo{
	Underweight: {
		name:   "UNDERWEIGHT",
		label:  "Underweight",
		color:  "#3498db",
		advice: "Consider gaining some weight",
		min:    0,
		max:    18.5,
	},
	Normal: {
		name:   "NORMAL",
		label:  "Normal weight",
		color:  "#2ecc71",
		advice: "Keep maintaining a healthy weight",
		min:    18.5,
		max:    25.0,
	},
	Overweight: {
		name:   "OVERWEIGHT",
		label:  "Overweight",
		color:  "#f1c40f",
		advice: "Moderate exercise and diet management are recommended",
		min:    25.0,
		max:    30.0,
	},
	ObeseI: {
		name:   "OBESE_1",
		label:  "Obese (class I)",
		color:  "#e67e22",
		advice: "Consult a doctor and consider improving your lifestyle",
		min:    30.0,
		max:    35.0,
	},
	ObeseII: {
		name:   "OBESE_2",
		label:  "Obese (class II)",
		color:  "#e74c3c",
		advice: "Consult a doctor and consider active treatment",
		min:    35.0,
		max:    40.0,
	},
	ObeseIII: {
		name:   "OBESE_3",
		label:  "Obese (class III)",
		color:  "#c0392b",
		advice: "Treatment by a specialist is required",
		min:    40.0,
		max:    math.Inf(1),
	},
}

// IsValid returns true if the category is recognised.
func (c HealthCategory) IsValid() bool {
	return c >= Underweight && c <= ObeseIII
}

func (c HealthCategory) info() categoryInfo {
	if !c.IsValid() {
		return categoryInfo{name: "UNKNOWN", label: "Unknown", color: "#7f8c8d"}
	}
	return categoryTable[c]
}

// Name returns the stable persisted name (e.g. "OBESE_1").
func (c HealthCategory) Name() string {
	return c.info().name
}

// Label returns the display label.
func (c HealthCategory) Label() string {
	return c.info().label
}

// Color returns the display colour as a hex token.
func (c HealthCategory) Color() string {
	return c.info().color
}

// Advice returns the advisory message shown with a result.
func (c HealthCategory) Advice() string {
	return c.info().advice
}

// Range returns the category's BMI interval [min, max).
// The top category has max = +Inf.
func (c HealthCategory) Range() (lo, hi float64) {
	info := c.info()
	return info.min, info.max
}

// Bounded returns false for the open-ended top category.
func (c HealthCategory) Bounded() bool {
	_, hi := c.Range()
	return !math.IsInf(hi, 1)
}

// String returns the persisted name.
func (c HealthCategory) String() string {
	return c.Name()
}

// AllCategories returns every category in classification order.
func AllCategories() []HealthCategory {
	return []HealthCategory{Underweight, Normal, Overweight, ObeseI, ObeseII, ObeseIII}
}

// ParseCategory resolves a persisted name back to its category.
// Matching is case-insensitive.
func ParseCategory(name string) (HealthCategory, error) {
	name = strings.TrimSpace(name)
	for _, c := range AllCategories() {
		if strings.EqualFold(c.Name(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidRecord, name)
}

// Classify maps a BMI value to its category.
// Boundary values belong to the higher category. Values that match no
// interval (negative or NaN) fall back to ObeseIII.
func Classify(bmi float64) HealthCategory {
	for _, c := range AllCategories() {
		lo, hi := c.Range()
		if bmi >= lo && bmi < hi {
			return c
		}
	}
	return ObeseIII
}
