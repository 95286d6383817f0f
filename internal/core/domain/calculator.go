package domain

import (
	"fmt"
	"math"
	"time"
)

// Accepted measurement bounds (inclusive).
const (
	MinHeightCM = 100.0
	MaxHeightCM = 250.0
	MinWeightKG = 20.0
	MaxWeightKG = 300.0
)

// DefaultTargetBMI is the BMI used for ideal-weight calculations
// when the user has not configured one.
const DefaultTargetBMI = 22.0

// idealTolerance is the distance from ideal weight, in kg, that counts
// as being at the ideal weight.
const idealTolerance = 0.5

// Validation reasons, checked in this order.
const (
	ReasonNotNumeric  = "height and weight must be numbers"
	ReasonNotPositive = "height and weight must be positive"
	ReasonHeightRange = "height must be between 100cm and 250cm"
	ReasonWeightRange = "weight must be between 20kg and 300kg"
)

// Weight advice messages. The numeric variants take the absolute
// difference in kg.
const (
	MessageAtIdeal = "You are at your ideal weight!"
	MessageLose    = "Aim to lose %.1fkg to reach your ideal weight"
	MessageGain    = "Aim to gain %.1fkg to reach your ideal weight"
)

// Validate checks a height (cm) and weight (kg) pair.
// It returns nil when the measurement is usable, or an *InvalidInputError
// carrying the first failing reason.
func Validate(height, weight float64) error {
	switch {
	case !IsFinite(height) || !IsFinite(weight):
		return &InvalidInputError{Reason: ReasonNotNumeric}
	case height <= 0 || weight <= 0:
		return &InvalidInputError{Reason: ReasonNotPositive}
	case height < MinHeightCM || height > MaxHeightCM:
		return &InvalidInputError{Reason: ReasonHeightRange}
	case weight < MinWeightKG || weight > MaxWeightKG:
		return &InvalidInputError{Reason: ReasonWeightRange}
	}
	return nil
}

// ValidateHeight checks a height (cm) on its own, with the same reasons
// and order as Validate.
func ValidateHeight(height float64) error {
	switch {
	case !IsFinite(height):
		return &InvalidInputError{Reason: ReasonNotNumeric}
	case height <= 0:
		return &InvalidInputError{Reason: ReasonNotPositive}
	case height < MinHeightCM || height > MaxHeightCM:
		return &InvalidInputError{Reason: ReasonHeightRange}
	}
	return nil
}

// ComputeBMI returns weight / (height/100)^2 rounded to one decimal place,
// half away from zero. It performs no range validation.
func ComputeBMI(height, weight float64) float64 {
	m := height / 100
	return round1(weight / (m * m))
}

// IdealWeight returns the weight (kg) that yields targetBMI at the given
// height, rounded to one decimal place.
func IdealWeight(height, targetBMI float64) float64 {
	m := height / 100
	return round1(targetBMI * m * m)
}

// WeightAdviceKind describes which way the weight should move.
type WeightAdviceKind int

// Available advice kinds.
const (
	// WeightAtIdeal means the weight is within tolerance of ideal.
	WeightAtIdeal WeightAdviceKind = iota

	// WeightLose means the weight is above ideal.
	WeightLose

	// WeightGain means the weight is below ideal.
	WeightGain
)

// WeightAdvice is the difference between a current and an ideal weight.
type WeightAdvice struct {
	// Ideal is the ideal weight in kg.
	Ideal float64

	// Delta is current minus ideal, in kg. Positive means above ideal.
	Delta float64

	// Kind classifies the delta.
	Kind WeightAdviceKind
}

// MessageKey returns the untranslated message template for the advice.
func (a WeightAdvice) MessageKey() string {
	switch a.Kind {
	case WeightLose:
		return MessageLose
	case WeightGain:
		return MessageGain
	default:
		return MessageAtIdeal
	}
}

// Message returns the advice in English.
func (a WeightAdvice) Message() string {
	return a.MessageWith(fmt.Sprintf)
}

// MessageWith renders the advice through tr.
func (a WeightAdvice) MessageWith(tr Translator) string {
	if a.Kind == WeightAtIdeal {
		return tr(MessageAtIdeal)
	}
	return tr(a.MessageKey(), math.Abs(a.Delta))
}

// WeightDifference compares currentWeight against the ideal weight for
// height at targetBMI.
func WeightDifference(currentWeight, height, targetBMI float64) WeightAdvice {
	ideal := IdealWeight(height, targetBMI)
	delta := currentWeight - ideal

	advice := WeightAdvice{Ideal: ideal, Delta: delta}
	switch {
	case math.Abs(delta) < idealTolerance:
		advice.Kind = WeightAtIdeal
	case delta > 0:
		advice.Kind = WeightLose
	default:
		advice.Kind = WeightGain
	}
	return advice
}

// CategoryProgress reports how far bmi sits within its category's range,
// as a fraction in [0, 1]. The open-ended top category is always 1.
func CategoryProgress(bmi float64) (float64, HealthCategory) {
	category := Classify(bmi)
	if !category.Bounded() {
		return 1.0, category
	}

	lo, hi := category.Range()
	progress := (bmi - lo) / (hi - lo)
	return math.Max(0, math.Min(1, progress)), category
}

// ProcessMeasurement validates, computes and classifies a measurement,
// returning a result stamped with now.
func ProcessMeasurement(height, weight float64, note string, now time.Time) (*BMIResult, error) {
	if err := Validate(height, weight); err != nil {
		return nil, err
	}

	bmi := ComputeBMI(height, weight)
	return NewBMIResult(height, weight, bmi, Classify(bmi), now, note)
}

// ValidateTargetBMI checks a configured target BMI.
func ValidateTargetBMI(target float64) error {
	if !IsFinite(target) || target < MinTargetBMI || target > MaxTargetBMI {
		return fmt.Errorf("%w: target BMI must be between %.1f and %.1f",
			ErrInvalidSetting, MinTargetBMI, MaxTargetBMI)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
