package driving

import "github.com/custodia-labs/bmi-cli/internal/core/domain"

// CalculatorService exposes the BMI calculation rules with the user's
// settings (target BMI, locale) applied.
type CalculatorService interface {
	// Validate checks a height (cm) and weight (kg) pair.
	// Returns an error matching domain.ErrInvalidInput with a localised reason.
	Validate(height, weight float64) error

	// ValidateHeight checks a height (cm) alone, as used for ideal weight.
	ValidateHeight(height float64) error

	// Compute returns the BMI for a measurement without validating it.
	Compute(height, weight float64) float64

	// Classify maps a BMI to its health category.
	Classify(bmi float64) domain.HealthCategory

	// Process validates and classifies a measurement, stamping the current time.
	Process(height, weight float64, note string) (*domain.BMIResult, error)

	// TargetBMI returns the configured target BMI.
	TargetBMI() float64

	// IdealWeight returns the ideal weight for height at the target BMI.
	IdealWeight(height float64) float64

	// WeightDifference compares weight to the ideal weight for height.
	WeightDifference(weight, height float64) domain.WeightAdvice

	// Progress returns the in-category progress of bmi.
	Progress(bmi float64) (float64, domain.HealthCategory)

	// Format renders a result as a localised multi-line block.
	Format(result domain.BMIResult) string

	// Translate renders a message key in the configured locale.
	Translate(key string, args ...any) string
}
