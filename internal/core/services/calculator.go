package services

import (
	"errors"
	"time"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
	"github.com/custodia-labs/bmi-cli/internal/core/ports/driving"
	"github.com/custodia-labs/bmi-cli/internal/i18n"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// Ensure CalculatorService implements the interface.
var _ driving.CalculatorService = (*CalculatorService)(nil)

// CalculatorService applies the BMI rules using the configured target BMI
// and locale.
type CalculatorService struct {
	settings driving.SettingsService
	now      func() time.Time
	locale   domain.Locale
}

// NewCalculatorService creates a new calculator service.
// settings may be nil, in which case defaults are used.
func NewCalculatorService(settings driving.SettingsService) *CalculatorService {
	return &CalculatorService{
		settings: settings,
		now:      time.Now,
	}
}

// SetClock overrides the time source used to stamp results.
func (s *CalculatorService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// OverrideLocale pins the output language regardless of settings.
// An empty locale restores the configured one.
func (s *CalculatorService) OverrideLocale(locale domain.Locale) {
	s.locale = locale
}

// Validate checks a height (cm) and weight (kg) pair.
// The returned reason is translated into the configured locale.
func (s *CalculatorService) Validate(height, weight float64) error {
	return s.localise(domain.Validate(height, weight))
}

// ValidateHeight checks a height with a localised reason.
func (s *CalculatorService) ValidateHeight(height float64) error {
	return s.localise(domain.ValidateHeight(height))
}

// Compute returns the BMI rounded to one decimal.
func (s *CalculatorService) Compute(height, weight float64) float64 {
	return domain.ComputeBMI(height, weight)
}

// Classify maps a BMI to its health category.
func (s *CalculatorService) Classify(bmi float64) domain.HealthCategory {
	return domain.Classify(bmi)
}

// Process validates and classifies a measurement, stamping the current time.
func (s *CalculatorService) Process(height, weight float64, note string) (*domain.BMIResult, error) {
	result, err := domain.ProcessMeasurement(height, weight, note, s.now())
	if err != nil {
		logger.Debug("rejected measurement height=%v weight=%v: %v", height, weight, err)
		return nil, s.localise(err)
	}
	logger.Debug("bmi=%.1f category=%s", result.BMI, result.Category.Name())
	return result, nil
}

// TargetBMI returns the configured target BMI.
func (s *CalculatorService) TargetBMI() float64 {
	return s.current().Calculator.TargetBMI
}

// IdealWeight returns the ideal weight for height at the target BMI.
func (s *CalculatorService) IdealWeight(height float64) float64 {
	return domain.IdealWeight(height, s.TargetBMI())
}

// WeightDifference compares weight to the ideal weight for height.
func (s *CalculatorService) WeightDifference(weight, height float64) domain.WeightAdvice {
	return domain.WeightDifference(weight, height, s.TargetBMI())
}

// Progress returns the in-category progress of bmi.
func (s *CalculatorService) Progress(bmi float64) (float64, domain.HealthCategory) {
	return domain.CategoryProgress(bmi)
}

// Format renders a result as a localised multi-line block.
func (s *CalculatorService) Format(result domain.BMIResult) string {
	return domain.FormatResultWith(result, s.translator())
}

// Translate renders a message key in the configured locale.
func (s *CalculatorService) Translate(key string, args ...any) string {
	return s.translator()(key, args...)
}

func (s *CalculatorService) translator() domain.Translator {
	if s.locale.IsValid() {
		return i18n.Translator(s.locale)
	}
	return i18n.Translator(s.current().Display.Locale)
}

// current reads settings on every call so changes apply without restart.
func (s *CalculatorService) current() domain.AppSettings {
	if s.settings == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := s.settings.Get()
	if err != nil || settings == nil {
		logger.Warn("falling back to default settings: %v", err)
		return domain.DefaultAppSettings()
	}
	return *settings
}

// localise translates the reason of an invalid input error while keeping
// it matchable with errors.Is(err, domain.ErrInvalidInput).
func (s *CalculatorService) localise(err error) error {
	var invalid *domain.InvalidInputError
	if !errors.As(err, &invalid) {
		return err
	}
	return &domain.InvalidInputError{Reason: s.Translate(invalid.Reason)}
}
