package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBMI(t *testing.T) {
	assert.Equal(t, 22.5, ComputeBMI(170, 65))
	assert.Equal(t, 19.5, ComputeBMI(160, 50))
}

func TestComputeBMI_PositiveAcrossValidRange(t *testing.T) {
	for h := MinHeightCM; h <= MaxHeightCM; h += 5 {
		for w := MinWeightKG; w <= MaxWeightKG; w += 10 {
			assert.Greater(t, ComputeBMI(h, w), 0.0, "h=%v w=%v", h, w)
		}
	}
	assert.Greater(t, ComputeBMI(250, 20), 0.0)
	assert.Greater(t, ComputeBMI(100, 300), 0.0)
}

func TestComputeBMI_Scenarios(t *testing.T) {
	tests := []struct {
		name     string
		height   float64
		weight   float64
		expected HealthCategory
	}{
		{"normal", 170, 65, Normal},
		{"underweight", 160, 45, Underweight},
		{"overweight", 175, 80, Overweight},
		{"obese", 170, 90, ObeseI},
		{"underweight short", 150, 40, Underweight},
		{"overweight tall", 180, 90, Overweight},
		{"obese short", 160, 80, ObeseI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bmi := ComputeBMI(tt.height, tt.weight)
			assert.Equal(t, tt.expected, Classify(bmi))
		})
	}

	assert.Less(t, ComputeBMI(160, 45), 18.5)
	assert.GreaterOrEqual(t, ComputeBMI(170, 90), 30.0)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		weight float64
		reason string
	}{
		{"typical", 170, 65, ""},
		{"lower bounds", 100, 20, ""},
		{"upper bounds", 250, 300, ""},
		{"nan height", math.NaN(), 65, ReasonNotNumeric},
		{"infinite weight", 170, math.Inf(1), ReasonNotNumeric},
		{"negative height", -170, 65, ReasonNotPositive},
		{"zero height", 0, 65, ReasonNotPositive},
		{"zero weight", 170, 0, ReasonNotPositive},
		{"height too small", 99, 65, ReasonHeightRange},
		{"height too large", 251, 65, ReasonHeightRange},
		{"weight too small", 170, 19, ReasonWeightRange},
		{"weight too large", 170, 301, ReasonWeightRange},
		{"height checked before weight", 99, 301, ReasonHeightRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.height, tt.weight)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.reason, ReasonOf(err))
		})
	}
}

func TestValidate_ReasonsReferenceBounds(t *testing.T) {
	err := Validate(99, 65)
	assert.Contains(t, err.Error(), "100cm and 250cm")

	err = Validate(170, 301)
	assert.Contains(t, err.Error(), "20kg and 300kg")
}

func TestValidateHeight(t *testing.T) {
	tests := []struct {
		name   string
		height float64
		reason string
	}{
		{"typical", 170, ""},
		{"bounds", 100, ""},
		{"nan", math.NaN(), ReasonNotNumeric},
		{"infinite", math.Inf(-1), ReasonNotNumeric},
		{"negative", -1, ReasonNotPositive},
		{"too small", 99.9, ReasonHeightRange},
		{"too large", 250.1, ReasonHeightRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHeight(tt.height)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.reason, ReasonOf(err))
		})
	}
}

func TestIdealWeight(t *testing.T) {
	assert.Equal(t, 63.6, IdealWeight(170, DefaultTargetBMI))
	assert.Equal(t, 51.2, IdealWeight(160, 20.0))
}

func TestIdealWeight_IncreasesWithHeight(t *testing.T) {
	prev := IdealWeight(MinHeightCM, DefaultTargetBMI)
	for h := MinHeightCM + 1; h <= MaxHeightCM; h++ {
		cur := IdealWeight(h, DefaultTargetBMI)
		assert.Greater(t, cur, prev, "height %v", h)
		prev = cur
	}
}

func TestWeightDifference(t *testing.T) {
	t.Run("above ideal", func(t *testing.T) {
		advice := WeightDifference(70, 170, 22.0)

		assert.Greater(t, advice.Delta, 0.0)
		assert.Equal(t, WeightLose, advice.Kind)
		assert.Equal(t, "Aim to lose 6.4kg to reach your ideal weight", advice.Message())
	})

	t.Run("below ideal", func(t *testing.T) {
		advice := WeightDifference(60, 170, 22.0)

		assert.Less(t, advice.Delta, 0.0)
		assert.Equal(t, WeightGain, advice.Kind)
		assert.Equal(t, "Aim to gain 3.6kg to reach your ideal weight", advice.Message())
	})

	t.Run("at ideal", func(t *testing.T) {
		ideal := IdealWeight(170, 22.0)
		advice := WeightDifference(ideal, 170, 22.0)

		assert.Less(t, math.Abs(advice.Delta), 0.5)
		assert.Equal(t, WeightAtIdeal, advice.Kind)
		assert.Equal(t, MessageAtIdeal, advice.Message())
		assert.Equal(t, ideal, advice.Ideal)
	})

	t.Run("within tolerance", func(t *testing.T) {
		advice := WeightDifference(64.0, 170, 22.0)
		assert.Equal(t, WeightAtIdeal, advice.Kind)
	})
}

func TestCategoryProgress(t *testing.T) {
	progress, category := CategoryProgress(21.75)
	assert.Equal(t, Normal, category)
	assert.InDelta(t, 0.5, progress, 0.1)

	progress, category = CategoryProgress(18.5)
	assert.Equal(t, Normal, category)
	assert.Equal(t, 0.0, progress)

	progress, category = CategoryProgress(24.9)
	assert.Equal(t, Normal, category)
	assert.Greater(t, progress, 0.9)

	progress, category = CategoryProgress(45)
	assert.Equal(t, ObeseIII, category)
	assert.Equal(t, 1.0, progress)
}

func TestCategoryProgress_Clamped(t *testing.T) {
	progress, category := CategoryProgress(-3)
	assert.Equal(t, ObeseIII, category)
	assert.Equal(t, 1.0, progress)

	for i := 0; i < 500; i++ {
		p, _ := CategoryProgress(float64(i) / 10)
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
	}
}

func TestProcessMeasurement(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)

	result, err := ProcessMeasurement(170, 65, "morning", now)

	require.NoError(t, err)
	assert.Equal(t, 170.0, result.Height)
	assert.Equal(t, 65.0, result.Weight)
	assert.Equal(t, 22.5, result.BMI)
	assert.Equal(t, Normal, result.Category)
	assert.Equal(t, now, result.Timestamp)
	assert.Equal(t, "morning", result.Note)
	assert.Empty(t, result.ID)
}

func TestProcessMeasurement_Invalid(t *testing.T) {
	_, err := ProcessMeasurement(50, 65, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, ReasonHeightRange, ReasonOf(err))

	_, err = ProcessMeasurement(170, 10, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, ReasonWeightRange, ReasonOf(err))
}

func TestValidateTargetBMI(t *testing.T) {
	assert.NoError(t, ValidateTargetBMI(22.0))
	assert.NoError(t, ValidateTargetBMI(MinTargetBMI))
	assert.NoError(t, ValidateTargetBMI(MaxTargetBMI))

	for _, v := range []float64{17.9, 25.1, math.NaN()} {
		err := ValidateTargetBMI(v)
		assert.True(t, errors.Is(err, ErrInvalidSetting), "%v", v)
	}
}

func TestWeightAdvice_MessageWith(t *testing.T) {
	upper := func(key string, args ...any) string {
		return strings.ToUpper(fmt.Sprintf(key, args...))
	}

	lose := WeightDifference(70, 170, DefaultTargetBMI)
	assert.Equal(t, "AIM TO LOSE 6.4KG TO REACH YOUR IDEAL WEIGHT", lose.MessageWith(upper))

	ideal := WeightDifference(63.6, 170, DefaultTargetBMI)
	assert.Equal(t, strings.ToUpper(MessageAtIdeal), ideal.MessageWith(upper))
}
