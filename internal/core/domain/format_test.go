package domain

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatResult(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.Local)
	result, err := ProcessMeasurement(170, 65, "", ts)
	require.NoError(t, err)

	formatted := FormatResult(*result)

	assert.Equal(t, strings.Join([]string{
		"=== BMI Result ===",
		"Height: 170cm",
		"Weight: 65kg",
		"BMI: 22.5",
		"Category: Normal weight",
		"Advice: Keep maintaining a healthy weight",
		"Measured at: 2024-05-06 07:08:09",
	}, "\n"), formatted)
}

func TestFormatResult_WithNote(t *testing.T) {
	result, err := ProcessMeasurement(172.5, 70.2, "after run", time.Now())
	require.NoError(t, err)

	formatted := FormatResult(*result)

	assert.Contains(t, formatted, "Height: 172.5cm")
	assert.Contains(t, formatted, "Weight: 70.2kg")
	assert.True(t, strings.HasSuffix(formatted, "Note: after run"))
}

func TestFormatResultWith_TranslatesEveryLine(t *testing.T) {
	result, err := ProcessMeasurement(170, 65, "", time.Now())
	require.NoError(t, err)

	var keys []string
	tr := func(key string, args ...any) string {
		keys = append(keys, key)
		return fmt.Sprintf(key, args...)
	}

	FormatResultWith(*result, tr)

	assert.Contains(t, keys, FormatHeader)
	assert.Contains(t, keys, Normal.Label())
	assert.Contains(t, keys, Normal.Advice())
	assert.NotContains(t, keys, FormatNote)
}

func TestFormatResultWith_NilTranslator(t *testing.T) {
	result, err := ProcessMeasurement(170, 65, "", time.Now())
	require.NoError(t, err)

	assert.Equal(t, FormatResult(*result), FormatResultWith(*result, nil))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "170", FormatNumber(170))
	assert.Equal(t, "170.5", FormatNumber(170.5))
	assert.Equal(t, "63.6", FormatNumber(63.6))
}
