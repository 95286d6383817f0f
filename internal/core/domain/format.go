package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TimestampLayout is the layout used when displaying measurement times.
const TimestampLayout = "2006-01-02 15:04:05"

// Result block lines. Each is a format key so callers can translate it.
const (
	FormatHeader    = "=== BMI Result ==="
	FormatHeight    = "Height: %scm"
	FormatWeight    = "Weight: %skg"
	FormatBMI       = "BMI: %.1f"
	FormatCategory  = "Category: %s"
	FormatAdvice    = "Advice: %s"
	FormatMeasured  = "Measured at: %s"
	FormatNote      = "Note: %s"
	FormatIdeal     = "Ideal weight: %skg"
	FormatProgress  = "Progress within category: %.1f%%"
	FormatTargetBMI = "Target BMI: %.1f"
)

// Translator renders a message key with arguments. fmt.Sprintf is the
// identity translator.
type Translator func(key string, args ...any) string

// FormatResult renders a result as a fixed multi-line block in English.
func FormatResult(r BMIResult) string {
	return FormatResultWith(r, fmt.Sprintf)
}

// FormatResultWith renders a result as a fixed multi-line block,
// passing every line and label through tr.
func FormatResultWith(r BMIResult, tr Translator) string {
	if tr == nil {
		tr = fmt.Sprintf
	}

	lines := []string{
		tr(FormatHeader),
		tr(FormatHeight, FormatNumber(r.Height)),
		tr(FormatWeight, FormatNumber(r.Weight)),
		tr(FormatBMI, r.BMI),
		tr(FormatCategory, tr(r.Category.Label())),
		tr(FormatAdvice, tr(r.Category.Advice())),
		tr(FormatMeasured, r.Timestamp.Format(TimestampLayout)),
	}
	if r.HasNote() {
		lines = append(lines, tr(FormatNote, r.Note))
	}
	return strings.Join(lines, "\n")
}

// FormatNumber renders a measurement with the fewest digits needed
// ("170", "170.5").
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
