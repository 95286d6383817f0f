// Package chart renders BMI trends as text line charts.
package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/custodia-labs/bmi-cli/internal/core/domain"
)

// Chart size limits.
const (
	DefaultWidth  = 60
	DefaultHeight = 12
	MinWidth      = 24
	MinHeight     = 5
)

const (
	axisOffset = 3
	dateLayout = "2006-01-02"
)

// Option configures Render.
type Option func(*options)

type options struct {
	color bool
}

// WithColor draws the BMI line and the guide lines in ANSI colours.
func WithColor() Option {
	return func(o *options) { o.color = true }
}

// Render draws trend as a chart at most width columns wide with a plot
// area of about height rows. Category boundaries from domain.TrendGuides
// are drawn as flat series underneath the BMI line, followed by the date
// axis and a guide legend. Sizes below the minimums are raised to them.
func Render(trend domain.Trend, width, height int, opts ...Option) string {
	if len(trend.Points) == 0 {
		return ""
	}
	width = max(width, MinWidth)
	height = max(height, MinHeight)

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	guides := domain.TrendGuides()
	bmis := make([]float64, len(trend.Points))
	for i, p := range trend.Points {
		bmis[i] = p.BMI
	}

	series := make([][]float64, 0, len(guides)+1)
	for _, g := range guides {
		series = append(series, flat(g, len(bmis)))
	}
	series = append(series, bmis)

	lo, hi := bounds(trend, guides)
	// asciigraph puts the whole y label in one grid cell, so each row is
	// label-1 columns wider than offset plus plot width.
	indent := len(fmt.Sprintf("%.1f", hi)) + axisOffset
	plotWidth := width - indent
	graphOpts := []asciigraph.Option{
		asciigraph.Width(plotWidth),
		asciigraph.Height(height - 1),
		asciigraph.LowerBound(lo),
		asciigraph.UpperBound(hi),
		asciigraph.Offset(axisOffset),
		asciigraph.Precision(1),
	}
	if o.color {
		graphOpts = append(graphOpts, asciigraph.SeriesColors(seriesColors(guides, len(series))...))
	}

	var b strings.Builder
	b.WriteString(asciigraph.PlotMany(series, graphOpts...))
	b.WriteByte('\n')
	b.WriteString(axisDates(trend.Points[0].Timestamp.Format(dateLayout),
		trend.Points[len(trend.Points)-1].Timestamp.Format(dateLayout), indent, plotWidth))
	b.WriteByte('\n')
	b.WriteString(legend(guides, indent))
	b.WriteByte('\n')
	return b.String()
}

// Summary returns the one-line min/max/latest/change description of trend.
func Summary(trend domain.Trend) string {
	return fmt.Sprintf("min %.1f  max %.1f  latest %.1f  change %+.1f",
		trend.Min, trend.Max, trend.Latest, trend.Change)
}

// bounds returns the value range covering the data and every guide, padded
// by one BMI unit.
func bounds(trend domain.Trend, guides []float64) (lo, hi float64) {
	lo, hi = trend.Min, trend.Max
	for _, g := range guides {
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
	}
	return math.Floor(lo) - 1, math.Ceil(hi) + 1
}

func flat(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// seriesColors colours each guide like the category it opens and the
// BMI line last.
func seriesColors(guides []float64, n int) []asciigraph.AnsiColor {
	colors := make([]asciigraph.AnsiColor, 0, n)
	for _, g := range guides {
		switch domain.Classify(g) {
		case domain.Normal:
			colors = append(colors, asciigraph.Green)
		case domain.Overweight:
			colors = append(colors, asciigraph.Yellow)
		default:
			colors = append(colors, asciigraph.Red)
		}
	}
	return append(colors, asciigraph.Blue)
}

func legend(guides []float64, indent int) string {
	parts := make([]string, len(guides))
	for i, g := range guides {
		parts[i] = fmt.Sprintf("%.1f", g)
	}
	return strings.Repeat(" ", indent) + "guides: " + strings.Join(parts, "  ")
}

func axisDates(first, last string, indent, plotWidth int) string {
	pad := strings.Repeat(" ", indent)
	if first == last {
		return pad + first
	}
	gap := plotWidth - len(first) - len(last)
	if gap < 1 {
		return pad + first + " " + last
	}
	return pad + first + strings.Repeat(" ", gap) + last
}
