package domain

import (
	"sort"
	"time"
)

// MinTrendPoints is the number of results needed to draw a trend.
const MinTrendPoints = 2

// TrendPoint is one BMI sample on the trend line.
type TrendPoint struct {
	Timestamp time.Time
	BMI       float64
	Category  HealthCategory
}

// Trend summarises BMI over time, oldest point first.
type Trend struct {
	Points []TrendPoint

	// Min and Max are the extreme BMI values.
	Min float64
	Max float64

	// Latest is the most recent BMI.
	Latest float64

	// Change is Latest minus the first BMI, rounded to one decimal.
	Change float64
}

// NewTrend builds a trend from results in any order.
// It returns ErrNotEnoughData for fewer than MinTrendPoints results.
func NewTrend(results []BMIResult) (Trend, error) {
	if len(results) < MinTrendPoints {
		return Trend{}, ErrNotEnoughData
	}

	points := make([]TrendPoint, len(results))
	for i := range results {
		points[i] = TrendPoint{
			Timestamp: results[i].Timestamp,
			BMI:       results[i].BMI,
			Category:  results[i].Category,
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp.Before(points[j].Timestamp)
	})

	trend := Trend{
		Points: points,
		Min:    points[0].BMI,
		Max:    points[0].BMI,
		Latest: points[len(points)-1].BMI,
	}
	for _, p := range points[1:] {
		if p.BMI < trend.Min {
			trend.Min = p.BMI
		}
		if p.BMI > trend.Max {
			trend.Max = p.BMI
		}
	}
	trend.Change = round1(trend.Latest - points[0].BMI)
	return trend, nil
}

// TrendGuides returns the category boundaries drawn as guide lines on a
// trend chart: the start of Normal, Overweight and ObeseI.
func TrendGuides() []float64 {
	guides := make([]float64, 0, 3)
	for _, c := range []HealthCategory{Normal, Overweight, ObeseI} {
		lo, _ := c.Range()
		guides = append(guides, lo)
	}
	return guides
}
