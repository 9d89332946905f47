package calculator

import (
	"errors"
	"math"

	"MacroLens/internal/model"
)

// Summary holds headline figures for one normalized series.
type Summary struct {
	Latest      float64 `json:"latest"`
	LatestLabel string  `json:"latest_label"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Change      float64 `json:"change"` // first to latest, as a decimal (0.05 = +5%)
	Count       int     `json:"count"`
}

// Summarize scans the series once and returns its headline figures.
func Summarize(points []model.NormalizedPoint) (Summary, error) {
	if len(points) == 0 {
		return Summary{}, errors.New("no points provided")
	}
	low := math.Inf(1)
	high := math.Inf(-1)
	for _, p := range points {
		if p.Value < low {
			low = p.Value
		}
		if p.Value > high {
			high = p.Value
		}
	}
	last := points[len(points)-1]
	return Summary{
		Latest:      last.Value,
		LatestLabel: last.Date,
		Min:         low,
		Max:         high,
		Change:      GrowthRate(last.Value, points[0].Value),
		Count:       len(points),
	}, nil
}

// GrowthRate returns (current-previous)/previous, or 0 when previous is 0.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous
}

// PeriodChanges returns the period-over-period growth rate for each point after the first.
// The result is labelled with the later point's date.
func PeriodChanges(points []model.NormalizedPoint) []model.NormalizedPoint {
	if len(points) < 2 {
		return []model.NormalizedPoint{}
	}
	out := make([]model.NormalizedPoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		out = append(out, model.NormalizedPoint{
			Date:  points[i].Date,
			Value: GrowthRate(points[i].Value, points[i-1].Value),
		})
	}
	return out
}
