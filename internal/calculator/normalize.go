package calculator

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"MacroLens/internal/model"
)

const (
	observationDateLayout = "2006-01-02"
	// Go month names are fixed English, so the label does not depend on the host locale.
	labelLayout = "Jan 2006"
)

// ParseError reports an observation that could not be turned into a point.
type ParseError struct {
	Field string // "date" or "value"
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalize converts observations into chart points, preserving order.
// Missing-value observations are skipped. Any unparseable or non-finite
// observation fails the whole series.
func Normalize(obs []model.Observation) ([]model.NormalizedPoint, error) {
	points := make([]model.NormalizedPoint, 0, len(obs))
	for _, o := range obs {
		if o.Missing() {
			continue
		}
		p, err := NormalizeObservation(o)
		if err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, nil
}

// NormalizeObservation converts a single non-missing observation.
func NormalizeObservation(o model.Observation) (model.NormalizedPoint, error) {
	label, err := FormatLabel(o.Date)
	if err != nil {
		return model.NormalizedPoint{}, err
	}
	v, err := strconv.ParseFloat(o.Value, 64)
	if err != nil {
		return model.NormalizedPoint{}, &ParseError{Field: "value", Input: o.Value, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return model.NormalizedPoint{}, &ParseError{Field: "value", Input: o.Value, Err: fmt.Errorf("not a finite number")}
	}
	return model.NormalizedPoint{Date: label, Value: v}, nil
}

// FormatLabel turns an upstream date (YYYY-MM-DD) into an abbreviated month and year, e.g. "Jan 2020".
func FormatLabel(date string) (string, error) {
	t, err := time.Parse(observationDateLayout, date)
	if err != nil {
		return "", &ParseError{Field: "date", Input: date, Err: err}
	}
	return t.Format(labelLayout), nil
}
