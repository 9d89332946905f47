package model

import "time"

// Failure reasons carried by a Result.
const (
	ReasonNone          = ""
	ReasonNotConfigured = "not_configured"
	ReasonRequest       = "request"
	ReasonTransport     = "transport"
	ReasonParse         = "parse"
)

// Result is the outcome of one indicator pipeline. A failed Result has no points;
// renderers that don't care about the difference draw it as an empty chart.
type Result struct {
	Indicator Indicator
	Points    []NormalizedPoint
	Err       error
	Reason    string
	FetchedAt time.Time
}

// OK reports whether the pipeline produced data without error.
func (r Result) OK() bool {
	return r.Err == nil
}

// PointsOrEmpty returns the points, or an empty non-nil slice for failed results.
func (r Result) PointsOrEmpty() []NormalizedPoint {
	if r.Err != nil || r.Points == nil {
		return []NormalizedPoint{}
	}
	return r.Points
}
