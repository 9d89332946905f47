package model

import "time"

// MissingValue is the upstream marker for "no value for this period".
const MissingValue = "."

// Observation is one raw sample as returned by the FRED API.
type Observation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

// Missing reports whether the observation carries the missing-value marker.
func (o Observation) Missing() bool {
	return o.Value == MissingValue
}

// NormalizedPoint is a chart-ready sample: a month label and a parsed value.
type NormalizedPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// SeriesRequest identifies one series and an optional inclusive date range.
// A zero Start or End leaves that bound unset.
type SeriesRequest struct {
	SeriesID string
	Start    time.Time
	End      time.Time
}

// NewSeriesRequest builds a request covering the trailing window of years ending at now.
func NewSeriesRequest(seriesID string, windowYears int, now time.Time) SeriesRequest {
	req := SeriesRequest{SeriesID: seriesID, End: now}
	if windowYears > 0 {
		req.Start = now.AddDate(-windowYears, 0, 0)
	}
	return req
}
