package model

// Indicator describes one economic series shown on the dashboard.
type Indicator struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	SeriesID    string `json:"series_id"`
	WindowYears int    `json:"window_years"`
}

// DefaultWindowYears is the trailing window fetched for every indicator.
const DefaultWindowYears = 5

// DefaultIndicators returns the four indicators the dashboard renders, in display order.
func DefaultIndicators() []Indicator {
	return []Indicator{
		{Key: "inflation", Title: "Inflation Growth Rate", SeriesID: "FPCPITOTLZGUSA", WindowYears: DefaultWindowYears},
		{Key: "unemployment", Title: "Unemployment Rate", SeriesID: "UNRATE", WindowYears: DefaultWindowYears},
		{Key: "long_term_rate", Title: "10-Year Treasury Rate", SeriesID: "DGS10", WindowYears: DefaultWindowYears},
		{Key: "short_term_rate", Title: "3-Month Treasury Rate", SeriesID: "DGS3MO", WindowYears: DefaultWindowYears},
	}
}

// WithWindow returns a copy of indicators with every window set to years.
func WithWindow(indicators []Indicator, years int) []Indicator {
	out := make([]Indicator, len(indicators))
	for i, ind := range indicators {
		ind.WindowYears = years
		out[i] = ind
	}
	return out
}
