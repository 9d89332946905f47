package report

import (
	"fmt"
	"strings"
	"time"

	"MacroLens/internal/calculator"
	"MacroLens/internal/dashboard"
	"MacroLens/internal/model"
)

// FormatSnapshot renders the dashboard state as a plain-text report.
func FormatSnapshot(snap dashboard.Snapshot) string {
	var b strings.Builder

	b.WriteString("MacroLens")
	if !snap.LoadedAt.IsZero() {
		b.WriteString(fmt.Sprintf(" | %s", snap.LoadedAt.Format("2006-01-02 15:04")))
	}
	b.WriteString("\n\n")

	if snap.Loading && len(snap.Results) == 0 {
		b.WriteString("loading...\n")
		return b.String()
	}

	for _, r := range snap.Results {
		b.WriteString(FormatResult(r))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatResult renders one indicator block.
func FormatResult(r model.Result) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s (%s)\n", r.Indicator.Title, r.Indicator.SeriesID))

	points := r.PointsOrEmpty()
	s, err := calculator.Summarize(points)
	if err != nil {
		b.WriteString("  no data\n")
		if !r.OK() {
			b.WriteString(fmt.Sprintf("  (%s)\n", r.Reason))
		}
		return b.String()
	}

	b.WriteString(fmt.Sprintf("  latest: %.2f (%s)\n", s.Latest, s.LatestLabel))
	b.WriteString(fmt.Sprintf("  range:  %.2f - %.2f over %d points\n", s.Min, s.Max, s.Count))
	b.WriteString(fmt.Sprintf("  change: %+.1f%% since %s\n", s.Change*100, points[0].Date))
	return b.String()
}

// Staleness describes how old a snapshot is, for log lines.
func Staleness(snap dashboard.Snapshot, now time.Time) string {
	if snap.LoadedAt.IsZero() {
		return "never loaded"
	}
	return fmt.Sprintf("loaded %v ago", now.Sub(snap.LoadedAt).Round(time.Second))
}
