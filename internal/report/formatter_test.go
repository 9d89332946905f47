package report

import (
	"errors"
	"strings"
	"testing"
	"time"

	"MacroLens/internal/dashboard"
	"MacroLens/internal/model"
)

func TestFormatResult_WithData(t *testing.T) {
	r := model.Result{
		Indicator: model.Indicator{Title: "Unemployment Rate", SeriesID: "UNRATE"},
		Points: []model.NormalizedPoint{
			{Date: "Jan 2020", Value: 3.6},
			{Date: "Mar 2020", Value: 4.4},
		},
	}
	out := FormatResult(r)
	for _, want := range []string{"Unemployment Rate (UNRATE)", "latest: 4.40 (Mar 2020)", "3.60 - 4.40 over 2 points", "since Jan 2020"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestFormatResult_FailedRendersEmpty(t *testing.T) {
	r := model.Result{
		Indicator: model.Indicator{Title: "10-Year Treasury Rate", SeriesID: "DGS10"},
		Err:       errors.New("status 500"),
		Reason:    model.ReasonRequest,
	}
	out := FormatResult(r)
	if !strings.Contains(out, "no data") || !strings.Contains(out, "(request)") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestFormatSnapshot_Loading(t *testing.T) {
	out := FormatSnapshot(dashboard.Snapshot{Loading: true})
	if !strings.Contains(out, "loading...") {
		t.Errorf("expected loading marker:\n%s", out)
	}
}

func TestStaleness(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	if got := Staleness(dashboard.Snapshot{}, now); got != "never loaded" {
		t.Errorf("unexpected %q", got)
	}
	snap := dashboard.Snapshot{LoadedAt: now.Add(-90 * time.Second)}
	if got := Staleness(snap, now); got != "loaded 1m30s ago" {
		t.Errorf("unexpected %q", got)
	}
}
