package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"MacroLens/internal/dashboard"
	"MacroLens/internal/model"
)

type fakeSource struct {
	snap  dashboard.Snapshot
	loads chan struct{}
}

func (f *fakeSource) Snapshot() dashboard.Snapshot  { return f.snap }
func (f *fakeSource) Indicators() []model.Indicator { return model.DefaultIndicators() }
func (f *fakeSource) Load(context.Context)          { f.loads <- struct{}{} }

func loadedSource() *fakeSource {
	inds := model.DefaultIndicators()
	results := []model.Result{
		{Indicator: inds[0], Points: []model.NormalizedPoint{{Date: "Jan 2020", Value: 2}, {Date: "Feb 2020", Value: 3}}},
		{Indicator: inds[1], Err: errors.New("fetch UNRATE: status 500"), Reason: model.ReasonRequest},
		{Indicator: inds[2], Points: []model.NormalizedPoint{}},
		{Indicator: inds[3], Points: []model.NormalizedPoint{{Date: "Jan 2020", Value: 1.5}}},
	}
	return &fakeSource{
		snap:  dashboard.Snapshot{Results: results, LoadedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Generation: 1},
		loads: make(chan struct{}, 1),
	}
}

func TestListIndicators(t *testing.T) {
	s := New(context.Background(), loadedSource())
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/indicators", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body snapshotJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Indicators) != 4 {
		t.Fatalf("expected 4 indicators, got %d", len(body.Indicators))
	}
	infl := body.Indicators[0]
	if len(infl.Points) != 2 || len(infl.Changes) != 1 || infl.Summary == nil {
		t.Errorf("unexpected inflation payload: %+v", infl)
	}
	unemp := body.Indicators[1]
	if unemp.Reason != model.ReasonRequest || len(unemp.Points) != 0 || unemp.Points == nil {
		t.Errorf("failed series should carry reason and an empty list: %+v", unemp)
	}
	if body.LoadedAt == nil {
		t.Error("expected loaded_at")
	}
}

func TestListIndicators_BeforeFirstLoad(t *testing.T) {
	src := &fakeSource{snap: dashboard.Snapshot{Loading: true}, loads: make(chan struct{}, 1)}
	s := New(context.Background(), src)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/indicators", nil))

	var body snapshotJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Loading {
		t.Error("expected loading=true")
	}
	if len(body.Indicators) != 4 || len(body.Indicators[0].Points) != 0 {
		t.Errorf("expected four empty series, got %+v", body.Indicators)
	}
}

func TestGetIndicator(t *testing.T) {
	s := New(context.Background(), loadedSource())

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/indicators/short_term_rate", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var one seriesJSON
	if err := json.Unmarshal(rr.Body.Bytes(), &one); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if one.SeriesID != "DGS3MO" || len(one.Points) != 1 {
		t.Errorf("unexpected payload: %+v", one)
	}

	rr = httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/indicators/gdp", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestRefresh(t *testing.T) {
	src := loadedSource()
	s := New(context.Background(), src)

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	select {
	case <-src.loads:
	case <-time.After(2 * time.Second):
		t.Fatal("expected a load to be triggered")
	}

	rr = httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/refresh", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405 for GET refresh, got %d", rr.Code)
	}
}

func TestRefresh_SkippedWhileLoading(t *testing.T) {
	src := loadedSource()
	src.snap.Loading = true
	s := New(context.Background(), src)

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/refresh", nil))
	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "already_loading" {
		t.Errorf("expected already_loading, got %q", body["status"])
	}
	select {
	case <-src.loads:
		t.Fatal("a second load must not start while one is in flight")
	case <-time.After(100 * time.Millisecond):
	}
}
