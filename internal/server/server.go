package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"MacroLens/internal/calculator"
	"MacroLens/internal/dashboard"
	"MacroLens/internal/model"
)

// Source is the dashboard state the API serves.
type Source interface {
	Snapshot() dashboard.Snapshot
	Indicators() []model.Indicator
	Load(ctx context.Context)
}

// Server exposes indicator series as JSON for chart rendering.
type Server struct {
	source Source
	ctx    context.Context
	mux    *http.ServeMux
}

// New creates a Server. ctx bounds reloads triggered through the API.
func New(ctx context.Context, source Source) *Server {
	s := &Server{source: source, ctx: ctx, mux: http.NewServeMux()}
	s.mux.HandleFunc("GET /api/indicators", s.handleList)
	s.mux.HandleFunc("GET /api/indicators/{key}", s.handleOne)
	s.mux.HandleFunc("POST /api/refresh", s.handleRefresh)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// HTTPServer wraps the handler with the timeouts used in production.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

type seriesJSON struct {
	Key      string                  `json:"key"`
	Title    string                  `json:"title"`
	SeriesID string                  `json:"series_id"`
	Points   []model.NormalizedPoint `json:"points"`
	Changes  []model.NormalizedPoint `json:"changes"`
	Summary  *calculator.Summary     `json:"summary,omitempty"`
	Error    string                  `json:"error,omitempty"`
	Reason   string                  `json:"reason,omitempty"`
}

type snapshotJSON struct {
	Loading    bool         `json:"loading"`
	LoadedAt   *time.Time   `json:"loaded_at,omitempty"`
	Indicators []seriesJSON `json:"indicators"`
}

func toSeriesJSON(ind model.Indicator, r model.Result, loaded bool) seriesJSON {
	out := seriesJSON{
		Key:      ind.Key,
		Title:    ind.Title,
		SeriesID: ind.SeriesID,
		Points:   []model.NormalizedPoint{},
		Changes:  []model.NormalizedPoint{},
	}
	if !loaded {
		return out
	}
	out.Points = r.PointsOrEmpty()
	out.Changes = calculator.PeriodChanges(out.Points)
	if sum, err := calculator.Summarize(out.Points); err == nil {
		out.Summary = &sum
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
		out.Reason = r.Reason
	}
	return out
}

func (s *Server) buildSnapshot() snapshotJSON {
	snap := s.source.Snapshot()
	out := snapshotJSON{Loading: snap.Loading, Indicators: []seriesJSON{}}
	if !snap.LoadedAt.IsZero() {
		t := snap.LoadedAt
		out.LoadedAt = &t
	}
	for _, ind := range s.source.Indicators() {
		r, ok := snap.Result(ind.Key)
		out.Indicators = append(out.Indicators, toSeriesJSON(ind, r, ok))
	}
	return out
}

func (s *Server) handleList(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.buildSnapshot())
}

func (s *Server) handleOne(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	for _, ind := range s.buildSnapshot().Indicators {
		if ind.Key == key {
			writeJSON(w, http.StatusOK, ind)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown indicator " + key})
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	if s.source.Snapshot().Loading {
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "already_loading"})
		return
	}
	go s.source.Load(s.ctx)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}
