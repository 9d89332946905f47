package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MacroLens/internal/model"
)

const (
	// DefaultBaseURL is the public FRED API root.
	DefaultBaseURL = "https://api.stlouisfed.org/fred"
	// PlaceholderAPIKey is the value shipped in sample configs; it is treated as unset.
	PlaceholderAPIKey = "your_fred_api_key_here"

	requestDateLayout = "2006-01-02"
)

// FREDFetcher implements Fetcher using the FRED series/observations endpoint.
type FREDFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFREDFetcher creates a new fetcher with optional proxy support.
func NewFREDFetcher(baseURL, apiKey, proxyURL string) *FREDFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FREDFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *FREDFetcher) Name() string { return "fred" }

// Configured reports whether a real API key is present.
func (f *FREDFetcher) Configured() bool {
	key := strings.TrimSpace(f.APIKey)
	return key != "" && key != PlaceholderAPIKey
}

// fredObservations is the subset of the FRED response we read.
type fredObservations struct {
	Observations []model.Observation `json:"observations"`
}

// FetchObservations issues one request and returns the observations with
// missing-value rows removed, in upstream order.
func (f *FREDFetcher) FetchObservations(ctx context.Context, req model.SeriesRequest) ([]model.Observation, error) {
	if !f.Configured() {
		return []model.Observation{}, ErrNotConfigured
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint(req), nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", req.SeriesID, err)
	}
	resp, err := f.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", req.SeriesID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &RequestError{SeriesID: req.SeriesID, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload fredObservations
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &DecodeError{SeriesID: req.SeriesID, Err: err}
	}
	return FilterMissing(payload.Observations), nil
}

func (f *FREDFetcher) endpoint(req model.SeriesRequest) string {
	params := url.Values{}
	params.Set("series_id", req.SeriesID)
	params.Set("api_key", f.APIKey)
	params.Set("file_type", "json")
	if !req.Start.IsZero() {
		params.Set("observation_start", req.Start.Format(requestDateLayout))
	}
	if !req.End.IsZero() {
		params.Set("observation_end", req.End.Format(requestDateLayout))
	}
	return f.BaseURL + "/series/observations?" + params.Encode()
}

// FilterMissing drops observations carrying the missing-value marker, keeping order.
func FilterMissing(obs []model.Observation) []model.Observation {
	out := make([]model.Observation, 0, len(obs))
	for _, o := range obs {
		if o.Missing() {
			continue
		}
		out = append(out, o)
	}
	return out
}
