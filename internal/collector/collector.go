package collector

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"MacroLens/internal/calculator"
	"MacroLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Observations map[string][]model.Observation // keyed by series ID
	Err          error
	Delay        time.Duration
	BaseValue    float64
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchObservations(ctx context.Context, req model.SeriesRequest) ([]model.Observation, error) {
	if m.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.Delay):
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if obs, ok := m.Observations[req.SeriesID]; ok {
		return FilterMissing(obs), nil
	}
	return generateMockObservations(m.BaseValue, req), nil
}

// generateMockObservations produces one monthly observation per month in the request window.
func generateMockObservations(base float64, req model.SeriesRequest) []model.Observation {
	end := req.End
	if end.IsZero() {
		end = time.Now()
	}
	start := req.Start
	if start.IsZero() {
		start = end.AddDate(-model.DefaultWindowYears, 0, 0)
	}
	if base == 0 {
		base = 4
	}
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	var obs []model.Observation
	for i := 0; !cur.After(end); i++ {
		v := base + math.Sin(float64(i)/6)
		obs = append(obs, model.Observation{
			Date:  cur.Format(requestDateLayout),
			Value: fmt.Sprintf("%.2f", v),
		})
		cur = cur.AddDate(0, 1, 0)
	}
	return obs
}

// Collector runs the fetch-then-normalize pipeline for one indicator.
type Collector struct {
	Fetcher Fetcher
	Now     func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher, Now: time.Now}
}

// Collect fetches the indicator's trailing window and normalizes it.
// It never fails: errors are logged and carried in the Result.
func (c *Collector) Collect(ctx context.Context, ind model.Indicator) model.Result {
	now := c.Now()
	res := model.Result{Indicator: ind, FetchedAt: now}

	req := model.NewSeriesRequest(ind.SeriesID, ind.WindowYears, now)
	obs, err := c.Fetcher.FetchObservations(ctx, req)
	if err != nil {
		return c.fail(res, err)
	}

	points, err := calculator.Normalize(obs)
	if err != nil {
		return c.fail(res, fmt.Errorf("normalize %s: %w", ind.SeriesID, err))
	}
	res.Points = points
	return res
}

func (c *Collector) fail(res model.Result, err error) model.Result {
	res.Err = err
	res.Reason = Reason(err)
	if res.Reason == model.ReasonNotConfigured {
		log.Printf("[WARN] %s: %v, rendering empty series", res.Indicator.Key, err)
	} else {
		log.Printf("[ERROR] %s (%s) via %s: %v", res.Indicator.Key, res.Indicator.SeriesID, c.Fetcher.Name(), err)
	}
	return res
}
