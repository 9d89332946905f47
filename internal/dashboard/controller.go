package dashboard

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"MacroLens/internal/model"
)

// Pipeline produces the result for one indicator. Implementations must not fail;
// errors belong in the Result.
type Pipeline interface {
	Collect(ctx context.Context, ind model.Indicator) model.Result
}

// Snapshot is a consistent view of the controller state.
type Snapshot struct {
	Loading    bool
	Results    []model.Result // in indicator order; empty until the first load completes
	LoadedAt   time.Time
	Generation uint64
}

// Result returns the result for key, if loaded.
func (s Snapshot) Result(key string) (model.Result, bool) {
	for _, r := range s.Results {
		if r.Indicator.Key == key {
			return r, true
		}
	}
	return model.Result{}, false
}

// Controller loads every indicator concurrently and holds the latest results.
type Controller struct {
	pipeline   Pipeline
	indicators []model.Indicator

	mu         sync.Mutex
	loading    int // in-flight loads
	closed     bool
	generation uint64
	published  uint64
	results    []model.Result
	loadedAt   time.Time
}

// NewController creates a Controller for the given indicators.
func NewController(p Pipeline, indicators []model.Indicator) *Controller {
	inds := make([]model.Indicator, len(indicators))
	copy(inds, indicators)
	return &Controller{pipeline: p, indicators: inds}
}

// Indicators returns the configured indicators in display order.
func (c *Controller) Indicators() []model.Indicator {
	out := make([]model.Indicator, len(c.indicators))
	copy(out, c.indicators)
	return out
}

// Load runs all pipelines concurrently and waits for every one of them to settle
// before publishing. Results are dropped if the controller was closed meanwhile
// or a newer load has already published.
func (c *Controller) Load(ctx context.Context) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.generation++
	gen := c.generation
	c.loading++
	c.mu.Unlock()

	start := time.Now()
	results := make([]model.Result, len(c.indicators))

	var g errgroup.Group
	for i, ind := range c.indicators {
		g.Go(func() error {
			results[i] = c.pipeline.Collect(ctx, ind)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if !r.OK() {
			failed++
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading--
	if c.closed {
		log.Printf("[INFO] load #%d finished after close, discarding results", gen)
		return
	}
	if gen < c.published {
		log.Printf("[INFO] load #%d superseded by #%d, discarding results", gen, c.published)
		return
	}
	c.published = gen
	c.results = results
	c.loadedAt = time.Now()
	log.Printf("[INFO] load #%d done in %v: %d indicators, %d failed", gen, time.Since(start).Round(time.Millisecond), len(results), failed)
}

// Loading reports whether any load is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading > 0
}

// Snapshot returns the current state. The returned slice is not shared with the controller.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	results := make([]model.Result, len(c.results))
	copy(results, c.results)
	return Snapshot{
		Loading:    c.loading > 0,
		Results:    results,
		LoadedAt:   c.loadedAt,
		Generation: c.published,
	}
}

// Close tears the controller down. In-flight loads finish but never publish.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
