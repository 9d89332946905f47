package collector

import (
	"context"

	"MacroLens/internal/model"
)

// Fetcher retrieves raw observations for one series.
type Fetcher interface {
	FetchObservations(ctx context.Context, req model.SeriesRequest) ([]model.Observation, error)
	Name() string
}
