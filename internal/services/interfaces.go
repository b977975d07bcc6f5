package services

import (
	"context"

	"sedash/internal/analytics"
	"sedash/pkg/contracts/domain"
)

// ObservationSource is the data-retrieval collaborator the analytics
// service consumes: raw year/value series plus the catalog used to label
// outputs. internal/store satisfies it; tests substitute fakes.
type ObservationSource interface {
	// Series returns one indicator's observations for one geography,
	// ascending by year. from/to bound years when positive; zero means
	// unbounded.
	Series(ctx context.Context, indicatorID, geoCode string, from, to int) (analytics.TimeSeries, error)

	Indicator(ctx context.Context, id string) (domain.Indicator, error)
	Geography(ctx context.Context, code string) (domain.Geography, error)
	ListIndicators(ctx context.Context, keyword string) ([]domain.Indicator, error)
	ListGeographies(ctx context.Context, parent string) ([]domain.Geography, error)
}
