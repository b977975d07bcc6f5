package http

import (
	"context"

	"sedash/internal/services"
	"sedash/pkg/contracts/domain"
)

// AnalyticsServiceInterface defines the analytics operations handlers
// depend on.
type AnalyticsServiceInterface interface {
	Summary(ctx context.Context, indicatorID, geoCode string, from, to int) (*domain.SummaryResponse, error)
	BatchSummaries(ctx context.Context, req domain.BatchSummaryRequest) (*domain.BatchSummaryResponse, error)
	Chart(ctx context.Context, indicatorID string, geoCodes []string, from, to int) (*domain.ChartResponse, error)
	Compare(ctx context.Context, indicatorA, indicatorB, geoCode string, from, to int) (*domain.CompareResponse, error)
	Forecast(ctx context.Context, indicatorID, geoCode string, horizon, from, to int) (*domain.ForecastResponse, error)
}

// CatalogServiceInterface defines the catalog operations handlers depend on.
type CatalogServiceInterface interface {
	ListIndicators(ctx context.Context, keyword string) ([]domain.Indicator, error)
	ListGeographies(ctx context.Context, parent string) ([]domain.Geography, error)
}

// HealthServiceInterface defines the health check operation.
type HealthServiceInterface interface {
	Check(ctx context.Context) services.HealthStatus
}
