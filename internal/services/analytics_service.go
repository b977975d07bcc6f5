package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"sedash/internal/analytics"
	"sedash/internal/store"
	"sedash/pkg/contracts/domain"
)

// AnalyticsService drives the analytics engine over stored series and
// assembles the response payloads the transport layer serializes. Every
// method builds its working data fresh from the source; nothing is shared
// or cached, so independent calls are safe to run concurrently.
type AnalyticsService struct {
	source           ObservationSource
	logger           *slog.Logger
	batchConcurrency int
}

// NewAnalyticsService creates a new analytics service. batchConcurrency
// caps how many series a batch summary request evaluates at once.
func NewAnalyticsService(source ObservationSource, batchConcurrency int, logger *slog.Logger) *AnalyticsService {
	if logger == nil {
		logger = slog.Default()
	}
	if batchConcurrency < 1 {
		batchConcurrency = 1
	}
	return &AnalyticsService{
		source:           source,
		logger:           logger.With(slog.String("component", "analytics_service")),
		batchConcurrency: batchConcurrency,
	}
}

// Summary computes the summary statistics for one indicator/geography
// pair. An empty series is not an error: the response carries count 0 and
// null figures.
func (s *AnalyticsService) Summary(ctx context.Context, indicatorID, geoCode string, from, to int) (*domain.SummaryResponse, error) {
	indicator, geography, err := resolveKey(ctx, s.source, indicatorID, geoCode)
	if err != nil {
		return nil, err
	}

	series, err := s.source.Series(ctx, indicatorID, geoCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("load series %s/%s: %w", indicatorID, geoCode, err)
	}

	summary := analytics.Summarize(series)
	s.logger.DebugContext(ctx, "summary computed",
		slog.String("indicator", indicatorID),
		slog.String("geo", geoCode),
		slog.Int("count", summary.Count),
	)

	return &domain.SummaryResponse{
		Indicator: indicator,
		Geography: geography,
		Count:     summary.Count,
		Mean:      summary.Mean,
		PctChange: summary.PctChange,
		Slope:     summary.Slope,
		Earliest:  summary.Earliest,
		Latest:    summary.Latest,
	}, nil
}

// BatchSummaries evaluates several indicator/geography pairs concurrently,
// one task per pair. Failures are reported per entry so one bad pair never
// sinks the batch.
func (s *AnalyticsService) BatchSummaries(ctx context.Context, req domain.BatchSummaryRequest) (*domain.BatchSummaryResponse, error) {
	if len(req.Pairs) == 0 {
		return nil, fmt.Errorf("batch with no pairs: %w", ErrInvalidInput)
	}

	entries := make([]domain.BatchSummaryEntry, len(req.Pairs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i, key := range req.Pairs {
		g.Go(func() error {
			entries[i] = domain.BatchSummaryEntry{Key: key}
			summary, err := s.Summary(gctx, key.IndicatorID, key.GeoCode, req.From, req.To)
			if err != nil {
				entries[i].Error = err.Error()
				return nil
			}
			entries[i].Summary = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.BatchSummaryResponse{Summaries: entries}, nil
}

// Chart returns the union-aligned multi-geography view of one indicator.
// Geographies with no observations contribute nothing but stay in the
// label set, so the chart legend matches the request.
func (s *AnalyticsService) Chart(ctx context.Context, indicatorID string, geoCodes []string, from, to int) (*domain.ChartResponse, error) {
	if len(geoCodes) == 0 {
		return nil, fmt.Errorf("chart with no geographies: %w", ErrInvalidInput)
	}

	indicator, err := s.source.Indicator(ctx, indicatorID)
	if err != nil {
		return nil, mapCatalogErr(err, "indicator", indicatorID)
	}

	geographies := make([]domain.Geography, 0, len(geoCodes))
	byLabel := make(map[string]analytics.TimeSeries, len(geoCodes))
	for _, code := range geoCodes {
		geography, err := s.source.Geography(ctx, code)
		if err != nil {
			return nil, mapCatalogErr(err, "geography", code)
		}
		geographies = append(geographies, geography)

		series, err := s.source.Series(ctx, indicatorID, code, from, to)
		if err != nil {
			return nil, fmt.Errorf("load series %s/%s: %w", indicatorID, code, err)
		}
		byLabel[code] = series
	}

	union, err := analytics.AlignUnion(byLabel)
	if err != nil {
		return nil, fmt.Errorf("align %s across %d geographies: %w", indicatorID, len(geoCodes), err)
	}

	rows := make([]domain.ChartRow, len(union.Points))
	for i, point := range union.Points {
		rows[i] = domain.ChartRow{Year: point.Year, Values: point.Values}
	}

	return &domain.ChartResponse{
		Indicator:   indicator,
		Geographies: geographies,
		Rows:        rows,
	}, nil
}

// Compare correlates two indicators over one geography on their common
// observed years. A degenerate correlation (constant series) comes back as
// a null coefficient with the aligned rows intact; too few common years is
// an error the caller surfaces.
func (s *AnalyticsService) Compare(ctx context.Context, indicatorA, indicatorB, geoCode string, from, to int) (*domain.CompareResponse, error) {
	indA, geography, err := resolveKey(ctx, s.source, indicatorA, geoCode)
	if err != nil {
		return nil, err
	}
	indB, err := s.source.Indicator(ctx, indicatorB)
	if err != nil {
		return nil, mapCatalogErr(err, "indicator", indicatorB)
	}

	seriesA, err := s.source.Series(ctx, indicatorA, geoCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("load series %s/%s: %w", indicatorA, geoCode, err)
	}
	seriesB, err := s.source.Series(ctx, indicatorB, geoCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("load series %s/%s: %w", indicatorB, geoCode, err)
	}

	aligned, err := analytics.AlignIntersection([]analytics.Series{
		{Label: indicatorA, Points: seriesA},
		{Label: indicatorB, Points: seriesB},
	})
	if err != nil {
		return nil, fmt.Errorf("align %s against %s: %w", indicatorA, indicatorB, err)
	}

	response := &domain.CompareResponse{
		IndicatorA: indA,
		IndicatorB: indB,
		Geography:  geography,
		Rows:       make([]domain.CompareRow, len(aligned.Years)),
	}
	for i, year := range aligned.Years {
		response.Rows[i] = domain.CompareRow{
			Year:   year,
			ValueA: aligned.Rows[i][0],
			ValueB: aligned.Rows[i][1],
		}
	}

	r, err := analytics.Pearson(aligned.Column(0), aligned.Column(1))
	switch {
	case err == nil:
		response.Correlation = &r
	case errors.Is(err, analytics.ErrDegenerateInput):
		// Constant series: correlation is undefined, not zero. The rows
		// are still worth plotting.
		s.logger.InfoContext(ctx, "correlation undefined for constant series",
			slog.String("indicator_a", indicatorA),
			slog.String("indicator_b", indicatorB),
			slog.String("geo", geoCode),
		)
	default:
		return nil, fmt.Errorf("correlate %s against %s: %w", indicatorA, indicatorB, err)
	}

	return response, nil
}

// Forecast extends one series horizon years past its last recorded
// observation using the engine's linear trend fit.
func (s *AnalyticsService) Forecast(ctx context.Context, indicatorID, geoCode string, horizon, from, to int) (*domain.ForecastResponse, error) {
	indicator, geography, err := resolveKey(ctx, s.source, indicatorID, geoCode)
	if err != nil {
		return nil, err
	}

	series, err := s.source.Series(ctx, indicatorID, geoCode, from, to)
	if err != nil {
		return nil, fmt.Errorf("load series %s/%s: %w", indicatorID, geoCode, err)
	}

	result, err := analytics.Forecast(series, horizon)
	if err != nil {
		return nil, fmt.Errorf("forecast %s/%s over %d years: %w", indicatorID, geoCode, horizon, err)
	}

	points := make([]domain.SeriesPoint, len(result.Points))
	for i, p := range result.Points {
		points[i] = domain.SeriesPoint{
			Year:          p.Year,
			Value:         p.Value,
			ForecastValue: p.Projected,
			IsForecast:    p.Forecast,
		}
	}

	return &domain.ForecastResponse{
		Indicator: indicator,
		Geography: geography,
		Slope:     result.Slope,
		BaseYear:  result.BaseYear,
		BaseValue: result.BaseValue,
		Series:    points,
	}, nil
}

// mapCatalogErr rewraps store misses as service-level not-found errors.
func mapCatalogErr(err error, kind, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		if kind == "indicator" {
			return fmt.Errorf("%s %s: %w", kind, id, ErrIndicatorNotFound)
		}
		return fmt.Errorf("%s %s: %w", kind, id, ErrGeographyNotFound)
	}
	return fmt.Errorf("resolve %s %s: %w", kind, id, err)
}
