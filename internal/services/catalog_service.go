package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"sedash/internal/store"
	"sedash/pkg/contracts/domain"
)

// CatalogService serves the indicator and geography catalogs that label
// every analytics output.
type CatalogService struct {
	source ObservationSource
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(source ObservationSource, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		source: source,
		logger: logger.With(slog.String("component", "catalog_service")),
	}
}

// ListIndicators returns the catalog, optionally filtered by keyword.
func (s *CatalogService) ListIndicators(ctx context.Context, keyword string) ([]domain.Indicator, error) {
	indicators, err := s.source.ListIndicators(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("list indicators: %w", err)
	}
	if len(indicators) == 0 && keyword != "" {
		return nil, fmt.Errorf("keyword %q: %w", keyword, ErrNoIndicatorsFound)
	}
	return indicators, nil
}

// ListGeographies returns geographies, optionally restricted to the
// containment subtree of a parent code.
func (s *CatalogService) ListGeographies(ctx context.Context, parent string) ([]domain.Geography, error) {
	if parent != "" {
		// Reject unknown parents instead of returning an empty subtree.
		if _, err := s.source.Geography(ctx, parent); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, fmt.Errorf("parent %s: %w", parent, ErrGeographyNotFound)
			}
			return nil, fmt.Errorf("resolve parent %s: %w", parent, err)
		}
	}

	geographies, err := s.source.ListGeographies(ctx, parent)
	if err != nil {
		return nil, fmt.Errorf("list geographies: %w", err)
	}
	return geographies, nil
}

// resolveKey loads the catalog entries for an indicator/geography pair,
// mapping store misses onto service errors.
func resolveKey(ctx context.Context, source ObservationSource, indicatorID, geoCode string) (domain.Indicator, domain.Geography, error) {
	indicator, err := source.Indicator(ctx, indicatorID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Indicator{}, domain.Geography{}, fmt.Errorf("indicator %s: %w", indicatorID, ErrIndicatorNotFound)
		}
		return domain.Indicator{}, domain.Geography{}, fmt.Errorf("resolve indicator %s: %w", indicatorID, err)
	}

	geography, err := source.Geography(ctx, geoCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Indicator{}, domain.Geography{}, fmt.Errorf("geography %s: %w", geoCode, ErrGeographyNotFound)
		}
		return domain.Indicator{}, domain.Geography{}, fmt.Errorf("resolve geography %s: %w", geoCode, err)
	}

	return indicator, geography, nil
}
