package services

import (
	"context"
	"fmt"

	"sedash/internal/analytics"
	"sedash/internal/store"
	"sedash/pkg/contracts/domain"
)

// fakeSource is an in-memory ObservationSource for tests. It mirrors the
// store's contract, including wrapping store.ErrNotFound for catalog
// misses.
type fakeSource struct {
	indicators  map[string]domain.Indicator
	geographies map[string]domain.Geography
	series      map[string]analytics.TimeSeries
	seriesErr   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		indicators:  make(map[string]domain.Indicator),
		geographies: make(map[string]domain.Geography),
		series:      make(map[string]analytics.TimeSeries),
	}
}

func (f *fakeSource) addIndicator(ind domain.Indicator) *fakeSource {
	f.indicators[ind.ID] = ind
	return f
}

func (f *fakeSource) addGeography(geo domain.Geography) *fakeSource {
	f.geographies[geo.Code] = geo
	return f
}

func (f *fakeSource) addSeries(indicatorID, geoCode string, points map[int]*float64) *fakeSource {
	f.series[indicatorID+"|"+geoCode] = analytics.NewTimeSeries(points)
	return f
}

func (f *fakeSource) Series(_ context.Context, indicatorID, geoCode string, from, to int) (analytics.TimeSeries, error) {
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	full := f.series[indicatorID+"|"+geoCode]
	var out analytics.TimeSeries
	for _, o := range full {
		if from > 0 && o.Year < from {
			continue
		}
		if to > 0 && o.Year > to {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeSource) Indicator(_ context.Context, id string) (domain.Indicator, error) {
	ind, ok := f.indicators[id]
	if !ok {
		return domain.Indicator{}, fmt.Errorf("indicator %s: %w", id, store.ErrNotFound)
	}
	return ind, nil
}

func (f *fakeSource) Geography(_ context.Context, code string) (domain.Geography, error) {
	geo, ok := f.geographies[code]
	if !ok {
		return domain.Geography{}, fmt.Errorf("geography %s: %w", code, store.ErrNotFound)
	}
	return geo, nil
}

func (f *fakeSource) ListIndicators(_ context.Context, keyword string) ([]domain.Indicator, error) {
	var out []domain.Indicator
	for _, ind := range f.indicators {
		out = append(out, ind)
	}
	return out, nil
}

func (f *fakeSource) ListGeographies(_ context.Context, parent string) ([]domain.Geography, error) {
	var out []domain.Geography
	for _, geo := range f.geographies {
		if parent == "" || geo.Parent == parent {
			out = append(out, geo)
		}
	}
	return out, nil
}

// seededSource builds a source with the catalog entries most tests need.
func seededSource() *fakeSource {
	return newFakeSource().
		addIndicator(domain.Indicator{ID: "literacy_rate", Name: "Literacy Rate", Unit: "%"}).
		addIndicator(domain.Indicator{ID: "enrollment", Name: "School Enrollment", Unit: "%"}).
		addGeography(domain.Geography{Code: "IQ", Name: "Iraq"}).
		addGeography(domain.Geography{Code: "JO", Name: "Jordan"})
}
