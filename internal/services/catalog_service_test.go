package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedash/pkg/contracts/domain"
)

func TestListIndicators(t *testing.T) {
	svc := NewCatalogService(seededSource(), nil)

	indicators, err := svc.ListIndicators(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, indicators, 2)
}

func TestListIndicatorsNoMatch(t *testing.T) {
	svc := NewCatalogService(newFakeSource(), nil)

	_, err := svc.ListIndicators(context.Background(), "poverty")
	require.ErrorIs(t, err, ErrNoIndicatorsFound)
}

func TestListIndicatorsEmptyCatalogWithoutKeyword(t *testing.T) {
	svc := NewCatalogService(newFakeSource(), nil)

	indicators, err := svc.ListIndicators(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, indicators)
}

func TestListGeographiesSubtree(t *testing.T) {
	source := seededSource().
		addGeography(domain.Geography{Code: "IQ-BG", Name: "Baghdad", Parent: "IQ"}).
		addGeography(domain.Geography{Code: "IQ-BS", Name: "Basra", Parent: "IQ"})
	svc := NewCatalogService(source, nil)

	geos, err := svc.ListGeographies(context.Background(), "IQ")
	require.NoError(t, err)
	assert.Len(t, geos, 2)
	for _, geo := range geos {
		assert.Equal(t, "IQ", geo.Parent)
	}
}

func TestListGeographiesUnknownParent(t *testing.T) {
	svc := NewCatalogService(seededSource(), nil)

	_, err := svc.ListGeographies(context.Background(), "ZZ")
	require.ErrorIs(t, err, ErrGeographyNotFound)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	svc := NewHealthService(fakePinger{}, "1.2.3", nil)

	status := svc.Check(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "ok", status.Store)
	assert.Equal(t, "1.2.3", status.Version)
}

func TestHealthCheckDegraded(t *testing.T) {
	svc := NewHealthService(fakePinger{err: context.DeadlineExceeded}, "1.2.3", nil)

	status := svc.Check(context.Background())
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unreachable", status.Store)
}
