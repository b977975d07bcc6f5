package app

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedash/internal/config"
	"sedash/internal/store"
	"sedash/pkg/contracts/domain"
)

// testApplication wires the full stack over an in-memory store. Telemetry
// stays off; everything else runs exactly as in production.
func testApplication(t *testing.T) *Application {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Server.RequestTimeout = 30 * time.Second
	cfg.Logging.Level = "info"
	cfg.Analytics.MaxHorizon = 25
	cfg.Analytics.BatchConcurrency = 4

	a := &Application{
		Config: cfg,
		Store:  st,
		Logger: logger,
	}
	a.initServices()
	a.setupRouter()
	return a
}

func seedStore(t *testing.T, a *Application) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, a.Store.UpsertIndicator(ctx, domain.Indicator{ID: "literacy_rate", Name: "Literacy Rate", Unit: "%"}))
	require.NoError(t, a.Store.UpsertGeography(ctx, domain.Geography{Code: "IQ", Name: "Iraq"}))

	values := map[int]float64{2020: 10, 2021: 20, 2022: 30}
	for year, v := range values {
		value := v
		require.NoError(t, a.Store.PutObservation(ctx, "literacy_rate", "IQ", year, &value))
	}
}

func TestEndToEndSummary(t *testing.T) {
	a := testApplication(t)
	seedStore(t, a)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/indicators/literacy_rate/summary?geo=IQ", nil)
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp domain.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Count)
	require.NotNil(t, resp.Mean)
	assert.InDelta(t, 20.0, *resp.Mean, 1e-9)
	require.NotNil(t, resp.Slope)
	assert.InDelta(t, 10.0, *resp.Slope, 1e-9)
}

func TestEndToEndCatalog(t *testing.T) {
	a := testApplication(t)
	seedStore(t, a)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/indicators", nil)
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "literacy_rate")
}

func TestEndToEndForecastInsufficientData(t *testing.T) {
	a := testApplication(t)
	ctx := context.Background()
	require.NoError(t, a.Store.UpsertIndicator(ctx, domain.Indicator{ID: "literacy_rate", Name: "Literacy Rate"}))
	require.NoError(t, a.Store.UpsertGeography(ctx, domain.Geography{Code: "IQ", Name: "Iraq"}))
	v := 10.0
	require.NoError(t, a.Store.PutObservation(ctx, "literacy_rate", "IQ", 2020, &v))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/indicators/literacy_rate/forecast?geo=IQ&horizon=3", nil)
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "/errors/analytics/insufficient-data", problem["type"])
}

func TestEndToEndUnknownIndicatorIs404(t *testing.T) {
	a := testApplication(t)
	seedStore(t, a)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/indicators/ghost/summary?geo=IQ", nil)
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpointWired(t *testing.T) {
	a := testApplication(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestMetricsEndpointWired(t *testing.T) {
	a := testApplication(t)

	// Drive one request through the instrumented group first.
	warm := httptest.NewRequest(http.MethodGet, "/api/indicators", nil)
	a.Router.ServeHTTP(httptest.NewRecorder(), warm)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sedash_http_requests_total")
}
