package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "sedash/internal/errors"
	"sedash/internal/middleware"
	"sedash/internal/services"
	"sedash/pkg/contracts/domain"
)

// AnalyticsHandler handles the statistics, chart, comparison and forecast
// endpoints with RFC 7807 error responses.
type AnalyticsHandler struct {
	service      AnalyticsServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validator    *middleware.Validator
	maxHorizon   int
}

// NewAnalyticsHandler creates a new analytics handler. maxHorizon caps the
// forecast horizon a request may ask for.
func NewAnalyticsHandler(service AnalyticsServiceInterface, maxHorizon int, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "analytics_handler")),
		errorHandler: errorHandler,
		validator:    validator,
		maxHorizon:   maxHorizon,
	}
}

// IndicatorCtx validates the indicator URL parameter before the
// per-indicator routes run.
func (h *AnalyticsHandler) IndicatorCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		indicator := chi.URLParam(r, "indicator")
		if indicator == "" || len(indicator) > 64 {
			h.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
				"indicator", "indicator id is required", r.URL.Path))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSummary handles GET /api/indicators/{indicator}/summary.
func (h *AnalyticsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	indicator := chi.URLParam(r, "indicator")
	geo, ok := h.validator.RequiredParam(w, r, "geo")
	if !ok {
		return
	}
	from, to, ok := h.yearRange(w, r)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), indicator, geo, from, to)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, summary)
}

// BatchSummaries handles POST /api/summaries.
func (h *AnalyticsHandler) BatchSummaries(w http.ResponseWriter, r *http.Request) {
	var req domain.BatchSummaryRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			"body", "request body must be valid JSON", r.URL.Path))
		return
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	resp, err := h.service.BatchSummaries(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, resp)
}

// GetChart handles GET /api/indicators/{indicator}/chart. The geos
// parameter is a comma-separated list of geography codes.
func (h *AnalyticsHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	indicator := chi.URLParam(r, "indicator")
	geosParam, ok := h.validator.RequiredParam(w, r, "geos")
	if !ok {
		return
	}
	from, to, ok := h.yearRange(w, r)
	if !ok {
		return
	}

	geos := splitCodes(geosParam)
	if len(geos) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			"geos", "geos must list at least one geography code", r.URL.Path))
		return
	}

	chart, err := h.service.Chart(r.Context(), indicator, geos, from, to)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, chart)
}

// GetCompare handles GET /api/compare?a=...&b=...&geo=...
func (h *AnalyticsHandler) GetCompare(w http.ResponseWriter, r *http.Request) {
	indicatorA, ok := h.validator.RequiredParam(w, r, "a")
	if !ok {
		return
	}
	indicatorB, ok := h.validator.RequiredParam(w, r, "b")
	if !ok {
		return
	}
	geo, ok := h.validator.RequiredParam(w, r, "geo")
	if !ok {
		return
	}
	from, to, ok := h.yearRange(w, r)
	if !ok {
		return
	}

	cmp, err := h.service.Compare(r.Context(), indicatorA, indicatorB, geo, from, to)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, cmp)
}

// GetForecast handles GET /api/indicators/{indicator}/forecast.
func (h *AnalyticsHandler) GetForecast(w http.ResponseWriter, r *http.Request) {
	indicator := chi.URLParam(r, "indicator")
	geo, ok := h.validator.RequiredParam(w, r, "geo")
	if !ok {
		return
	}
	horizon, ok := h.validator.IntParam(w, r, "horizon", 1, h.maxHorizon, 5)
	if !ok {
		return
	}
	from, to, ok := h.yearRange(w, r)
	if !ok {
		return
	}

	forecast, err := h.service.Forecast(r.Context(), indicator, geo, horizon, from, to)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, forecast)
}

// yearRange reads the optional from/to query parameters. Zero means
// unbounded.
func (h *AnalyticsHandler) yearRange(w http.ResponseWriter, r *http.Request) (from, to int, ok bool) {
	from, ok = h.validator.IntParam(w, r, "from", 1800, 3000, 0)
	if !ok {
		return 0, 0, false
	}
	to, ok = h.validator.IntParam(w, r, "to", 1800, 3000, 0)
	if !ok {
		return 0, 0, false
	}
	if from > 0 && to > 0 && from > to {
		h.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			"from", "from must not be after to", r.URL.Path))
		return 0, 0, false
	}
	return from, to, true
}

// handleServiceError maps service sentinels onto problem responses before
// falling back to the central error handler.
func (h *AnalyticsHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrIndicatorNotFound),
		errors.Is(err, services.ErrGeographyNotFound):
		h.errorHandler.HandleError(w, r, apierrors.NotFoundProblem(err.Error(), r.URL.Path))
	case errors.Is(err, services.ErrInvalidInput):
		h.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			"request", err.Error(), r.URL.Path))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

func splitCodes(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}
