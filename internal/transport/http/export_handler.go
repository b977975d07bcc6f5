package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	apierrors "sedash/internal/errors"
	"sedash/internal/exporter"
	"sedash/internal/middleware"
	"sedash/pkg/contracts/domain"
)

// ExportHandler turns batch summary requests into downloadable documents.
type ExportHandler struct {
	service      AnalyticsServiceInterface
	exporter     *exporter.Exporter
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validator    *middleware.Validator
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service AnalyticsServiceInterface, exp *exporter.Exporter, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		service:      service,
		exporter:     exp,
		logger:       logger.With(slog.String("component", "export_handler")),
		errorHandler: errorHandler,
		validator:    validator,
	}
}

// ExportSummary handles POST /api/export/summary?format=csv|xlsx. The body
// is the same batch request the summaries endpoint takes; the response is
// the rendered file.
func (h *ExportHandler) ExportSummary(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ValidationProblem(
			"format", "format must be csv or xlsx", r.URL.Path))
		return
	}

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
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("summaries-%s.%s", time.Now().Format("2006-01-02"), format)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = h.exporter.SummaryXLSX(w, resp.Summaries)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = h.exporter.SummaryCSV(w, resp.Summaries)
	}
	if err != nil {
		// Headers are gone by now; the most we can do is log.
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("format", format),
			slog.String("error", err.Error()),
		)
	}
}
