package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	apierrors "sedash/internal/errors"
	"sedash/internal/services"
)

// CatalogHandler serves the indicator and geography catalogs.
type CatalogHandler struct {
	service      CatalogServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(service CatalogServiceInterface, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "catalog_handler")),
		errorHandler: errorHandler,
	}
}

// ListIndicators handles GET /api/indicators?q=keyword.
func (h *CatalogHandler) ListIndicators(w http.ResponseWriter, r *http.Request) {
	keyword := strings.TrimSpace(r.URL.Query().Get("q"))

	indicators, err := h.service.ListIndicators(r.Context(), keyword)
	if err != nil {
		if errors.Is(err, services.ErrNoIndicatorsFound) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundProblem(err.Error(), r.URL.Path))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"indicators": indicators,
		"count":      len(indicators),
	})
}

// ListGeographies handles GET /api/geographies?parent=code. Without a
// parent it lists the whole catalog; with one it lists the containment
// subtree below that code.
func (h *CatalogHandler) ListGeographies(w http.ResponseWriter, r *http.Request) {
	parent := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("parent")))

	geographies, err := h.service.ListGeographies(r.Context(), parent)
	if err != nil {
		if errors.Is(err, services.ErrGeographyNotFound) {
			h.errorHandler.HandleError(w, r, apierrors.NotFoundProblem(err.Error(), r.URL.Path))
			return
		}
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"geographies": geographies,
		"count":       len(geographies),
	})
}
