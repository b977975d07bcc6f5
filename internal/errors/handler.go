package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"sedash/internal/analytics"
	"sedash/internal/infrastructure"
)

// ErrorHandler provides centralized error handling: every error leaving a
// handler goes through here and comes out as an RFC 7807 response.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError converts any error to RFC 7807 format and responds.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	traceID := infrastructure.GetTraceID(r.Context())

	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	problem := h.ErrorToProblem(err, r)
	if traceID != "" {
		problem.WithExtension("trace_id", traceID)
	}

	render.Render(w, r, problem)
}

// ErrorToProblem converts an error to RFC 7807 problem details. The
// analytics taxonomy maps onto dedicated problem types so API consumers can
// distinguish "too few points" from "no meaningful number".
func (h *ErrorHandler) ErrorToProblem(err error, r *http.Request) *ProblemDetails {
	instance := r.URL.Path

	// A handler may have built the problem itself.
	var problem *ProblemDetails
	if errors.As(err, &problem) {
		return problem
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return NewProblemDetails(
			http.StatusGatewayTimeout,
			TypeTimeout,
			"Request Timeout",
			"The request took too long to process and was cancelled",
			instance,
		)

	case errors.Is(err, analytics.ErrInvalidParameter):
		return NewProblemDetails(
			http.StatusBadRequest,
			TypeValidation,
			"Invalid Parameter",
			err.Error(),
			instance,
		)

	case errors.Is(err, analytics.ErrInsufficientData):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeInsufficientData,
			"Insufficient Data",
			err.Error(),
			instance,
		)

	case errors.Is(err, analytics.ErrDegenerateInput):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeDegenerateInput,
			"Degenerate Input",
			err.Error(),
			instance,
		)

	case errors.Is(err, analytics.ErrLengthMismatch):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			TypeLengthMismatch,
			"Length Mismatch After Alignment",
			err.Error(),
			instance,
		)
	}

	// Anything unclassified is an internal error; the detail stays generic
	// so internals never leak into responses.
	return NewProblemDetails(
		http.StatusInternalServerError,
		TypeInternal,
		"Internal Server Error",
		"An unexpected error occurred",
		instance,
	)
}
