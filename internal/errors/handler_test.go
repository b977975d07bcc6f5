package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sedash/internal/analytics"
	"sedash/internal/infrastructure"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestErrorToProblemClassification(t *testing.T) {
	h := NewErrorHandler(discardLogger())
	r := httptest.NewRequest(http.MethodGet, "/api/test", nil)

	tests := []struct {
		name         string
		err          error
		wantStatus   int
		wantType     string
	}{
		{
			name:       "insufficient_data",
			err:        fmt.Errorf("summary: %w", analytics.ErrInsufficientData),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeInsufficientData,
		},
		{
			name:       "degenerate_input",
			err:        fmt.Errorf("pearson: %w", analytics.ErrDegenerateInput),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDegenerateInput,
		},
		{
			name:       "length_mismatch",
			err:        fmt.Errorf("compare: %w", analytics.ErrLengthMismatch),
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeLengthMismatch,
		},
		{
			name:       "invalid_parameter",
			err:        fmt.Errorf("horizon: %w", analytics.ErrInvalidParameter),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
		},
		{
			name:       "deadline_exceeded",
			err:        context.DeadlineExceeded,
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unclassified_is_internal",
			err:        fmt.Errorf("disk on fire"),
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, problem.Status)
			assert.Equal(t, tt.wantType, problem.Type)
			assert.Equal(t, "/api/test", problem.Instance)
		})
	}
}

func TestErrorToProblemPassesThroughProblem(t *testing.T) {
	h := NewErrorHandler(discardLogger())
	r := httptest.NewRequest(http.MethodGet, "/api/test", nil)

	original := ValidationProblem("horizon", "horizon must be positive", "/api/test")
	problem := h.ErrorToProblem(original, r)
	assert.Same(t, original, problem)
}

func TestHandleErrorWritesProblemJSON(t *testing.T) {
	h := NewErrorHandler(discardLogger())

	ctx := infrastructure.WithTraceID(context.Background(), "trace-1")
	r := httptest.NewRequest(http.MethodGet, "/api/indicators/x/summary", nil).WithContext(ctx)
	w := httptest.NewRecorder()

	h.HandleError(w, r, fmt.Errorf("summary: %w", analytics.ErrInsufficientData))

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypeInsufficientData, body["type"])
	assert.Equal(t, "trace-1", body["trace_id"])
	assert.Equal(t, float64(http.StatusUnprocessableEntity), body["status"])
}

func TestProblemDetailsMarshalIncludesExtensions(t *testing.T) {
	problem := NotFoundProblem("indicator not found", "/api/indicators/nope").
		WithExtension("indicator_id", "nope")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(data, &body))
	assert.Equal(t, TypeNotFound, body["type"])
	assert.Equal(t, "nope", body["indicator_id"])
	assert.Equal(t, "indicator not found", body["detail"])
}
