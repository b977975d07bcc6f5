package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
		wantErr  error
	}{
		{
			name:     "simple_mean",
			input:    []float64{10, 20, 30},
			expected: 20,
		},
		{
			name:     "single_value",
			input:    []float64{7.5},
			expected: 7.5,
		},
		{
			name:     "negative_values",
			input:    []float64{-10, 10},
			expected: 0,
		},
		{
			name:    "empty_input",
			input:   nil,
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mean(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestPctChange(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
		wantErr  error
	}{
		{
			name:     "doubling_is_100_percent",
			input:    []float64{50, 100},
			expected: 100,
		},
		{
			name:     "uses_first_and_last_only",
			input:    []float64{50, 9999, -4, 75},
			expected: 50,
		},
		{
			name:     "decline",
			input:    []float64{100, 50},
			expected: -50,
		},
		{
			name:     "no_change_is_genuine_zero",
			input:    []float64{40, 40},
			expected: 0,
		},
		{
			name:    "zero_base_is_degenerate",
			input:   []float64{0, 5},
			wantErr: ErrDegenerateInput,
		},
		{
			name:    "single_point",
			input:   []float64{10},
			wantErr: ErrInsufficientData,
		},
		{
			name:    "empty",
			input:   nil,
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PctChange(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestSlope(t *testing.T) {
	tests := []struct {
		name     string
		input    []float64
		expected float64
		wantErr  error
	}{
		{
			name:     "unit_slope_over_unit_spaced_index",
			input:    []float64{1, 2, 3, 4},
			expected: 1,
		},
		{
			name:     "constant_series_has_zero_slope",
			input:    []float64{5, 5, 5},
			expected: 0,
		},
		{
			name:     "declining_trend",
			input:    []float64{30, 20, 10},
			expected: -10,
		},
		{
			name:     "two_points",
			input:    []float64{1, 4},
			expected: 3,
		},
		{
			name:    "single_point",
			input:   []float64{1},
			wantErr: ErrInsufficientData,
		},
		{
			name:    "empty",
			input:   nil,
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Slope(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestPearson(t *testing.T) {
	tests := []struct {
		name     string
		xs, ys   []float64
		expected float64
		wantErr  error
	}{
		{
			name:     "exact_positive_linear_relation",
			xs:       []float64{1, 2, 3},
			ys:       []float64{2, 4, 6},
			expected: 1,
		},
		{
			name:     "exact_negative_linear_relation",
			xs:       []float64{1, 2, 3},
			ys:       []float64{3, 2, 1},
			expected: -1,
		},
		{
			name:    "constant_series_is_degenerate",
			xs:      []float64{1, 2, 3},
			ys:      []float64{4, 4, 4},
			wantErr: ErrDegenerateInput,
		},
		{
			name:    "constant_first_series_is_degenerate",
			xs:      []float64{9, 9},
			ys:      []float64{1, 2},
			wantErr: ErrDegenerateInput,
		},
		{
			name:    "length_mismatch",
			xs:      []float64{1, 2, 3},
			ys:      []float64{1, 2},
			wantErr: ErrLengthMismatch,
		},
		{
			name:    "single_pair",
			xs:      []float64{1},
			ys:      []float64{2},
			wantErr: ErrInsufficientData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Pearson(tt.xs, tt.ys)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}
