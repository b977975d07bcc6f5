package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastLinearContinuation(t *testing.T) {
	series := NewTimeSeries(map[int]*float64{
		2019: Float(10), 2020: Float(20), 2021: Float(30), 2022: Float(40),
	})

	result, err := Forecast(series, 3)
	require.NoError(t, err)

	assert.InDelta(t, 10.0, result.Slope, 1e-12)
	assert.Equal(t, 2022, result.BaseYear)
	assert.InDelta(t, 40.0, result.BaseValue, 1e-12)
	require.Len(t, result.Points, 7)

	// Historical points are unchanged, tagged historical, and carry their
	// recorded value in the projected channel.
	for i, year := range []int{2019, 2020, 2021, 2022} {
		p := result.Points[i]
		assert.Equal(t, year, p.Year)
		assert.False(t, p.Forecast)
		require.NotNil(t, p.Value)
		require.NotNil(t, p.Projected)
		assert.Equal(t, *p.Value, *p.Projected)
	}

	// Forecast point at year Y+k equals V + slope*k.
	for k := 1; k <= 3; k++ {
		p := result.Points[3+k]
		assert.Equal(t, 2022+k, p.Year)
		assert.True(t, p.Forecast)
		assert.Nil(t, p.Value)
		require.NotNil(t, p.Projected)
		assert.InDelta(t, 40+10*float64(k), *p.Projected, 1e-9)
	}
}

func TestForecastSkipsAbsentForFitting(t *testing.T) {
	series := NewTimeSeries(map[int]*float64{
		2020: Float(10), 2021: nil, 2022: Float(30),
	})

	result, err := Forecast(series, 1)
	require.NoError(t, err)

	// Two retained points at positions 0 and 1: slope 20 per position.
	assert.InDelta(t, 20.0, result.Slope, 1e-12)
	assert.Equal(t, 2022, result.BaseYear)

	// The absent 2021 observation is retained but carries no values.
	require.Len(t, result.Points, 4)
	gap := result.Points[1]
	assert.Equal(t, 2021, gap.Year)
	assert.False(t, gap.Forecast)
	assert.Nil(t, gap.Value)
	assert.Nil(t, gap.Projected)

	require.NotNil(t, result.Points[3].Projected)
	assert.InDelta(t, 50.0, *result.Points[3].Projected, 1e-9)
}

func TestForecastDoesNotMutateInput(t *testing.T) {
	series := NewTimeSeries(map[int]*float64{2020: Float(1), 2021: Float(2)})
	before := append(TimeSeries{}, series...)

	_, err := Forecast(series, 5)
	require.NoError(t, err)
	assert.Equal(t, before, series)
}

func TestForecastGuards(t *testing.T) {
	tests := []struct {
		name    string
		series  TimeSeries
		horizon int
		wantErr error
	}{
		{
			name:    "single_point_is_insufficient",
			series:  NewTimeSeries(map[int]*float64{2020: Float(10)}),
			horizon: 3,
			wantErr: ErrInsufficientData,
		},
		{
			name:    "absent_points_do_not_count",
			series:  NewTimeSeries(map[int]*float64{2020: Float(10), 2021: nil, 2022: nil}),
			horizon: 2,
			wantErr: ErrInsufficientData,
		},
		{
			name:    "zero_horizon_rejected",
			series:  NewTimeSeries(map[int]*float64{2020: Float(1), 2021: Float(2)}),
			horizon: 0,
			wantErr: ErrInvalidParameter,
		},
		{
			name:    "negative_horizon_rejected",
			series:  NewTimeSeries(map[int]*float64{2020: Float(1), 2021: Float(2)}),
			horizon: -4,
			wantErr: ErrInvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Forecast(tt.series, tt.horizon)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, result)
		})
	}
}
