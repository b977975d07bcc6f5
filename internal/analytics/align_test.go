package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesFrom(label string, points map[int]*float64) Series {
	return Series{Label: label, Points: NewTimeSeries(points)}
}

func TestAlignIntersection(t *testing.T) {
	a := seriesFrom("literacy", map[int]*float64{
		2020: Float(10), 2021: Float(20), 2022: Float(30),
	})
	b := seriesFrom("enrollment", map[int]*float64{
		2020: Float(5), 2021: Float(10), 2022: Float(15),
	})

	aligned, err := AlignIntersection([]Series{a, b})
	require.NoError(t, err)

	assert.Equal(t, []string{"literacy", "enrollment"}, aligned.Labels)
	assert.Equal(t, []int{2020, 2021, 2022}, aligned.Years)
	assert.Equal(t, [][]float64{{10, 5}, {20, 10}, {30, 15}}, aligned.Rows)

	// The aligned columns correlate perfectly.
	r, err := Pearson(aligned.Column(0), aligned.Column(1))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestAlignIntersectionExcludesGaps(t *testing.T) {
	a := seriesFrom("a", map[int]*float64{
		2019: Float(1), 2020: Float(2), 2021: nil, 2022: Float(4),
	})
	b := seriesFrom("b", map[int]*float64{
		2020: Float(7), 2021: Float(8), 2022: Float(9), 2023: Float(10),
	})

	aligned, err := AlignIntersection([]Series{a, b})
	require.NoError(t, err)

	// 2019 and 2023 appear in only one input, 2021 is absent in a.
	assert.Equal(t, []int{2020, 2022}, aligned.Years)
	assert.Equal(t, [][]float64{{2, 7}, {4, 9}}, aligned.Rows)
}

func TestAlignIntersectionErrors(t *testing.T) {
	tests := []struct {
		name    string
		series  []Series
		wantErr error
	}{
		{
			name:    "empty_series_list",
			series:  nil,
			wantErr: ErrInvalidParameter,
		},
		{
			name: "no_common_years",
			series: []Series{
				seriesFrom("a", map[int]*float64{2020: Float(1)}),
				seriesFrom("b", map[int]*float64{2021: Float(2)}),
			},
			wantErr: ErrInsufficientData,
		},
		{
			name: "absent_values_leave_no_common_years",
			series: []Series{
				seriesFrom("a", map[int]*float64{2020: Float(1), 2021: nil}),
				seriesFrom("b", map[int]*float64{2020: nil, 2021: Float(2)}),
			},
			wantErr: ErrInsufficientData,
		},
		{
			name: "single_common_year_too_few_for_comparison",
			series: []Series{
				seriesFrom("a", map[int]*float64{2020: Float(1), 2021: Float(2)}),
				seriesFrom("b", map[int]*float64{2021: Float(3), 2022: Float(4)}),
			},
			wantErr: ErrLengthMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AlignIntersection(tt.series)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAlignUnion(t *testing.T) {
	input := map[string]TimeSeries{
		"IQ": NewTimeSeries(map[int]*float64{2020: Float(10), 2022: Float(30)}),
		"JO": NewTimeSeries(map[int]*float64{2021: Float(5), 2022: Float(6)}),
	}

	union, err := AlignUnion(input)
	require.NoError(t, err)

	assert.Equal(t, []string{"IQ", "JO"}, union.Labels)
	require.Len(t, union.Points, 3)

	assert.Equal(t, 2020, union.Points[0].Year)
	require.NotNil(t, union.Points[0].Values["IQ"])
	assert.Equal(t, 10.0, *union.Points[0].Values["IQ"])
	assert.Nil(t, union.Points[0].Values["JO"])

	assert.Equal(t, 2021, union.Points[1].Year)
	assert.Nil(t, union.Points[1].Values["IQ"])
	require.NotNil(t, union.Points[1].Values["JO"])
	assert.Equal(t, 5.0, *union.Points[1].Values["JO"])

	assert.Equal(t, 2022, union.Points[2].Year)
	require.NotNil(t, union.Points[2].Values["IQ"])
	require.NotNil(t, union.Points[2].Values["JO"])
}

func TestAlignUnionEmptyResultIsValid(t *testing.T) {
	input := map[string]TimeSeries{
		"IQ": NewTimeSeries(map[int]*float64{2020: nil}),
	}

	union, err := AlignUnion(input)
	require.NoError(t, err)
	assert.Empty(t, union.Points)
}

func TestAlignUnionEmptyInput(t *testing.T) {
	_, err := AlignUnion(nil)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestAlignmentIsIdempotent(t *testing.T) {
	series := []Series{
		seriesFrom("a", map[int]*float64{2020: Float(1), 2021: Float(2), 2022: nil}),
		seriesFrom("b", map[int]*float64{2020: Float(3), 2021: Float(4), 2023: Float(5)}),
	}

	first, err := AlignIntersection(series)
	require.NoError(t, err)
	second, err := AlignIntersection(series)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	byLabel := map[string]TimeSeries{
		"a": series[0].Points,
		"b": series[1].Points,
	}
	u1, err := AlignUnion(byLabel)
	require.NoError(t, err)
	u2, err := AlignUnion(byLabel)
	require.NoError(t, err)
	assert.Equal(t, u1, u2)
}
