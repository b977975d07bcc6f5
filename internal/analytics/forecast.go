package analytics

import "fmt"

// ForecastPoint is one point of a forecast series. Historical points carry
// the recorded value in both Value and Projected so charts can plot one
// field across the whole range; forecast points carry only Projected.
// Historical years with no recorded value keep both fields nil.
type ForecastPoint struct {
	Year      int
	Value     *float64
	Projected *float64
	Forecast  bool
}

// ForecastResult is the original series extended by horizon projected
// points, together with the fitted model parameters so consumers can
// display them.
type ForecastResult struct {
	Slope     float64
	BaseYear  int
	BaseValue float64
	Points    []ForecastPoint
}

// Forecast extrapolates series forward by horizon years using a linear
// trend fitted over the recorded values in positional order. Absent
// observations are ignored for fitting but retained in the output. The
// projection anchors at the last recorded observation (Y, V): the point at
// year Y+i is V + slope*i. Interior calendar gaps are tolerated for fitting
// and not reconciled against year spacing.
//
// Returns ErrInvalidParameter for a non-positive horizon (clamping is a
// caller-side concern) and ErrInsufficientData when fewer than 2 recorded
// values are available to fit against.
func Forecast(series TimeSeries, horizon int) (*ForecastResult, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("forecast horizon %d must be positive: %w", horizon, ErrInvalidParameter)
	}

	observed := series.Observed()
	if len(observed) < 2 {
		return nil, fmt.Errorf("forecast fit needs at least 2 recorded values, got %d: %w",
			len(observed), ErrInsufficientData)
	}

	slope, err := Slope(observed.Values())
	if err != nil {
		return nil, fmt.Errorf("fit trend: %w", err)
	}

	last := observed[len(observed)-1]
	baseYear, baseValue := last.Year, *last.Value

	points := make([]ForecastPoint, 0, len(series)+horizon)
	for _, o := range series {
		p := ForecastPoint{Year: o.Year}
		if o.Observed() {
			v := *o.Value
			projected := v
			p.Value = &v
			p.Projected = &projected
		}
		points = append(points, p)
	}
	for i := 1; i <= horizon; i++ {
		projected := baseValue + slope*float64(i)
		points = append(points, ForecastPoint{
			Year:      baseYear + i,
			Projected: &projected,
			Forecast:  true,
		})
	}

	return &ForecastResult{
		Slope:     slope,
		BaseYear:  baseYear,
		BaseValue: baseValue,
		Points:    points,
	}, nil
}
