package domain

// SeriesPoint is one point of a plotted series. Value is the recorded
// measurement (null for a gap or a projected point); ForecastValue is the
// shared plotting channel carrying the recorded value for historical points
// and the projection for forecast points. The isForcast spelling is the
// field name the existing dashboard charts bind to.
type SeriesPoint struct {
	Year          int      `json:"year"`
	Value         *float64 `json:"value"`
	ForecastValue *float64 `json:"forecastValue"`
	IsForecast    bool     `json:"isForcast"`
}

// SummaryResponse is the per-indicator figure block the dashboard renders.
// Null fields mean the statistic is not available for this series.
type SummaryResponse struct {
	Indicator Indicator `json:"indicator"`
	Geography Geography `json:"geography"`
	Count     int       `json:"count"`
	Mean      *float64  `json:"mean"`
	PctChange *float64  `json:"pct_change"`
	Slope     *float64  `json:"slope"`
	Earliest  *float64  `json:"earliest"`
	Latest    *float64  `json:"latest"`
}

// ForecastResponse is a historical series extended by projected points,
// together with the fitted model parameters.
type ForecastResponse struct {
	Indicator Indicator     `json:"indicator"`
	Geography Geography     `json:"geography"`
	Slope     float64       `json:"slope"`
	BaseYear  int           `json:"base_year"`
	BaseValue float64       `json:"base_value"`
	Series    []SeriesPoint `json:"series"`
}

// ChartRow is one year of a multi-geography chart. Values maps geography
// code to the recorded value, null where that geography has no observation.
type ChartRow struct {
	Year   int                 `json:"year"`
	Values map[string]*float64 `json:"values"`
}

// ChartResponse is the union-aligned multi-geography series for one
// indicator.
type ChartResponse struct {
	Indicator   Indicator   `json:"indicator"`
	Geographies []Geography `json:"geographies"`
	Rows        []ChartRow  `json:"rows"`
}

// CompareRow is one common year of two intersection-aligned indicators.
type CompareRow struct {
	Year   int     `json:"year"`
	ValueA float64 `json:"value_a"`
	ValueB float64 `json:"value_b"`
}

// CompareResponse is the result of correlating two indicators over one
// geography. Correlation is null when it is undefined (constant series).
type CompareResponse struct {
	IndicatorA  Indicator    `json:"indicator_a"`
	IndicatorB  Indicator    `json:"indicator_b"`
	Geography   Geography    `json:"geography"`
	Correlation *float64     `json:"correlation"`
	Rows        []CompareRow `json:"rows"`
}

// BatchSummaryRequest asks for summaries of several indicator/geography
// pairs in one call; the pairs are evaluated independently.
type BatchSummaryRequest struct {
	Pairs []SeriesKey `json:"pairs" validate:"required,min=1,max=50,dive"`
	From  int         `json:"from,omitempty" validate:"omitempty,gte=1800"`
	To    int         `json:"to,omitempty" validate:"omitempty,gte=1800"`
}

// BatchSummaryResponse carries one entry per requested pair, in request
// order. Failed pairs carry an error string instead of a summary.
type BatchSummaryResponse struct {
	Summaries []BatchSummaryEntry `json:"summaries"`
}

// BatchSummaryEntry is one pair's outcome within a batch summary.
type BatchSummaryEntry struct {
	Key     SeriesKey        `json:"key"`
	Summary *SummaryResponse `json:"summary,omitempty"`
	Error   string           `json:"error,omitempty"`
}
