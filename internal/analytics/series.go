package analytics

import "sort"

// Observation is a single year's measurement. A nil Value means no recorded
// measurement for that year, which is distinct from a measured zero.
type Observation struct {
	Year  int
	Value *float64
}

// Observed reports whether the observation carries a recorded value.
func (o Observation) Observed() bool {
	return o.Value != nil
}

// TimeSeries is an ordered sequence of observations with unique years,
// ascending by year. Values may be absent but years never are.
type TimeSeries []Observation

// NewTimeSeries builds a TimeSeries from a year-to-value mapping, sorted
// ascending by year. A nil value marks an absent observation.
func NewTimeSeries(points map[int]*float64) TimeSeries {
	ts := make(TimeSeries, 0, len(points))
	for year, value := range points {
		ts = append(ts, Observation{Year: year, Value: value})
	}
	sort.Slice(ts, func(i, j int) bool { return ts[i].Year < ts[j].Year })
	return ts
}

// Observed returns the subsequence of observations that carry a recorded
// value, preserving year order. The result shares no storage with ts.
func (ts TimeSeries) Observed() TimeSeries {
	out := make(TimeSeries, 0, len(ts))
	for _, o := range ts {
		if o.Observed() {
			v := *o.Value
			out = append(out, Observation{Year: o.Year, Value: &v})
		}
	}
	return out
}

// Values returns the recorded values in year order, skipping absent
// observations. The positional index of the result is the domain the
// statistics functions fit against.
func (ts TimeSeries) Values() []float64 {
	out := make([]float64, 0, len(ts))
	for _, o := range ts {
		if o.Observed() {
			out = append(out, *o.Value)
		}
	}
	return out
}

// ObservedCount returns the number of observations with a recorded value.
func (ts TimeSeries) ObservedCount() int {
	n := 0
	for _, o := range ts {
		if o.Observed() {
			n++
		}
	}
	return n
}

// Series is a labeled TimeSeries, the unit the aligner operates on. The
// label identifies the indicator or geography the observations belong to.
type Series struct {
	Label  string
	Points TimeSeries
}

// Float returns a pointer to v. Convenience for building observations.
func Float(v float64) *float64 {
	return &v
}
