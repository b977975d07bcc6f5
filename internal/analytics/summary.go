package analytics

// Summary holds the per-series figures the dashboard displays. A nil field
// means "not available" for that statistic; Count is the number of recorded
// (non-absent) observations the statistics were computed over.
type Summary struct {
	Count     int
	Mean      *float64
	PctChange *float64
	Slope     *float64
	Earliest  *float64
	Latest    *float64
}

// countClass partitions series by recorded point count; each class has its
// own summary policy.
type countClass int

const (
	countEmpty  countClass = iota // nothing to compute
	countSingle                   // degenerate but defined
	countMany                     // full computation
)

func classify(n int) countClass {
	switch {
	case n == 0:
		return countEmpty
	case n == 1:
		return countSingle
	default:
		return countMany
	}
}

// summaryPolicies maps each count class to its behavior. Kept as an
// explicit dispatch table so each branch is independently verifiable.
var summaryPolicies = map[countClass]func(values []float64) Summary{
	countEmpty:  summarizeEmpty,
	countSingle: summarizeSingle,
	countMany:   summarizeMany,
}

// Summarize computes the summary statistics for one indicator/geography
// series. Absent observations are filtered before any statistic is
// computed; an undefined statistic (zero-base percentage change) is carried
// as nil rather than failing the whole summary.
func Summarize(series TimeSeries) Summary {
	values := series.Values()
	return summaryPolicies[classify(len(values))](values)
}

func summarizeEmpty([]float64) Summary {
	return Summary{Count: 0}
}

// summarizeSingle avoids propagating "not available" for a trivially valid
// single point: the mean is the value itself, change and trend are zero.
func summarizeSingle(values []float64) Summary {
	v := values[0]
	zeroPct, zeroSlope := 0.0, 0.0
	earliest, latest := v, v
	return Summary{
		Count:     1,
		Mean:      &v,
		PctChange: &zeroPct,
		Slope:     &zeroSlope,
		Earliest:  &earliest,
		Latest:    &latest,
	}
}

func summarizeMany(values []float64) Summary {
	s := Summary{Count: len(values)}

	if mean, err := Mean(values); err == nil {
		s.Mean = &mean
	}
	// A zero base value makes the percentage change undefined; the summary
	// carries nil instead of surfacing the error.
	if pct, err := PctChange(values); err == nil {
		s.PctChange = &pct
	}
	if slope, err := Slope(values); err == nil {
		s.Slope = &slope
	}

	earliest, latest := values[0], values[len(values)-1]
	s.Earliest = &earliest
	s.Latest = &latest
	return s
}
