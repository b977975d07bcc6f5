package analytics

import (
	"fmt"
	"sort"
)

// Intersection is the fully-observed view of N aligned series: the years
// where every input has a recorded value, each mapped to one value per
// input series. Rows[i] holds the values for Years[i], ordered like Labels.
type Intersection struct {
	Labels []string
	Years  []int
	Rows   [][]float64
}

// Column returns the values of the i-th input series across all common
// years, in year order. This is the vector handed to Pearson.
func (x *Intersection) Column(i int) []float64 {
	out := make([]float64, len(x.Rows))
	for r, row := range x.Rows {
		out[r] = row[i]
	}
	return out
}

// AlignIntersection merges the given series on year, keeping only the years
// where every series has a recorded value. Output years are ascending.
//
// Returns ErrInvalidParameter for an empty series list,
// ErrInsufficientData when no common year exists at all, and
// ErrLengthMismatch when alignment leaves a single common year, too few for
// any comparison.
func AlignIntersection(series []Series) (*Intersection, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("align intersection of no series: %w", ErrInvalidParameter)
	}

	// Count, per year, how many series observe it. A year survives only
	// when every series does.
	counts := make(map[int]int)
	for _, s := range series {
		for _, o := range s.Points {
			if o.Observed() {
				counts[o.Year]++
			}
		}
	}

	years := make([]int, 0, len(counts))
	for year, n := range counts {
		if n == len(series) {
			years = append(years, year)
		}
	}
	sort.Ints(years)

	switch len(years) {
	case 0:
		return nil, fmt.Errorf("no common observed years across %d series: %w", len(series), ErrInsufficientData)
	case 1:
		return nil, fmt.Errorf("only 1 common observed year across %d series: %w", len(series), ErrLengthMismatch)
	}

	byYear := make([]map[int]float64, len(series))
	labels := make([]string, len(series))
	for i, s := range series {
		labels[i] = s.Label
		byYear[i] = make(map[int]float64, len(s.Points))
		for _, o := range s.Points {
			if o.Observed() {
				byYear[i][o.Year] = *o.Value
			}
		}
	}

	rows := make([][]float64, len(years))
	for r, year := range years {
		row := make([]float64, len(series))
		for i := range series {
			row[i] = byYear[i][year]
		}
		rows[r] = row
	}

	return &Intersection{Labels: labels, Years: years, Rows: rows}, nil
}

// UnionPoint is one year of a union-aligned view. Values maps every input
// label to its recorded value for the year, or nil where that series has a
// gap.
type UnionPoint struct {
	Year   int
	Values map[string]*float64
}

// Union is the sparse view of N labeled series: every year appearing in any
// input appears exactly once, ascending. Labels are sorted so output order
// is stable across runs.
type Union struct {
	Labels []string
	Points []UnionPoint
}

// AlignUnion merges the given label-to-series mapping on year, keeping every
// year any input observes and marking gaps with nil. An input with no
// observed years contributes nothing; a fully empty result is valid and
// means there is nothing to plot.
//
// Returns ErrInvalidParameter for an empty mapping.
func AlignUnion(seriesByLabel map[string]TimeSeries) (*Union, error) {
	if len(seriesByLabel) == 0 {
		return nil, fmt.Errorf("align union of no series: %w", ErrInvalidParameter)
	}

	labels := make([]string, 0, len(seriesByLabel))
	yearSet := make(map[int]struct{})
	for label, ts := range seriesByLabel {
		labels = append(labels, label)
		for _, o := range ts {
			if o.Observed() {
				yearSet[o.Year] = struct{}{}
			}
		}
	}
	sort.Strings(labels)

	years := make([]int, 0, len(yearSet))
	for year := range yearSet {
		years = append(years, year)
	}
	sort.Ints(years)

	points := make([]UnionPoint, len(years))
	for i, year := range years {
		values := make(map[string]*float64, len(labels))
		for _, label := range labels {
			values[label] = nil
		}
		points[i] = UnionPoint{Year: year, Values: values}
	}

	index := make(map[int]int, len(years))
	for i, year := range years {
		index[year] = i
	}
	for label, ts := range seriesByLabel {
		for _, o := range ts {
			if o.Observed() {
				v := *o.Value
				points[index[o.Year]].Values[label] = &v
			}
		}
	}

	return &Union{Labels: labels, Points: points}, nil
}
