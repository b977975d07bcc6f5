// Package analytics implements the time-series analytics engine behind the
// indicator dashboard: summary statistics, series alignment, correlation,
// and linear forecasting over year-indexed observations.
//
// # Core Components
//
//   - series.go: TimeSeries and Observation value types
//   - stats.go: mean, percentage change, OLS trend slope, Pearson correlation
//   - align.go: intersection and union alignment of multiple series
//   - forecast.go: linear extrapolation beyond the last known observation
//   - summary.go: per-series summary driven by a count-class policy table
//   - errors.go: the error taxonomy shared by all operations
//
// # Design
//
// Every operation is a pure function over immutable inputs. Nothing in this
// package performs I/O, holds state between calls, or requires
// synchronization; callers may evaluate independent series concurrently.
// Undefined numeric results (division by a zero base, zero variance) are
// never returned as NaN or Inf. They are classified into the sentinel
// errors declared in errors.go, and callers decide whether an undefined
// figure is fatal or simply "not available".
package analytics
