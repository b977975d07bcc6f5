package analytics

import "errors"

// Error taxonomy for the analytics engine. Callers branch with errors.Is;
// every undefined numeric condition maps to exactly one of these.
var (
	// ErrInsufficientData indicates fewer observations than the operation
	// requires (2 for slope, correlation, pct change and forecast fitting;
	// 1 for mean). Also returned when an intersection alignment yields no
	// common years at all.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateInput indicates a sequence with valid shape but no
	// meaningful result: a zero base value for percentage change, or zero
	// variance where correlation requires dividing by it.
	ErrDegenerateInput = errors.New("degenerate input")

	// ErrLengthMismatch indicates paired sequences of different lengths,
	// or an intersection alignment that left fewer than the two common
	// years a comparison needs.
	ErrLengthMismatch = errors.New("length mismatch after alignment")

	// ErrInvalidParameter indicates a caller error: a non-positive forecast
	// horizon or an empty series list handed to the aligner.
	ErrInvalidParameter = errors.New("invalid parameter")
)
