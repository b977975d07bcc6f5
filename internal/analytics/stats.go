package analytics

import (
	"fmt"
	"math"
)

// Mean returns the arithmetic mean of xs.
// Returns ErrInsufficientData when xs is empty.
func Mean(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("mean of empty sequence: %w", ErrInsufficientData)
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs)), nil
}

// PctChange returns the percentage change between the first and last
// elements of xs in positional order: (last-first)/first*100.
// Returns ErrInsufficientData for fewer than 2 elements and
// ErrDegenerateInput when the base value is zero, so a zero-percent result
// is always a genuine zero change.
func PctChange(xs []float64) (float64, error) {
	if len(xs) < 2 {
		return 0, fmt.Errorf("pct change needs at least 2 values, got %d: %w", len(xs), ErrInsufficientData)
	}
	first, last := xs[0], xs[len(xs)-1]
	if first == 0 {
		return 0, fmt.Errorf("pct change from zero base: %w", ErrDegenerateInput)
	}
	return (last - first) / first * 100, nil
}

// Slope returns the ordinary least-squares slope of xs against its
// positional index 0..n-1. Positions, not calendar years, are the fit
// domain: after alignment the points are consecutive whatever gaps the
// calendar had. A constant sequence has slope 0.
// Returns ErrInsufficientData for fewer than 2 elements.
func Slope(xs []float64) (float64, error) {
	n := len(xs)
	if n < 2 {
		return 0, fmt.Errorf("slope needs at least 2 values, got %d: %w", n, ErrInsufficientData)
	}

	// Index mean is (n-1)/2 since positions are 0..n-1.
	iMean := float64(n-1) / 2
	xMean := 0.0
	for _, x := range xs {
		xMean += x
	}
	xMean /= float64(n)

	num, den := 0.0, 0.0
	for i, x := range xs {
		di := float64(i) - iMean
		num += di * (x - xMean)
		den += di * di
	}
	if den == 0 {
		// Unreachable with distinct indices and n >= 2, kept as a guard
		// against returning NaN.
		return 0, fmt.Errorf("zero index variance: %w", ErrDegenerateInput)
	}
	return num / den, nil
}

// Pearson returns the Pearson correlation coefficient between xs and ys.
// Returns ErrLengthMismatch when the sequences differ in length,
// ErrInsufficientData for fewer than 2 pairs, and ErrDegenerateInput when
// either sequence has zero variance (correlation with a constant is
// undefined, not zero).
func Pearson(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) {
		return 0, fmt.Errorf("pearson over %d and %d values: %w", len(xs), len(ys), ErrLengthMismatch)
	}
	n := len(xs)
	if n < 2 {
		return 0, fmt.Errorf("pearson needs at least 2 pairs, got %d: %w", n, ErrInsufficientData)
	}

	xMean, yMean := 0.0, 0.0
	for i := 0; i < n; i++ {
		xMean += xs[i]
		yMean += ys[i]
	}
	xMean /= float64(n)
	yMean /= float64(n)

	num, denX, denY := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := xs[i] - xMean
		dy := ys[i] - yMean
		num += dx * dy
		denX += dx * dx
		denY += dy * dy
	}

	den := math.Sqrt(denX * denY)
	if den == 0 {
		return 0, fmt.Errorf("zero variance sequence: %w", ErrDegenerateInput)
	}
	return num / den, nil
}
