// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
)

// RoundTo rounds a value to the given number of decimals using banker's
// rounding, so 0.25 rounds to 0.2 at one decimal.
func RoundTo(val float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.RoundToEven(val*scale) / scale
}

// RoundUpToStep rounds a value up to the next multiple of step.
func RoundUpToStep(val, step float64) float64 {
	if step <= 0 {
		return val
	}
	return math.Ceil(val/step) * step
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
