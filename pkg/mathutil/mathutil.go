// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/trackingsuccess/profit-planner/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// NonNegative clamps negative inputs to zero. All monetary fields are
// coerced through this at the ingestion boundary.
func NonNegative(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// Clamp restricts val to the inclusive range [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampInt restricts val to the inclusive range [lo, hi].
func ClampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// SafeDivide divides num by den with an epsilon floor on the denominator.
// The second return reports whether the floor was engaged, which indicates
// a degenerate or infeasible scenario the caller should surface.
func SafeDivide(num, den float64) (float64, bool) {
	if den < constants.Epsilon {
		return num / constants.Epsilon, true
	}
	return num / den, false
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}
