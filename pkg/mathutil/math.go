// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/venuemetrics/product-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total.
// Returns 0 when total is 0 so callers never propagate NaN or Inf.
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// RelativeChangePercent expresses how far value moved from base, as a
// percentage of the base magnitude. Returns 0 when base is 0.
func RelativeChangePercent(value, base float64) float64 {
	if base == 0 {
		return 0
	}
	return (value - base) / math.Abs(base) * constants.PercentageMultiplier
}

// ApplyPercent scales a value by a percent shift, e.g. ApplyPercent(200, 10) = 220.
func ApplyPercent(value, percent float64) float64 {
	return value * (1 + percent/constants.PercentageMultiplier)
}
