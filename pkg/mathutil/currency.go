// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/mortgage-estimator/pkg/constants"
	"github.com/shopspring/decimal"
)

// RoundCents rounds half away from zero to whole cents using decimal
// arithmetic, so values such as 1.005 land on 1.01 rather than drifting with
// the binary representation.
func RoundCents(val float64) float64 {
	return decimal.NewFromFloat(val).Round(constants.CurrencyPlaces).InexactFloat64()
}

// IsZero checks if a value is effectively zero (within one cent)
func IsZero(val float64) bool {
	return WithinTolerance(val, 0, constants.CurrencyTolerance)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// PercentToMonthlyRate converts an annual percentage (e.g. 8 for 8%) into a
// periodic monthly rate (0.0066...).
func PercentToMonthlyRate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}
