// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"
	"strconv"

	"github.com/mapcraftlabs/feasibility-dashboard/pkg/constants"
)

// Round rounds a value to one decimal for display. Rounding works on the
// exact decimal expansion of val, so 0.35 (stored just below) gives 0.3.
// Exact ties round to even.
func Round(val float64) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(val, 'f', constants.DisplayDecimals, 64), 64)
	if err != nil {
		return val
	}
	return rounded
}

// Sum adds up all values.
func Sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// Max returns the largest value, or 0 for an empty slice.
func Max(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	largest := values[0]
	for _, v := range values[1:] {
		if v > largest {
			largest = v
		}
	}
	return largest
}

// CalculatePercentage calculates what percentage value is of total
func CalculatePercentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// Shares returns each value's share of the group total as a whole
// percentage. Every entry is rounded on its own, so the result may sum to
// 99 or 101. A group whose total is not positive yields all zeros.
func Shares(values []float64) []int {
	shares := make([]int, len(values))
	total := Sum(values)
	if !(total > 0) {
		return shares
	}
	for i, v := range values {
		shares[i] = int(math.RoundToEven(CalculatePercentage(v, total)))
	}
	return shares
}

// SumInts adds up integer percentages.
func SumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
