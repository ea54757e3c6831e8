// Package format renders dashboard numbers for tables.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Count returns a unit count with thousands separators. Whole numbers are
// shown without decimals, everything else with one decimal (e.g., "1,234.5").
func Count(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%v", value)
	}
	formatted := formatPositiveCount(math.Abs(value))
	if value < 0 && formatted != "0" {
		return "-" + formatted
	}
	return formatted
}

// Integer truncates a value toward zero for bar annotations (e.g., 49.9 -> "49").
func Integer(value float64) string {
	return fmt.Sprintf("%d", int64(value))
}

// Percent renders a whole percentage with a trailing percent sign.
func Percent(value int) string {
	return fmt.Sprintf("%d%%", value)
}

func formatPositiveCount(value float64) string {
	formatted := fmt.Sprintf("%.1f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := ""
	if len(parts) == 2 && parts[1] != "0" {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	if decPart == "" {
		return intPart
	}
	return intPart + "." + decPart
}
