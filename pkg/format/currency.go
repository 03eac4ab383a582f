package format

import (
	"fmt"
	"math"
	"strings"
)

// CurrencyWithSymbol returns a currency string with the given symbol and
// thousands separators (e.g., "-$1,234.56", "₹1,234.56").
func CurrencyWithSymbol(symbol string, amount float64) string {
	formatted := formatPositiveCurrency(math.Abs(amount))
	if amount < 0 && formatted != "0.00" {
		return "-" + symbol + formatted
	}
	return symbol + formatted
}

// Percent renders a percentage with one decimal (e.g., "60.0%").
func Percent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
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

	return intPart + "." + decPart
}
