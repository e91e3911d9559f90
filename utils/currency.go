package utils

import (
	"fmt"
	"strings"
)

// FormatCurrencyGBP formats an amount as pounds sterling for display.
// Example: 15000.5 -> "£15,000.50". Amounts keep full precision internally;
// rounding to two places happens only here.
func FormatCurrencyGBP(amount float64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	formatted := fmt.Sprintf("%.2f", amount)
	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	out := "£" + strings.Join(groups, ",") + "." + decimalPart
	if neg {
		out = "-" + out
	}
	return out
}
