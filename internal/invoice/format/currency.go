package format

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// DefaultCurrencySymbol is used when no symbol is configured.
const DefaultCurrencySymbol = "$"

// ToCents converts a decimal dollar amount to integer cents, rounding half away from zero.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts stored cents back to a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// Currency renders cents as a display string such as "$1,234.56".
func Currency(cents int64, symbol string) string {
	if symbol == "" {
		symbol = DefaultCurrencySymbol
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, symbol, humanize.Comma(cents/100), cents%100)
}
