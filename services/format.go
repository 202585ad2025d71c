package services

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatUSD formats an amount as whole dollars with thousands separators,
// e.g. 1234.5 → "$1,235".
func FormatUSD(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}

// FormatPriceRange renders a single price when both bounds are equal and
// "low - high" otherwise.
func FormatPriceRange(low, high float64) string {
	if low == high {
		return FormatUSD(low)
	}
	return FormatUSD(low) + " - " + FormatUSD(high)
}
