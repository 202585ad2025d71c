package services

import (
	"fmt"
	"math"
	"strings"
)

// FilterAll is the filter value that disables a filter.
const FilterAll = "All"

// QuoteFilter narrows the quote history. Empty fields and FilterAll match
// every quote; other values must match exactly.
type QuoteFilter struct {
	Status   string
	Category string
}

func filterMatches(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || want == FilterAll || want == got
}

// FilterQuotes returns the quotes that match filter, keeping their order.
func FilterQuotes(quotes []Quote, filter QuoteFilter) []Quote {
	out := make([]Quote, 0, len(quotes))
	for _, q := range quotes {
		if !filterMatches(filter.Status, string(q.Status)) {
			continue
		}
		if !filterMatches(filter.Category, q.JobCategory) {
			continue
		}
		out = append(out, q)
	}
	return out
}

// QuoteCategories returns the distinct categories of quotes in first-seen
// order, for building the category filter.
func QuoteCategories(quotes []Quote) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range quotes {
		if seen[q.JobCategory] {
			continue
		}
		seen[q.JobCategory] = true
		out = append(out, q.JobCategory)
	}
	return out
}

// QuoteStats summarises quote outcomes.
type QuoteStats struct {
	Total  int `json:"total"`
	Quoted int `json:"quoted"`
	Won    int `json:"won"`
	Lost   int `json:"lost"`
	// CloseRate is won / (won + lost) × 100. It is only meaningful when
	// HasCloseRate is set.
	CloseRate    float64 `json:"close_rate"`
	HasCloseRate bool    `json:"has_close_rate"`
}

// SummarizeQuotes counts quotes by status and computes the close rate.
func SummarizeQuotes(quotes []Quote) QuoteStats {
	stats := QuoteStats{Total: len(quotes)}
	for _, q := range quotes {
		switch q.Status {
		case StatusWon:
			stats.Won++
		case StatusLost:
			stats.Lost++
		case StatusQuoted:
			stats.Quoted++
		}
	}
	if resolved := stats.Won + stats.Lost; resolved > 0 {
		stats.CloseRate = float64(stats.Won) / float64(resolved) * 100
		stats.HasCloseRate = true
	}
	return stats
}

// CloseRateLabel renders the close rate rounded to a whole percent, or
// "N/A" when no quote has been won or lost.
func (s QuoteStats) CloseRateLabel() string {
	if !s.HasCloseRate {
		return "N/A"
	}
	return fmt.Sprintf("%.0f%%", math.Round(s.CloseRate))
}
