package core

import (
	"strings"
	"time"
)

// ApplyFilters returns the subsequence of transactions matching the view,
// preserving input order. All clauses are AND-ed. Category and account are
// exact matches; search is a case-insensitive substring match against the
// description only (notes and project are deliberately not searched).
// An empty result is a valid result, never an error.
func ApplyFilters(transactions []Transaction, f Filters, now time.Time) []Transaction {
	w := ResolveWindow(f.TimeRange, f.From, f.To, now)
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]Transaction, 0, len(transactions))
	for _, t := range transactions {
		if !w.Contains(t.Date) {
			continue
		}
		if f.Type != "" && f.Type != FilterAll && string(t.Type) != f.Type {
			continue
		}
		if f.Category != "" && f.Category != FilterAll && t.Category != f.Category {
			continue
		}
		if f.Account != "" && f.Account != FilterAll && t.Account != f.Account {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}
