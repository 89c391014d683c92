package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"pulse/internal/core"
)

// parseFilters builds a view specification from query parameters. Missing
// parameters fall back to the identity view; malformed ones are rejected
// rather than silently widened.
func parseFilters(r *http.Request) (core.Filters, error) {
	q := r.URL.Query()
	f := core.DefaultFilters()

	if v := strings.TrimSpace(q.Get("timeRange")); v != "" {
		tr := core.TimeRange(v)
		if !tr.IsValid() {
			return f, fmt.Errorf("invalid timeRange %q", v)
		}
		f.TimeRange = tr
	}

	if v := strings.TrimSpace(q.Get("type")); v != "" {
		if v != core.FilterAll && !core.TransactionType(v).IsValid() {
			return f, fmt.Errorf("invalid type %q", v)
		}
		f.Type = v
	}

	if v := strings.TrimSpace(q.Get("category")); v != "" {
		f.Category = v
	}
	if v := strings.TrimSpace(q.Get("account")); v != "" {
		f.Account = v
	}
	f.Search = sanitizeInput(q.Get("search"))

	if v := strings.TrimSpace(q.Get("from")); v != "" {
		from, _, err := parseBound(v)
		if err != nil {
			return f, fmt.Errorf("invalid from %q: %w", v, err)
		}
		f.From = from
	}
	if v := strings.TrimSpace(q.Get("to")); v != "" {
		to, dateOnly, err := parseBound(v)
		if err != nil {
			return f, fmt.Errorf("invalid to %q: %w", v, err)
		}
		// A bare date upper bound covers the whole day.
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
		f.To = to
	}

	return f, nil
}

// parseBound accepts RFC3339 timestamps or bare YYYY-MM-DD dates and
// reports which form it saw.
func parseBound(v string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, false, nil
}

// metricsCacheKey canonicalizes a filter combination. Two requests asking
// the same view share one cached derivation.
func metricsCacheKey(f core.Filters) string {
	var b strings.Builder
	b.WriteString(string(f.TimeRange))
	b.WriteByte('|')
	b.WriteString(f.Type)
	b.WriteByte('|')
	b.WriteString(f.Category)
	b.WriteByte('|')
	b.WriteString(f.Account)
	b.WriteByte('|')
	b.WriteString(strings.ToLower(f.Search))
	b.WriteByte('|')
	if !f.From.IsZero() {
		b.WriteString(f.From.UTC().Format(time.RFC3339Nano))
	}
	b.WriteByte('|')
	if !f.To.IsZero() {
		b.WriteString(f.To.UTC().Format(time.RFC3339Nano))
	}
	return b.String()
}
