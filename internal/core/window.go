package core

import "time"

// Window is a concrete date interval resolved from a TimeRange selector.
// A zero Start or End means unbounded on that side. Both bounds are
// inclusive: a transaction dated exactly on a boundary instant passes.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && t.After(w.End) {
		return false
	}
	return true
}

// ResolveWindow maps a range selector (and, for RangeCustom, the optional
// explicit bounds) to a concrete interval. now is an explicit input so that
// resolution is reproducible; nothing here reads the system clock.
func ResolveWindow(r TimeRange, from, to, now time.Time) Window {
	switch r {
	case RangeMonthToDate:
		return Window{Start: startOfMonth(now), End: now}
	case RangeLastMonth:
		first := startOfMonth(now)
		// Last instant of the previous month keeps the bound inclusive.
		return Window{Start: first.AddDate(0, -1, 0), End: first.Add(-time.Nanosecond)}
	case RangeLast90Days:
		return Window{Start: now.AddDate(0, 0, -90), End: now}
	case RangeYearToDate:
		return Window{Start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), End: now}
	case RangeCustom:
		// With both bounds absent this is equivalent to RangeAll.
		return Window{Start: from, End: to}
	default:
		// RangeAll, and any unknown selector, is unbounded.
		return Window{}
	}
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
