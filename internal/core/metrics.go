package core

import (
	"math"
	"sort"
	"time"
)

// TopCategoryLimit caps the ranked category breakdown. Seven matches the
// chart palette used downstream.
const TopCategoryLimit = 7

// burnWindowDays is the trailing window for the rolling burn rate.
const burnWindowDays = 90

type (
	// CategoryTotal is one row of the outflow concentration ranking.
	CategoryTotal struct {
		Name  string `json:"name"`
		Total Money  `json:"total"`
		Count int    `json:"count"`
	}

	// MonthlyTotal aggregates one calendar month (key format YYYY-MM).
	MonthlyTotal struct {
		Month   string `json:"month"`
		Income  Money  `json:"income"`
		Expense Money  `json:"expense"`
	}

	// MetricSet is the bundle of aggregates behind every chart and summary
	// card. It is a pure function of (filtered snapshot, now): recomputed
	// wholesale on every change, never patched incrementally.
	MetricSet struct {
		Inflow        Money           `json:"inflow"`
		Outflow       Money           `json:"outflow"`
		Balance       Money           `json:"balance"`
		BurnRate      Money           `json:"burnRate"`
		TopCategories []CategoryTotal `json:"topCategories"`
		MonthlyTotals []MonthlyTotal  `json:"monthlyTotals"`
		Upcoming      []Transaction   `json:"upcoming"`
	}
)

// GenerateMetrics derives the MetricSet from a filtered snapshot.
//
// Inflow sums every income transaction, future-dated ones included: the
// dashboard reports projected inflows for the period, which also keeps
// inflow consistent with the monthly income series. Outflow likewise sums
// every expense; forward-dated expenses additionally surface under Upcoming.
//
// Empty input yields zero aggregates and empty slices, not an error.
func GenerateMetrics(transactions []Transaction, now time.Time) MetricSet {
	m := MetricSet{
		TopCategories: []CategoryTotal{},
		MonthlyTotals: []MonthlyTotal{},
		Upcoming:      []Transaction{},
	}

	type catAgg struct {
		total int64
		count int
	}
	type monthAgg struct {
		income  int64
		expense int64
	}
	categories := make(map[string]*catAgg)
	months := make(map[string]*monthAgg)

	burnStart := now.AddDate(0, 0, -burnWindowDays)
	var burnSum int64
	var historyStart time.Time

	for _, t := range transactions {
		if !t.Date.After(now) && (historyStart.IsZero() || t.Date.Before(historyStart)) {
			historyStart = t.Date
		}

		key := t.Date.Format("2006-01")
		ma := months[key]
		if ma == nil {
			ma = &monthAgg{}
			months[key] = ma
		}

		switch t.Type {
		case Income:
			m.Inflow.Cents += t.Amount.Cents
			ma.income += t.Amount.Cents
		case Expense:
			m.Outflow.Cents += t.Amount.Cents
			ma.expense += t.Amount.Cents

			ca := categories[t.Category]
			if ca == nil {
				ca = &catAgg{}
				categories[t.Category] = ca
			}
			ca.total += t.Amount.Cents
			ca.count++

			if !t.Date.After(now) && !t.Date.Before(burnStart) {
				burnSum += t.Amount.Cents
			}
			if t.Date.After(now) {
				m.Upcoming = append(m.Upcoming, t)
			}
		}
	}

	m.Balance = Money{Cents: m.Inflow.Cents - m.Outflow.Cents}
	m.BurnRate = burnRate(burnSum, historyStart, now)

	for name, ca := range categories {
		m.TopCategories = append(m.TopCategories, CategoryTotal{
			Name:  name,
			Total: Money{Cents: ca.total},
			Count: ca.count,
		})
	}
	sort.Slice(m.TopCategories, func(i, j int) bool {
		a, b := m.TopCategories[i], m.TopCategories[j]
		if a.Total.Cents != b.Total.Cents {
			return a.Total.Cents > b.Total.Cents
		}
		return a.Name < b.Name
	})
	if len(m.TopCategories) > TopCategoryLimit {
		m.TopCategories = m.TopCategories[:TopCategoryLimit]
	}

	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		m.MonthlyTotals = append(m.MonthlyTotals, MonthlyTotal{
			Month:   k,
			Income:  Money{Cents: months[k].income},
			Expense: Money{Cents: months[k].expense},
		})
	}

	sort.SliceStable(m.Upcoming, func(i, j int) bool {
		return m.Upcoming[i].Date.Before(m.Upcoming[j].Date)
	})

	return m
}

// burnRate averages trailing-window outflow per month. A ledger with at
// least 90 days of history divides by the full 3 months regardless of how
// the window's expenses cluster; a younger ledger divides by the actual
// elapsed fraction, measured from its earliest past-dated transaction. Zero
// elapsed time yields zero rather than a division by zero.
func burnRate(sumCents int64, historyStart, now time.Time) Money {
	if sumCents == 0 || historyStart.IsZero() {
		return Money{}
	}
	elapsed := now.Sub(historyStart)
	if max := time.Duration(burnWindowDays) * 24 * time.Hour; elapsed > max {
		elapsed = max
	}
	monthsElapsed := elapsed.Hours() / (30 * 24)
	if monthsElapsed <= 0 {
		return Money{}
	}
	return Money{Cents: int64(math.Round(float64(sumCents) / monthsElapsed))}
}
