package core

import (
	"testing"
	"time"
)

func sampleLedger(now time.Time) []Transaction {
	return []Transaction{
		{ID: "t1", Type: Expense, Amount: Money{Cents: 10000}, Category: "Food & Dining", Description: "Team lunch", Date: now.AddDate(0, 0, -5), Account: "Corporate Card", Notes: "client visit"},
		{ID: "t2", Type: Income, Amount: Money{Cents: 100000}, Category: "Salary", Description: "June payroll", Date: now.AddDate(0, 0, -10), Account: "Checking"},
		{ID: "t3", Type: Expense, Amount: Money{Cents: 5000}, Category: "Food & Dining", Description: "Groceries", Date: now.AddDate(0, 0, 3), Account: "Personal Card"},
		{ID: "t4", Type: Expense, Amount: Money{Cents: 8000}, Category: "Travel", Description: "Airport taxi", Date: now.AddDate(0, -4, 0), Account: "Corporate Card", Project: "lunchtime"},
	}
}

func TestApplyFiltersIdentity(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := sampleLedger(now)

	got := ApplyFilters(ledger, DefaultFilters(), now)
	if len(got) != len(ledger) {
		t.Fatalf("default filters returned %d of %d transactions", len(got), len(ledger))
	}
	for i := range got {
		if got[i].ID != ledger[i].ID {
			t.Fatalf("order changed at %d: got %s, want %s", i, got[i].ID, ledger[i].ID)
		}
	}
}

func TestApplyFiltersClauses(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := sampleLedger(now)

	cases := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{
			name:    "type expense",
			filters: Filters{TimeRange: RangeAll, Type: "expense", Category: FilterAll, Account: FilterAll},
			wantIDs: []string{"t1", "t3", "t4"},
		},
		{
			name:    "category exact match",
			filters: Filters{TimeRange: RangeAll, Type: FilterAll, Category: "Food & Dining", Account: FilterAll},
			wantIDs: []string{"t1", "t3"},
		},
		{
			name:    "category is case sensitive",
			filters: Filters{TimeRange: RangeAll, Type: FilterAll, Category: "food & dining", Account: FilterAll},
			wantIDs: []string{},
		},
		{
			name:    "account exact match",
			filters: Filters{TimeRange: RangeAll, Type: FilterAll, Category: FilterAll, Account: "Corporate Card"},
			wantIDs: []string{"t1", "t4"},
		},
		{
			name:    "search is case-insensitive on description",
			filters: Filters{TimeRange: RangeAll, Type: FilterAll, Category: FilterAll, Account: FilterAll, Search: "LUNCH"},
			wantIDs: []string{"t1"},
		},
		{
			name: "search does not match notes or project",
			// "client" appears only in t1's notes, "lunchtime" in t4's project.
			filters: Filters{TimeRange: RangeAll, Type: FilterAll, Category: FilterAll, Account: FilterAll, Search: "client"},
			wantIDs: []string{},
		},
		{
			name:    "time window excludes old and keeps future inside custom bound",
			filters: Filters{TimeRange: RangeLast90Days, Type: FilterAll, Category: FilterAll, Account: FilterAll},
			wantIDs: []string{"t1", "t2"},
		},
		{
			name:    "clauses are AND-ed",
			filters: Filters{TimeRange: RangeAll, Type: "expense", Category: "Food & Dining", Account: "Corporate Card"},
			wantIDs: []string{"t1"},
		},
		{
			name:    "no match is an empty list",
			filters: Filters{TimeRange: RangeAll, Type: "income", Category: "Travel", Account: FilterAll},
			wantIDs: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ApplyFilters(ledger, tc.filters, now)
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("got %d transactions, want %d", len(got), len(tc.wantIDs))
			}
			for i, id := range tc.wantIDs {
				if got[i].ID != id {
					t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestApplyFiltersPreservesSubsequenceOrder(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	// Deliberately unsorted input: the engine must not re-sort.
	ledger := []Transaction{
		{ID: "b", Type: Expense, Amount: Money{Cents: 100}, Category: "X", Description: "b", Date: now.AddDate(0, 0, -1), Account: "A"},
		{ID: "a", Type: Expense, Amount: Money{Cents: 100}, Category: "X", Description: "a", Date: now.AddDate(0, 0, -9), Account: "A"},
		{ID: "c", Type: Income, Amount: Money{Cents: 100}, Category: "Y", Description: "c", Date: now.AddDate(0, 0, -3), Account: "A"},
	}
	got := ApplyFilters(ledger, Filters{TimeRange: RangeAll, Type: "expense", Category: FilterAll, Account: FilterAll}, now)
	if len(got) != 2 || got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("expected [b a] in input order, got %v", ids(got))
	}
}

func TestApplyFiltersEmptyInput(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	got := ApplyFilters(nil, DefaultFilters(), now)
	if len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func ids(ts []Transaction) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.ID
	}
	return out
}
