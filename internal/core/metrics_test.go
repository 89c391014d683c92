package core

import (
	"fmt"
	"reflect"
	"testing"
	"time"
)

func TestGenerateMetricsScenario(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := []Transaction{
		{ID: "e1", Type: Expense, Amount: Money{Cents: 10000}, Category: "Food & Dining", Description: "dinner", Date: now.AddDate(0, 0, -5), Account: "Cash"},
		{ID: "i1", Type: Income, Amount: Money{Cents: 100000}, Category: "Salary", Description: "payroll", Date: now.AddDate(0, 0, -10), Account: "Checking"},
		{ID: "e2", Type: Expense, Amount: Money{Cents: 5000}, Category: "Food & Dining", Description: "groceries", Date: now.AddDate(0, 0, 3), Account: "Cash"},
	}

	m := GenerateMetrics(ledger, now)

	if m.Outflow.Cents != 15000 {
		t.Errorf("outflow = %d, want 15000", m.Outflow.Cents)
	}
	if m.Inflow.Cents != 100000 {
		t.Errorf("inflow = %d, want 100000", m.Inflow.Cents)
	}
	if m.Balance.Cents != 85000 {
		t.Errorf("balance = %d, want 85000", m.Balance.Cents)
	}
	// Future-dated expenses count toward the category breakdown.
	want := []CategoryTotal{{Name: "Food & Dining", Total: Money{Cents: 15000}, Count: 2}}
	if !reflect.DeepEqual(m.TopCategories, want) {
		t.Errorf("topCategories = %+v, want %+v", m.TopCategories, want)
	}
	if len(m.Upcoming) != 1 || m.Upcoming[0].ID != "e2" {
		t.Errorf("upcoming = %v, want [e2]", ids(m.Upcoming))
	}
	// Only e1 falls in the trailing burn window. The ledger is 10 days old
	// (the salary entry is its earliest record), so 100.00 spreads over a
	// third of a month: 300.00 per month.
	if m.BurnRate.Cents != 30000 {
		t.Errorf("burnRate = %d, want 30000", m.BurnRate.Cents)
	}
}

func TestGenerateMetricsEmptyInput(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	m := GenerateMetrics(nil, now)

	if m.Inflow.Cents != 0 || m.Outflow.Cents != 0 || m.Balance.Cents != 0 || m.BurnRate.Cents != 0 {
		t.Errorf("expected zero aggregates, got %+v", m)
	}
	if len(m.TopCategories) != 0 || len(m.MonthlyTotals) != 0 || len(m.Upcoming) != 0 {
		t.Errorf("expected empty lists, got %+v", m)
	}
	if m.TopCategories == nil || m.MonthlyTotals == nil || m.Upcoming == nil {
		t.Error("list fields should be empty, not nil")
	}
}

func TestGenerateMetricsIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := sampleLedger(now)

	first := GenerateMetrics(ledger, now)
	second := GenerateMetrics(ledger, now)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("two runs over the same input differ:\n%+v\n%+v", first, second)
	}
}

func TestTopCategoriesRankingAndCap(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	var ledger []Transaction
	// Nine categories with distinct totals, plus two tied at the top.
	for i := 1; i <= 9; i++ {
		ledger = append(ledger, Transaction{
			ID:          fmt.Sprintf("e%d", i),
			Type:        Expense,
			Amount:      Money{Cents: int64(i) * 1000},
			Category:    fmt.Sprintf("cat-%d", i),
			Description: "x",
			Date:        now.AddDate(0, 0, -i),
			Account:     "Cash",
		})
	}
	ledger = append(ledger,
		Transaction{ID: "tb", Type: Expense, Amount: Money{Cents: 9000}, Category: "aardvark", Description: "x", Date: now, Account: "Cash"},
	)

	m := GenerateMetrics(ledger, now)

	if len(m.TopCategories) != TopCategoryLimit {
		t.Fatalf("got %d categories, want %d", len(m.TopCategories), TopCategoryLimit)
	}
	for i := 1; i < len(m.TopCategories); i++ {
		prev, cur := m.TopCategories[i-1], m.TopCategories[i]
		if cur.Total.Cents > prev.Total.Cents {
			t.Fatalf("not sorted by total at %d: %d after %d", i, cur.Total.Cents, prev.Total.Cents)
		}
		if cur.Total.Cents == prev.Total.Cents && cur.Name < prev.Name {
			t.Fatalf("tie at %d not broken by name: %q after %q", i, cur.Name, prev.Name)
		}
	}
	// "aardvark" ties with cat-9 at 9000 and wins the tie alphabetically.
	if m.TopCategories[0].Name != "aardvark" || m.TopCategories[1].Name != "cat-9" {
		t.Fatalf("tie-break wrong: %q then %q", m.TopCategories[0].Name, m.TopCategories[1].Name)
	}
}

func TestMonthlyTotalsChronologicalAndConsistent(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	// Deliberately out of chronological order.
	ledger := []Transaction{
		{ID: "a", Type: Income, Amount: Money{Cents: 3000}, Category: "Salary", Description: "x", Date: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC), Account: "Checking"},
		{ID: "b", Type: Expense, Amount: Money{Cents: 1000}, Category: "Food & Dining", Description: "x", Date: time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC), Account: "Cash"},
		{ID: "c", Type: Income, Amount: Money{Cents: 2000}, Category: "Freelance", Description: "x", Date: time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC), Account: "Checking"},
		{ID: "d", Type: Expense, Amount: Money{Cents: 500}, Category: "Travel", Description: "x", Date: time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), Account: "Cash"},
	}

	m := GenerateMetrics(ledger, now)

	wantMonths := []string{"2024-12", "2025-02", "2025-05"}
	if len(m.MonthlyTotals) != len(wantMonths) {
		t.Fatalf("got %d months, want %d", len(m.MonthlyTotals), len(wantMonths))
	}
	var incomeSum int64
	for i, mt := range m.MonthlyTotals {
		if mt.Month != wantMonths[i] {
			t.Errorf("month %d = %q, want %q", i, mt.Month, wantMonths[i])
		}
		incomeSum += mt.Income.Cents
	}
	if incomeSum != m.Inflow.Cents {
		t.Errorf("sum of monthly income %d != inflow %d", incomeSum, m.Inflow.Cents)
	}

	feb := m.MonthlyTotals[1]
	if feb.Income.Cents != 2000 || feb.Expense.Cents != 1000 {
		t.Errorf("2025-02 = income %d / expense %d, want 2000 / 1000", feb.Income.Cents, feb.Expense.Cents)
	}
}

func TestUpcomingOnlyFutureExpensesSortedAscending(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ledger := []Transaction{
		{ID: "far", Type: Expense, Amount: Money{Cents: 100}, Category: "X", Description: "x", Date: now.AddDate(0, 1, 0), Account: "Cash"},
		{ID: "past", Type: Expense, Amount: Money{Cents: 100}, Category: "X", Description: "x", Date: now.AddDate(0, 0, -1), Account: "Cash"},
		{ID: "near", Type: Expense, Amount: Money{Cents: 100}, Category: "X", Description: "x", Date: now.AddDate(0, 0, 2), Account: "Cash"},
		{ID: "futinc", Type: Income, Amount: Money{Cents: 100}, Category: "Salary", Description: "x", Date: now.AddDate(0, 0, 5), Account: "Checking"},
		{ID: "atnow", Type: Expense, Amount: Money{Cents: 100}, Category: "X", Description: "x", Date: now, Account: "Cash"},
	}

	m := GenerateMetrics(ledger, now)

	want := []string{"near", "far"}
	got := ids(m.Upcoming)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("upcoming = %v, want %v", got, want)
	}
}

func TestBurnRatePartialHistoryAndZeroGuard(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("full window divides by three months", func(t *testing.T) {
		ledger := []Transaction{
			{ID: "old", Type: Expense, Amount: Money{Cents: 30000}, Category: "X", Description: "x", Date: now.AddDate(0, 0, -90), Account: "Cash"},
			{ID: "new", Type: Expense, Amount: Money{Cents: 60000}, Category: "X", Description: "x", Date: now.AddDate(0, 0, -1), Account: "Cash"},
		}
		m := GenerateMetrics(ledger, now)
		if m.BurnRate.Cents != 30000 {
			t.Errorf("burnRate = %d, want 30000 (90000 over 3 months)", m.BurnRate.Cents)
		}
	})

	t.Run("mature ledger always divides by three months", func(t *testing.T) {
		// The 91-day-old expense sits outside the window but proves the
		// ledger has a full quarter of history, so the lone in-window
		// 300.00 averages out to 100.00 per month rather than being
		// inflated by how recently it landed.
		ledger := []Transaction{
			{ID: "ancient", Type: Expense, Amount: Money{Cents: 999999}, Category: "X", Description: "x", Date: now.AddDate(0, 0, -91), Account: "Cash"},
			{ID: "recent", Type: Expense, Amount: Money{Cents: 30000}, Category: "X", Description: "x", Date: now.AddDate(0, 0, -30), Account: "Cash"},
		}
		m := GenerateMetrics(ledger, now)
		if m.BurnRate.Cents != 10000 {
			t.Errorf("burnRate = %d, want 10000", m.BurnRate.Cents)
		}
	})

	t.Run("income extends history without feeding the sum", func(t *testing.T) {
		ledger := []Transaction{
			{ID: "pay", Type: Income, Amount: Money{Cents: 500000}, Category: "Salary", Description: "x", Date: now.AddDate(0, 0, -60), Account: "Checking"},
			{ID: "spend", Type: Expense, Amount: Money{Cents: 20000}, Category: "X", Description: "x", Date: now.AddDate(0, 0, -15), Account: "Cash"},
		}
		m := GenerateMetrics(ledger, now)
		// 200.00 over the ledger's two months of history.
		if m.BurnRate.Cents != 10000 {
			t.Errorf("burnRate = %d, want 10000", m.BurnRate.Cents)
		}
	})

	t.Run("single expense at now yields zero", func(t *testing.T) {
		ledger := []Transaction{
			{ID: "x", Type: Expense, Amount: Money{Cents: 5000}, Category: "X", Description: "x", Date: now, Account: "Cash"},
		}
		m := GenerateMetrics(ledger, now)
		if m.BurnRate.Cents != 0 {
			t.Errorf("burnRate = %d, want 0 for zero elapsed history", m.BurnRate.Cents)
		}
	})

	t.Run("income never feeds burn rate", func(t *testing.T) {
		ledger := []Transaction{
			{ID: "x", Type: Income, Amount: Money{Cents: 5000}, Category: "Salary", Description: "x", Date: now.AddDate(0, 0, -10), Account: "Checking"},
		}
		m := GenerateMetrics(ledger, now)
		if m.BurnRate.Cents != 0 {
			t.Errorf("burnRate = %d, want 0", m.BurnRate.Cents)
		}
	})
}
