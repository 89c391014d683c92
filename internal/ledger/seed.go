package ledger

import (
	"time"

	"pulse/internal/core"
)

// Seed returns the starter dataset used when no persisted snapshot exists.
// Dates are anchored to now so the dashboard shows live trends and at least
// one forecastable future expense on first run.
func Seed(now time.Time) []core.Transaction {
	seed := []core.Transaction{
		{
			ID:          "txn-seed-salary",
			Type:        core.Income,
			Amount:      core.Money{Cents: 620000},
			Category:    "Salary",
			Description: "Monthly payroll",
			Date:        now.AddDate(0, 0, -12),
			Account:     "Checking",
		},
		{
			ID:          "txn-seed-freelance",
			Type:        core.Income,
			Amount:      core.Money{Cents: 145000},
			Category:    "Freelance",
			Description: "Design retainer",
			Date:        now.AddDate(0, -1, -3),
			Account:     "Checking",
			Project:     "studio",
		},
		{
			ID:          "txn-seed-rent",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 185000},
			Category:    "Housing",
			Description: "Rent",
			Date:        now.AddDate(0, 0, -10),
			Account:     "Checking",
		},
		{
			ID:          "txn-seed-groceries",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 23450},
			Category:    "Food & Dining",
			Description: "Weekly groceries",
			Date:        now.AddDate(0, 0, -6),
			Account:     "Personal Card",
		},
		{
			ID:          "txn-seed-transit",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 7600},
			Category:    "Transportation",
			Description: "Transit pass",
			Date:        now.AddDate(0, 0, -5),
			Account:     "Personal Card",
		},
		{
			ID:          "txn-seed-utilities",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 14250},
			Category:    "Utilities",
			Description: "Electricity and internet",
			Date:        now.AddDate(0, -1, -8),
			Account:     "Checking",
			Notes:       "combined bill",
		},
		{
			ID:          "txn-seed-software",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 4900},
			Category:    "Entertainment",
			Description: "Streaming subscriptions",
			Date:        now.AddDate(0, -2, -1),
			Account:     "Corporate Card",
		},
		{
			ID:          "txn-seed-insurance",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 30800},
			Category:    "Insurance",
			Description: "Health insurance premium",
			Date:        now.AddDate(0, 0, 9),
			Account:     "Checking",
			Notes:       "auto-debit",
		},
		{
			ID:          "txn-seed-flight",
			Type:        core.Expense,
			Amount:      core.Money{Cents: 52300},
			Category:    "Travel",
			Description: "Conference flight",
			Date:        now.AddDate(0, 0, 21),
			Account:     "Corporate Card",
			Project:     "q3-offsite",
		},
	}
	core.SortByDateDesc(seed)
	return seed
}
