package ledger

import "pulse/internal/core"

// Closed vocabularies for the input-collection edge. The engine treats
// category and account as opaque strings; only the form layer validates
// against these lists, so new entries never touch the core.

var ExpenseCategories = []string{
	"Housing",
	"Transportation",
	"Food & Dining",
	"Utilities",
	"Insurance",
	"Healthcare",
	"Entertainment",
	"Travel",
	"Education",
	"Debt",
	"Investments",
	"Other",
}

var IncomeCategories = []string{
	"Salary",
	"Freelance",
	"Investments",
	"Rental",
	"Royalties",
	"Other",
}

var AccountTypes = []string{
	"Corporate Card",
	"Personal Card",
	"Checking",
	"Savings",
	"Cash",
	"Other",
}

// CategoriesFor returns the vocabulary that applies to a transaction type.
func CategoriesFor(t core.TransactionType) []string {
	if t == core.Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// KnownCategory reports whether name belongs to the vocabulary for t.
func KnownCategory(t core.TransactionType, name string) bool {
	return contains(CategoriesFor(t), name)
}

// KnownAccount reports whether name is a known account type.
func KnownAccount(name string) bool {
	return contains(AccountTypes, name)
}

func contains(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
