package core

import (
	"errors"
	"sort"
	"strings"
	"time"
)

const (
	Expense TransactionType = "expense"
	Income  TransactionType = "income"
)

const (
	RangeAll         TimeRange = "ALL"
	RangeMonthToDate TimeRange = "MONTH_TO_DATE"
	RangeLastMonth   TimeRange = "LAST_MONTH"
	RangeLast90Days  TimeRange = "LAST_90_DAYS"
	RangeYearToDate  TimeRange = "YEAR_TO_DATE"
	RangeCustom      TimeRange = "CUSTOM"
)

// FilterAll is the wildcard value for the type, category and account filters.
const FilterAll = "all"

type (
	TransactionType string

	// TimeRange is a logical selector resolved against "now" by ResolveWindow.
	TimeRange string

	// Transaction is a single cash-flow event. Immutable once created;
	// the engine only ever reads snapshots of these.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		Account     string          `json:"account"`
		Project     string          `json:"project,omitempty"`
		Notes       string          `json:"notes,omitempty"`
	}

	// TransactionDraft is the creation payload before the store assigns an id
	// and normalizes the date.
	TransactionDraft struct {
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        time.Time       `json:"date"`
		Account     string          `json:"account"`
		Project     string          `json:"project,omitempty"`
		Notes       string          `json:"notes,omitempty"`
	}

	// Filters is a view specification. It is never persisted; the UI replaces
	// it wholesale on every interaction. Zero From/To mean open-ended bounds
	// and only apply when TimeRange is RangeCustom.
	Filters struct {
		TimeRange TimeRange `json:"timeRange"`
		Type      string    `json:"type"`
		Category  string    `json:"category"`
		Account   string    `json:"account"`
		Search    string    `json:"search"`
		From      time.Time `json:"from,omitempty"`
		To        time.Time `json:"to,omitempty"`
	}
)

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidType      = errors.New("invalid transaction type")
	ErrInvalidDate      = errors.New("invalid date")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyCategory    = errors.New("empty category")
	ErrEmptyAccount     = errors.New("empty account")
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	switch t {
	case Expense, Income:
		return true
	default:
		return false
	}
}

// IsValid reports whether r is one of the known range selectors.
func (r TimeRange) IsValid() bool {
	switch r {
	case RangeAll, RangeMonthToDate, RangeLastMonth, RangeLast90Days, RangeYearToDate, RangeCustom:
		return true
	default:
		return false
	}
}

// DefaultFilters returns the identity view: every transaction passes.
func DefaultFilters() Filters {
	return Filters{
		TimeRange: RangeAll,
		Type:      FilterAll,
		Category:  FilterAll,
		Account:   FilterAll,
	}
}

func (d TransactionDraft) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidType
	}
	if err := d.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(d.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if d.Date.IsZero() {
		return ErrInvalidDate
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if strings.TrimSpace(d.Account) == "" {
		return ErrEmptyAccount
	}
	return nil
}

// SortByDateDesc orders a snapshot most-recent-first, in place. Stores apply
// this after every mutation; the engine itself never re-sorts input.
func SortByDateDesc(transactions []Transaction) {
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
}
