// Package filter decides which transactions belong to a view.
package filter

import (
	"strings"

	"github.com/cleared-dev/fintrack/internal/model"
)

// Matches reports whether t satisfies every clause of f.
func Matches(t model.Transaction, f model.FilterSpec) bool {
	return matchesType(t, f.Type) &&
		matchesCategory(t, f.Category) &&
		matchesSearch(t, f.Search) &&
		(f.DateFrom == "" || t.Date >= f.DateFrom) &&
		(f.DateTo == "" || t.Date <= f.DateTo) &&
		(f.AmountMin == nil || t.Amount.GreaterThanOrEqual(*f.AmountMin)) &&
		(f.AmountMax == nil || t.Amount.LessThanOrEqual(*f.AmountMax))
}

// Apply returns the transactions matching f, in input order. The input slice
// is not modified.
func Apply(txns []model.Transaction, f model.FilterSpec) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if Matches(t, f) {
			out = append(out, t)
		}
	}
	return out
}

// ActiveCount returns how many clauses of f actually restrict the view.
func ActiveCount(f model.FilterSpec) int {
	n := 0
	if !isAllType(f.Type) {
		n++
	}
	if !isAllCategory(f.Category) {
		n++
	}
	for _, s := range []string{f.Search, f.DateFrom, f.DateTo} {
		if s != "" {
			n++
		}
	}
	if f.AmountMin != nil {
		n++
	}
	if f.AmountMax != nil {
		n++
	}
	return n
}

func matchesType(t model.Transaction, tf model.TypeFilter) bool {
	return isAllType(tf) || string(tf) == string(t.Kind)
}

func matchesCategory(t model.Transaction, category string) bool {
	return isAllCategory(category) || category == t.Category
}

func matchesSearch(t model.Transaction, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Description), strings.ToLower(search))
}

func isAllType(tf model.TypeFilter) bool {
	return tf == "" || tf == model.TypeAll
}

func isAllCategory(c string) bool {
	return c == "" || c == model.CategoryAll
}
