// Package order sorts filtered transaction views.
package order

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cleared-dev/fintrack/internal/model"
)

// Sort returns a copy of txns ordered by field and direction. The sort is
// stable: records with equal keys keep their input order in both directions.
// Unknown fields sort by date.
func Sort(txns []model.Transaction, by model.SortField, dir model.SortOrder) []model.Transaction {
	out := slices.Clone(txns)
	cmp := Comparator(by)
	if dir != model.SortAsc {
		asc := cmp
		cmp = func(a, b model.Transaction) int { return -asc(a, b) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// Comparator returns the ascending comparison for a sort field.
// Text fields use English collation, so "apple" sorts before "Banana".
func Comparator(by model.SortField) func(a, b model.Transaction) int {
	switch by {
	case model.SortByAmount:
		return func(a, b model.Transaction) int { return a.Amount.Cmp(b.Amount) }
	case model.SortByDescription:
		col := newCollator()
		return func(a, b model.Transaction) int { return col.CompareString(a.Description, b.Description) }
	case model.SortByCategory:
		col := newCollator()
		return func(a, b model.Transaction) int { return col.CompareString(a.Category, b.Category) }
	default:
		return func(a, b model.Transaction) int { return strings.Compare(a.Date, b.Date) }
	}
}

// A Collator keeps scratch buffers, so each comparator gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.English)
}
