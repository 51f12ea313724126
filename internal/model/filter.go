package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TypeFilter selects transactions by kind.
type TypeFilter string

const (
	TypeAll     TypeFilter = "all"
	TypeIncome  TypeFilter = "income"
	TypeExpense TypeFilter = "expense"
)

// CategoryAll disables the category clause.
const CategoryAll = "all"

// SortField names the key transactions are ordered by.
type SortField string

const (
	SortByDate        SortField = "date"
	SortByAmount      SortField = "amount"
	SortByDescription SortField = "description"
	SortByCategory    SortField = "category"
)

// SortOrder is the direction of a sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// FilterSpec is the composite filter and sort criteria for one view of the
// transaction collection. The zero value filters nothing.
type FilterSpec struct {
	Type      TypeFilter
	Category  string
	Search    string
	DateFrom  string // inclusive, empty = unset
	DateTo    string // inclusive, empty = unset
	AmountMin *decimal.Decimal
	AmountMax *decimal.Decimal
	SortBy    SortField
	SortOrder SortOrder
}

// DefaultFilter returns the session-start filter: everything, newest first.
func DefaultFilter() FilterSpec {
	return FilterSpec{
		Type:      TypeAll,
		Category:  CategoryAll,
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// ParseTypeFilter maps user input to a TypeFilter. Anything unrecognized is
// treated as "all".
func ParseTypeFilter(s string) TypeFilter {
	switch TypeFilter(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome
	case TypeExpense:
		return TypeExpense
	default:
		return TypeAll
	}
}

// ParseSortField maps user input to a SortField, defaulting to date.
func ParseSortField(s string) SortField {
	switch f := SortField(strings.ToLower(strings.TrimSpace(s))); f {
	case SortByAmount, SortByDescription, SortByCategory:
		return f
	default:
		return SortByDate
	}
}

// ParseSortOrder maps user input to a SortOrder, defaulting to descending.
func ParseSortOrder(s string) SortOrder {
	if SortOrder(strings.ToLower(strings.TrimSpace(s))) == SortAsc {
		return SortAsc
	}
	return SortDesc
}

// ParseAmountBound converts raw bound text into an optional amount. Empty or
// non-numeric text yields nil, meaning the bound is absent.
func ParseAmountBound(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

// SortFields lists the sort keys in display order.
func SortFields() []SortField {
	return []SortField{SortByDate, SortByAmount, SortByDescription, SortByCategory}
}
