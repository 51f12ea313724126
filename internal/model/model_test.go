package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthKeyOf(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2024-01-05", "2024-01"},
		{"2024-12-31", "2024-12"},
		{"2024-1", "2024-1"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MonthKeyOf(tt.date), "MonthKeyOf(%q)", tt.date)
	}
}

func TestCategoriesDisjoint(t *testing.T) {
	income := Categories(KindIncome)
	expense := Categories(KindExpense)
	assert.Len(t, income, 5)
	assert.Len(t, expense, 7)

	for _, c := range income {
		assert.False(t, ValidCategory(KindExpense, c), "%s should not be an expense category", c)
	}
	assert.Len(t, AllCategories(), 12)
	assert.Nil(t, Categories(Kind("bogus")))
}

func TestKindOfCategory(t *testing.T) {
	k, ok := KindOfCategory("Salary")
	require.True(t, ok)
	assert.Equal(t, KindIncome, k)

	k, ok = KindOfCategory("Other Expense")
	require.True(t, ok)
	assert.Equal(t, KindExpense, k)

	_, ok = KindOfCategory("Rent")
	assert.False(t, ok)
}

func TestParseAmountBound(t *testing.T) {
	tests := []struct {
		input string
		want  string // empty = absent
	}{
		{"", ""},
		{"   ", ""},
		{"abc", ""},
		{"12.5", "12.5"},
		{" 100 ", "100"},
		{"-3", "-3"},
	}
	for _, tt := range tests {
		got := ParseAmountBound(tt.input)
		if tt.want == "" {
			assert.Nil(t, got, "input %q", tt.input)
			continue
		}
		require.NotNil(t, got, "input %q", tt.input)
		assert.Equal(t, tt.want, got.String())
	}
}

func TestParseFilterEnums(t *testing.T) {
	assert.Equal(t, TypeIncome, ParseTypeFilter("Income"))
	assert.Equal(t, TypeAll, ParseTypeFilter("whatever"))
	assert.Equal(t, SortByCategory, ParseSortField("CATEGORY"))
	assert.Equal(t, SortByDate, ParseSortField(""))
	assert.Equal(t, SortAsc, ParseSortOrder("asc"))
	assert.Equal(t, SortDesc, ParseSortOrder("up"))
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, TypeAll, f.Type)
	assert.Equal(t, CategoryAll, f.Category)
	assert.Equal(t, SortByDate, f.SortBy)
	assert.Equal(t, SortDesc, f.SortOrder)
	assert.Nil(t, f.AmountMin)
	assert.Nil(t, f.AmountMax)
}

func TestKindLabel(t *testing.T) {
	assert.Equal(t, "Income", KindIncome.Label())
	assert.Equal(t, "Expense", KindExpense.Label())
	assert.True(t, KindExpense.Valid())
	assert.False(t, Kind("Expense").Valid())
}
