package order

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fintrack/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func ids(txns []model.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func distinct() []model.Transaction {
	return []model.Transaction{
		{ID: "a", Amount: dec("30"), Description: "banana", Category: "Food", Date: "2024-03-01"},
		{ID: "b", Amount: dec("10"), Description: "Apple", Category: "Bills", Date: "2024-01-15"},
		{ID: "c", Amount: dec("20"), Description: "cherry", Category: "Shopping", Date: "2024-02-10"},
	}
}

func TestSortByField(t *testing.T) {
	tests := []struct {
		by   model.SortField
		want []string
	}{
		{model.SortByDate, []string{"b", "c", "a"}},
		{model.SortByAmount, []string{"b", "c", "a"}},
		{model.SortByDescription, []string{"b", "a", "c"}},
		{model.SortByCategory, []string{"b", "a", "c"}},
		{model.SortField("nonsense"), []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		got := Sort(distinct(), tt.by, model.SortAsc)
		assert.Equal(t, tt.want, ids(got), "sort by %s", tt.by)
	}
}

func TestDescendingIsReverseOfAscending(t *testing.T) {
	for _, by := range []model.SortField{model.SortByDate, model.SortByAmount, model.SortByDescription, model.SortByCategory} {
		asc := ids(Sort(distinct(), by, model.SortAsc))
		desc := ids(Sort(distinct(), by, model.SortDesc))
		slices.Reverse(desc)
		assert.Equal(t, asc, desc, "sort by %s", by)
	}
}

func TestSortIsStable(t *testing.T) {
	txns := []model.Transaction{
		{ID: "1", Amount: dec("5"), Description: "same", Category: "Food", Date: "2024-01-01"},
		{ID: "2", Amount: dec("5.00"), Description: "same", Category: "Food", Date: "2024-01-01"},
		{ID: "3", Amount: dec("1"), Description: "other", Category: "Bills", Date: "2023-12-31"},
		{ID: "4", Amount: dec("5"), Description: "same", Category: "Food", Date: "2024-01-01"},
	}
	for _, by := range []model.SortField{model.SortByDate, model.SortByAmount, model.SortByDescription, model.SortByCategory} {
		asc := ids(Sort(txns, by, model.SortAsc))
		assert.Equal(t, []string{"3", "1", "2", "4"}, asc, "asc by %s", by)

		desc := ids(Sort(txns, by, model.SortDesc))
		assert.Equal(t, []string{"1", "2", "4", "3"}, desc, "desc by %s", by)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	txns := distinct()
	_ = Sort(txns, model.SortByAmount, model.SortDesc)
	assert.Equal(t, []string{"a", "b", "c"}, ids(txns))
}

func TestSortEmpty(t *testing.T) {
	got := Sort(nil, model.SortByDate, model.SortDesc)
	require.Empty(t, got)
}

func TestCollationIgnoresCaseFirst(t *testing.T) {
	cmp := Comparator(model.SortByDescription)
	a := model.Transaction{Description: "apple"}
	b := model.Transaction{Description: "Banana"}
	assert.Negative(t, cmp(a, b))
	assert.Positive(t, cmp(b, a))
}
