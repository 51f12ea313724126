package aggregate

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/fintrack/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func txn(id string, kind model.Kind, amount, category, date string) model.Transaction {
	return model.Transaction{ID: id, Kind: kind, Amount: dec(amount), Description: category, Category: category, Date: date}
}

func sample() []model.Transaction {
	return []model.Transaction{
		txn("1", model.KindIncome, "5000", "Salary", "2024-01-01"),
		txn("2", model.KindExpense, "200", "Food", "2024-01-03"),
		txn("3", model.KindExpense, "100", "Food", "2024-02-01"),
	}
}

func TestSummarize(t *testing.T) {
	got := Summarize(sample())
	assert.True(t, dec("5000").Equal(got.TotalIncome), "income %s", got.TotalIncome)
	assert.True(t, dec("300").Equal(got.TotalExpenses), "expenses %s", got.TotalExpenses)
	assert.True(t, dec("4700").Equal(got.NetIncome), "net %s", got.NetIncome)
	assert.Equal(t, 3, got.Count)
	assert.True(t, dec("94").Equal(got.SavingsRate()), "savings %s", got.SavingsRate())
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	assert.True(t, got.TotalIncome.IsZero())
	assert.True(t, got.TotalExpenses.IsZero())
	assert.True(t, got.NetIncome.IsZero())
	assert.True(t, got.SavingsRate().IsZero())
}

func TestTotalsIdentity(t *testing.T) {
	sets := [][]model.Transaction{
		nil,
		sample(),
		{txn("x", model.KindExpense, "12.34", "Bills", "2024-03-01")},
		{
			txn("a", model.KindIncome, "100.10", "Freelance", "2024-03-01"),
			txn("b", model.KindExpense, "250.05", "Shopping", "2024-03-02"),
		},
	}
	for _, txns := range sets {
		got := Summarize(txns)
		assert.True(t, got.TotalIncome.Sub(got.TotalExpenses).Equal(got.NetIncome))
	}
}

func TestCategoryTotalsSumToKindTotals(t *testing.T) {
	txns := append(sample(),
		txn("4", model.KindExpense, "45.50", "Transportation", "2024-02-10"),
		txn("5", model.KindIncome, "300", "Freelance", "2024-02-11"),
	)
	totals := Summarize(txns)

	for kind, want := range map[model.Kind]decimal.Decimal{
		model.KindIncome:  totals.TotalIncome,
		model.KindExpense: totals.TotalExpenses,
	} {
		sum := decimal.Zero
		for _, ct := range CategoryTotals(txns, kind) {
			sum = sum.Add(ct.Amount)
		}
		assert.True(t, want.Equal(sum), "%s: %s != %s", kind, want, sum)
	}
}

func TestCategoryTotalsOrderAndAbsence(t *testing.T) {
	txns := []model.Transaction{
		txn("1", model.KindExpense, "10", "Bills", "2024-01-01"),
		txn("2", model.KindExpense, "20", "Food", "2024-01-02"),
		txn("3", model.KindExpense, "5", "Bills", "2024-01-03"),
		txn("4", model.KindIncome, "1", "Salary", "2024-01-04"),
	}
	got := CategoryTotals(txns, model.KindExpense)
	require.Len(t, got, 2)
	assert.Equal(t, "Bills", got[0].Category)
	assert.True(t, dec("15").Equal(got[0].Amount))
	assert.Equal(t, 2, got[0].Count)
	assert.Equal(t, "Food", got[1].Category)

	assert.Empty(t, CategoryTotals(nil, model.KindExpense))
}

func TestEndToEndFoodTotals(t *testing.T) {
	got := CategoryTotals(sample(), model.KindExpense)
	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Category)
	assert.True(t, dec("300").Equal(got[0].Amount))
}

func TestTopCategories(t *testing.T) {
	txns := []model.Transaction{
		txn("1", model.KindExpense, "300", "Food", "2024-01-01"),
		txn("2", model.KindExpense, "150", "Bills", "2024-01-02"),
		txn("3", model.KindExpense, "50", "Food", "2024-01-03"),
	}

	got := TopCategories(txns, 1, model.KindExpense)
	require.Len(t, got, 1)
	assert.Equal(t, "Food", got[0].Category)
	assert.True(t, dec("350").Equal(got[0].Amount))

	all := TopCategories(txns, 10, model.KindExpense)
	require.Len(t, all, 2)
	assert.Equal(t, "Bills", all[1].Category)

	assert.Empty(t, TopCategories(txns, 0, model.KindExpense))
	assert.Empty(t, TopCategories(nil, 3, model.KindExpense))
}

func TestTopCategoriesTiesKeepFirstEncountered(t *testing.T) {
	txns := []model.Transaction{
		txn("1", model.KindExpense, "10", "Shopping", "2024-01-01"),
		txn("2", model.KindExpense, "30", "Bills", "2024-01-02"),
		txn("3", model.KindExpense, "10", "Food", "2024-01-03"),
		txn("4", model.KindExpense, "10.00", "Healthcare", "2024-01-04"),
	}
	got := TopCategories(txns, 3, model.KindExpense)
	require.Len(t, got, 3)
	assert.Equal(t, "Bills", got[0].Category)
	assert.Equal(t, "Shopping", got[1].Category)
	assert.Equal(t, "Food", got[2].Category)
}

func TestBreakdown(t *testing.T) {
	txns := []model.Transaction{
		txn("1", model.KindExpense, "75", "Food", "2024-01-01"),
		txn("2", model.KindExpense, "25", "Bills", "2024-01-02"),
		txn("3", model.KindIncome, "1000", "Salary", "2024-01-03"),
	}
	got := Breakdown(txns, model.KindExpense)
	require.Len(t, got, 2)
	assert.Equal(t, "Food", got[0].Category)
	assert.True(t, dec("75").Equal(got[0].Percentage), "food share %s", got[0].Percentage)
	assert.True(t, dec("25").Equal(got[1].Percentage), "bills share %s", got[1].Percentage)

	assert.Empty(t, Breakdown(nil, model.KindIncome))
}

func TestMonthlySeries(t *testing.T) {
	var txns []model.Transaction
	dates := []string{
		"2024-08-05", "2024-02-01", "2024-05-20", "2024-03-03",
		"2024-07-07", "2024-01-10", "2024-04-04", "2024-06-06",
	}
	for i, d := range dates {
		txns = append(txns, txn(string(rune('a'+i)), model.KindExpense, "10", "Food", d))
	}
	txns = append(txns, txn("inc", model.KindIncome, "500", "Salary", "2024-08-01"))

	got := MonthlySeries(txns, DefaultSeriesMonths)
	require.Len(t, got, 6)
	months := make([]string, len(got))
	for i, m := range got {
		months[i] = m.Month
	}
	assert.Equal(t, []string{"2024-03", "2024-04", "2024-05", "2024-06", "2024-07", "2024-08"}, months)

	last := got[len(got)-1]
	assert.True(t, dec("500").Equal(last.Income))
	assert.True(t, dec("10").Equal(last.Expenses))
	assert.True(t, dec("490").Equal(last.Net()))

	assert.Len(t, MonthlySeries(txns, 0), 8)
	assert.Empty(t, MonthlySeries(nil, DefaultSeriesMonths))
}

func TestForMonth(t *testing.T) {
	got := ForMonth(sample(), "2024-01")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Empty(t, ForMonth(sample(), "2023-12"))
}

func TestPercent(t *testing.T) {
	assert.True(t, Percent(dec("5"), decimal.Zero).IsZero())
	assert.True(t, Percent(dec("5"), dec("-1")).IsZero())
	assert.True(t, dec("50").Equal(Percent(dec("5"), dec("10"))))
	assert.True(t, dec("-20").Equal(Percent(dec("-2"), dec("10"))))
}
