// Package aggregate computes totals and groupings over a transaction
// collection. Every function accepts an empty collection and returns zero
// totals and empty groupings for it.
package aggregate

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/model"
)

// DefaultSeriesMonths is how many of the most recent months MonthlySeries
// keeps for display.
const DefaultSeriesMonths = 6

var hundred = decimal.NewFromInt(100)

// Totals holds collection-wide sums.
type Totals struct {
	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal
	NetIncome     decimal.Decimal
	Count         int
}

// SavingsRate returns net income as a percentage of income, or zero when
// there is no income.
func (t Totals) SavingsRate() decimal.Decimal {
	return Percent(t.NetIncome, t.TotalIncome)
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
	Count    int
}

// CategoryShare is a category total with its share of the kind's total.
type CategoryShare struct {
	CategoryTotal
	Percentage decimal.Decimal
}

// MonthTotals holds income and expense sums for one "YYYY-MM" month.
type MonthTotals struct {
	Month    string
	Income   decimal.Decimal
	Expenses decimal.Decimal
}

// Net returns income minus expenses for the month.
func (m MonthTotals) Net() decimal.Decimal {
	return m.Income.Sub(m.Expenses)
}

// Summarize sums income and expenses over txns.
func Summarize(txns []model.Transaction) Totals {
	t := Totals{TotalIncome: decimal.Zero, TotalExpenses: decimal.Zero}
	for _, txn := range txns {
		switch txn.Kind {
		case model.KindIncome:
			t.TotalIncome = t.TotalIncome.Add(txn.Amount)
		case model.KindExpense:
			t.TotalExpenses = t.TotalExpenses.Add(txn.Amount)
		}
	}
	t.NetIncome = t.TotalIncome.Sub(t.TotalExpenses)
	t.Count = len(txns)
	return t
}

// CategoryTotals sums amounts per category for transactions of kind.
// Categories appear in the order they are first encountered.
func CategoryTotals(txns []model.Transaction, kind model.Kind) []CategoryTotal {
	index := make(map[string]int)
	var out []CategoryTotal
	for _, txn := range txns {
		if txn.Kind != kind {
			continue
		}
		i, ok := index[txn.Category]
		if !ok {
			i = len(out)
			index[txn.Category] = i
			out = append(out, CategoryTotal{Category: txn.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(txn.Amount)
		out[i].Count++
	}
	return out
}

// TopCategories returns the n categories of kind with the highest totals,
// largest first. Equal totals keep first-encountered order.
func TopCategories(txns []model.Transaction, n int, kind model.Kind) []CategoryTotal {
	totals := CategoryTotals(txns, kind)
	slices.SortStableFunc(totals, func(a, b CategoryTotal) int {
		return b.Amount.Cmp(a.Amount)
	})
	if n >= 0 && len(totals) > n {
		totals = totals[:n]
	}
	return totals
}

// Breakdown returns category totals for kind with each category's share of
// the kind's total, in first-encountered order.
func Breakdown(txns []model.Transaction, kind model.Kind) []CategoryShare {
	totals := CategoryTotals(txns, kind)
	sum := decimal.Zero
	for _, ct := range totals {
		sum = sum.Add(ct.Amount)
	}
	out := make([]CategoryShare, 0, len(totals))
	for _, ct := range totals {
		out = append(out, CategoryShare{CategoryTotal: ct, Percentage: Percent(ct.Amount, sum)})
	}
	return out
}

// MonthlySeries groups txns by month, ascending. Only the most recent months
// are kept; months <= 0 keeps them all.
func MonthlySeries(txns []model.Transaction, months int) []MonthTotals {
	byMonth := make(map[string]*MonthTotals)
	for _, txn := range txns {
		key := txn.MonthKey()
		m, ok := byMonth[key]
		if !ok {
			m = &MonthTotals{Month: key, Income: decimal.Zero, Expenses: decimal.Zero}
			byMonth[key] = m
		}
		if txn.Kind == model.KindIncome {
			m.Income = m.Income.Add(txn.Amount)
		} else {
			m.Expenses = m.Expenses.Add(txn.Amount)
		}
	}

	out := make([]MonthTotals, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	slices.SortFunc(out, func(a, b MonthTotals) int {
		switch {
		case a.Month < b.Month:
			return -1
		case a.Month > b.Month:
			return 1
		default:
			return 0
		}
	})
	if months > 0 && len(out) > months {
		out = out[len(out)-months:]
	}
	return out
}

// ForMonth returns the transactions whose date falls in month ("YYYY-MM").
func ForMonth(txns []model.Transaction, month string) []model.Transaction {
	var out []model.Transaction
	for _, txn := range txns {
		if txn.MonthKey() == month {
			out = append(out, txn)
		}
	}
	return out
}

// Percent returns part/whole*100, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
