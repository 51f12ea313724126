// Package insight compares the current calendar month with the one before it
// and derives health ratios for the current month.
package insight

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/fintrack/internal/aggregate"
	"github.com/cleared-dev/fintrack/internal/model"
)

// TopSpendingCount is how many expense categories a Report ranks.
const TopSpendingCount = 3

// Savings rate bands.
const (
	SavingsExcellent        = "excellent"
	SavingsGood             = "good"
	SavingsNeedsImprovement = "needs improvement"
)

// Budget utilization bands.
const (
	BudgetWithin = "within budget"
	BudgetNear   = "near limit"
	BudgetOver   = "over budget"
)

var (
	savingsExcellentAt = decimal.NewFromInt(20)
	savingsGoodAt      = decimal.NewFromInt(10)
	budgetWithinUpTo   = decimal.NewFromInt(80)
	budgetNearUpTo     = decimal.NewFromInt(100)
)

// Report holds the month-over-month comparison. Percentages are signed and
// unclamped.
type Report struct {
	Month     string
	LastMonth string

	Current aggregate.Totals
	Last    aggregate.Totals

	IncomeChangePct   decimal.Decimal
	ExpenseChangePct  decimal.Decimal
	SavingsRate       decimal.Decimal
	BudgetUtilization decimal.Decimal

	SavingsBand string
	BudgetBand  string

	TopSpending []aggregate.CategoryTotal
}

// Empty reports whether neither month has any transactions.
func (r Report) Empty() bool {
	return r.Current.Count == 0 && r.Last.Count == 0
}

// Compute builds a Report for the month containing ref.
func Compute(txns []model.Transaction, ref time.Time) Report {
	month := ref.Format(model.MonthFormat)
	lastMonth := PreviousMonth(ref).Format(model.MonthFormat)

	current := aggregate.ForMonth(txns, month)
	last := aggregate.ForMonth(txns, lastMonth)

	r := Report{
		Month:     month,
		LastMonth: lastMonth,
		Current:   aggregate.Summarize(current),
		Last:      aggregate.Summarize(last),
	}
	r.IncomeChangePct = Change(r.Current.TotalIncome, r.Last.TotalIncome)
	r.ExpenseChangePct = Change(r.Current.TotalExpenses, r.Last.TotalExpenses)
	r.SavingsRate = r.Current.SavingsRate()
	r.BudgetUtilization = aggregate.Percent(r.Current.TotalExpenses, r.Current.TotalIncome)
	r.SavingsBand = BandSavings(r.SavingsRate)
	r.BudgetBand = BandBudget(r.BudgetUtilization)
	r.TopSpending = aggregate.TopCategories(current, TopSpendingCount, model.KindExpense)
	return r
}

// PreviousMonth returns the first day of the calendar month before ref's.
func PreviousMonth(ref time.Time) time.Time {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return first.AddDate(0, -1, 0)
}

// Change returns the percentage change from last to cur, or zero when last
// is not positive.
func Change(cur, last decimal.Decimal) decimal.Decimal {
	return aggregate.Percent(cur.Sub(last), last)
}

// BandSavings classifies a savings rate percentage.
func BandSavings(rate decimal.Decimal) string {
	switch {
	case rate.GreaterThanOrEqual(savingsExcellentAt):
		return SavingsExcellent
	case rate.GreaterThanOrEqual(savingsGoodAt):
		return SavingsGood
	default:
		return SavingsNeedsImprovement
	}
}

// BandBudget classifies a budget utilization percentage.
func BandBudget(utilization decimal.Decimal) string {
	switch {
	case utilization.LessThanOrEqual(budgetWithinUpTo):
		return BudgetWithin
	case utilization.LessThanOrEqual(budgetNearUpTo):
		return BudgetNear
	default:
		return BudgetOver
	}
}

// Clamp limits a percentage to [0, 100] for progress bars.
func Clamp(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	if v.GreaterThan(budgetNearUpTo) {
		return budgetNearUpTo
	}
	return v
}
