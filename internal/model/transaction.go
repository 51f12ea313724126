package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the layout of Transaction.Date. Lexicographic order of
// strings in this layout equals chronological order.
const DateFormat = "2006-01-02"

// MonthFormat is the layout of a month key.
const MonthFormat = "2006-01"

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Label returns the capitalized display name ("Income", "Expense").
func (k Kind) Label() string {
	switch k {
	case KindIncome:
		return "Income"
	case KindExpense:
		return "Expense"
	default:
		return string(k)
	}
}

// Transaction is one recorded income or expense event. Values are replaced
// wholesale on edit; ID survives the replacement.
type Transaction struct {
	ID          string
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	Category    string
	Date        string // YYYY-MM-DD
}

// MonthKey returns the "YYYY-MM" month the transaction falls in.
func (t Transaction) MonthKey() string {
	return MonthKeyOf(t.Date)
}

// MonthKeyOf returns the "YYYY-MM" prefix of an ISO date, or the whole string
// if it is shorter than that.
func MonthKeyOf(date string) string {
	if len(date) < len(MonthFormat) {
		return date
	}
	return date[:len(MonthFormat)]
}

// ParseDate parses an ISO calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateFormat, s)
}

// FormatDate renders t as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}
