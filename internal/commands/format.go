package commands

import (
	"io"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cleared-dev/fintrack/internal/insight"
	"github.com/cleared-dev/fintrack/internal/model"
)

var printer = message.NewPrinter(language.English)

const barWidth = 20

// money renders an amount as US dollars with thousands separators. Digits
// come from the decimal itself, so large amounts print exactly.
func money(d decimal.Decimal) string {
	d = d.Round(2)
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	s := "$" + groupThousands(whole) + "." + frac
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

func groupThousands(digits string) string {
	var b strings.Builder
	for i := 0; i < len(digits); i++ {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(digits[i])
	}
	return b.String()
}

// signedMoney prefixes income with "+" and expenses with "-".
func signedMoney(t model.Transaction) string {
	if t.Kind == model.KindIncome {
		return "+" + money(t.Amount)
	}
	return "-" + money(t.Amount)
}

// percent renders a percentage with one decimal.
func percent(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}

// trend renders a signed percentage change, e.g. "+12.5%".
func trend(d decimal.Decimal) string {
	if d.IsNegative() {
		return percent(d)
	}
	return "+" + percent(d)
}

// bar draws a progress bar for a percentage clamped to [0, 100].
func bar(d decimal.Decimal) string {
	filled := int(insight.Clamp(d).Mul(decimal.NewFromInt(barWidth)).Div(decimal.NewFromInt(100)).IntPart())
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
