package commands

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$0.00", money(dec(t, "0")))
	assert.Equal(t, "$1,234,567.89", money(dec(t, "1234567.891")))
	assert.Equal(t, "-$3.50", money(dec(t, "-3.5")))
	assert.Equal(t, "$999.00", money(dec(t, "999")))
	assert.Equal(t, "$0.01", money(dec(t, "0.005")))
	assert.Equal(t, "$12,345,678,901,234,567.89", money(dec(t, "12345678901234567.89")))
	assert.Equal(t, "-$98,765,432,109,876,543.21", money(dec(t, "-98765432109876543.21")))
	assert.Equal(t, "+12.5%", trend(dec(t, "12.5")))
	assert.Equal(t, "-4.0%", trend(dec(t, "-4")))
	assert.Equal(t, "[##########..........]", bar(dec(t, "50")))
	assert.Equal(t, "[####################]", bar(dec(t, "250")))
}
