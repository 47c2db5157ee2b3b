package util

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney renders a currency amount rounded to whole dollars with
// thousands separators, e.g. 1234567.89 -> "$1,234,568".
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().Round(0).String()

	var b strings.Builder
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}

	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatMillions renders a currency amount in millions with two decimal
// places, e.g. 4166250 -> "$4.17M".
func FormatMillions(d decimal.Decimal) string {
	millions := d.Div(decimal.NewFromInt(1_000_000))
	return fmt.Sprintf("$%sM", millions.StringFixed(2))
}
