package cmd

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// formatMoney renders amount in the given ISO currency, rounded to the
// currency's minor unit. Unknown codes fall back to two decimals.
func formatMoney(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(strings.ToUpper(code))
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// formatSignedMoney prefixes positive amounts with "+"
func formatSignedMoney(amount decimal.Decimal, code string) string {
	if amount.IsPositive() {
		return "+" + formatMoney(amount, code)
	}
	return formatMoney(amount, code)
}

func formatPct(pct decimal.Decimal) string {
	return pct.StringFixed(2) + "%"
}

func formatFloatPct(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}
