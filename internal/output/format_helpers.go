package output

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const nbsp = "\u00a0"

var ltPrinter = message.NewPrinter(language.Lithuanian)

// FormatCurrency formats an amount the lt-LT way: decimal comma, two
// decimals and a trailing euro sign, e.g. "1 234,50 €".
func FormatCurrency(amount decimal.Decimal) string {
	return formatNumber(amount) + nbsp + "€"
}

// FormatPercent formats a value already expressed in percent, e.g. "16,68 %".
func FormatPercent(p decimal.Decimal) string {
	return formatNumber(p) + nbsp + "%"
}

// FormatRate formats a fractional rate (0.2) as a percentage.
func FormatRate(rate decimal.Decimal) string {
	return FormatPercent(rate.Mul(decimal.NewFromInt(100)))
}

func formatNumber(v decimal.Decimal) string {
	return ltPrinter.Sprintf("%.2f", v.Round(2).InexactFloat64())
}
