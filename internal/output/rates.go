package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// FormatRates renders the rate legend of a year
func FormatRates(year domain.Year) (string, error) {
	brackets, err := calculation.BaseBrackets(year)
	if err != nil {
		return "", err
	}
	profit, err := calculation.ProfitTaxRatesFor(year)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	title := fmt.Sprintf("TAX RATES %d", int(year))
	fmt.Fprintln(&buf, title)
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	fmt.Fprintf(&buf, "%-14s %-34s %9s %9s %9s\n", "Bracket", "Income range", "GPM", "VSD", "PSD")
	for _, b := range brackets {
		fmt.Fprintf(&buf, "%-14s %-34s %9s %9s %9s\n", b.Label, b.IncomeRange, FormatRate(b.GPM), FormatRate(b.VSD), FormatRate(b.PSD))
	}
	fmt.Fprintln(&buf)
	for _, a := range Assumptions(year)[:3] {
		fmt.Fprintln(&buf, a)
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "MB profit tax")
	fmt.Fprintf(&buf, "  0 %% during the first %d months\n", profit.GracePeriodMonths)
	fmt.Fprintf(&buf, "  %s with revenue under %s per year\n", FormatRate(profit.ReducedRate), FormatCurrency(profit.LimitPerYear))
	fmt.Fprintf(&buf, "  %s otherwise\n", FormatRate(profit.MainRate))
	fmt.Fprintf(&buf, "  Dividends: %s GPM after profit tax\n", FormatRate(calculation.DividendGPMRate))
	fmt.Fprintf(&buf, "  More: %s\n", profit.InfoURL)
	return buf.String(), nil
}
