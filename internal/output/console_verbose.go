package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// ConsoleVerboseFormatter adds the assumptions and the 12-month table of
// every source with income to the console summary.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console-verbose" }

func (c ConsoleVerboseFormatter) Format(summary *domain.TaxSummary) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, summary)
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range Assumptions(summary.Income.Year) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}

	for _, src := range summary.Sources() {
		if !src.Totals.SalaryBeforeTaxes.IsPositive() {
			continue
		}
		fmt.Fprintln(&buf)
		writeMonthlyTable(&buf, src)
	}
	return buf.Bytes(), nil
}

func writeMonthlyTable(w io.Writer, src domain.SourceTaxes) {
	title := strings.ToUpper(src.Source.Label())
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", 96))
	fmt.Fprintf(w, "%-5s %15s %11s %20s %20s %20s %15s\n", "Month", "Year to date", "NPD", "GPM", "VSD", "PSD", "After taxes")
	fmt.Fprintln(w, strings.Repeat("-", 96))
	for _, m := range src.Results {
		fmt.Fprintf(w, "%-5d %15s %11s %20s %20s %20s %15s\n",
			m.Month,
			FormatCurrency(m.TotalAnnualBeforeTaxes),
			FormatCurrency(m.NPD),
			taxCell(m.Taxes.GPM),
			taxCell(m.Taxes.VSD),
			taxCell(m.Taxes.PSD),
			FormatCurrency(m.TotalMonthlyAfterTaxes))
	}
	fmt.Fprintln(w, strings.Repeat("-", 96))
	t := src.Totals
	fmt.Fprintf(w, "%-5s %15s %11s %20s %20s %20s %15s\n",
		"Year",
		FormatCurrency(t.SalaryBeforeTaxes),
		"",
		taxCell(t.GPM),
		taxCell(t.VSD),
		taxCell(t.PSD),
		FormatCurrency(t.SalaryAfterTaxes))
}

func taxCell(t domain.Tax) string {
	return fmt.Sprintf("%s (%s)", FormatCurrency(t.Amount), formatNumber(t.Percentage))
}
