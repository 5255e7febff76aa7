package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// ConsoleFormatter prints the summary cards and per-source averages.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(summary *domain.TaxSummary) ([]byte, error) {
	var buf bytes.Buffer
	writeSummary(&buf, summary)
	return buf.Bytes(), nil
}

func writeSummary(w io.Writer, s *domain.TaxSummary) {
	t := s.Totals
	title := fmt.Sprintf("LITHUANIAN TAX SUMMARY %d", int(s.Income.Year))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintf(w, "Monthly average after taxes:  %s\n", FormatCurrency(t.MonthlyAverageAfter()))
	fmt.Fprintf(w, "Monthly average before taxes: %s\n", FormatCurrency(t.MonthlyAverageBefore()))
	fmt.Fprintf(w, "Annual after taxes:           %s\n", FormatCurrency(t.SalaryAfterTaxes))
	fmt.Fprintf(w, "Annual before taxes:          %s\n", FormatCurrency(t.SalaryBeforeTaxes))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "TAXES (annual)")
	fmt.Fprintln(w, "--------------")
	writeTaxLine(w, "GPM", t.GPM)
	writeTaxLine(w, "VSD", t.VSD)
	writeTaxLine(w, "PSD", t.PSD)
	writeTaxLine(w, "Total", t.Total)
	if s.PSDRemainder.IsPositive() {
		fmt.Fprintf(w, "  Includes %s PSD top-up to the annual minimum of %s\n",
			FormatCurrency(s.PSDRemainder), FormatCurrency(s.MinimumAnnualPSD))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "BY SOURCE (monthly average)")
	fmt.Fprintln(w, "---------------------------")
	shown := 0
	for _, src := range s.Sources() {
		if !src.Totals.SalaryBeforeTaxes.IsPositive() {
			continue
		}
		shown++
		fmt.Fprintf(w, "  %-28s gross %s  net %s  tax %s (%s)\n",
			src.Source.Label()+":",
			FormatCurrency(src.Totals.MonthlyAverageBefore()),
			FormatCurrency(src.Totals.MonthlyAverageAfter()),
			FormatCurrency(src.Totals.Total.Amount),
			FormatPercent(src.Totals.Total.Percentage))
	}
	if shown == 0 {
		fmt.Fprintln(w, "  No income entered")
	}

	if s.Income.MBMonthly.IsPositive() || s.Income.MBDividendsMonthly.IsPositive() {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "MB profit tax rate: %s\n", FormatRate(s.MBProfitTaxRate))
	}
	if s.MBIncomeOverLimit {
		fmt.Fprintf(w, "WARNING: MB income exceeds the annual limit of %s\n", FormatCurrency(calculation.MBIncomeLimitPerYear))
	}
}

func writeTaxLine(w io.Writer, label string, t domain.Tax) {
	fmt.Fprintf(w, "  %-6s %16s  %10s\n", label+":", FormatCurrency(t.Amount), FormatPercent(t.Percentage))
}
