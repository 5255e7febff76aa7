package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// CSVFormatter writes one row per source per month, a total row per source
// and a combined row. Amounts are plain decimals for spreadsheets.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

var csvHeader = []string{"Source", "Month", "YearToDateGross", "NPD", "GPM", "VSD", "PSD", "TotalTax", "AfterTaxes"}

func (c CSVFormatter) Format(summary *domain.TaxSummary) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, src := range summary.Sources() {
		for _, m := range src.Results {
			row := []string{
				string(src.Source),
				strconv.Itoa(m.Month),
				m.TotalAnnualBeforeTaxes.StringFixed(2),
				m.NPD.StringFixed(2),
				m.Taxes.GPM.Amount.StringFixed(2),
				m.Taxes.VSD.Amount.StringFixed(2),
				m.Taxes.PSD.Amount.StringFixed(2),
				m.Taxes.Total.Amount.StringFixed(2),
				m.TotalMonthlyAfterTaxes.StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		if err := w.Write(totalsRow(string(src.Source), src.Totals)); err != nil {
			return nil, err
		}
	}
	if err := w.Write(totalsRow("combined", summary.Totals)); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func totalsRow(name string, t domain.IncomeTotalTaxes) []string {
	return []string{
		name,
		"total",
		t.SalaryBeforeTaxes.StringFixed(2),
		"",
		t.GPM.Amount.StringFixed(2),
		t.VSD.Amount.StringFixed(2),
		t.PSD.Amount.StringFixed(2),
		t.Total.Amount.StringFixed(2),
		t.SalaryAfterTaxes.StringFixed(2),
	}
}
