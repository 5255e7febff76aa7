package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeSource identifies one of the taxed income streams
type IncomeSource string

const (
	SourceEmployment  IncomeSource = "employment"
	SourceIV          IncomeSource = "iv"
	SourceMB          IncomeSource = "mb"
	SourceMBDividends IncomeSource = "mbDividends"
)

// AllSources lists the sources in display order
func AllSources() []IncomeSource {
	return []IncomeSource{SourceEmployment, SourceIV, SourceMB, SourceMBDividends}
}

// Label is the human readable name of the source
func (s IncomeSource) Label() string {
	switch s {
	case SourceEmployment:
		return "Employment"
	case SourceIV:
		return "Individual activity (IV)"
	case SourceMB:
		return "MB income (civil contract)"
	case SourceMBDividends:
		return "MB dividends"
	default:
		return string(s)
	}
}

// ParseIncomeSource accepts the source identifiers case-insensitively
func ParseIncomeSource(s string) (IncomeSource, error) {
	for _, src := range AllSources() {
		if strings.EqualFold(string(src), strings.TrimSpace(s)) {
			return src, nil
		}
	}
	return "", fmt.Errorf("unknown income source %q", s)
}

// TaxSummary is the combined view of all four income sources
type TaxSummary struct {
	Income Income `json:"income"`

	Totals      IncomeTotalTaxes `json:"totals"`
	Employment  SourceTaxes      `json:"employment"`
	IV          SourceTaxes      `json:"iv"`
	MB          SourceTaxes      `json:"mb"`
	MBDividends SourceTaxes      `json:"mbDividends"`

	// PSD added on top of the per-source sums to reach the annual minimum
	PSDRemainder     decimal.Decimal `json:"psdRemainder"`
	MinimumAnnualPSD decimal.Decimal `json:"minimumAnnualPsd"`

	MBProfitTaxRate   decimal.Decimal `json:"mbProfitTaxRate"`
	MBIncomeOverLimit bool            `json:"mbIncomeOverLimit"`
}

// Source returns the per-source result for s
func (ts *TaxSummary) Source(s IncomeSource) SourceTaxes {
	switch s {
	case SourceIV:
		return ts.IV
	case SourceMB:
		return ts.MB
	case SourceMBDividends:
		return ts.MBDividends
	default:
		return ts.Employment
	}
}

// Sources returns the per-source results in display order
func (ts *TaxSummary) Sources() []SourceTaxes {
	return []SourceTaxes{ts.Employment, ts.IV, ts.MB, ts.MBDividends}
}

// Allocation is a split of extra monthly income across IV, MB and dividends
type Allocation struct {
	IVMonthly          decimal.Decimal `json:"ivMonthly"`
	MBMonthly          decimal.Decimal `json:"mbMonthly"`
	MBDividendsMonthly decimal.Decimal `json:"mbDividendsMonthly"`
	AnnualTax          decimal.Decimal `json:"annualTax"`
}

// Total is the monthly income the allocation distributes
func (a Allocation) Total() decimal.Decimal {
	return a.IVMonthly.Add(a.MBMonthly).Add(a.MBDividendsMonthly)
}

// AllocationOf reads the current split out of an income record
func AllocationOf(i Income) Allocation {
	return Allocation{
		IVMonthly:          i.IVMonthly,
		MBMonthly:          i.MBMonthly,
		MBDividendsMonthly: i.MBDividendsMonthly,
	}
}
