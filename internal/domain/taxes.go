package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Tax is an amount together with its rate against some base, in percent
type Tax struct {
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ZeroTax returns a tax of nothing at 0%
func ZeroTax() Tax {
	return Tax{Amount: decimal.Zero, Percentage: decimal.Zero}
}

// NewTax builds a Tax whose percentage is amount/base*100, or 0 for a zero base
func NewTax(amount, base decimal.Decimal) Tax {
	return Tax{Amount: amount, Percentage: Percent(amount, base)}
}

// Percent returns part/base*100 and 0 when base is zero
func Percent(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(base)
}

// Equal compares amount and percentage by value
func (t Tax) Equal(o Tax) bool {
	return t.Amount.Equal(o.Amount) && t.Percentage.Equal(o.Percentage)
}

// TaxBracket starts at Threshold (annual EUR) and applies Rate (a fraction)
type TaxBracket struct {
	Threshold decimal.Decimal `json:"threshold" yaml:"threshold"`
	Rate      decimal.Decimal `json:"rate" yaml:"rate"`
}

// TaxBrackets is a progressive ladder ordered by ascending threshold
type TaxBrackets []TaxBracket

// Ascending reports whether thresholds never decrease
func (b TaxBrackets) Ascending() bool {
	return sort.SliceIsSorted(b, func(i, j int) bool {
		return b[i].Threshold.LessThan(b[j].Threshold)
	})
}

// Sorted returns the ladder in ascending order, copying only when needed
func (b TaxBrackets) Sorted() TaxBrackets {
	if b.Ascending() {
		return b
	}
	out := append(TaxBrackets(nil), b...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold.LessThan(out[j].Threshold)
	})
	return out
}

// NPDPhase reduces the allowance linearly for monthly income below UpTo:
// max(0, Start - Rate*(income - Offset))
type NPDPhase struct {
	UpTo   decimal.Decimal
	Start  decimal.Decimal
	Rate   decimal.Decimal
	Offset decimal.Decimal
}

// NPDSchedule is the monthly non-taxable amount and its phase-out
type NPDSchedule struct {
	Base   decimal.Decimal
	FullTo decimal.Decimal // full Base up to and including this monthly income
	Phases []NPDPhase
}

// Amount returns the NPD for a monthly income. A schedule with a zero
// base grants nothing at any income.
func (s NPDSchedule) Amount(monthlyIncome decimal.Decimal) decimal.Decimal {
	if s.Base.IsZero() {
		return decimal.Zero
	}
	if monthlyIncome.LessThanOrEqual(s.FullTo) {
		return s.Base
	}
	for _, p := range s.Phases {
		if monthlyIncome.LessThan(p.UpTo) {
			return decimal.Max(decimal.Zero, p.Start.Sub(p.Rate.Mul(monthlyIncome.Sub(p.Offset))))
		}
	}
	return decimal.Zero
}

// TaxRates is the immutable rate table of one income category in one year
type TaxRates struct {
	Year     Year
	Category IncomeSource

	GPM TaxBrackets
	VSD TaxBrackets
	PSD TaxBrackets

	// Taxable fraction of gross income for GPM and for Sodra (VSD/PSD)
	GPMBase   decimal.Decimal
	SodraBase decimal.Decimal

	NPD NPDSchedule
}

// MonthlyTaxes are the taxes withheld in one period
type MonthlyTaxes struct {
	GPM   Tax `json:"gpm"`
	VSD   Tax `json:"vsd"`
	PSD   Tax `json:"psd"`
	Total Tax `json:"total"`
}

// MonthlyIncomeCalculation is one simulated month of one income source
type MonthlyIncomeCalculation struct {
	Month                  int             `json:"month"`
	TotalAnnualBeforeTaxes decimal.Decimal `json:"totalAnnualBeforeTaxes"`
	TotalMonthlyAfterTaxes decimal.Decimal `json:"totalMonthlyAfterTaxes"`
	NPD                    decimal.Decimal `json:"npd"`
	Taxes                  MonthlyTaxes    `json:"taxes"`
}

// IncomeTotalTaxes are annual totals of one source, or of all sources
type IncomeTotalTaxes struct {
	GPM               Tax             `json:"gpm"`
	VSD               Tax             `json:"vsd"`
	PSD               Tax             `json:"psd"`
	Total             Tax             `json:"total"`
	SalaryBeforeTaxes decimal.Decimal `json:"salaryBeforeTaxes"`
	SalaryAfterTaxes  decimal.Decimal `json:"salaryAfterTaxes"`
}

// ZeroTotals returns totals with every amount at zero
func ZeroTotals() IncomeTotalTaxes {
	return IncomeTotalTaxes{
		GPM:               ZeroTax(),
		VSD:               ZeroTax(),
		PSD:               ZeroTax(),
		Total:             ZeroTax(),
		SalaryBeforeTaxes: decimal.Zero,
		SalaryAfterTaxes:  decimal.Zero,
	}
}

// MonthlyAverageBefore is the gross income per month
func (t IncomeTotalTaxes) MonthlyAverageBefore() decimal.Decimal {
	return t.SalaryBeforeTaxes.Div(decimal.NewFromInt(12))
}

// MonthlyAverageAfter is the net income per month
func (t IncomeTotalTaxes) MonthlyAverageAfter() decimal.Decimal {
	return t.SalaryAfterTaxes.Div(decimal.NewFromInt(12))
}

// SourceTaxes is the 12-month simulation of one income source
type SourceTaxes struct {
	Source  IncomeSource               `json:"source"`
	Results []MonthlyIncomeCalculation `json:"results"`
	Totals  IncomeTotalTaxes           `json:"totals"`
}
