package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Year is a supported fiscal year
type Year int

const (
	Year2025 Year = 2025
	Year2026 Year = 2026

	// DefaultYear is used when a stored or supplied income has no year
	DefaultYear = Year2026
)

// SupportedYears returns every fiscal year with rate tables, ascending
func SupportedYears() []Year {
	return []Year{Year2025, Year2026}
}

// Valid reports whether rate tables exist for the year
func (y Year) Valid() bool {
	for _, s := range SupportedYears() {
		if s == y {
			return true
		}
	}
	return false
}

func (y Year) String() string {
	return fmt.Sprintf("%d", int(y))
}

// Income is the user-owned record every calculation is derived from.
// It is replaced wholesale on change, never mutated by calculations.
type Income struct {
	Year Year `json:"year" yaml:"year"`

	// Gross monthly employment income (darbo santykiai)
	Monthly decimal.Decimal `json:"monthly" yaml:"monthly"`
	// Gross monthly IV income before the 30% expense deduction
	IVMonthly decimal.Decimal `json:"ivMonthly" yaml:"ivMonthly"`
	// Gross monthly MB civil-contract income
	MBMonthly decimal.Decimal `json:"mbMonthly" yaml:"mbMonthly"`
	// Monthly MB profit distributed as dividends, before profit tax
	MBDividendsMonthly decimal.Decimal `json:"mbDividendsMonthly" yaml:"mbDividendsMonthly"`

	PensionAccumulation       bool `json:"pensionAccumulation" yaml:"pensionAccumulation"`
	MBNoProfitTax             bool `json:"mbNoProfitTax" yaml:"mbNoProfitTax"`
	MBUseReducedProfitTaxRate bool `json:"mbUseReducedProfitTaxRate" yaml:"mbUseReducedProfitTaxRate"`
}

// DefaultIncome returns the record used when nothing is stored
func DefaultIncome() Income {
	return Income{
		Year:                      DefaultYear,
		Monthly:                   decimal.Zero,
		IVMonthly:                 decimal.Zero,
		MBMonthly:                 decimal.Zero,
		MBDividendsMonthly:        decimal.Zero,
		PensionAccumulation:       true,
		MBNoProfitTax:             false,
		MBUseReducedProfitTaxRate: true,
	}
}

// ExtraMonthly is the income the optimizer is allowed to redistribute
func (i Income) ExtraMonthly() decimal.Decimal {
	return i.IVMonthly.Add(i.MBMonthly).Add(i.MBDividendsMonthly)
}

// WithAllocation returns a copy with the optimizer-owned fields replaced
func (i Income) WithAllocation(ivMonthly, mbMonthly, mbDividendsMonthly decimal.Decimal) Income {
	i.IVMonthly = ivMonthly
	i.MBMonthly = mbMonthly
	i.MBDividendsMonthly = mbDividendsMonthly
	return i
}

// Equal compares two records field by field (decimal values by value)
func (i Income) Equal(o Income) bool {
	return i.Year == o.Year &&
		i.Monthly.Equal(o.Monthly) &&
		i.IVMonthly.Equal(o.IVMonthly) &&
		i.MBMonthly.Equal(o.MBMonthly) &&
		i.MBDividendsMonthly.Equal(o.MBDividendsMonthly) &&
		i.PensionAccumulation == o.PensionAccumulation &&
		i.MBNoProfitTax == o.MBNoProfitTax &&
		i.MBUseReducedProfitTaxRate == o.MBUseReducedProfitTaxRate
}

// IncomeInput is the wire shape of Income. Pointer fields tell an absent
// field apart from an explicit zero so defaults can be filled.
type IncomeInput struct {
	Year                      *int             `json:"year,omitempty" yaml:"year,omitempty"`
	Monthly                   *decimal.Decimal `json:"monthly,omitempty" yaml:"monthly,omitempty"`
	IVMonthly                 *decimal.Decimal `json:"ivMonthly,omitempty" yaml:"ivMonthly,omitempty"`
	MBMonthly                 *decimal.Decimal `json:"mbMonthly,omitempty" yaml:"mbMonthly,omitempty"`
	MBDividendsMonthly        *decimal.Decimal `json:"mbDividendsMonthly,omitempty" yaml:"mbDividendsMonthly,omitempty"`
	PensionAccumulation       *bool            `json:"pensionAccumulation,omitempty" yaml:"pensionAccumulation,omitempty"`
	MBNoProfitTax             *bool            `json:"mbNoProfitTax,omitempty" yaml:"mbNoProfitTax,omitempty"`
	MBUseReducedProfitTaxRate *bool            `json:"mbUseReducedProfitTaxRate,omitempty" yaml:"mbUseReducedProfitTaxRate,omitempty"`

	// Older records stored the profit tax toggles under these names
	MBLessThan12Months    *bool `json:"mbLessThan12Months,omitempty" yaml:"mbLessThan12Months,omitempty"`
	MBLessThan300kPerYear *bool `json:"mbLessThan300kPerYear,omitempty" yaml:"mbLessThan300kPerYear,omitempty"`
}

// Resolve fills absent fields from DefaultIncome. Current key names win
// over the legacy aliases when both are present.
func (in IncomeInput) Resolve() Income {
	out := DefaultIncome()
	if in.Year != nil {
		out.Year = Year(*in.Year)
	}
	if in.Monthly != nil {
		out.Monthly = *in.Monthly
	}
	if in.IVMonthly != nil {
		out.IVMonthly = *in.IVMonthly
	}
	if in.MBMonthly != nil {
		out.MBMonthly = *in.MBMonthly
	}
	if in.MBDividendsMonthly != nil {
		out.MBDividendsMonthly = *in.MBDividendsMonthly
	}
	if in.PensionAccumulation != nil {
		out.PensionAccumulation = *in.PensionAccumulation
	}

	switch {
	case in.MBNoProfitTax != nil:
		out.MBNoProfitTax = *in.MBNoProfitTax
	case in.MBLessThan12Months != nil:
		out.MBNoProfitTax = *in.MBLessThan12Months
	}
	switch {
	case in.MBUseReducedProfitTaxRate != nil:
		out.MBUseReducedProfitTaxRate = *in.MBUseReducedProfitTaxRate
	case in.MBLessThan300kPerYear != nil:
		out.MBUseReducedProfitTaxRate = *in.MBLessThan300kPerYear
	}
	return out
}

// UnmarshalJSON decodes through IncomeInput so missing fields get defaults
func (i *Income) UnmarshalJSON(data []byte) error {
	var in IncomeInput
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*i = in.Resolve()
	return nil
}
