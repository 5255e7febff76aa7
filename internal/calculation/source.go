package calculation

import (
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthsPerYear is the number of withholding periods simulated per source
const MonthsPerYear = 12

// SourceTaxOptions configures one run of CalculateSourceTaxes
type SourceTaxOptions struct {
	Source        domain.IncomeSource
	MonthlySalary decimal.Decimal
	TaxRates      domain.TaxRates
	WithSodra     bool

	// Annual taxable income of other sources stacked below this one on
	// the GPM and Sodra ladders
	AdditionalForGPM   decimal.Decimal
	AdditionalForSodra decimal.Decimal

	// GPMOverride replaces the bracket GPM of every month when set
	GPMOverride *domain.Tax

	PensionAccumulation bool
}

// CalculateSourceTaxes simulates twelve equal months of one income source.
// Bracket lookups use running annual totals so a boundary crossed mid-year
// is taxed from the month it is crossed, as monthly withholding does.
func CalculateSourceTaxes(opts SourceTaxOptions) domain.SourceTaxes {
	return sourceTaxes(opts, true)
}

// monthlyBases are the per-month amounts of a source; every month is equal
type monthlyBases struct {
	npd          decimal.Decimal
	taxable      decimal.Decimal
	sodraTaxable decimal.Decimal
	pension      decimal.Decimal
}

func basesOf(opts SourceTaxOptions) monthlyBases {
	rates := opts.TaxRates
	salary := opts.MonthlySalary
	b := monthlyBases{npd: roundMoney(rates.NPD.Amount(salary))}
	b.taxable = decimal.Max(decimal.Zero, roundMoney(salary.Mul(rates.GPMBase)).Sub(b.npd))
	b.sodraTaxable = roundMoney(salary.Mul(rates.SodraBase))
	if opts.WithSodra && opts.PensionAccumulation {
		b.pension = roundMoney(b.sodraTaxable.Mul(PensionAccumulationRate))
	}
	return b
}

func sourceName(opts SourceTaxOptions) domain.IncomeSource {
	if opts.Source == "" {
		return opts.TaxRates.Category
	}
	return opts.Source
}

// sourceTaxes runs the simulation. Without detail only the annual amounts
// are filled: no monthly results and no percentages.
func sourceTaxes(opts SourceTaxOptions, detailed bool) domain.SourceTaxes {
	if !detailed {
		return sourceAmounts(opts)
	}

	rates := opts.TaxRates
	salary := opts.MonthlySalary
	b := basesOf(opts)

	results := make([]domain.MonthlyIncomeCalculation, 0, MonthsPerYear)
	totals := domain.ZeroTotals()

	totalAnnual := decimal.Zero
	totalTaxable := decimal.Zero
	totalSodraTaxable := decimal.Zero

	for month := 1; month <= MonthsPerYear; month++ {
		totalAnnual = totalAnnual.Add(salary)
		totalTaxable = totalTaxable.Add(b.taxable)
		totalSodraTaxable = totalSodraTaxable.Add(b.sodraTaxable)
		totalForSodra := totalSodraTaxable.Add(opts.AdditionalForSodra)

		var gpm domain.Tax
		if opts.GPMOverride != nil {
			gpm = *opts.GPMOverride
		} else {
			gpm = CalculateProgressiveTax(totalTaxable.Add(opts.AdditionalForGPM), b.taxable, rates.GPM)
		}

		vsd, psd := domain.ZeroTax(), domain.ZeroTax()
		if opts.WithSodra {
			vsd = CalculateProgressiveTax(totalForSodra, b.sodraTaxable, rates.VSD)
			if opts.PensionAccumulation {
				vsd.Amount = vsd.Amount.Add(b.pension)
				if b.sodraTaxable.IsPositive() {
					vsd.Percentage = domain.Percent(vsd.Amount, b.sodraTaxable)
				}
			}
			psd = CalculateProgressiveTax(totalForSodra, b.sodraTaxable, rates.PSD)
		}

		monthlyTax := gpm.Amount.Add(vsd.Amount).Add(psd.Amount)
		afterTax := salary.Sub(monthlyTax)

		totals.GPM.Amount = totals.GPM.Amount.Add(gpm.Amount)
		totals.VSD.Amount = totals.VSD.Amount.Add(vsd.Amount)
		totals.PSD.Amount = totals.PSD.Amount.Add(psd.Amount)
		totals.Total.Amount = totals.Total.Amount.Add(monthlyTax)
		totals.SalaryAfterTaxes = totals.SalaryAfterTaxes.Add(afterTax)

		results = append(results, domain.MonthlyIncomeCalculation{
			Month:                  month,
			TotalAnnualBeforeTaxes: totalAnnual,
			TotalMonthlyAfterTaxes: afterTax,
			NPD:                    b.npd,
			Taxes: domain.MonthlyTaxes{
				GPM:   gpm,
				VSD:   vsd,
				PSD:   psd,
				Total: domain.NewTax(monthlyTax, salary),
			},
		})
	}

	totals.SalaryBeforeTaxes = totalAnnual
	totals.Total.Percentage = domain.Percent(totals.Total.Amount, totalAnnual)
	totals.GPM.Percentage = domain.Percent(totals.GPM.Amount, totalTaxable)
	totals.VSD.Percentage = domain.Percent(totals.VSD.Amount, totalSodraTaxable)
	totals.PSD.Percentage = domain.Percent(totals.PSD.Amount, totalSodraTaxable)

	return domain.SourceTaxes{Source: sourceName(opts), Results: results, Totals: totals}
}

// sourceAmounts sums the same twelve months as sourceTaxes, amounts only
func sourceAmounts(opts SourceTaxOptions) domain.SourceTaxes {
	totals := domain.ZeroTotals()
	salary := opts.MonthlySalary
	if salary.IsZero() {
		return domain.SourceTaxes{Source: sourceName(opts), Totals: totals}
	}

	rates := opts.TaxRates
	b := basesOf(opts)
	gpmLadder := newLadderRun(rates.GPM, b.taxable)
	vsdLadder := newLadderRun(rates.VSD, b.sodraTaxable)
	psdLadder := newLadderRun(rates.PSD, b.sodraTaxable)

	totalTaxable := opts.AdditionalForGPM
	totalForSodra := opts.AdditionalForSodra
	for month := 1; month <= MonthsPerYear; month++ {
		totalTaxable = totalTaxable.Add(b.taxable)
		totalForSodra = totalForSodra.Add(b.sodraTaxable)

		if opts.GPMOverride != nil {
			totals.GPM.Amount = totals.GPM.Amount.Add(opts.GPMOverride.Amount)
		} else {
			totals.GPM.Amount = totals.GPM.Amount.Add(gpmLadder.tax(totalTaxable))
		}
		if opts.WithSodra {
			totals.VSD.Amount = totals.VSD.Amount.Add(vsdLadder.tax(totalForSodra)).Add(b.pension)
			totals.PSD.Amount = totals.PSD.Amount.Add(psdLadder.tax(totalForSodra))
		}
	}

	totals.SalaryBeforeTaxes = salary.Mul(decimal.NewFromInt(MonthsPerYear))
	totals.Total.Amount = totals.GPM.Amount.Add(totals.VSD.Amount).Add(totals.PSD.Amount)
	totals.SalaryAfterTaxes = totals.SalaryBeforeTaxes.Sub(totals.Total.Amount)
	return domain.SourceTaxes{Source: sourceName(opts), Totals: totals}
}

// ladderRun taxes equal periods on one ladder. The tax of a period that
// lies entirely inside a bracket is the same every time, so it is kept.
type ladderRun struct {
	brackets domain.TaxBrackets
	period   decimal.Decimal
	full     []decimal.Decimal
	known    []bool
}

func newLadderRun(brackets domain.TaxBrackets, period decimal.Decimal) *ladderRun {
	sorted := brackets.Sorted()
	return &ladderRun{
		brackets: sorted,
		period:   period,
		full:     make([]decimal.Decimal, len(sorted)),
		known:    make([]bool, len(sorted)),
	}
}

// tax matches progressiveTax(totalAnnual, period, brackets)
func (l *ladderRun) tax(totalAnnual decimal.Decimal) decimal.Decimal {
	if len(l.brackets) == 0 || l.period.IsZero() {
		return decimal.Zero
	}
	idx := bracketIndex(l.brackets, totalAnnual)
	if !totalAnnual.Sub(l.period).GreaterThanOrEqual(l.brackets[idx].Threshold) && lowerBracket(l.brackets, idx) >= 0 {
		amount, _, _ := progressiveTax(totalAnnual, l.period, l.brackets)
		return amount
	}
	if !l.known[idx] {
		l.full[idx] = roundMoney(l.period.Mul(l.brackets[idx].Rate))
		l.known[idx] = true
	}
	return l.full[idx]
}

// AnnualGPMBase is the yearly GPM taxable income of a monthly amount under rates
func AnnualGPMBase(monthly decimal.Decimal, rates domain.TaxRates) decimal.Decimal {
	npd := roundMoney(rates.NPD.Amount(monthly))
	return decimal.Max(decimal.Zero, roundMoney(monthly.Mul(rates.GPMBase)).Sub(npd)).Mul(decimal.NewFromInt(MonthsPerYear))
}

// AnnualSodraBase is the yearly VSD/PSD base of a monthly amount under rates
func AnnualSodraBase(monthly decimal.Decimal, rates domain.TaxRates) decimal.Decimal {
	return roundMoney(monthly.Mul(rates.SodraBase)).Mul(decimal.NewFromInt(MonthsPerYear))
}
