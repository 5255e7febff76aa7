package calculation

import (
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateAllTaxes computes every income source and the combined totals.
//
// Sources share the progressive ladders in a fixed order, MB then IV then
// employment: each source's brackets start above the annual taxable
// income of the sources below it. GPM stacks MB, IV and employment; VSD
// and PSD stack IV and employment (MB pays neither). Dividends are taxed
// by a closed formula outside both ladders.
func CalculateAllTaxes(income domain.Income) (*domain.TaxSummary, error) {
	return calculateAll(income, true)
}

func calculateAll(income domain.Income, detailed bool) (*domain.TaxSummary, error) {
	empRates, err := EmploymentRates(income.Year)
	if err != nil {
		return nil, err
	}
	ivRates, err := IVRates(income.Year)
	if err != nil {
		return nil, err
	}
	mbRates, err := MBRates(income.Year)
	if err != nil {
		return nil, err
	}
	profitTaxRate, err := CalculateMBProfitTaxRate(income)
	if err != nil {
		return nil, err
	}
	minimumPSD, err := MinimumAnnualPSD(income.Year)
	if err != nil {
		return nil, err
	}

	mbGPM := AnnualGPMBase(income.MBMonthly, mbRates)
	ivGPM := AnnualGPMBase(income.IVMonthly, ivRates)
	ivSodra := AnnualSodraBase(income.IVMonthly, ivRates)

	ivOverride, err := ivGPMOverride(income.IVMonthly, ivRates)
	if err != nil {
		return nil, fmt.Errorf("iv gpm: %w", err)
	}

	mb := sourceTaxes(SourceTaxOptions{
		Source:        domain.SourceMB,
		MonthlySalary: income.MBMonthly,
		TaxRates:      mbRates,
	}, detailed)
	iv := sourceTaxes(SourceTaxOptions{
		Source:           domain.SourceIV,
		MonthlySalary:    income.IVMonthly,
		TaxRates:         ivRates,
		WithSodra:        true,
		AdditionalForGPM: mbGPM,
		GPMOverride:      ivOverride,
	}, detailed)
	employment := sourceTaxes(SourceTaxOptions{
		Source:              domain.SourceEmployment,
		MonthlySalary:       income.Monthly,
		TaxRates:            empRates,
		WithSodra:           true,
		AdditionalForGPM:    mbGPM.Add(ivGPM),
		AdditionalForSodra:  ivSodra,
		PensionAccumulation: income.PensionAccumulation,
	}, detailed)

	dividendTax := CalculateDividendTax(income.MBDividendsMonthly, profitTaxRate)
	var dividendOverride *domain.Tax
	if income.MBDividendsMonthly.IsPositive() {
		dividendOverride = &dividendTax
	}
	dividends := sourceTaxes(SourceTaxOptions{
		Source:        domain.SourceMBDividends,
		MonthlySalary: income.MBDividendsMonthly,
		TaxRates:      mbRates,
		GPMOverride:   dividendOverride,
	}, detailed)

	summary := &domain.TaxSummary{
		Income:            income,
		Employment:        employment,
		IV:                iv,
		MB:                mb,
		MBDividends:       dividends,
		MinimumAnnualPSD:  minimumPSD,
		MBProfitTaxRate:   profitTaxRate,
		MBIncomeOverLimit: income.MBMonthly.Mul(decimal.NewFromInt(MonthsPerYear)).GreaterThan(MBIncomeLimitPerYear),
	}
	summary.Totals, summary.PSDRemainder = combineTotals(summary.Sources(), minimumPSD, detailed)
	return summary, nil
}

// combineTotals sums per-source totals and tops PSD up to the annual minimum.
// Combined percentages are relative to combined gross income.
func combineTotals(sources []domain.SourceTaxes, minimumPSD decimal.Decimal, detailed bool) (domain.IncomeTotalTaxes, decimal.Decimal) {
	t := domain.ZeroTotals()
	for _, s := range sources {
		t.GPM.Amount = t.GPM.Amount.Add(s.Totals.GPM.Amount)
		t.VSD.Amount = t.VSD.Amount.Add(s.Totals.VSD.Amount)
		t.PSD.Amount = t.PSD.Amount.Add(s.Totals.PSD.Amount)
		t.Total.Amount = t.Total.Amount.Add(s.Totals.Total.Amount)
		t.SalaryBeforeTaxes = t.SalaryBeforeTaxes.Add(s.Totals.SalaryBeforeTaxes)
		t.SalaryAfterTaxes = t.SalaryAfterTaxes.Add(s.Totals.SalaryAfterTaxes)
	}

	remainder := decimal.Zero
	if t.PSD.Amount.LessThan(minimumPSD) {
		remainder = minimumPSD.Sub(t.PSD.Amount)
		t.PSD.Amount = minimumPSD
		t.Total.Amount = t.Total.Amount.Add(remainder)
		t.SalaryAfterTaxes = t.SalaryAfterTaxes.Sub(remainder)
	}

	if !detailed {
		return t, remainder
	}
	gross := t.SalaryBeforeTaxes
	t.GPM.Percentage = domain.Percent(t.GPM.Amount, gross)
	t.VSD.Percentage = domain.Percent(t.VSD.Amount, gross)
	t.PSD.Percentage = domain.Percent(t.PSD.Amount, gross)
	t.Total.Percentage = domain.Percent(t.Total.Amount, gross)
	return t, remainder
}

// TotalAnnualTax is the combined annual tax of an income, PSD top-up
// included. It skips the monthly detail, so it is the optimizer objective.
func TotalAnnualTax(income domain.Income) (decimal.Decimal, error) {
	s, err := calculateAll(income, false)
	if err != nil {
		return decimal.Zero, err
	}
	return s.Totals.Total.Amount, nil
}
