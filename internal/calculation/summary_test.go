package calculation

import (
	"testing"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func income2026() domain.Income {
	in := domain.DefaultIncome()
	in.PensionAccumulation = false
	return in
}

func TestCalculateAllTaxes_EmptyIncomePaysMinimumPSD(t *testing.T) {
	s, err := CalculateAllTaxes(income2026())
	require.NoError(t, err)

	assertDecimal(t, d("965.7528"), s.PSDRemainder)
	assertDecimal(t, d("965.7528"), s.MinimumAnnualPSD)
	assertDecimal(t, d("965.7528"), s.Totals.PSD.Amount)
	assertDecimal(t, d("965.7528"), s.Totals.Total.Amount)
	assertDecimal(t, d("-965.7528"), s.Totals.SalaryAfterTaxes)
	assert.True(t, s.Totals.Total.Percentage.IsZero())
}

func TestCalculateAllTaxes_EmploymentOnly(t *testing.T) {
	in := income2026()
	in.Monthly = d("2000")

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)

	assert.True(t, s.PSDRemainder.IsZero())
	assertDecimal(t, d("8683.272"), s.Totals.Total.Amount)
	assertDecimal(t, d("15316.728"), s.Totals.SalaryAfterTaxes)
	assertDecimal(t, domain.Percent(d("8683.272"), d("24000")), s.Totals.Total.Percentage)
	assertDecimal(t, domain.Percent(d("4003.272"), d("24000")), s.Totals.GPM.Percentage)

	for _, src := range []domain.SourceTaxes{s.IV, s.MB, s.MBDividends} {
		assert.True(t, src.Totals.Total.Amount.IsZero(), "%s", src.Source)
	}
	assert.Equal(t, s.Employment.Totals, s.Source(domain.SourceEmployment).Totals)
}

func TestCalculateAllTaxes_IVOnlyUsesCreditAndPSDFloor(t *testing.T) {
	in := income2026()
	in.IVMonthly = d("1000")

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)

	assertDecimal(t, d("420"), s.IV.Totals.GPM.Amount)
	assertDecimal(t, d("5"), s.IV.Results[0].Taxes.GPM.Percentage)
	assertDecimal(t, d("946.512"), s.IV.Totals.VSD.Amount)
	assertDecimal(t, d("527.688"), s.IV.Totals.PSD.Amount)
	assertDecimal(t, d("438.0648"), s.PSDRemainder)
	assertDecimal(t, d("965.7528"), s.Totals.PSD.Amount)
	assertDecimal(t, d("2332.2648"), s.Totals.Total.Amount)
}

func TestCalculateAllTaxes_IVAboveCreditLimitUsesLadder(t *testing.T) {
	in := income2026()
	in.IVMonthly = d("6000") // 50400 taxable per year

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)
	assertDecimal(t, d("840"), s.IV.Results[0].Taxes.GPM.Amount)
	assertDecimal(t, d("20"), s.IV.Results[0].Taxes.GPM.Percentage)
}

func TestCalculateAllTaxes_MBStacksBelowEmployment(t *testing.T) {
	in := income2026()
	in.Monthly = d("2000")
	in.MBMonthly = d("9000")

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)

	// 108000 of MB income puts the whole salary in the 25% bracket
	assertDecimal(t, d("25"), s.Employment.Results[0].Taxes.GPM.Percentage)
	assert.True(t, s.MBIncomeOverLimit)
	assert.True(t, s.MB.Totals.VSD.Amount.IsZero())
	assert.True(t, s.MB.Totals.PSD.Amount.IsZero())
}

func TestCalculateAllTaxes_IVSodraStacksBelowEmployment(t *testing.T) {
	in := income2026()
	in.Monthly = d("10000")
	in.IVMonthly = d("15000") // 113400 Sodra base per year

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)

	alone := CalculateSourceTaxes(employmentOpts(t, domain.Year2026, "10000", false))
	assert.True(t, s.Employment.Totals.VSD.Amount.LessThan(alone.Totals.VSD.Amount))
	assertDecimal(t, alone.Totals.PSD.Amount, s.Employment.Totals.PSD.Amount)
}

func TestCalculateAllTaxes_Dividends(t *testing.T) {
	in := income2026()
	in.MBDividendsMonthly = d("1000")

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)

	assertDecimal(t, d("0.07"), s.MBProfitTaxRate)
	assertDecimal(t, d("209.5"), s.MBDividends.Results[0].Taxes.GPM.Amount)
	assertDecimal(t, d("2514"), s.MBDividends.Totals.Total.Amount)
	assert.True(t, s.MBDividends.Totals.PSD.Amount.IsZero())
	assertDecimal(t, d("3479.7528"), s.Totals.Total.Amount)
}

func TestCalculateAllTaxes_UnsupportedYear(t *testing.T) {
	in := income2026()
	in.Year = domain.Year(1999)
	_, err := CalculateAllTaxes(in)
	assert.Error(t, err)
}

func TestCalculateAllTaxes_TotalsAddUp(t *testing.T) {
	in := domain.DefaultIncome()
	in.Monthly = d("3200")
	in.IVMonthly = d("1500")
	in.MBMonthly = d("700")
	in.MBDividendsMonthly = d("400")

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)

	gross := decimal.Zero
	tax := decimal.Zero
	for _, src := range s.Sources() {
		gross = gross.Add(src.Totals.SalaryBeforeTaxes)
		tax = tax.Add(src.Totals.Total.Amount)
	}
	assertDecimal(t, gross, s.Totals.SalaryBeforeTaxes)
	assertDecimal(t, tax.Add(s.PSDRemainder), s.Totals.Total.Amount)
	assertDecimal(t, gross, s.Totals.SalaryAfterTaxes.Add(s.Totals.Total.Amount))
	assertDecimal(t, d("69600"), gross)
}

func TestTotalAnnualTax(t *testing.T) {
	in := income2026()
	in.Monthly = d("2000")
	total, err := TotalAnnualTax(in)
	require.NoError(t, err)
	assertDecimal(t, d("8683.272"), total)
}

func TestTotalAnnualTax_MatchesSummary(t *testing.T) {
	tests := []struct {
		name   string
		income domain.Income
	}{
		{"empty", income2026()},
		{"employment with pension", domain.Income{Year: domain.Year2026, Monthly: d("3100"), PensionAccumulation: true}},
		{"all sources 2025", domain.Income{
			Year: domain.Year2025, Monthly: d("2500"), IVMonthly: d("1234.56"),
			MBMonthly: d("777.77"), MBDividendsMonthly: d("999.99"), MBUseReducedProfitTaxRate: true,
		}},
		{"iv above credit limit", domain.Income{Year: domain.Year2026, IVMonthly: d("6000")}},
		{"crosses 36 VDU", domain.Income{Year: domain.Year2026, Monthly: d("9000"), MBMonthly: d("3000")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := CalculateAllTaxes(tt.income)
			require.NoError(t, err)
			total, err := TotalAnnualTax(tt.income)
			require.NoError(t, err)
			assert.True(t, s.Totals.Total.Amount.Equal(total), "summary %s, objective %s", s.Totals.Total.Amount, total)
		})
	}
}

func TestTotalAnnualTax_KeepsFixedScale(t *testing.T) {
	in := domain.Income{
		Year: domain.Year2026, Monthly: d("2345.67"), IVMonthly: d("1111.11"),
		MBMonthly: d("2222.22"), MBDividendsMonthly: d("3333.33"), PensionAccumulation: true,
	}
	total, err := TotalAnnualTax(in)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total.Exponent(), int32(-moneyScale), "total %s", total)

	s, err := CalculateAllTaxes(in)
	require.NoError(t, err)
	for _, src := range s.Sources() {
		for _, m := range src.Results {
			assert.GreaterOrEqual(t, m.Taxes.Total.Amount.Exponent(), int32(-moneyScale), "%s month %d", src.Source, m.Month)
		}
	}
}

func BenchmarkTotalAnnualTax(b *testing.B) {
	in := domain.Income{
		Year: domain.Year2026, Monthly: d("2000"), IVMonthly: d("1500"),
		MBMonthly: d("1500"), MBDividendsMonthly: d("1000"), MBUseReducedProfitTaxRate: true,
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := TotalAnnualTax(in); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkCalculateAllTaxes(b *testing.B) {
	in := domain.Income{Year: domain.Year2026, Monthly: d("2000"), IVMonthly: d("1500")}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CalculateAllTaxes(in); err != nil {
			b.Fatal(err)
		}
	}
}
