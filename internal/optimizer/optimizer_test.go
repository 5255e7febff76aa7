package optimizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, expected.Sub(actual).Abs().LessThan(d("0.0001")), "expected %s, got %s", expected, actual)
}

// coarse grid so tests stay fast
func testOptions() Options {
	return Options{StepsPerAxis: 40, MinStep: d("50")}
}

func baseIncome() domain.Income {
	in := domain.DefaultIncome()
	in.PensionAccumulation = false
	return in
}

func TestOptimize_NoExtraIncomeIsNoOp(t *testing.T) {
	in := baseIncome()
	in.IVMonthly = d("300")

	for _, extra := range []string{"0", "-50"} {
		res, err := Optimize(context.Background(), d(extra), in, testOptions())
		require.NoError(t, err)
		assert.False(t, res.Applied)
		assert.Zero(t, res.Evaluations)
		assert.True(t, res.Income.Equal(in))
		assert.True(t, res.Savings.IsZero())
		assertDecimal(t, d("300"), res.Allocation.IVMonthly)
	}
}

func TestOptimize_IVWinsWithoutOtherIncome(t *testing.T) {
	// IV costs about 11.4% while its PSD is still under the annual minimum,
	// MB 15%, dividends 20.95%
	in := baseIncome()
	in.MBDividendsMonthly = d("1000")

	res, err := Optimize(context.Background(), d("1000"), in, testOptions())
	require.NoError(t, err)
	require.True(t, res.Applied)

	assertDecimal(t, d("1000"), res.Allocation.IVMonthly)
	assert.True(t, res.Allocation.MBMonthly.IsZero())
	assert.True(t, res.Allocation.MBDividendsMonthly.IsZero())
	assertDecimal(t, d("2332.2648"), res.Allocation.AnnualTax)
	assertDecimal(t, d("3479.7528"), res.Previous)
	assertDecimal(t, d("1147.488"), res.Savings)

	assertDecimal(t, d("1000"), res.Income.IVMonthly)
	assert.True(t, in.IVMonthly.IsZero(), "input income must not change")
	assert.Greater(t, res.Evaluations, 3)
}

func TestOptimize_MBWinsNextToEmployment(t *testing.T) {
	// with employment covering the PSD minimum IV costs about 15.8%
	in := baseIncome()
	in.Monthly = d("2000")

	res, err := Optimize(context.Background(), d("1000"), in, testOptions())
	require.NoError(t, err)

	assertDecimal(t, d("1000"), res.Allocation.MBMonthly)
	assert.True(t, res.Allocation.IVMonthly.IsZero())
	assert.True(t, res.Allocation.MBDividendsMonthly.IsZero())

	tax, err := calculation.TotalAnnualTax(res.Income)
	require.NoError(t, err)
	assertDecimal(t, tax, res.Allocation.AnnualTax)
}

func TestOptimize_RespectsMBLimit(t *testing.T) {
	in := baseIncome()
	in.Monthly = d("2000")

	res, err := Optimize(context.Background(), d("20000"), in, testOptions())
	require.NoError(t, err)

	limit := calculation.MBIncomeLimitPerYear.Div(decimal.NewFromInt(12))
	assert.True(t, res.Allocation.MBMonthly.LessThanOrEqual(limit))
	assertDecimal(t, d("20000"), res.Allocation.Total())
	assert.False(t, res.Allocation.IVMonthly.IsNegative())
	assert.False(t, res.Allocation.MBDividendsMonthly.IsNegative())
}

func TestOptimize_NeverWorseThanCorners(t *testing.T) {
	in := baseIncome()
	in.Monthly = d("4000")
	extra := d("3500")

	res, err := Optimize(context.Background(), extra, in, testOptions())
	require.NoError(t, err)

	maxMB := decimal.Min(extra, calculation.MBIncomeLimitPerYear.Div(decimal.NewFromInt(12)))
	corners := []domain.Income{
		in.WithAllocation(extra, decimal.Zero, decimal.Zero),
		in.WithAllocation(decimal.Zero, maxMB, extra.Sub(maxMB)),
		in.WithAllocation(decimal.Zero, decimal.Zero, extra),
	}
	for _, c := range corners {
		tax, err := calculation.TotalAnnualTax(c)
		require.NoError(t, err)
		assert.True(t, res.Allocation.AnnualTax.LessThanOrEqual(tax))
	}
}

func TestOptimize_ReportsProgress(t *testing.T) {
	var calls, lastDone, lastTotal int
	opts := testOptions()
	opts.Progress = func(done, total int) {
		calls++
		lastDone, lastTotal = done, total
	}

	_, err := Optimize(context.Background(), d("1000"), baseIncome(), opts)
	require.NoError(t, err)

	// mbStep = max(50, ceil(1000/40)) = 50 -> 21 rows
	assert.Equal(t, 21, calls)
	assert.Equal(t, 21, lastDone)
	assert.Equal(t, 21, lastTotal)
}

func TestOptimize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Optimize(ctx, d("1000"), baseIncome(), testOptions())
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestOptimize_UnsupportedYear(t *testing.T) {
	in := baseIncome()
	in.Year = 2020

	_, err := Optimize(context.Background(), d("1000"), in, testOptions())
	var optErr *OptimizerError
	require.True(t, errors.As(err, &optErr))
	var yearErr *calculation.UnsupportedYearError
	assert.True(t, errors.As(err, &yearErr))
}

func TestCollapseMB(t *testing.T) {
	tests := []struct {
		name          string
		mb, dividends string
		wantMB        string
		wantDividends string
	}{
		{"tiny MB folds into dividends", "10", "5000", "0", "5010"},
		{"exactly one percent stays", "50", "5000", "50", "5000"},
		{"large MB stays", "2000", "1000", "2000", "1000"},
		{"no MB", "0", "1000", "0", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := collapseMB(domain.Allocation{IVMonthly: d("100"), MBMonthly: d(tt.mb), MBDividendsMonthly: d(tt.dividends)})
			assertDecimal(t, d(tt.wantMB), a.MBMonthly)
			assertDecimal(t, d(tt.wantDividends), a.MBDividendsMonthly)
			assertDecimal(t, d("100"), a.IVMonthly)
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, 400, o.StepsPerAxis)
	assertDecimal(t, d("10"), o.MinStep)
}

func TestOptimize_FullSizeRunIsInteractive(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping full-size optimization in short mode")
	}
	in := baseIncome()
	in.Monthly = d("2000")

	start := time.Now()
	res, err := Optimize(context.Background(), d("4000"), in, DefaultOptions())
	elapsed := time.Since(start)
	require.NoError(t, err)
	assert.Greater(t, res.Evaluations, 50000)
	assert.Less(t, elapsed, 10*time.Second, "%d evaluations took %s", res.Evaluations, elapsed)
}

func BenchmarkOptimize(b *testing.B) {
	in := baseIncome()
	in.Monthly = d("2000")
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Optimize(context.Background(), d("4000"), in, DefaultOptions()); err != nil {
			b.Fatal(err)
		}
	}
}
