package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYear(t *testing.T) {
	assert.True(t, Year2025.Valid())
	assert.True(t, Year2026.Valid())
	assert.False(t, Year(2024).Valid())
	assert.Equal(t, "2026", DefaultYear.String())
	assert.Equal(t, []Year{Year2025, Year2026}, SupportedYears())
}

func TestDefaultIncome(t *testing.T) {
	in := DefaultIncome()
	assert.Equal(t, Year2026, in.Year)
	assert.True(t, in.PensionAccumulation)
	assert.False(t, in.MBNoProfitTax)
	assert.True(t, in.MBUseReducedProfitTaxRate)
	assert.True(t, in.ExtraMonthly().IsZero())
	assert.True(t, in.Monthly.IsZero())
}

func TestIncome_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, in Income)
	}{
		{
			name:  "empty object gets defaults",
			input: `{}`,
			check: func(t *testing.T, in Income) {
				assert.True(t, in.Equal(DefaultIncome()))
			},
		},
		{
			name:  "explicit false is kept",
			input: `{"pensionAccumulation": false, "mbUseReducedProfitTaxRate": false}`,
			check: func(t *testing.T, in Income) {
				assert.False(t, in.PensionAccumulation)
				assert.False(t, in.MBUseReducedProfitTaxRate)
			},
		},
		{
			name:  "numbers and strings both decode",
			input: `{"year": 2025, "monthly": 2500.5, "ivMonthly": "1000", "mbDividendsMonthly": 300}`,
			check: func(t *testing.T, in Income) {
				assert.Equal(t, Year2025, in.Year)
				assert.True(t, in.Monthly.Equal(decimal.RequireFromString("2500.5")))
				assert.True(t, in.IVMonthly.Equal(decimal.NewFromInt(1000)))
				assert.True(t, in.MBMonthly.IsZero())
				assert.True(t, in.MBDividendsMonthly.Equal(decimal.NewFromInt(300)))
			},
		},
		{
			name:  "legacy profit tax keys",
			input: `{"mbLessThan12Months": true, "mbLessThan300kPerYear": false}`,
			check: func(t *testing.T, in Income) {
				assert.True(t, in.MBNoProfitTax)
				assert.False(t, in.MBUseReducedProfitTaxRate)
			},
		},
		{
			name:  "current keys win over legacy keys",
			input: `{"mbNoProfitTax": false, "mbLessThan12Months": true}`,
			check: func(t *testing.T, in Income) {
				assert.False(t, in.MBNoProfitTax)
			},
		},
		{
			name:  "unknown fields are ignored",
			input: `{"theme": "dark", "monthly": 100}`,
			check: func(t *testing.T, in Income) {
				assert.True(t, in.Monthly.Equal(decimal.NewFromInt(100)))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in Income
			require.NoError(t, json.Unmarshal([]byte(tt.input), &in))
			tt.check(t, in)
		})
	}
}

func TestIncome_UnmarshalJSONMalformed(t *testing.T) {
	var in Income
	assert.Error(t, json.Unmarshal([]byte(`{"monthly": [1,2]}`), &in))
	assert.Error(t, json.Unmarshal([]byte(`not json`), &in))
}

func TestIncome_JSONRoundTrip(t *testing.T) {
	in := Income{
		Year:                      Year2025,
		Monthly:                   decimal.RequireFromString("2150.75"),
		IVMonthly:                 decimal.NewFromInt(800),
		MBMonthly:                 decimal.NewFromInt(1200),
		MBDividendsMonthly:        decimal.NewFromInt(450),
		PensionAccumulation:       false,
		MBNoProfitTax:             true,
		MBUseReducedProfitTaxRate: false,
	}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ivMonthly":"800"`)

	var out Income
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.Equal(out))
}

func TestIncome_WithAllocation(t *testing.T) {
	in := DefaultIncome()
	in.Monthly = decimal.NewFromInt(2000)

	out := in.WithAllocation(decimal.NewFromInt(100), decimal.NewFromInt(200), decimal.NewFromInt(300))
	assert.True(t, in.IVMonthly.IsZero(), "original must not change")
	assert.True(t, out.Monthly.Equal(in.Monthly))
	assert.True(t, out.ExtraMonthly().Equal(decimal.NewFromInt(600)))
	assert.True(t, AllocationOf(out).Total().Equal(decimal.NewFromInt(600)))
}

func TestPercentGuardsZeroBase(t *testing.T) {
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.Zero).IsZero())
	assert.True(t, Percent(decimal.NewFromInt(5), decimal.NewFromInt(20)).Equal(decimal.NewFromInt(25)))

	tax := NewTax(decimal.NewFromInt(10), decimal.Zero)
	assert.True(t, tax.Percentage.IsZero())
	assert.True(t, tax.Equal(Tax{Amount: decimal.NewFromInt(10), Percentage: decimal.Zero}))
}

func TestTaxBrackets_Sorted(t *testing.T) {
	b := TaxBrackets{
		{Threshold: decimal.NewFromInt(100), Rate: decimal.RequireFromString("0.3")},
		{Threshold: decimal.Zero, Rate: decimal.RequireFromString("0.1")},
	}
	assert.False(t, b.Ascending())

	sorted := b.Sorted()
	assert.True(t, sorted.Ascending())
	assert.True(t, b[0].Threshold.Equal(decimal.NewFromInt(100)), "input must not be reordered")

	// equal thresholds count as ascending
	dup := TaxBrackets{{Threshold: decimal.Zero}, {Threshold: decimal.NewFromInt(5)}, {Threshold: decimal.NewFromInt(5)}}
	assert.True(t, dup.Ascending())
}

func TestNPDSchedule(t *testing.T) {
	s := NPDSchedule{
		Base:   decimal.NewFromInt(700),
		FullTo: decimal.NewFromInt(1000),
		Phases: []NPDPhase{{
			UpTo:   decimal.NewFromInt(2000),
			Start:  decimal.NewFromInt(700),
			Rate:   decimal.NewFromInt(1),
			Offset: decimal.NewFromInt(1000),
		}},
	}
	assert.True(t, s.Amount(decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(700)))
	assert.True(t, s.Amount(decimal.NewFromInt(1200)).Equal(decimal.NewFromInt(500)))
	assert.True(t, s.Amount(decimal.NewFromInt(1900)).IsZero(), "never negative")
	assert.True(t, s.Amount(decimal.NewFromInt(2500)).IsZero())
	assert.True(t, NPDSchedule{}.Amount(decimal.NewFromInt(10)).IsZero())
}

func TestIncomeSource(t *testing.T) {
	for _, s := range AllSources() {
		parsed, err := ParseIncomeSource(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
		assert.NotEmpty(t, s.Label())
	}
	parsed, err := ParseIncomeSource(" MBDIVIDENDS ")
	require.NoError(t, err)
	assert.Equal(t, SourceMBDividends, parsed)

	_, err = ParseIncomeSource("salary")
	assert.Error(t, err)
}

func TestTaxSummary_Source(t *testing.T) {
	ts := &TaxSummary{
		Employment:  SourceTaxes{Source: SourceEmployment},
		IV:          SourceTaxes{Source: SourceIV},
		MB:          SourceTaxes{Source: SourceMB},
		MBDividends: SourceTaxes{Source: SourceMBDividends},
	}
	for _, s := range AllSources() {
		assert.Equal(t, s, ts.Source(s).Source)
	}
	assert.Len(t, ts.Sources(), 4)
}
