package transform

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

func testIncome() domain.Income {
	return domain.Income{
		Year:                      domain.Year2026,
		Monthly:                   decimal.NewFromInt(2000),
		IVMonthly:                 decimal.NewFromInt(1000),
		MBMonthly:                 decimal.NewFromInt(500),
		MBDividendsMonthly:        decimal.NewFromInt(1500),
		PensionAccumulation:       true,
		MBUseReducedProfitTaxRate: true,
	}
}

func TestMoveExtra(t *testing.T) {
	base := testIncome()
	tests := []struct {
		target                domain.IncomeSource
		wantIV, wantMB, wantD int64
	}{
		{domain.SourceIV, 3000, 0, 0},
		{domain.SourceMB, 0, 3000, 0},
		{domain.SourceMBDividends, 0, 0, 3000},
	}
	for _, tt := range tests {
		t.Run(string(tt.target), func(t *testing.T) {
			got, err := ApplyTransforms(base, []IncomeTransform{&MoveExtra{Target: tt.target}})
			require.NoError(t, err)
			assert.True(t, got.IVMonthly.Equal(decimal.NewFromInt(tt.wantIV)))
			assert.True(t, got.MBMonthly.Equal(decimal.NewFromInt(tt.wantMB)))
			assert.True(t, got.MBDividendsMonthly.Equal(decimal.NewFromInt(tt.wantD)))
			assert.True(t, got.Monthly.Equal(base.Monthly))
			assert.True(t, got.ExtraMonthly().Equal(base.ExtraMonthly()))
		})
	}
	// base is untouched
	assert.True(t, base.Equal(testIncome()))
}

func TestMoveExtra_MBCappedAtLimit(t *testing.T) {
	base := testIncome().WithAllocation(decimal.NewFromInt(20000), decimal.Zero, decimal.Zero)
	got, err := (&MoveExtra{Target: domain.SourceMB}).Apply(base)
	require.NoError(t, err)
	assert.True(t, got.MBMonthly.LessThan(decimal.NewFromInt(20000)))
	assert.True(t, got.MBMonthly.Add(got.MBDividendsMonthly).Equal(decimal.NewFromInt(20000)))
}

func TestMoveExtra_RejectsEmployment(t *testing.T) {
	_, err := ApplyTransforms(testIncome(), []IncomeTransform{&MoveExtra{Target: domain.SourceEmployment}})
	require.Error(t, err)
	var te *TransformError
	assert.ErrorAs(t, err, &te)
}

func TestApplyTransforms_Sequence(t *testing.T) {
	got, err := ApplyTransforms(testIncome(), []IncomeTransform{
		&SetYear{Year: domain.Year2025},
		&SetAmount{Source: domain.SourceEmployment, Monthly: decimal.NewFromInt(3000)},
		&SetOption{Option: OptionPension, Enabled: false},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Year2025, got.Year)
	assert.True(t, got.Monthly.Equal(decimal.NewFromInt(3000)))
	assert.False(t, got.PensionAccumulation)
}

func TestApplyTransforms_Errors(t *testing.T) {
	base := testIncome()
	_, err := ApplyTransforms(base, []IncomeTransform{nil})
	assert.Error(t, err)

	got, err := ApplyTransforms(base, []IncomeTransform{
		&SetAmount{Source: domain.SourceIV, Monthly: decimal.NewFromInt(1)},
		&SetYear{Year: domain.Year(2019)},
	})
	assert.Error(t, err)
	assert.True(t, got.Equal(base), "a failed sequence returns the base")

	got, err = ApplyTransforms(base, nil)
	require.NoError(t, err)
	assert.True(t, got.Equal(base))
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	r := NewTransformRegistry()
	assert.Equal(t, []string{"move_extra", "set_income", "set_option", "set_year"}, r.List())

	tests := []struct {
		spec    string
		name    string
		wantErr bool
	}{
		{"move_extra:to=iv", "move_extra", false},
		{"move_extra:to=mbDividends", "move_extra", false},
		{"move_extra:to=employment", "", true},
		{"move_extra:", "", true},
		{"set_year:year=2025", "set_year", false},
		{"set_year:year=abc", "", true},
		{"set_income:source=iv,amount=1500.50", "set_income", false},
		{"set_income:source=iv,amount=-1", "", true},
		{"set_income:source=rent,amount=1", "", true},
		{"set_option:option=pension,enabled=false", "set_option", false},
		{"set_option:option=pension", "set_option", false},
		{"set_option:option=vacation", "", true},
		{"set_option:option=pension,enabled=maybe", "", true},
		{"unknown:x=1", "", true},
		{"move_extra", "", true},
		{"move_extra:to", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			tr, err := r.ParseTransformSpec(tt.spec)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.name, tr.Name())
			assert.NotEmpty(t, tr.Description())
		})
	}
}

func TestTemplates(t *testing.T) {
	reg := CreateBuiltInTemplates()
	for _, name := range DefaultTemplates {
		_, ok := reg.Get(name)
		assert.True(t, ok, name)
	}
	assert.Contains(t, reg.List(), "year_2025")

	tpl, ok := reg.Get("ALL_IV")
	require.True(t, ok)
	got, err := ApplyTemplate(testIncome(), tpl)
	require.NoError(t, err)
	assert.True(t, got.IVMonthly.Equal(decimal.NewFromInt(3000)))

	help := GetTemplateHelp(reg)
	assert.Contains(t, help, "all_dividends")
	assert.Contains(t, help, "set_income")
	assert.Equal(t, "No templates registered", GetTemplateHelp(NewTemplateRegistry()))
}

func TestParseTemplateList(t *testing.T) {
	assert.Nil(t, ParseTemplateList(""))
	assert.Equal(t, []string{"all_iv", "year_2025"}, ParseTemplateList(" all_iv, ,year_2025 "))
}
