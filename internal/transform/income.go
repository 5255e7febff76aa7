package transform

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// MoveExtra puts all extra income (IV + MB + dividends) into one source.
// MB income is capped at the monthly share of the MB income limit; the
// rest goes to dividends.
type MoveExtra struct {
	Target domain.IncomeSource
}

func (t *MoveExtra) Name() string { return "move_extra" }

func (t *MoveExtra) Description() string {
	return fmt.Sprintf("All extra income as %s", t.Target.Label())
}

func (t *MoveExtra) Validate(base domain.Income) error {
	switch t.Target {
	case domain.SourceIV, domain.SourceMB, domain.SourceMBDividends:
		return nil
	}
	return &TransformError{
		TransformName: t.Name(),
		Operation:     "validate",
		Reason:        fmt.Sprintf("extra income cannot be moved to %q", t.Target),
	}
}

func (t *MoveExtra) Apply(base domain.Income) (domain.Income, error) {
	extra := base.ExtraMonthly()
	switch t.Target {
	case domain.SourceIV:
		return base.WithAllocation(extra, decimal.Zero, decimal.Zero), nil
	case domain.SourceMB:
		mb := decimal.Min(extra, calculation.MBIncomeLimitPerYear.Div(decimal.NewFromInt(12)))
		return base.WithAllocation(decimal.Zero, mb, extra.Sub(mb)), nil
	case domain.SourceMBDividends:
		return base.WithAllocation(decimal.Zero, decimal.Zero, extra), nil
	}
	return base, t.Validate(base)
}

// SetYear recalculates the same income under another year's rates
type SetYear struct {
	Year domain.Year
}

func (t *SetYear) Name() string { return "set_year" }

func (t *SetYear) Description() string {
	return fmt.Sprintf("Same income in %s", t.Year)
}

func (t *SetYear) Validate(base domain.Income) error {
	if !t.Year.Valid() {
		return &TransformError{
			TransformName: t.Name(),
			Operation:     "validate",
			Reason:        "unsupported year",
			Err:           &calculation.UnsupportedYearError{Year: t.Year},
		}
	}
	return nil
}

func (t *SetYear) Apply(base domain.Income) (domain.Income, error) {
	base.Year = t.Year
	return base, nil
}

// SetAmount replaces the monthly amount of one source
type SetAmount struct {
	Source  domain.IncomeSource
	Monthly decimal.Decimal
}

func (t *SetAmount) Name() string { return "set_income" }

func (t *SetAmount) Description() string {
	return fmt.Sprintf("%s at %s/month", t.Source.Label(), t.Monthly.StringFixed(2))
}

func (t *SetAmount) Validate(base domain.Income) error {
	if t.Monthly.IsNegative() {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "amount cannot be negative"}
	}
	if _, err := domain.ParseIncomeSource(string(t.Source)); err != nil {
		return &TransformError{TransformName: t.Name(), Operation: "validate", Reason: "unknown source", Err: err}
	}
	return nil
}

func (t *SetAmount) Apply(base domain.Income) (domain.Income, error) {
	switch t.Source {
	case domain.SourceEmployment:
		base.Monthly = t.Monthly
	case domain.SourceIV:
		base.IVMonthly = t.Monthly
	case domain.SourceMB:
		base.MBMonthly = t.Monthly
	case domain.SourceMBDividends:
		base.MBDividendsMonthly = t.Monthly
	}
	return base, nil
}

// Option names accepted by SetOption
const (
	OptionPension     = "pension"
	OptionNoProfitTax = "no_profit_tax"
	OptionReducedRate = "reduced_rate"
)

// SetOption switches one of the boolean income options
type SetOption struct {
	Option  string
	Enabled bool
}

func (t *SetOption) Name() string { return "set_option" }

func (t *SetOption) Description() string {
	state := "off"
	if t.Enabled {
		state = "on"
	}
	return fmt.Sprintf("%s %s", t.Option, state)
}

func (t *SetOption) Validate(base domain.Income) error {
	switch t.Option {
	case OptionPension, OptionNoProfitTax, OptionReducedRate:
		return nil
	}
	return &TransformError{
		TransformName: t.Name(),
		Operation:     "validate",
		Reason:        fmt.Sprintf("unknown option %q", t.Option),
	}
}

func (t *SetOption) Apply(base domain.Income) (domain.Income, error) {
	switch t.Option {
	case OptionPension:
		base.PensionAccumulation = t.Enabled
	case OptionNoProfitTax:
		base.MBNoProfitTax = t.Enabled
	case OptionReducedRate:
		base.MBUseReducedProfitTaxRate = t.Enabled
	}
	return base, nil
}
