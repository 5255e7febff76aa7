package calculation

import (
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// IVCreditIncomeLimit is the annual taxable IV income above which no credit applies
	IVCreditIncomeLimit = decimal.NewFromInt(42500)
	// IVCreditFullRateLimit is the income up to which the full 15% credit applies
	IVCreditFullRateLimit = decimal.NewFromInt(20000)
	// DividendGPMRate is the income tax on dividends paid out of after-tax profit
	DividendGPMRate = decimal.RequireFromString("0.15")

	ivBaseRate       = decimal.RequireFromString("0.2")
	ivFullCreditRate = decimal.RequireFromString("0.15")
)

// DomainRangeError is returned when a closed-form formula gets a value
// outside the range it is defined for
type DomainRangeError struct {
	Operation string
	Value     decimal.Decimal
	Limit     decimal.Decimal
}

func (e *DomainRangeError) Error() string {
	return fmt.Sprintf("%s: %s exceeds limit %s", e.Operation, e.Value.StringFixed(2), e.Limit.StringFixed(2))
}

// CalculateIVGpm returns the annual GPM on IV income after the IV credit.
// Up to 20 000 EUR the effective rate is 5%; the credit then phases out
// linearly and is gone at 42 500 EUR. Callers must fall back to the bracket
// ladder above IVCreditIncomeLimit.
func CalculateIVGpm(annualTaxableIncome decimal.Decimal) (domain.Tax, error) {
	if annualTaxableIncome.GreaterThan(IVCreditIncomeLimit) {
		return domain.Tax{}, &DomainRangeError{
			Operation: "iv credit",
			Value:     annualTaxableIncome,
			Limit:     IVCreditIncomeLimit,
		}
	}
	if !annualTaxableIncome.IsPositive() {
		return domain.ZeroTax(), nil
	}

	baseTax := annualTaxableIncome.Mul(ivBaseRate)
	if annualTaxableIncome.LessThanOrEqual(IVCreditFullRateLimit) {
		credit := annualTaxableIncome.Mul(ivFullCreditRate)
		return domain.Tax{Amount: baseTax.Sub(credit), Percentage: decimal.NewFromInt(5)}, nil
	}

	// the credit rate falls by 2/300000 per euro above the full-rate limit;
	// dividing last keeps round incomes exact
	phaseOut := annualTaxableIncome.Mul(annualTaxableIncome.Sub(IVCreditFullRateLimit)).
		Mul(decimal.NewFromInt(2)).
		Div(decimal.NewFromInt(300000))
	credit := annualTaxableIncome.Mul(ivFullCreditRate).Sub(phaseOut)
	tax := baseTax.Sub(credit)
	return domain.NewTax(tax, annualTaxableIncome), nil
}

// ivGPMOverride returns the monthly IV GPM with the credit applied, or nil
// when the bracket ladder applies
func ivGPMOverride(ivMonthly decimal.Decimal, rates domain.TaxRates) (*domain.Tax, error) {
	if !ivMonthly.IsPositive() {
		return nil, nil
	}
	annual := ivMonthly.Mul(decimal.NewFromInt(MonthsPerYear)).Mul(rates.GPMBase)
	if annual.GreaterThan(IVCreditIncomeLimit) {
		return nil, nil
	}
	annualTax, err := CalculateIVGpm(annual)
	if err != nil {
		return nil, err
	}
	return &domain.Tax{
		Amount:     roundMoney(annualTax.Amount.Div(decimal.NewFromInt(MonthsPerYear))),
		Percentage: annualTax.Percentage,
	}, nil
}

// CalculateMBProfitTaxRate picks the profit tax rate from the MB toggles:
// none during the grace period, the reduced rate under the revenue limit,
// the main rate otherwise.
func CalculateMBProfitTaxRate(income domain.Income) (decimal.Decimal, error) {
	if income.MBNoProfitTax {
		return decimal.Zero, nil
	}
	r, err := ProfitTaxRatesFor(income.Year)
	if err != nil {
		return decimal.Zero, err
	}
	if income.MBUseReducedProfitTaxRate {
		return r.ReducedRate, nil
	}
	return r.MainRate, nil
}

// CalculateDividendTax returns profit tax plus dividend GPM on a monthly
// distribution. The percentage is relative to the amount before profit tax.
func CalculateDividendTax(monthlyBeforeTax, profitTaxRate decimal.Decimal) domain.Tax {
	if !monthlyBeforeTax.IsPositive() {
		return domain.ZeroTax()
	}
	profitTax := roundMoney(monthlyBeforeTax.Mul(profitTaxRate))
	gpm := roundMoney(monthlyBeforeTax.Sub(profitTax).Mul(DividendGPMRate))
	return domain.NewTax(profitTax.Add(gpm), monthlyBeforeTax)
}

// DividendEffectiveRate is the combined rate on profit paid out as dividends
func DividendEffectiveRate(profitTaxRate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Sub(profitTaxRate).Mul(DividendGPMRate).Add(profitTaxRate)
}
