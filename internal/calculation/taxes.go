package calculation

import (
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places intermediate amounts keep.
// Rates are multiplied in every month, so unrounded amounts would grow a
// digit per multiplication.
const moneyScale = 6

func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(moneyScale)
}

// CalculateProgressiveTax returns the tax on periodAmount, where
// totalAnnual is the cumulative annual taxable amount including this period.
//
// The bracket is the one with the greatest threshold not above totalAnnual
// (the lowest bracket when none qualify). A period that started below that
// threshold is split: the part above it pays the bracket's rate, the rest
// pays the next lower bracket's rate. Only one boundary is split per period.
func CalculateProgressiveTax(totalAnnual, periodAmount decimal.Decimal, brackets domain.TaxBrackets) domain.Tax {
	amount, rate, split := progressiveTax(totalAnnual, periodAmount, brackets)
	if split {
		return domain.NewTax(amount, periodAmount)
	}
	return domain.Tax{Amount: amount, Percentage: rate.Mul(decimal.NewFromInt(100))}
}

// progressiveTax is CalculateProgressiveTax without the percentage. rate is
// the bracket rate when the period is not split.
func progressiveTax(totalAnnual, periodAmount decimal.Decimal, brackets domain.TaxBrackets) (amount, rate decimal.Decimal, split bool) {
	if len(brackets) == 0 || periodAmount.IsZero() {
		return decimal.Zero, decimal.Zero, false
	}
	sorted := brackets.Sorted()
	idx := bracketIndex(sorted, totalAnnual)
	b := sorted[idx]
	prev := lowerBracket(sorted, idx)

	fullyInBracket := totalAnnual.Sub(periodAmount).GreaterThanOrEqual(b.Threshold)
	if fullyInBracket || prev < 0 {
		return roundMoney(periodAmount.Mul(b.Rate)), b.Rate, false
	}

	inBracket := totalAnnual.Sub(b.Threshold)
	inPrevious := periodAmount.Sub(inBracket)
	return roundMoney(inBracket.Mul(b.Rate).Add(inPrevious.Mul(sorted[prev].Rate))), decimal.Zero, true
}

// bracketIndex is the bracket with the greatest threshold not above
// totalAnnual, or the lowest one. sorted must be ascending.
func bracketIndex(sorted domain.TaxBrackets, totalAnnual decimal.Decimal) int {
	for i := len(sorted) - 1; i >= 0; i-- {
		if totalAnnual.GreaterThanOrEqual(sorted[i].Threshold) {
			return i
		}
	}
	return 0
}

// lowerBracket is the bracket below idx, skipping duplicated thresholds,
// or -1 when there is none
func lowerBracket(sorted domain.TaxBrackets, idx int) int {
	prev := idx - 1
	for prev >= 0 && sorted[prev].Threshold.Equal(sorted[idx].Threshold) {
		prev--
	}
	return prev
}
