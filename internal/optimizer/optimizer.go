package optimizer

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// Optimize splits extraMonthly across IV, MB and dividends to minimize the
// total annual tax of income, keeping MB within the annual MB limit.
//
// The search is a grid over (MB, IV) with dividends taking the rest,
// followed by the three corner allocations. The tax functions are not
// convex (credit phase-outs, bracket steps, the PSD floor), so no smarter
// search is attempted. The first allocation seen with the lowest tax wins.
func Optimize(ctx context.Context, extraMonthly decimal.Decimal, income domain.Income, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	previous, err := calculation.TotalAnnualTax(income)
	if err != nil {
		return nil, &OptimizerError{Operation: "optimize", Message: "failed to calculate current tax", Cause: err}
	}

	if !extraMonthly.IsPositive() {
		alloc := domain.AllocationOf(income)
		alloc.AnnualTax = previous
		return &Result{Allocation: alloc, Income: income, Previous: previous, Savings: decimal.Zero}, nil
	}

	maxMB := decimal.Min(extraMonthly, calculation.MBIncomeLimitPerYear.Div(decimal.NewFromInt(12)))
	steps := decimal.NewFromInt(int64(opts.StepsPerAxis))
	mbStep := decimal.Max(opts.MinStep, maxMB.Div(steps).Ceil())
	ivStep := decimal.Max(opts.MinStep, extraMonthly.Div(steps).Ceil())

	s := &search{income: income}

	rows := int(maxMB.Div(mbStep).IntPart()) + 1
	row := 0
	for mb := decimal.Zero; mb.LessThanOrEqual(maxMB); mb = mb.Add(mbStep) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		remaining := extraMonthly.Sub(mb)
		for iv := decimal.Zero; iv.LessThanOrEqual(remaining); iv = iv.Add(ivStep) {
			if err := s.try(iv, mb, remaining.Sub(iv)); err != nil {
				return nil, err
			}
		}

		row++
		if opts.Progress != nil {
			opts.Progress(row, rows)
		}
	}

	corners := [][3]decimal.Decimal{
		{extraMonthly, decimal.Zero, decimal.Zero},
		{decimal.Zero, maxMB, extraMonthly.Sub(maxMB)},
		{decimal.Zero, decimal.Zero, extraMonthly},
	}
	for _, c := range corners {
		if err := s.try(c[0], c[1], c[2]); err != nil {
			return nil, err
		}
	}

	best := collapseMB(s.best)
	if !best.MBMonthly.Equal(s.best.MBMonthly) {
		if best.AnnualTax, err = s.evaluate(best); err != nil {
			return nil, err
		}
	}

	revised := income.WithAllocation(best.IVMonthly, best.MBMonthly, best.MBDividendsMonthly)
	return &Result{
		Allocation:  best,
		Income:      revised,
		Evaluations: s.evaluations,
		Previous:    previous,
		Savings:     previous.Sub(best.AnnualTax),
		Applied:     true,
	}, nil
}

type search struct {
	income      domain.Income
	best        domain.Allocation
	found       bool
	evaluations int
}

func (s *search) evaluate(a domain.Allocation) (decimal.Decimal, error) {
	s.evaluations++
	tax, err := calculation.TotalAnnualTax(s.income.WithAllocation(a.IVMonthly, a.MBMonthly, a.MBDividendsMonthly))
	if err != nil {
		return decimal.Zero, &OptimizerError{
			Operation: "optimize",
			Message:   fmt.Sprintf("failed to evaluate iv=%s mb=%s dividends=%s", a.IVMonthly, a.MBMonthly, a.MBDividendsMonthly),
			Cause:     err,
		}
	}
	return tax, nil
}

func (s *search) try(iv, mb, dividends decimal.Decimal) error {
	a := domain.Allocation{IVMonthly: iv, MBMonthly: mb, MBDividendsMonthly: dividends}
	tax, err := s.evaluate(a)
	if err != nil {
		return err
	}
	if !s.found || tax.LessThan(s.best.AnnualTax) {
		a.AnnualTax = tax
		s.best = a
		s.found = true
	}
	return nil
}

// collapseMB folds an MB payment smaller than 1% of the dividends into the
// dividends, leaving a single MB payout to report
func collapseMB(a domain.Allocation) domain.Allocation {
	if a.MBMonthly.IsPositive() && a.MBMonthly.Mul(decimal.NewFromInt(100)).LessThan(a.MBDividendsMonthly) {
		a.MBDividendsMonthly = a.MBDividendsMonthly.Add(a.MBMonthly)
		a.MBMonthly = decimal.Zero
	}
	return a
}
