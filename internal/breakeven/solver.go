package breakeven

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/transform"
)

// upperLimit bounds the search for a gross that reaches the target
var upperLimit = decimal.NewFromInt(10_000_000)

// Solver finds the gross income that produces a target net income
type Solver struct {
	CalcEngine *calculation.Engine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.Engine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.Engine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// point is one evaluation of the profile at a given gross
type point struct {
	gross   decimal.Decimal
	income  domain.Income
	summary *domain.TaxSummary
	net     decimal.Decimal
}

// Solve binary searches the smallest monthly gross of req.Source, to the
// cent, whose net income meets the target. The other sources stay as they
// are in the base income.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}

	baseSummary, err := s.CalcEngine.Calculate(req.Base)
	if err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "failed to calculate base income", Cause: err}
	}

	low, err := s.evaluate(req, decimal.Zero)
	if err != nil {
		return nil, err
	}
	if low.net.GreaterThanOrEqual(req.TargetNetMonthly) {
		result := s.newResult(req, low, baseSummary, 0)
		result.Success = true
		result.ConvergenceInfo = "Target already met by the other sources"
		return result, nil
	}

	iterations := 0
	lo := decimal.Zero

	// Grow the upper bound until it reaches the target
	hi := decimal.Max(req.TargetNetMonthly, decimal.NewFromInt(1000))
	for {
		iterations++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		high, err := s.evaluate(req, hi)
		if err != nil {
			return nil, err
		}
		if high.net.GreaterThanOrEqual(req.TargetNetMonthly) {
			break
		}
		if hi.GreaterThanOrEqual(upperLimit) || iterations >= req.MaxIterations {
			return nil, &BreakEvenError{
				Operation: "solve",
				Message:   fmt.Sprintf("target net income %s is out of reach", req.TargetNetMonthly.StringFixed(2)),
			}
		}
		lo = hi
		hi = decimal.Min(hi.Mul(decimal.NewFromInt(2)), upperLimit)
	}

	two := decimal.NewFromInt(2)
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		p, err := s.evaluate(req, mid)
		if err != nil {
			return nil, err
		}
		if p.net.LessThan(req.TargetNetMonthly) {
			lo = mid
		} else {
			hi = mid
		}
	}

	best, err := s.evaluate(req, hi.RoundCeil(2))
	if err != nil {
		return nil, err
	}
	result := s.newResult(req, best, baseSummary, iterations)
	if hi.Sub(lo).GreaterThan(req.Tolerance) {
		result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
		return result, nil
	}
	result.Success = true
	result.ConvergenceInfo = fmt.Sprintf("Converged within %s EUR", req.Tolerance.String())
	return result, nil
}

func (s *Solver) evaluate(req Request, gross decimal.Decimal) (point, error) {
	income, err := transform.ApplyTransforms(req.Base, []transform.IncomeTransform{
		&transform.SetAmount{Source: req.Source, Monthly: gross},
	})
	if err != nil {
		return point{}, &BreakEvenError{Operation: "solve", Message: "failed to apply amount", Cause: err}
	}
	summary, err := s.CalcEngine.Calculate(income)
	if err != nil {
		return point{}, &BreakEvenError{Operation: "solve", Message: "failed to calculate income", Cause: err}
	}
	return point{
		gross:   gross,
		income:  income,
		summary: summary,
		net:     summary.Totals.MonthlyAverageAfter(),
	}, nil
}

func (s *Solver) newResult(req Request, p point, base *domain.TaxSummary, iterations int) *Result {
	return &Result{
		Request:        req,
		Iterations:     iterations,
		GrossMonthly:   p.gross,
		NetMonthly:     p.net,
		AnnualTax:      p.summary.Totals.Total.Amount,
		Income:         p.income,
		Summary:        p.summary,
		BaseNetMonthly: base.Totals.MonthlyAverageAfter(),
	}
}
