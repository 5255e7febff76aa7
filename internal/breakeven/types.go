package breakeven

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// Request asks for the monthly gross of one source that brings the net
// income of the whole profile to TargetNetMonthly
type Request struct {
	Base             domain.Income       `json:"base"`
	Source           domain.IncomeSource `json:"source"`
	TargetNetMonthly decimal.Decimal     `json:"targetNetMonthly"`
	MaxIterations    int                 `json:"maxIterations"` // zero means the solver default
	Tolerance        decimal.Decimal     `json:"tolerance"`     // zero means the solver default
}

// Result is the gross found by the solver and the taxes at that gross
type Result struct {
	Request         Request `json:"request"`
	Success         bool    `json:"success"`
	Iterations      int     `json:"iterations"`
	ConvergenceInfo string  `json:"convergenceInfo"`

	GrossMonthly decimal.Decimal    `json:"grossMonthly"`
	NetMonthly   decimal.Decimal    `json:"netMonthly"`
	AnnualTax    decimal.Decimal    `json:"annualTax"`
	Income       domain.Income      `json:"income"`
	Summary      *domain.TaxSummary `json:"-"`

	// Net of the base income, before the source was changed
	BaseNetMonthly decimal.Decimal `json:"baseNetMonthly"`
}

// SolverOptions configures the binary search
type SolverOptions struct {
	Tolerance     decimal.Decimal // width of the final gross interval in EUR
	MaxIterations int
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.01),
		MaxIterations: 100,
	}
}

// Validate checks the request before any calculation runs
func (r *Request) Validate() error {
	if _, err := domain.ParseIncomeSource(string(r.Source)); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "unknown income source", Cause: err}
	}
	if r.TargetNetMonthly.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "target net income cannot be negative"}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "tolerance cannot be negative"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error { return e.Cause }
