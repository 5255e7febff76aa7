package optimizer

import (
	"errors"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrOptimizationInProgress is returned by Runner.Start while a run is active
var ErrOptimizationInProgress = errors.New("optimization already in progress")

// ProgressFunc is called after every grid row with rows done and total rows
type ProgressFunc func(done, total int)

// Options configures the grid search
type Options struct {
	// StepsPerAxis bounds the number of grid points per axis
	StepsPerAxis int
	// MinStep is the smallest step in EUR
	MinStep decimal.Decimal
	// Progress is optional
	Progress ProgressFunc
}

// DefaultOptions returns a 400x400 grid with steps of at least 10 EUR
func DefaultOptions() Options {
	return Options{
		StepsPerAxis: 400,
		MinStep:      decimal.NewFromInt(10),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.StepsPerAxis <= 0 {
		o.StepsPerAxis = def.StepsPerAxis
	}
	if !o.MinStep.IsPositive() {
		o.MinStep = def.MinStep
	}
	return o
}

// Result is the outcome of one optimization run
type Result struct {
	Allocation domain.Allocation `json:"allocation"`
	// Income is a copy of the input with the allocation applied
	Income domain.Income `json:"income"`

	Evaluations int             `json:"evaluations"`
	Previous    decimal.Decimal `json:"previousAnnualTax"`
	Savings     decimal.Decimal `json:"savings"`
	// Applied is false when there was nothing to distribute
	Applied bool `json:"applied"`
}

// OptimizerError wraps failures of the tax calculation during a search
type OptimizerError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *OptimizerError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *OptimizerError) Unwrap() error {
	return e.Cause
}
