package tuimsg

import (
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/optimizer"
	"github.com/shopspring/decimal"
)

// IncomeChangedMsg carries a confirmed edit of the income record. The
// root model recalculates and persists it.
type IncomeChangedMsg struct {
	Income domain.Income
}

// SaveCompleteMsg signals a save operation has finished
type SaveCompleteMsg struct {
	Err error
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// OptimizationStartedMsg asks the root model to start a background run
type OptimizationStartedMsg struct {
	ExtraMonthly decimal.Decimal
}

// OptimizationProgressMsg reports grid rows done
type OptimizationProgressMsg struct {
	Done  int
	Total int
}

// OptimizationCompleteMsg delivers the outcome of a run
type OptimizationCompleteMsg struct {
	Result *optimizer.Result
	Err    error
}

// OptimizationCancelMsg asks the root model to abort the active run
type OptimizationCancelMsg struct{}

// ApplyAllocationMsg confirms an optimizer result; only this message
// changes the income after an optimization.
type ApplyAllocationMsg struct {
	Result *optimizer.Result
}
