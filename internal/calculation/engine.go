package calculation

import (
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// Engine runs the tax summary for the front ends and logs what it computed
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine logger; nil restores the no-op logger
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

func (e *Engine) logger() Logger {
	if e.Logger == nil {
		return NopLogger{}
	}
	return e.Logger
}

// Calculate validates the income and returns its tax summary
func (e *Engine) Calculate(income domain.Income) (*domain.TaxSummary, error) {
	log := e.logger()
	if !income.Year.Valid() {
		log.Errorf("rejecting income for year %d", int(income.Year))
		return nil, &UnsupportedYearError{Year: income.Year}
	}

	summary, err := CalculateAllTaxes(income)
	if err != nil {
		log.Errorf("calculation failed: %v", err)
		return nil, fmt.Errorf("failed to calculate taxes for %d: %w", int(income.Year), err)
	}

	for _, s := range summary.Sources() {
		log.Debugf("%s: gross=%s gpm=%s vsd=%s psd=%s net=%s",
			s.Source,
			s.Totals.SalaryBeforeTaxes.StringFixed(2),
			s.Totals.GPM.Amount.StringFixed(2),
			s.Totals.VSD.Amount.StringFixed(2),
			s.Totals.PSD.Amount.StringFixed(2),
			s.Totals.SalaryAfterTaxes.StringFixed(2))
	}
	if summary.PSDRemainder.IsPositive() {
		log.Infof("PSD below annual minimum %s, adding %s",
			summary.MinimumAnnualPSD.StringFixed(2), summary.PSDRemainder.StringFixed(2))
	}
	if summary.MBIncomeOverLimit {
		log.Warnf("MB income %s/month exceeds the annual limit of %s",
			income.MBMonthly.StringFixed(2), MBIncomeLimitPerYear.StringFixed(0))
	}
	log.Debugf("total annual tax %s (%s%%)",
		summary.Totals.Total.Amount.StringFixed(2), summary.Totals.Total.Percentage.StringFixed(2))
	return summary, nil
}
