package compare

import (
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// ComparisonResult represents a single scenario with its calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Income       domain.Income      `json:"income"`
	Summary      *domain.TaxSummary `json:"-"`

	// Key Metrics
	AnnualIncome  decimal.Decimal `json:"annualIncome"`
	AnnualTax     decimal.Decimal `json:"annualTax"`
	AfterTaxes    decimal.Decimal `json:"afterTaxes"`
	EffectiveRate decimal.Decimal `json:"effectiveRate"` // percent of gross

	// Comparison to Base
	TaxDiffFromBase        decimal.Decimal `json:"taxDiffFromBase"`
	AfterTaxesDiffFromBase decimal.Decimal `json:"afterTaxesDiffFromBase"`
	AfterTaxesPctFromBase  decimal.Decimal `json:"afterTaxesPctFromBase"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath,omitempty"`
}

// MetricsCalculator extracts key metrics from tax summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics of one summary
func (mc *MetricsCalculator) CalculateMetrics(name string, summary *domain.TaxSummary) ComparisonResult {
	t := summary.Totals
	return ComparisonResult{
		ScenarioName:  name,
		Income:        summary.Income,
		Summary:       summary,
		AnnualIncome:  t.SalaryBeforeTaxes,
		AnnualTax:     t.Total.Amount,
		AfterTaxes:    t.SalaryAfterTaxes,
		EffectiveRate: t.Total.Percentage,
	}
}

// CalculateComparison computes the deltas between a scenario and the base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.AnnualTax.Sub(base.AnnualTax)
	scenario.AfterTaxesDiffFromBase = scenario.AfterTaxes.Sub(base.AfterTaxes)
	if !base.AfterTaxes.IsZero() {
		scenario.AfterTaxesPctFromBase = scenario.AfterTaxesDiffFromBase.
			Div(base.AfterTaxes).
			Mul(decimal.NewFromInt(100))
	}
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	// Lowest tax burden
	lowestTax := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AnnualTax.LessThan(lowestTax.AnnualTax) {
			lowestTax = alt
		}
	}
	if lowestTax != compSet.BaseResult {
		savings := compSet.BaseResult.AnnualTax.Sub(lowestTax.AnnualTax)
		recommendations = append(recommendations,
			"Lowest taxes: "+lowestTax.ScenarioName+" saves "+savings.StringFixed(2)+
				" EUR per year")
	} else {
		recommendations = append(recommendations,
			"The base income already has the lowest taxes of the compared scenarios")
	}

	// Best net income, only worth a line when the gross differs
	bestNet := compSet.BaseResult
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.AfterTaxes.GreaterThan(bestNet.AfterTaxes) {
			bestNet = alt
		}
	}
	if bestNet != compSet.BaseResult && bestNet != lowestTax {
		diff := bestNet.AfterTaxes.Sub(compSet.BaseResult.AfterTaxes)
		recommendations = append(recommendations,
			"Highest net income: "+bestNet.ScenarioName+" leaves "+diff.StringFixed(2)+
				" EUR more per year")
	}

	return recommendations
}
