package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Annual Income",
		"Annual Tax",
		"After Taxes",
		"Effective Rate",
		"Tax Diff from Base",
		"After Taxes Diff from Base",
		"After Taxes % Change",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.AnnualIncome.StringFixed(2),
		result.AnnualTax.StringFixed(2),
		result.AfterTaxes.StringFixed(2),
		result.EffectiveRate.StringFixed(2),
		result.TaxDiffFromBase.StringFixed(2),
		result.AfterTaxesDiffFromBase.StringFixed(2),
		result.AfterTaxesPctFromBase.StringFixed(2),
	}
}
