package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/output"
)

// TableFormatter formats solver results for the console
type TableFormatter struct{}

// Format generates a console report for a solver result
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("GROSS INCOME FOR A TARGET NET\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Source:          %s\n", result.Request.Source.Label()))
	sb.WriteString(fmt.Sprintf("Year:            %s\n", result.Income.Year))
	sb.WriteString(fmt.Sprintf("Status:          %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:      %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:     %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Gross per month: %s\n", output.FormatCurrency(result.GrossMonthly)))
	sb.WriteString(fmt.Sprintf("Target net:      %s\n", output.FormatCurrency(result.Request.TargetNetMonthly)))
	sb.WriteString(fmt.Sprintf("Achieved net:    %s\n", output.FormatCurrency(result.NetMonthly)))
	sb.WriteString(fmt.Sprintf("Annual tax:      %s\n", output.FormatCurrency(result.AnnualTax)))
	sb.WriteString("\n")

	diff := result.NetMonthly.Sub(result.BaseNetMonthly)
	if !diff.IsZero() {
		sb.WriteString("COMPARISON TO CURRENT INCOME\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString(fmt.Sprintf("Current net:     %s\n", output.FormatCurrency(result.BaseNetMonthly)))
		sb.WriteString(fmt.Sprintf("Net change:      %s%s\n", tf.deltaSymbol(diff), output.FormatCurrency(diff)))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Did not converge"
}

func (tf *TableFormatter) deltaSymbol(d decimal.Decimal) string {
	if d.IsPositive() {
		return "+"
	}
	return ""
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
