package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/optimizer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildSummary(t *testing.T, income domain.Income) *domain.TaxSummary {
	t.Helper()
	summary, err := calculation.CalculateAllTaxes(income)
	require.NoError(t, err)
	return summary
}

func employeeSummary(t *testing.T) *domain.TaxSummary {
	income := domain.DefaultIncome()
	income.Monthly = decimal.NewFromInt(2000)
	income.PensionAccumulation = false
	return buildSummary(t, income)
}

func TestFormatCurrency(t *testing.T) {
	got := FormatCurrency(decimal.NewFromInt(5))
	assert.Contains(t, got, "5,00")
	assert.True(t, strings.HasSuffix(got, "\u00a0€"), "got %q", got)

	assert.Contains(t, FormatCurrency(decimal.RequireFromString("1234.567")), "234,57")
	assert.Contains(t, FormatCurrency(decimal.Zero), "0,00")
}

func TestFormatPercent(t *testing.T) {
	got := FormatPercent(decimal.RequireFromString("16.6803"))
	assert.Contains(t, got, "16,68")
	assert.True(t, strings.HasSuffix(got, "\u00a0%"), "got %q", got)

	assert.Contains(t, FormatRate(decimal.RequireFromString("0.0698")), "6,98")
}

func TestFormatterFunc(t *testing.T) {
	var received *domain.TaxSummary
	f := FormatterFunc{
		ID: "test-formatter",
		F: func(s *domain.TaxSummary) ([]byte, error) {
			received = s
			return []byte("test output"), nil
		},
	}
	summary := &domain.TaxSummary{}
	out, err := f.Format(summary)
	require.NoError(t, err)
	assert.Same(t, summary, received)
	assert.Equal(t, "test output", string(out))
	assert.Equal(t, "test-formatter", f.Name())
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"console", "console"},
		{"  Console ", "console"},
		{"verbose", "console-verbose"},
		{"console-verbose", "console-verbose"},
		{"csv-monthly", "csv"},
		{"HTML-REPORT", "html"},
		{"json", "json"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			f := GetFormatterByName(tt.input)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestAvailableFormatters(t *testing.T) {
	assert.Equal(t, []string{"console", "console-verbose", "csv", "html", "json"}, AvailableFormatterNames())
	for _, alias := range AvailableFormatAliases() {
		assert.NotNil(t, GetFormatterByName(alias), "alias %s", alias)
	}
	assert.Equal(t, "txt", Extension(ConsoleVerboseFormatter{}))
	assert.Equal(t, "csv", Extension(CSVFormatter{}))
}

func TestWriteFormatted(t *testing.T) {
	dir := t.TempDir()
	f := FormatterFunc{ID: "x", F: func(*domain.TaxSummary) ([]byte, error) { return []byte("content"), nil }}

	path, err := WriteFormatted(f, &domain.TaxSummary{}, dir, "txt")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "mokesciai_report_"))
	assert.True(t, strings.HasSuffix(path, ".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestConsoleFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(employeeSummary(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "LITHUANIAN TAX SUMMARY 2026")
	assert.Contains(t, content, "Employment:")
	assert.NotContains(t, content, "Individual activity")
	assert.NotContains(t, content, "PSD top-up")
	assert.NotContains(t, content, "MB profit tax rate")
}

func TestConsoleFormatter_EmptyIncome(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildSummary(t, domain.DefaultIncome()))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "No income entered")
	assert.Contains(t, content, "PSD top-up")
}

func TestConsoleFormatter_MBWarning(t *testing.T) {
	income := domain.DefaultIncome()
	income.MBMonthly = decimal.NewFromInt(9000)
	out, err := ConsoleFormatter{}.Format(buildSummary(t, income))
	require.NoError(t, err)
	assert.Contains(t, string(out), "MB profit tax rate")
	assert.Contains(t, string(out), "WARNING: MB income exceeds")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(employeeSummary(t))
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "KEY ASSUMPTIONS:")
	assert.Contains(t, content, "EMPLOYMENT")
	assert.Contains(t, content, "Year to date")
	assert.NotContains(t, content, "MB DIVIDENDS")
}

func TestCSVFormatter(t *testing.T) {
	out, err := CSVFormatter{}.Format(employeeSummary(t))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")

	// header, 4 sources x (12 months + total), combined
	require.Len(t, lines, 1+4*13+1)
	assert.Equal(t, strings.Join(csvHeader, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "employment,1,2000.00,331.97,"), lines[1])
	assert.True(t, strings.HasPrefix(lines[13], "employment,total,24000.00,"), lines[13])
	assert.True(t, strings.HasPrefix(lines[14], "iv,1,0.00,"), lines[14])
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "combined,total,24000.00,"), lines[len(lines)-1])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(employeeSummary(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Contains(t, decoded, "employment")
	assert.Contains(t, decoded, "mbDividends")
	totals, ok := decoded["totals"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "24000", totals["salaryBeforeTaxes"])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(employeeSummary(t))
	require.NoError(t, err)
	content := string(out)
	assert.True(t, strings.HasPrefix(content, "<!DOCTYPE html>"))
	assert.Contains(t, content, "Lithuanian tax summary 2026")
	assert.Contains(t, content, "<h2>Employment</h2>")
	assert.Contains(t, content, "up to 36 VDU")
	assert.NotContains(t, content, "No income entered")

	_, err = HTMLFormatter{}.Format(&domain.TaxSummary{Income: domain.Income{Year: 2019}})
	assert.Error(t, err)
}

func TestFormatAllocation(t *testing.T) {
	assert.Contains(t, FormatAllocation(nil), "No extra income")
	assert.Contains(t, FormatAllocation(&optimizer.Result{}), "No extra income")

	r := &optimizer.Result{
		Allocation: domain.Allocation{
			IVMonthly: decimal.NewFromInt(1000),
			AnnualTax: decimal.RequireFromString("2332.2648"),
		},
		Previous:    decimal.RequireFromString("3479.7528"),
		Savings:     decimal.RequireFromString("1147.488"),
		Evaluations: 42,
		Applied:     true,
	}
	out := FormatAllocation(r)
	assert.Contains(t, out, "000,00")
	assert.Contains(t, out, "Savings:")
	assert.Contains(t, out, "147,49")
	assert.Contains(t, out, "(42 allocations evaluated)")

	r.Savings = decimal.Zero
	assert.Contains(t, FormatAllocation(r), "already optimal")
}

func TestFormatRates(t *testing.T) {
	out, err := FormatRates(domain.Year2026)
	require.NoError(t, err)
	assert.Contains(t, out, "TAX RATES 2026")
	assert.Contains(t, out, "83237.40")
	assert.Contains(t, out, "MB profit tax")
	assert.Contains(t, out, "https://www.vmi.lt/evmi/pelno-mokestis")

	_, err = FormatRates(domain.Year(2019))
	var yearErr *calculation.UnsupportedYearError
	assert.ErrorAs(t, err, &yearErr)
}

func TestAssumptions(t *testing.T) {
	assert.NotEmpty(t, Assumptions(domain.Year2025))
	assert.Nil(t, Assumptions(domain.Year(2019)))
}
