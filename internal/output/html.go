package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// HTMLFormatter produces a standalone HTML report.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr": FormatCurrency,
	"pct":  FormatPercent,
	"rate": FormatRate,
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(summary *domain.TaxSummary) ([]byte, error) {
	var buf bytes.Buffer
	brackets, err := calculation.BaseBrackets(summary.Income.Year)
	if err != nil {
		return nil, err
	}
	var sources []domain.SourceTaxes
	for _, src := range summary.Sources() {
		if src.Totals.SalaryBeforeTaxes.IsPositive() {
			sources = append(sources, src)
		}
	}
	data := struct {
		*domain.TaxSummary
		WithIncome  []domain.SourceTaxes
		Brackets    []calculation.BracketInfo
		Assumptions []string
	}{summary, sources, brackets, Assumptions(summary.Income.Year)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
