package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.Engine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.Engine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string // Label of the base income
	// Scenarios are template names or transform specs ("name:key=value").
	// Empty means transform.DefaultTemplates.
	Scenarios []string
}

// resolve turns a scenario name into a template
func (ce *CompareEngine) resolve(name string) (transform.Template, error) {
	if t, ok := ce.TemplateRegistry.Get(name); ok {
		return t, nil
	}
	if strings.Contains(name, ":") {
		tr, err := ce.TransformRegistry.ParseTransformSpec(name)
		if err != nil {
			return transform.Template{}, err
		}
		return transform.Template{
			Name:        name,
			Description: tr.Description(),
			Transforms:  []transform.IncomeTransform{tr},
		}, nil
	}
	return transform.Template{}, fmt.Errorf("template %s not found", name)
}

// Compare calculates the base income and every scenario derived from it
func (ce *CompareEngine) Compare(ctx context.Context, base domain.Income, options CompareOptions) (*ComparisonSet, error) {
	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "current"
	}
	scenarios := options.Scenarios
	if len(scenarios) == 0 {
		scenarios = transform.DefaultTemplates
	}

	baseSummary, err := ce.CalcEngine.Calculate(base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(baseName, baseSummary)
	baseResult.Description = "Income as entered"

	alternatives := []ComparisonResult{}
	for _, name := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, err := ce.resolve(name)
		if err != nil {
			return nil, err
		}

		modified, err := transform.ApplyTemplate(base, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", name, err)
		}

		altSummary, err := ce.CalcEngine.Calculate(modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", name, err)
		}

		altResult := ce.MetricsCalculator.CalculateMetrics(template.Name, altSummary)
		altResult.Description = template.Description
		altResult = ce.MetricsCalculator.CalculateComparison(altResult, baseResult)
		alternatives = append(alternatives, altResult)
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}
