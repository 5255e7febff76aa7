package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of income profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads an income profile from a YAML or JSON file.
// Absent fields take the defaults of domain.DefaultIncome.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Income, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a profile. yaml.v3 also reads JSON documents.
func (ip *InputParser) Parse(data []byte) (*domain.Income, error) {
	var input domain.IncomeInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	income := input.Resolve()
	if err := ip.ValidateIncome(&income); err != nil {
		return nil, fmt.Errorf("income validation failed: %w", err)
	}
	return &income, nil
}

// ValidateIncome checks the year and that no amount is negative
func (ip *InputParser) ValidateIncome(income *domain.Income) error {
	if !income.Year.Valid() {
		return &calculation.UnsupportedYearError{Year: income.Year}
	}

	amounts := []struct {
		field string
		value decimal.Decimal
	}{
		{"monthly", income.Monthly},
		{"ivMonthly", income.IVMonthly},
		{"mbMonthly", income.MBMonthly},
		{"mbDividendsMonthly", income.MBDividendsMonthly},
	}
	for _, a := range amounts {
		if a.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative, got %s", a.field, a.value.String())
		}
	}
	return nil
}

// Warnings lists soft limits the income exceeds. They never block a calculation.
func (ip *InputParser) Warnings(income *domain.Income) []string {
	var warnings []string
	monthlyLimit := calculation.MBIncomeLimitPerYear.Div(decimal.NewFromInt(12))
	if income.MBMonthly.GreaterThan(monthlyLimit) {
		warnings = append(warnings, fmt.Sprintf(
			"mbMonthly %s exceeds the MB income limit of %s per year (%s per month)",
			income.MBMonthly.StringFixed(2),
			calculation.MBIncomeLimitPerYear.StringFixed(0),
			monthlyLimit.StringFixed(2)))
	}
	return warnings
}
