package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (IncomeTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("move_extra", createMoveExtra)
	registry.Register("set_year", createSetYear)
	registry.Register("set_income", createSetAmount)
	registry.Register("set_option", createSetOption)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (IncomeTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}
	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_income:source=iv,amount=1500"
func (r *TransformRegistry) ParseTransformSpec(spec string) (IncomeTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func createMoveExtra(params map[string]string) (IncomeTransform, error) {
	to, ok := params["to"]
	if !ok {
		return nil, fmt.Errorf("move_extra requires 'to' parameter")
	}
	source, err := domain.ParseIncomeSource(to)
	if err != nil {
		return nil, err
	}
	if source == domain.SourceEmployment {
		return nil, fmt.Errorf("move_extra cannot move extra income to employment")
	}
	return &MoveExtra{Target: source}, nil
}

func createSetYear(params map[string]string) (IncomeTransform, error) {
	yearStr, ok := params["year"]
	if !ok {
		return nil, fmt.Errorf("set_year requires 'year' parameter")
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return nil, fmt.Errorf("invalid year value: %w", err)
	}
	return &SetYear{Year: domain.Year(year)}, nil
}

func createSetAmount(params map[string]string) (IncomeTransform, error) {
	sourceStr, ok := params["source"]
	if !ok {
		return nil, fmt.Errorf("set_income requires 'source' parameter")
	}
	source, err := domain.ParseIncomeSource(sourceStr)
	if err != nil {
		return nil, err
	}

	amountStr, ok := params["amount"]
	if !ok {
		return nil, fmt.Errorf("set_income requires 'amount' parameter")
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("invalid amount value: %w", err)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &SetAmount{Source: source, Monthly: amount}, nil
}

func createSetOption(params map[string]string) (IncomeTransform, error) {
	option, ok := params["option"]
	if !ok {
		return nil, fmt.Errorf("set_option requires 'option' parameter")
	}

	enabled := true
	if enabledStr, ok := params["enabled"]; ok {
		v, err := strconv.ParseBool(enabledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid enabled value: %w", err)
		}
		enabled = v
	}

	t := &SetOption{Option: option, Enabled: enabled}
	if err := t.Validate(domain.DefaultIncome()); err != nil {
		return nil, err
	}
	return t, nil
}
