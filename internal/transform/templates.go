package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// TemplateRegistry manages built-in income templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []IncomeTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultTemplates are compared when the user names none
var DefaultTemplates = []string{"all_iv", "all_mb", "all_dividends"}

// CreateBuiltInTemplates creates a template registry with the common
// what-if questions about an income
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "all_iv",
		Description: "All extra income as individual activity (IV)",
		Transforms:  []IncomeTransform{&MoveExtra{Target: domain.SourceIV}},
	})
	registry.Register(Template{
		Name:        "all_mb",
		Description: "All extra income as MB income, dividends above the MB limit",
		Transforms:  []IncomeTransform{&MoveExtra{Target: domain.SourceMB}},
	})
	registry.Register(Template{
		Name:        "all_dividends",
		Description: "All extra income as MB dividends",
		Transforms:  []IncomeTransform{&MoveExtra{Target: domain.SourceMBDividends}},
	})
	registry.Register(Template{
		Name:        "no_pension",
		Description: "Without pension accumulation",
		Transforms:  []IncomeTransform{&SetOption{Option: OptionPension, Enabled: false}},
	})
	registry.Register(Template{
		Name:        "mb_first_year",
		Description: "MB in its first 12 months (no profit tax)",
		Transforms:  []IncomeTransform{&SetOption{Option: OptionNoProfitTax, Enabled: true}},
	})
	for _, y := range domain.SupportedYears() {
		registry.Register(Template{
			Name:        fmt.Sprintf("year_%d", int(y)),
			Description: fmt.Sprintf("Same income with %d rates", int(y)),
			Transforms:  []IncomeTransform{&SetYear{Year: y}},
		})
	}

	return registry
}

// ApplyTemplate applies every transform of the template to base
func ApplyTemplate(base domain.Income, template Template) (domain.Income, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")
	for _, name := range registry.List() {
		t := registry.templates[name]
		sb.WriteString(fmt.Sprintf("  %-16s %s\n", t.Name, t.Description))
	}
	sb.WriteString("\nCustom transforms (name:key=value,...):\n")
	for _, name := range NewTransformRegistry().List() {
		sb.WriteString("  " + name + "\n")
	}
	return sb.String()
}
