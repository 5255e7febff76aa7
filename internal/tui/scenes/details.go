package scenes

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/tui/components"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// DetailsModel shows the 12-month table of one income source
type DetailsModel struct {
	summary  *domain.TaxSummary
	selected int
	width    int
	height   int
}

// NewDetailsModel creates a new details scene model
func NewDetailsModel() *DetailsModel {
	return &DetailsModel{}
}

// SetSummary updates the summary shown
func (m *DetailsModel) SetSummary(summary *domain.TaxSummary) {
	m.summary = summary
}

// SetSize updates the scene dimensions
func (m *DetailsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Selected returns the source whose table is shown
func (m *DetailsModel) Selected() domain.IncomeSource {
	return domain.AllSources()[m.selected]
}

// Update handles messages for the details scene
func (m *DetailsModel) Update(msg tea.Msg) (*DetailsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	n := len(domain.AllSources())
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l", "tab"))):
		m.selected = (m.selected + 1) % n
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "shift+tab"))):
		m.selected = (m.selected + n - 1) % n
	}
	return m, nil
}

// View renders the source selector and the monthly table
func (m *DetailsModel) View() string {
	if m.summary == nil {
		return tuistyles.BorderStyle.Render("Calculating...")
	}

	sources := domain.AllSources()
	tabs := make([]*components.SourceCard, len(sources))
	for i, s := range sources {
		tabs[i] = components.NewSourceCard(s.Label())
	}

	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Monthly details"))
	content.WriteString("\n\n")
	content.WriteString(components.SourceTabs(tabs, m.selected))
	content.WriteString("\n\n")

	src := m.summary.Source(m.Selected())
	if !src.Totals.SalaryBeforeTaxes.IsPositive() {
		content.WriteString(tuistyles.SubtitleStyle.Render("No income from this source."))
	} else {
		content.WriteString(monthlyTable(src).Render())
	}
	content.WriteString("\n\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("←/→ switch source"))
	return tuistyles.BorderStyle.Render(content.String())
}

func monthlyTable(src domain.SourceTaxes) *components.Table {
	cur := tuistyles.FormatCurrency
	cell := func(t domain.Tax) string {
		return cur(t.Amount) + " " + tuistyles.SubtitleStyle.Render("("+tuistyles.FormatPercent(t.Percentage)+")")
	}

	t := &components.Table{
		Headers: []string{"Month", "Year to date", "NPD", "GPM", "VSD", "PSD", "After taxes"},
	}
	for _, r := range src.Results {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.Month),
			cur(r.TotalAnnualBeforeTaxes),
			cur(r.NPD),
			cell(r.Taxes.GPM),
			cell(r.Taxes.VSD),
			cell(r.Taxes.PSD),
			cur(r.TotalMonthlyAfterTaxes),
		})
	}
	tot := src.Totals
	t.Footer = []string{"Year", cur(tot.SalaryBeforeTaxes), "", cell(tot.GPM), cell(tot.VSD), cell(tot.PSD), cur(tot.SalaryAfterTaxes)}
	return t
}
