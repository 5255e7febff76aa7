package scenes

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/output"
	"github.com/rgehrsitz/mokesciai/internal/tui/components"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// RatesModel shows the rate legend of a year
type RatesModel struct {
	year   domain.Year
	width  int
	height int
}

// NewRatesModel creates a new rates scene model
func NewRatesModel() *RatesModel {
	return &RatesModel{year: domain.DefaultYear}
}

// SetYear selects the year shown
func (m *RatesModel) SetYear(year domain.Year) {
	if year.Valid() {
		m.year = year
	}
}

// Year returns the year shown
func (m *RatesModel) Year() domain.Year {
	return m.year
}

// SetSize updates the scene dimensions
func (m *RatesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the rates scene
func (m *RatesModel) Update(msg tea.Msg) (*RatesModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
			m.year = cycleYear(m.year, 1)
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
			m.year = cycleYear(m.year, -1)
		}
	}
	return m, nil
}

// View renders the bracket table and the MB profit tax rates
func (m *RatesModel) View() string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Rates ◀ " + m.year.String() + " ▶"))
	content.WriteString("\n\n")

	brackets, err := calculation.BaseBrackets(m.year)
	if err != nil {
		content.WriteString(tuistyles.ErrorStyle.Render(err.Error()))
		return tuistyles.BorderStyle.Render(content.String())
	}
	t := &components.Table{Headers: []string{"Bracket", "Income range", "GPM", "VSD", "PSD"}}
	for _, b := range brackets {
		t.Rows = append(t.Rows, []string{
			b.Label + " " + tuistyles.SubtitleStyle.Render(b.Sublabel),
			b.IncomeRange,
			output.FormatRate(b.GPM),
			output.FormatRate(b.VSD),
			output.FormatRate(b.PSD),
		})
	}
	content.WriteString(t.Render())
	content.WriteString("\n\n")

	for _, a := range output.Assumptions(m.year)[:3] {
		content.WriteString(tuistyles.SubtitleStyle.Render(a) + "\n")
	}

	if profit, err := calculation.ProfitTaxRatesFor(m.year); err == nil {
		content.WriteString("\n")
		content.WriteString(tuistyles.TableHeaderStyle.Render("MB profit tax"))
		content.WriteString("\n")
		content.WriteString("  first " + strconv.Itoa(profit.GracePeriodMonths) + " months: 0 %\n")
		content.WriteString("  revenue under " + tuistyles.FormatCurrency(profit.LimitPerYear) + ": " + output.FormatRate(profit.ReducedRate) + "\n")
		content.WriteString("  otherwise: " + output.FormatRate(profit.MainRate) + "\n")
		content.WriteString(tuistyles.SubtitleStyle.Render("  " + profit.InfoURL))
	}
	content.WriteString("\n\n")
	content.WriteString(tuistyles.SubtitleStyle.Render("←/→ change year"))
	return tuistyles.BorderStyle.Render(content.String())
}
