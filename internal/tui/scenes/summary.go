package scenes

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/tui/components"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// SummaryModel is the dashboard: summary cards and per-source overview
type SummaryModel struct {
	summary *domain.TaxSummary
	width   int
	height  int
}

// NewSummaryModel creates a new summary scene model
func NewSummaryModel() *SummaryModel {
	return &SummaryModel{}
}

// SetSummary updates the summary shown
func (m *SummaryModel) SetSummary(summary *domain.TaxSummary) {
	m.summary = summary
}

// SetSize updates the model dimensions
func (m *SummaryModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the summary scene
func (m *SummaryModel) Update(msg tea.Msg) (*SummaryModel, tea.Cmd) {
	// passive; navigation is handled by the parent
	return m, nil
}

// View renders the dashboard
func (m *SummaryModel) View() string {
	if m.summary == nil {
		return tuistyles.BorderStyle.Render("Calculating...")
	}
	s := m.summary
	t := s.Totals

	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Tax summary " + s.Income.Year.String()))
	content.WriteString("\n\n")

	cards := []*components.MetricCard{
		components.NewMetricCard("Monthly average after taxes", tuistyles.FormatCurrency(t.MonthlyAverageAfter())).
			WithDescription("before taxes " + tuistyles.FormatCurrency(t.MonthlyAverageBefore())),
		components.NewMetricCard("Annual after taxes", tuistyles.FormatCurrency(t.SalaryAfterTaxes)).
			WithDescription("before taxes " + tuistyles.FormatCurrency(t.SalaryBeforeTaxes)),
		components.NewMetricCard("Annual taxes", tuistyles.FormatCurrency(t.Total.Amount)).
			WithDescription(tuistyles.FormatPercent(t.Total.Percentage) + " of gross"),
	}
	content.WriteString(components.MetricGrid(cards, m.columns()))
	content.WriteString("\n\n")

	for _, line := range []struct {
		label string
		tax   domain.Tax
	}{{"GPM", t.GPM}, {"VSD", t.VSD}, {"PSD", t.PSD}} {
		card := components.NewMetricCard(line.label, tuistyles.FormatCurrency(line.tax.Amount)).
			WithDescription(tuistyles.FormatPercent(line.tax.Percentage))
		content.WriteString("  " + card.RenderCompact() + "  " + tuistyles.SubtitleStyle.Render(card.Description) + "\n")
	}

	if s.PSDRemainder.IsPositive() {
		content.WriteString("\n")
		content.WriteString(tuistyles.InfoStyle.Render(
			"PSD includes a " + tuistyles.FormatCurrency(s.PSDRemainder) +
				" top-up to the annual minimum of " + tuistyles.FormatCurrency(s.MinimumAnnualPSD)))
		content.WriteString("\n")
	}
	if s.MBIncomeOverLimit {
		content.WriteString(tuistyles.WarningStyle.Render(
			"MB income exceeds the annual limit of " + tuistyles.FormatCurrency(calculation.MBIncomeLimitPerYear)))
		content.WriteString("\n")
	}

	var sourceCards []string
	for _, src := range s.Sources() {
		if !src.Totals.SalaryBeforeTaxes.IsPositive() {
			continue
		}
		card := components.NewSourceCard(src.Source.Label()).
			AddHighlight("gross " + tuistyles.FormatCurrency(src.Totals.MonthlyAverageBefore()) + " / month").
			AddHighlight("net " + tuistyles.FormatCurrency(src.Totals.MonthlyAverageAfter()) + " / month").
			AddHighlight("tax " + tuistyles.FormatPercent(src.Totals.Total.Percentage))
		sourceCards = append(sourceCards, card.Render())
	}
	content.WriteString("\n")
	if len(sourceCards) == 0 {
		content.WriteString(tuistyles.SubtitleStyle.Render("No income entered yet. Press 'i' to edit your income."))
	} else {
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sourceCards...))
	}
	return content.String()
}

func (m *SummaryModel) columns() int {
	if m.width > 0 && m.width < 100 {
		return 1
	}
	return 3
}
