package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuimsg"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// IncomeField is one editable row of the income form
type IncomeField int

const (
	FieldMonthly IncomeField = iota
	FieldIV
	FieldMB
	FieldDividends
	FieldYear
	FieldPension
	FieldNoProfitTax
	FieldReducedRate
	fieldCount
)

var fieldLabels = map[IncomeField]string{
	FieldMonthly:     "Employment, gross / month",
	FieldIV:          "Individual activity (IV) / month",
	FieldMB:          "MB income / month",
	FieldDividends:   "MB dividends / month",
	FieldYear:        "Tax year",
	FieldPension:     "Pension accumulation (+3% VSD)",
	FieldNoProfitTax: "MB in first 12 months (no profit tax)",
	FieldReducedRate: "MB revenue under 300 000 € (reduced rate)",
}

// IncomeModel is the income form. Amounts are edited in place: enter starts
// editing, enter confirms, esc cancels. Every confirmed change is sent to
// the parent as an IncomeChangedMsg.
type IncomeModel struct {
	income  domain.Income
	inputs  [FieldYear]textinput.Model
	focus   IncomeField
	editing bool
	err     error
	width   int
	height  int
}

// NewIncomeModel creates a new income scene model
func NewIncomeModel() *IncomeModel {
	m := &IncomeModel{income: domain.DefaultIncome()}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = "0"
		ti.CharLimit = 12
		ti.Width = 14
		m.inputs[i] = ti
	}
	m.syncInputs()
	return m
}

// SetIncome replaces the income shown by the form
func (m *IncomeModel) SetIncome(income domain.Income) {
	m.income = income
	if !m.editing {
		m.syncInputs()
	}
}

// Income returns the income as last confirmed in the form
func (m *IncomeModel) Income() domain.Income {
	return m.income
}

// Focused returns the field under the cursor
func (m *IncomeModel) Focused() IncomeField {
	return m.focus
}

// Editing reports whether a text field has keyboard focus
func (m *IncomeModel) Editing() bool {
	return m.editing
}

// SetSize updates the scene dimensions
func (m *IncomeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *IncomeModel) amount(f IncomeField) decimal.Decimal {
	switch f {
	case FieldIV:
		return m.income.IVMonthly
	case FieldMB:
		return m.income.MBMonthly
	case FieldDividends:
		return m.income.MBDividendsMonthly
	default:
		return m.income.Monthly
	}
}

func (m *IncomeModel) syncInputs() {
	for i := range m.inputs {
		v := m.amount(IncomeField(i))
		if v.IsZero() {
			m.inputs[i].SetValue("")
		} else {
			m.inputs[i].SetValue(v.String())
		}
	}
}

// Update handles messages for the income scene
func (m *IncomeModel) Update(msg tea.Msg) (*IncomeModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return m, cmd
		}
		return m, nil
	}
	if m.editing {
		return m.updateEditing(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k", "shift+tab"))):
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j", "tab"))):
		m.focus = (m.focus + 1) % fieldCount
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", " "))):
		return m.activate(1)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
		if m.focus == FieldYear {
			return m.activate(-1)
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right"))):
		if m.focus == FieldYear {
			return m.activate(1)
		}
	}
	return m, nil
}

// activate edits, cycles or toggles the focused field
func (m *IncomeModel) activate(dir int) (*IncomeModel, tea.Cmd) {
	m.err = nil
	next := m.income
	switch m.focus {
	case FieldMonthly, FieldIV, FieldMB, FieldDividends:
		m.editing = true
		m.inputs[m.focus].Focus()
		m.inputs[m.focus].CursorEnd()
		return m, textinput.Blink
	case FieldYear:
		next.Year = cycleYear(next.Year, dir)
	case FieldPension:
		next.PensionAccumulation = !next.PensionAccumulation
	case FieldNoProfitTax:
		next.MBNoProfitTax = !next.MBNoProfitTax
	case FieldReducedRate:
		next.MBUseReducedProfitTaxRate = !next.MBUseReducedProfitTaxRate
	}
	return m, m.commit(next)
}

func (m *IncomeModel) updateEditing(msg tea.KeyMsg) (*IncomeModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		v, err := ParseAmount(m.inputs[m.focus].Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.stopEditing()
		next := m.income
		switch m.focus {
		case FieldMonthly:
			next.Monthly = v
		case FieldIV:
			next.IVMonthly = v
		case FieldMB:
			next.MBMonthly = v
		case FieldDividends:
			next.MBDividendsMonthly = v
		}
		cmd := m.commit(next)
		m.syncInputs()
		return m, cmd

	case tea.KeyEsc:
		m.stopEditing()
		m.err = nil
		m.syncInputs()
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *IncomeModel) stopEditing() {
	m.editing = false
	m.inputs[m.focus].Blur()
}

func (m *IncomeModel) commit(next domain.Income) tea.Cmd {
	if next.Equal(m.income) {
		return nil
	}
	m.income = next
	return func() tea.Msg { return tuimsg.IncomeChangedMsg{Income: next} }
}

func cycleYear(y domain.Year, dir int) domain.Year {
	years := domain.SupportedYears()
	idx := 0
	for i, candidate := range years {
		if candidate == y {
			idx = i
		}
	}
	idx = (idx + dir + len(years)) % len(years)
	return years[idx]
}

// ParseAmount reads a non-negative amount typed by the user. Both decimal
// separators are accepted and spaces are ignored; empty means zero.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.NewReplacer(" ", "", "\u00a0", "", ",", ".", "€", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a number: %q", s)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount cannot be negative")
	}
	return v, nil
}

// View renders the income form
func (m *IncomeModel) View() string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Income"))
	content.WriteString("\n\n")

	for f := IncomeField(0); f < fieldCount; f++ {
		cursor := "  "
		labelStyle := tuistyles.UnselectedItemStyle
		if f == m.focus {
			cursor = lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Render("❯ ")
			labelStyle = tuistyles.SelectedItemStyle
		}
		label := labelStyle.Render(fmt.Sprintf("%-44s", fieldLabels[f]))

		var value string
		switch f {
		case FieldYear:
			value = "◀ " + m.income.Year.String() + " ▶"
		case FieldPension:
			value = checkbox(m.income.PensionAccumulation)
		case FieldNoProfitTax:
			value = checkbox(m.income.MBNoProfitTax)
		case FieldReducedRate:
			value = checkbox(m.income.MBUseReducedProfitTaxRate)
		default:
			if m.editing && f == m.focus {
				value = m.inputs[f].View()
			} else {
				value = tuistyles.MetricValueStyle.Render(tuistyles.FormatCurrency(m.amount(f)))
			}
		}
		content.WriteString(cursor + label + " " + value + "\n")
		if f == FieldDividends {
			content.WriteString("\n")
		}
	}

	if m.err != nil {
		content.WriteString("\n" + tuistyles.ErrorStyle.Render(m.err.Error()) + "\n")
	}
	content.WriteString("\n")
	help := "↑/↓ move • enter edit/toggle • ←/→ year"
	if m.editing {
		help = "enter confirm • esc cancel"
	}
	content.WriteString(tuistyles.SubtitleStyle.Render(help))
	return tuistyles.BorderStyle.Render(content.String())
}

func checkbox(on bool) string {
	if on {
		return tuistyles.MetricPositiveStyle.Render("[x]")
	}
	return tuistyles.SubtitleStyle.Render("[ ]")
}
