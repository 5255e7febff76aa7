package scenes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/optimizer"
	"github.com/rgehrsitz/mokesciai/internal/tui/components"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuimsg"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// OptimizeMode is the state of the optimize scene
type OptimizeMode int

const (
	ModeIdle OptimizeMode = iota
	ModeEditExtra
	ModeRunning
	ModeShowResult
)

// OptimizeModel lets the user split extra income across IV, MB and
// dividends. A result is only a preview until the user applies it.
type OptimizeModel struct {
	mode    OptimizeMode
	income  domain.Income
	extra   textinput.Model
	spinner spinner.Model
	done    int
	total   int
	result  *optimizer.Result
	notice  string
	err     error
	width   int
	height  int
}

// NewOptimizeModel creates a new optimize scene model
func NewOptimizeModel() *OptimizeModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. 1500"
	ti.CharLimit = 12
	ti.Width = 14

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary)

	return &OptimizeModel{
		mode:    ModeIdle,
		income:  domain.DefaultIncome(),
		extra:   ti,
		spinner: sp,
	}
}

// Mode returns the current state
func (m *OptimizeModel) Mode() OptimizeMode {
	return m.mode
}

// Result returns the previewed result, if any
func (m *OptimizeModel) Result() *optimizer.Result {
	return m.result
}

// Editing reports whether the amount field has keyboard focus
func (m *OptimizeModel) Editing() bool {
	return m.mode == ModeEditExtra
}

// SetIncome updates the income the next run starts from. A previewed
// result computed for a different income is dropped.
func (m *OptimizeModel) SetIncome(income domain.Income) {
	changed := !income.Equal(m.income)
	m.income = income
	if m.mode == ModeShowResult && changed {
		m.result = nil
		m.mode = ModeIdle
		m.notice = "Income changed, the previous result was discarded."
	}
	if m.mode == ModeIdle {
		m.extra.SetValue(income.ExtraMonthly().String())
	}
}

// SetSize updates the model dimensions
func (m *OptimizeModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetProgress records grid rows done
func (m *OptimizeModel) SetProgress(done, total int) {
	m.done = done
	m.total = total
}

// SetResult ends a run with its outcome
func (m *OptimizeModel) SetResult(result *optimizer.Result, err error) {
	m.done, m.total = 0, 0
	switch {
	case errors.Is(err, context.Canceled):
		m.mode = ModeIdle
		m.notice = "Optimization cancelled."
	case err != nil:
		m.mode = ModeIdle
		m.err = err
	default:
		m.result = result
		m.mode = ModeShowResult
	}
}

// SetError shows an error without changing the mode
func (m *OptimizeModel) SetError(err error) {
	m.err = err
	if m.mode == ModeRunning {
		m.mode = ModeIdle
	}
}

// Update handles messages for the optimize scene
func (m *OptimizeModel) Update(msg tea.Msg) (*OptimizeModel, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		if m.mode != ModeRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		return m, cmd
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.mode == ModeEditExtra {
			var cmd tea.Cmd
			m.extra, cmd = m.extra.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case ModeIdle:
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			m.mode = ModeEditExtra
			m.notice, m.err = "", nil
			m.extra.Focus()
			m.extra.CursorEnd()
			return m, textinput.Blink
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))):
			return m.start()
		}

	case ModeEditExtra:
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.extra.Blur()
			return m.start()
		case tea.KeyEsc:
			m.extra.Blur()
			m.mode = ModeIdle
			m.extra.SetValue(m.income.ExtraMonthly().String())
			return m, nil
		}
		var cmd tea.Cmd
		m.extra, cmd = m.extra.Update(keyMsg)
		return m, cmd

	case ModeRunning:
		if key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc", "x"))) {
			return m, func() tea.Msg { return tuimsg.OptimizationCancelMsg{} }
		}

	case ModeShowResult:
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("a"))):
			result := m.result
			m.result = nil
			m.mode = ModeIdle
			m.notice = "Allocation applied."
			return m, func() tea.Msg { return tuimsg.ApplyAllocationMsg{Result: result} }
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("x", "esc"))):
			m.result = nil
			m.mode = ModeIdle
			m.notice = "Result discarded."
			m.extra.SetValue(m.income.ExtraMonthly().String())
			return m, nil
		}
	}
	return m, nil
}

// start validates the amount and asks the parent to run the optimizer
func (m *OptimizeModel) start() (*OptimizeModel, tea.Cmd) {
	extra, err := ParseAmount(m.extra.Value())
	if err != nil {
		m.mode = ModeIdle
		m.err = err
		return m, nil
	}
	m.mode = ModeRunning
	m.notice, m.err = "", nil
	m.done, m.total = 0, 0
	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg { return tuimsg.OptimizationStartedMsg{ExtraMonthly: extra} },
	)
}

// View renders the optimize scene
func (m *OptimizeModel) View() string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render("Optimize extra income"))
	content.WriteString("\n\n")
	content.WriteString(tuistyles.SubtitleStyle.Render(
		"Splits extra monthly income across IV, MB income and MB dividends for the lowest annual tax."))
	content.WriteString("\n\n")

	switch m.mode {
	case ModeRunning:
		content.WriteString(m.spinner.View() + " Searching allocations...\n\n")
		content.WriteString(components.NewProgressBar(m.done, m.total).WithWidth(40).Render())
		content.WriteString("\n\n")
		content.WriteString(tuistyles.SubtitleStyle.Render("esc cancel"))

	case ModeShowResult:
		content.WriteString(m.renderResult())
		content.WriteString("\n\n")
		content.WriteString(tuistyles.SubtitleStyle.Render("a apply • x discard"))

	default:
		value := tuistyles.MetricValueStyle.Render(m.extra.Value())
		if m.mode == ModeEditExtra {
			value = m.extra.View()
		}
		input := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tuistyles.ColorPrimary).
			Padding(0, 1).
			Render(value + " €")
		content.WriteString("Extra income per month\n")
		content.WriteString(input)
		content.WriteString("\n\n")
		if m.notice != "" {
			content.WriteString(tuistyles.InfoStyle.Render(m.notice) + "\n\n")
		}
		if m.err != nil {
			content.WriteString(tuistyles.ErrorStyle.Render("Error: "+m.err.Error()) + "\n\n")
		}
		help := "enter edit amount • g run"
		if m.mode == ModeEditExtra {
			help = "enter run • esc cancel"
		}
		content.WriteString(tuistyles.SubtitleStyle.Render(help))
	}
	return tuistyles.BorderStyle.Render(content.String())
}

func (m *OptimizeModel) renderResult() string {
	r := m.result
	if r == nil || !r.Applied {
		return tuistyles.SubtitleStyle.Render("No extra income to distribute.")
	}
	a := r.Allocation
	cards := []*components.MetricCard{
		components.NewMetricCard("IV / month", tuistyles.FormatCurrency(a.IVMonthly)).WithWidth(24),
		components.NewMetricCard("MB income / month", tuistyles.FormatCurrency(a.MBMonthly)).WithWidth(24),
		components.NewMetricCard("MB dividends / month", tuistyles.FormatCurrency(a.MBDividendsMonthly)).WithWidth(24),
	}

	var b strings.Builder
	b.WriteString(components.MetricGrid(cards, 3))
	b.WriteString("\n\n")
	annual := components.NewMetricCard("Annual tax", tuistyles.FormatCurrency(a.AnnualTax))
	if r.Savings.IsPositive() {
		annual.WithTrend(true, tuistyles.FormatCurrency(r.Savings)+" saved")
	} else {
		annual.WithDescription("the current allocation is already optimal")
	}
	b.WriteString(annual.RenderCompact())
	if annual.Description != "" {
		b.WriteString(" " + tuistyles.SubtitleStyle.Render(annual.Description))
	}
	b.WriteString("\n")
	b.WriteString(tuistyles.SubtitleStyle.Render(fmt.Sprintf("was %s • %d allocations evaluated",
		tuistyles.FormatCurrency(r.Previous), r.Evaluations)))
	return b.String()
}

// ExtraValue returns the amount currently in the input, or zero
func (m *OptimizeModel) ExtraValue() decimal.Decimal {
	v, err := ParseAmount(m.extra.Value())
	if err != nil {
		return decimal.Zero
	}
	return v
}
