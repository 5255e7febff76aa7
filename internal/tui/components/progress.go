package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// ProgressBar displays how many optimizer rows are done
type ProgressBar struct {
	Current     int
	Total       int
	Width       int
	Label       string
	ShowPercent bool
	ShowCount   bool
}

// NewProgressBar creates a new progress bar
func NewProgressBar(current, total int) *ProgressBar {
	return &ProgressBar{
		Current:     current,
		Total:       total,
		Width:       40,
		ShowPercent: true,
		ShowCount:   true,
	}
}

// WithLabel sets the progress label
func (p *ProgressBar) WithLabel(label string) *ProgressBar {
	p.Label = label
	return p
}

// WithWidth sets the bar width
func (p *ProgressBar) WithWidth(width int) *ProgressBar {
	p.Width = width
	return p
}

// Percentage returns the completion percentage, capped at 100
func (p *ProgressBar) Percentage() float64 {
	if p.Total <= 0 {
		return 0
	}
	pct := float64(p.Current) / float64(p.Total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsComplete returns true if progress is at 100%
func (p *ProgressBar) IsComplete() bool {
	return p.Total > 0 && p.Current >= p.Total
}

// Render returns the styled progress bar
func (p *ProgressBar) Render() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).Render(p.Label))
		b.WriteString("\n")
	}

	filled := int(float64(p.Width) * p.Percentage() / 100)
	empty := p.Width - filled

	b.WriteString("[")
	if filled > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess).Render(strings.Repeat("█", filled)))
	}
	if empty > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder).Render(strings.Repeat("░", empty)))
	}
	b.WriteString("]")

	var stats []string
	if p.ShowPercent {
		stats = append(stats, lipgloss.NewStyle().Foreground(tuistyles.ColorPrimary).Bold(true).Render(fmt.Sprintf("%.1f%%", p.Percentage())))
	}
	if p.ShowCount {
		stats = append(stats, lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(fmt.Sprintf("%d/%d", p.Current, p.Total)))
	}
	if len(stats) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(stats, " • "))
	}
	return b.String()
}
