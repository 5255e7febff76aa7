package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// SourceCard displays a compact overview of one income source
type SourceCard struct {
	Name       string
	Note       string
	Highlights []string
	IsSelected bool
	Width      int
}

// NewSourceCard creates a new source card
func NewSourceCard(name string) *SourceCard {
	return &SourceCard{
		Name:  name,
		Width: 36,
	}
}

// WithNote adds a muted line under the name
func (s *SourceCard) WithNote(note string) *SourceCard {
	s.Note = note
	return s
}

// AddHighlight adds a key amount
func (s *SourceCard) AddHighlight(highlight string) *SourceCard {
	s.Highlights = append(s.Highlights, highlight)
	return s
}

// SetSelected marks the card as selected
func (s *SourceCard) SetSelected(selected bool) *SourceCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width
func (s *SourceCard) WithWidth(width int) *SourceCard {
	s.Width = width
	return s
}

// Render returns the bordered card
func (s *SourceCard) Render() string {
	var content strings.Builder
	content.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(s.Name))
	content.WriteString("\n")
	if s.Note != "" {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(s.Note))
		content.WriteString("\n")
	}
	for _, h := range s.Highlights {
		content.WriteString(tuistyles.MetricLabelStyle.Render("• " + h))
		content.WriteString("\n")
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width)

	return cardStyle.Render(strings.TrimRight(content.String(), "\n"))
}

// RenderCompact returns a single-line version
func (s *SourceCard) RenderCompact() string {
	parts := []string{s.Name}
	if len(s.Highlights) > 0 {
		parts = append(parts, "• "+s.Highlights[0])
	}
	return strings.Join(parts, " ")
}

// SourceTabs renders the cards as a one-line selector
func SourceTabs(cards []*SourceCard, selectedIndex int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No income sources")
	}
	rendered := make([]string, len(cards))
	for i, card := range cards {
		if i == selectedIndex {
			rendered[i] = tuistyles.SelectedItemStyle.Render(fmt.Sprintf("[%s]", card.Name))
		} else {
			rendered[i] = tuistyles.UnselectedItemStyle.Render(fmt.Sprintf(" %s ", card.Name))
		}
	}
	return strings.Join(rendered, " ")
}
