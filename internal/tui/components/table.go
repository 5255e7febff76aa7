package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuistyles"
)

// Table renders right-aligned columns with a styled header. The first
// column is left-aligned.
type Table struct {
	Headers []string
	Rows    [][]string
	// Footer is rendered highlighted under a rule
	Footer []string
}

// Render returns the table as lines of text
func (t *Table) Render() string {
	widths := make([]int, len(t.Headers))
	measure := func(row []string) {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}
	measure(t.Headers)
	for _, r := range t.Rows {
		measure(r)
	}
	measure(t.Footer)

	var b strings.Builder
	b.WriteString(tuistyles.TableHeaderStyle.Render(t.line(t.Headers, widths)))
	b.WriteString("\n")
	for _, r := range t.Rows {
		b.WriteString(tuistyles.TableCellStyle.Render(t.line(r, widths)))
		b.WriteString("\n")
	}
	if len(t.Footer) > 0 {
		total := 0
		for _, w := range widths {
			total += w + 2
		}
		b.WriteString(tuistyles.SubtitleStyle.Render(strings.Repeat("─", total)))
		b.WriteString("\n")
		b.WriteString(tuistyles.TableHighlightStyle.Render(t.line(t.Footer, widths)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (t *Table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := strings.Repeat(" ", max(0, w-lipgloss.Width(cell)))
		if i == 0 {
			parts[i] = cell + pad
		} else {
			parts[i] = pad + cell
		}
	}
	return strings.Join(parts, "  ")
}
