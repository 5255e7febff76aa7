package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderApp(BorderStyle.Render("Loading saved income..."))
	}
	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneSummary:
		content = m.summaryModel.View()
	case SceneIncome:
		content = m.incomeModel.View()
	case SceneDetails:
		content = m.detailsModel.View()
	case SceneOptimize:
		content = m.optimizeModel.View()
	case SceneRates:
		content = m.ratesModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	contentHeight := max(0, m.height-4) // title (2) + status (1) + padding (1)
	container := lipgloss.NewStyle().Height(contentHeight).Render(content)

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		container,
		m.renderStatusBar(),
	))
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Mokesčiai - Lithuanian tax calculator")
	breadcrumb := SubtitleStyle.Render(fmt.Sprintf("%s / %s", m.income.Year, m.currentScene))
	return lipgloss.JoinVertical(lipgloss.Left, title, breadcrumb)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("s", "summary"),
		formatShortcut("i", "income"),
		formatShortcut("d", "details"),
		formatShortcut("o", "optimize"),
		formatShortcut("r", "rates"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}
	statusText := strings.Join(shortcuts, " • ")

	if m.status != "" {
		note := SubtitleStyle.Render(m.status)
		spacer := strings.Repeat(" ", max(0, m.width-lipgloss.Width(statusText)-lipgloss.Width(note)-4))
		statusText = statusText + spacer + note
	}
	return StatusBarStyle.Width(m.width).Render(statusText)
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err))
	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"s", "Summary of all income sources"},
		{"i", "Edit income, year and MB options"},
		{"d", "Month-by-month taxes per source"},
		{"o", "Optimize how extra income is split"},
		{"r", "Tax rates of the year"},
		{"?", "Show this help"},
		{"esc", "Go back"},
		{"q/ctrl+c", "Quit"},
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("KEYBOARD SHORTCUTS"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n", HelpKeyStyle.Render(fmt.Sprintf("%-9s", r.key)), HelpDescStyle.Render(r.desc)))
	}
	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("EDITING"))
	b.WriteString("\n\n")
	b.WriteString(HelpDescStyle.Render("  ↑/↓ move between fields, enter edits an amount or toggles an option.\n"))
	b.WriteString(HelpDescStyle.Render("  Amounts accept 1234.50 or 1234,50. Every confirmed change is saved.\n"))
	b.WriteString(HelpDescStyle.Render("  Optimizer results are a preview until applied with 'a'."))
	return BorderStyle.Render(b.String())
}
