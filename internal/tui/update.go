package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/mokesciai/internal/tui/scenes"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.summaryModel.SetSize(msg.Width, msg.Height)
		m.incomeModel.SetSize(msg.Width, msg.Height)
		m.detailsModel.SetSize(msg.Width, msg.Height)
		m.optimizeModel.SetSize(msg.Width, msg.Height)
		m.ratesModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case IncomeLoadedMsg:
		m.loading = false
		m.setIncome(msg.Income)
		return m, nil

	case tuimsg.IncomeChangedMsg:
		m.setIncome(msg.Income)
		return m, saveIncomeCmd(m.store, msg.Income)

	case tuimsg.SaveCompleteMsg:
		if msg.Err != nil {
			m.logger.Errorf("failed to save income: %v", msg.Err)
			m.status = "Save failed: " + msg.Err.Error()
		} else {
			m.status = "Saved"
		}
		return m, nil

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		return m, nil

	case tuimsg.OptimizationStartedMsg:
		return m, m.startOptimization(msg.ExtraMonthly)

	case tuimsg.OptimizationProgressMsg:
		m.optimizeModel.SetProgress(msg.Done, msg.Total)
		if m.run == nil {
			return m, nil
		}
		return m, waitForOptimization(m.run)

	case tuimsg.OptimizationCompleteMsg:
		m.run = nil
		m.optimizeModel.SetResult(msg.Result, msg.Err)
		return m, nil

	case tuimsg.OptimizationCancelMsg:
		m.runner.Cancel()
		return m, nil

	case tuimsg.ApplyAllocationMsg:
		if msg.Result == nil || !msg.Result.Applied {
			return m, nil
		}
		applied := m.income.WithAllocation(
			msg.Result.Allocation.IVMonthly,
			msg.Result.Allocation.MBMonthly,
			msg.Result.Allocation.MBDividendsMonthly,
		)
		m.setIncome(applied)
		return m, saveIncomeCmd(m.store, applied)

	case spinner.TickMsg:
		// the spinner keeps running while the user looks at other scenes
		updated, cmd := m.optimizeModel.Update(msg)
		m.optimizeModel = updated
		return m, cmd
	}

	return m.updateCurrentScene(msg)
}

// editing reports whether the current scene has a focused text field
func (m Model) editing() bool {
	switch m.currentScene {
	case SceneIncome:
		return m.incomeModel.Editing()
	case SceneOptimize:
		return m.optimizeModel.Editing()
	}
	return false
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.runner.Cancel()
		return m, tea.Quit
	}
	if m.err != nil {
		// any key dismisses the error
		m.err = nil
		return m, nil
	}
	if m.editing() {
		return m.updateCurrentScene(msg)
	}

	navigate := func(s Scene) (tea.Model, tea.Cmd) {
		return m, func() tea.Msg { return NavigateMsg{Scene: s} }
	}

	switch msg.String() {
	case "q":
		m.runner.Cancel()
		return m, tea.Quit
	case "?":
		return navigate(SceneHelp)
	case "s":
		return navigate(SceneSummary)
	case "i":
		return navigate(SceneIncome)
	case "d":
		return navigate(SceneDetails)
	case "o":
		return navigate(SceneOptimize)
	case "r":
		return navigate(SceneRates)
	case "esc":
		// the optimize scene uses esc to cancel or discard
		if m.currentScene == SceneOptimize && m.optimizeModel.Mode() != scenes.ModeIdle {
			break
		}
		if m.currentScene != SceneSummary {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneSummary
			}
			return navigate(back)
		}
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneSummary:
		m.summaryModel, cmd = m.summaryModel.Update(msg)
	case SceneIncome:
		m.incomeModel, cmd = m.incomeModel.Update(msg)
	case SceneDetails:
		m.detailsModel, cmd = m.detailsModel.Update(msg)
	case SceneOptimize:
		m.optimizeModel, cmd = m.optimizeModel.Update(msg)
	case SceneRates:
		m.ratesModel, cmd = m.ratesModel.Update(msg)
	}
	return m, cmd
}
