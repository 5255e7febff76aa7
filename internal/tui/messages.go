package tui

import (
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneIncome
	SceneDetails
	SceneOptimize
	SceneRates
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneIncome:
		return "Income"
	case SceneDetails:
		return "Details"
	case SceneOptimize:
		return "Optimize"
	case SceneRates:
		return "Rates"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// IncomeLoadedMsg carries the income read from the store at startup
type IncomeLoadedMsg struct {
	Income domain.Income
}
