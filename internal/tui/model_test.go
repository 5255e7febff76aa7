package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/optimizer"
	"github.com/rgehrsitz/mokesciai/internal/storage"
	"github.com/rgehrsitz/mokesciai/internal/tui/scenes"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuimsg"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// press sends a key and feeds a resulting navigation or income message back
// into the model, the way the program loop would.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	m, cmd := update(t, m, msg)
	if cmd == nil {
		return m
	}
	switch follow := cmd().(type) {
	case NavigateMsg, tuimsg.IncomeChangedMsg, tuimsg.ApplyAllocationMsg:
		var save tea.Cmd
		m, save = update(t, m, follow)
		if save != nil {
			m, _ = update(t, m, save())
		}
	}
	return m
}

func loaded(t *testing.T, store storage.Store) Model {
	t.Helper()
	m := NewModel(store, nil).WithOptimizerOptions(optimizer.Options{
		StepsPerAxis: 10,
		MinStep:      decimal.NewFromInt(100),
	})
	m, _ = update(t, m, m.Init()())
	require.False(t, m.loading)
	return m
}

func TestModel_LoadsStoredIncome(t *testing.T) {
	store := storage.NewMemoryStore()
	stored := domain.Income{Year: domain.Year2025, Monthly: decimal.NewFromInt(3000)}
	require.NoError(t, store.Save(stored))

	m := loaded(t, store)
	assert.True(t, m.Income().Equal(stored))
	require.NotNil(t, m.Summary())
	assert.Equal(t, domain.Year2025, m.Summary().Income.Year)
}

func TestModel_LoadsDefaultsWithoutStore(t *testing.T) {
	m := loaded(t, nil)
	assert.True(t, m.Income().Equal(domain.DefaultIncome()))
	assert.Contains(t, m.View(), "No income entered yet")
}

func TestModel_Navigation(t *testing.T) {
	m := loaded(t, nil)
	tests := []struct {
		key  string
		want Scene
	}{
		{"i", SceneIncome},
		{"d", SceneDetails},
		{"o", SceneOptimize},
		{"r", SceneRates},
		{"?", SceneHelp},
		{"s", SceneSummary},
	}
	for _, tt := range tests {
		m = press(t, m, keyRunes(tt.key))
		assert.Equal(t, tt.want, m.CurrentScene(), "key %q", tt.key)
		assert.Contains(t, m.View(), tt.want.String())
	}

	m = press(t, m, keyRunes("r"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneSummary, m.CurrentScene())
}

func TestModel_Quit(t *testing.T) {
	m := loaded(t, nil)
	_, cmd := update(t, m, keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_EditIncomePersists(t *testing.T) {
	store := storage.NewMemoryStore()
	m := loaded(t, store)

	m = press(t, m, keyRunes("i"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.incomeModel.Editing())

	// letters go to the text field while editing
	m, _ = update(t, m, keyRunes("q"))
	assert.Equal(t, SceneIncome, m.CurrentScene())
	assert.True(t, m.incomeModel.Editing())
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})

	m, _ = update(t, m, keyRunes("2000"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.Income().Monthly.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, "Saved", m.status)

	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, saved.Monthly.Equal(decimal.NewFromInt(2000)))
	assert.True(t, m.Summary().Totals.SalaryBeforeTaxes.Equal(decimal.NewFromInt(24000)))
}

func TestModel_ErrorDismissedByAnyKey(t *testing.T) {
	m := loaded(t, nil)
	m, _ = update(t, m, tuimsg.ErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), "Press any key to continue")

	m, _ = update(t, m, keyRunes("i"))
	assert.Nil(t, m.err)
	assert.Equal(t, SceneSummary, m.CurrentScene())
}

// runOptimization starts a run and pumps its messages until it completes
func runOptimization(t *testing.T, m Model, extra int64) Model {
	t.Helper()
	m, cmd := update(t, m, tuimsg.OptimizationStartedMsg{ExtraMonthly: decimal.NewFromInt(extra)})
	require.NotNil(t, cmd)

	deadline := time.After(30 * time.Second)
	for m.run != nil {
		select {
		case <-deadline:
			t.Fatal("optimization did not finish")
		default:
		}
		msg := cmd()
		m, cmd = update(t, m, msg)
		if _, done := msg.(tuimsg.OptimizationCompleteMsg); done {
			break
		}
		require.NotNil(t, cmd)
	}
	return m
}

func TestModel_OptimizeApply(t *testing.T) {
	store := storage.NewMemoryStore()
	start := domain.Income{Year: domain.Year2026, Monthly: decimal.NewFromInt(2000), IVMonthly: decimal.NewFromInt(1500)}
	require.NoError(t, store.Save(start))
	m := loaded(t, store)
	m = press(t, m, keyRunes("o"))

	m = runOptimization(t, m, 1500)
	require.Equal(t, scenes.ModeShowResult, m.optimizeModel.Mode())
	result := m.optimizeModel.Result()
	require.NotNil(t, result)
	require.True(t, result.Applied)

	// the preview does not touch the income
	assert.True(t, m.Income().Equal(start))

	m = press(t, m, keyRunes("a"))
	assert.Equal(t, scenes.ModeIdle, m.optimizeModel.Mode())
	a := result.Allocation
	assert.True(t, m.Income().IVMonthly.Equal(a.IVMonthly))
	assert.True(t, m.Income().MBMonthly.Equal(a.MBMonthly))
	assert.True(t, m.Income().MBDividendsMonthly.Equal(a.MBDividendsMonthly))
	assert.True(t, m.Income().Monthly.Equal(start.Monthly))

	saved, err := store.Load()
	require.NoError(t, err)
	assert.True(t, saved.Equal(m.Income()))
}

func TestModel_OptimizeDiscard(t *testing.T) {
	store := storage.NewMemoryStore()
	start := domain.Income{Year: domain.Year2026, Monthly: decimal.NewFromInt(2000), IVMonthly: decimal.NewFromInt(1500)}
	require.NoError(t, store.Save(start))
	m := loaded(t, store)
	m = press(t, m, keyRunes("o"))

	m = runOptimization(t, m, 1500)
	require.Equal(t, scenes.ModeShowResult, m.optimizeModel.Mode())

	m = press(t, m, keyRunes("x"))
	assert.Equal(t, scenes.ModeIdle, m.optimizeModel.Mode())
	assert.Equal(t, SceneOptimize, m.CurrentScene())
	assert.True(t, m.Income().Equal(start))
}

func TestModel_OptimizeCancel(t *testing.T) {
	m := loaded(t, nil).WithOptimizerOptions(optimizer.Options{
		StepsPerAxis: 400,
		MinStep:      decimal.NewFromInt(1),
	})
	m = press(t, m, keyRunes("o"))
	m, cmd := update(t, m, tuimsg.OptimizationStartedMsg{ExtraMonthly: decimal.NewFromInt(5000)})
	require.NotNil(t, cmd)

	m, _ = update(t, m, tuimsg.OptimizationCancelMsg{})
	for m.run != nil {
		m, cmd = update(t, m, cmd())
	}
	assert.Equal(t, scenes.ModeIdle, m.optimizeModel.Mode())
	assert.Contains(t, m.View(), "Optimization cancelled.")
	assert.False(t, m.runner.Running())
}
