package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/optimizer"
	"github.com/rgehrsitz/mokesciai/internal/storage"
	"github.com/rgehrsitz/mokesciai/internal/tui/scenes"
	"github.com/rgehrsitz/mokesciai/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// The income record and everything derived from it
	income  domain.Income
	summary *domain.TaxSummary

	store  storage.Store
	logger calculation.Logger
	engine *calculation.Engine
	runner *optimizer.Runner
	run    *optimizeRun

	summaryModel  *scenes.SummaryModel
	incomeModel   *scenes.IncomeModel
	detailsModel  *scenes.DetailsModel
	optimizeModel *scenes.OptimizeModel
	ratesModel    *scenes.RatesModel

	err     error
	status  string
	loading bool
}

// optimizeRun holds the channels of the active background optimization
type optimizeRun struct {
	progress chan tuimsg.OptimizationProgressMsg
	outcome  <-chan optimizer.Outcome
}

// NewModel creates the application model. The income is loaded from store
// by Init; a nil store keeps everything in memory.
func NewModel(store storage.Store, logger calculation.Logger) Model {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	engine := calculation.NewEngine()
	engine.SetLogger(logger)
	runner := optimizer.NewRunner()
	runner.Logger = logger

	return Model{
		currentScene:  SceneSummary,
		store:         store,
		logger:        logger,
		engine:        engine,
		runner:        runner,
		income:        domain.DefaultIncome(),
		summaryModel:  scenes.NewSummaryModel(),
		incomeModel:   scenes.NewIncomeModel(),
		detailsModel:  scenes.NewDetailsModel(),
		optimizeModel: scenes.NewOptimizeModel(),
		ratesModel:    scenes.NewRatesModel(),
		width:         100,
		height:        30,
		loading:       true,
	}
}

// WithOptimizerOptions replaces the grid search options
func (m Model) WithOptimizerOptions(opts optimizer.Options) Model {
	m.runner.Options = opts
	return m
}

// Income returns the current income record
func (m Model) Income() domain.Income {
	return m.income
}

// Summary returns the summary of the current income
func (m Model) Summary() *domain.TaxSummary {
	return m.summary
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadIncomeCmd(m.store, m.logger)
}

// loadIncomeCmd reads the stored income, falling back to defaults
func loadIncomeCmd(store storage.Store, logger calculation.Logger) tea.Cmd {
	return func() tea.Msg {
		return IncomeLoadedMsg{Income: storage.LoadOrDefault(store, logger)}
	}
}

// saveIncomeCmd persists a confirmed income
func saveIncomeCmd(store storage.Store, income domain.Income) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		return tuimsg.SaveCompleteMsg{Err: store.Save(income)}
	}
}

// setIncome makes income current and pushes it to every scene
func (m *Model) setIncome(income domain.Income) {
	m.income = income
	summary, err := m.engine.Calculate(income)
	if err != nil {
		m.err = err
		return
	}
	m.summary = summary
	m.summaryModel.SetSummary(summary)
	m.detailsModel.SetSummary(summary)
	m.incomeModel.SetIncome(income)
	m.optimizeModel.SetIncome(income)
	m.ratesModel.SetYear(income.Year)
}

// startOptimization launches the runner and returns the command that waits
// for its first message
func (m *Model) startOptimization(extra decimal.Decimal) tea.Cmd {
	progress := make(chan tuimsg.OptimizationProgressMsg, 1)
	m.runner.Options.Progress = func(done, total int) {
		msg := tuimsg.OptimizationProgressMsg{Done: done, Total: total}
		select {
		case progress <- msg:
		default:
			// the UI has not consumed the previous update yet; drop this one
		}
	}
	outcome, err := m.runner.Start(context.Background(), extra, m.income)
	if err != nil {
		m.optimizeModel.SetError(err)
		return nil
	}
	m.run = &optimizeRun{progress: progress, outcome: outcome}
	return waitForOptimization(m.run)
}

// waitForOptimization blocks until the run reports progress or finishes
func waitForOptimization(run *optimizeRun) tea.Cmd {
	return func() tea.Msg {
		select {
		case p := <-run.progress:
			return p
		case o := <-run.outcome:
			return tuimsg.OptimizationCompleteMsg{Result: o.Result, Err: o.Err}
		}
	}
}
