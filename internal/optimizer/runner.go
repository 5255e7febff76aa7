package optimizer

import (
	"context"
	"sync"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/shopspring/decimal"
)

// Outcome is delivered once per run, either a result or an error
type Outcome struct {
	Result *Result
	Err    error
}

// Runner runs at most one optimization at a time in the background
type Runner struct {
	Options Options
	Logger  calculation.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewRunner creates a runner with default search options
func NewRunner() *Runner {
	return &Runner{Options: DefaultOptions(), Logger: calculation.NopLogger{}}
}

// Running reports whether a run is in flight
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Start launches a run and returns a channel that receives exactly one
// Outcome. It fails with ErrOptimizationInProgress while another run is
// active. The income passed in is never modified.
func (r *Runner) Start(ctx context.Context, extraMonthly decimal.Decimal, income domain.Income) (<-chan Outcome, error) {
	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		return nil, ErrOptimizationInProgress
	}
	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	opts := r.Options
	r.mu.Unlock()

	log := r.Logger
	if log == nil {
		log = calculation.NopLogger{}
	}

	out := make(chan Outcome, 1)
	go func() {
		log.Debugf("optimizing %s EUR/month for %d", extraMonthly.StringFixed(2), int(income.Year))
		res, err := Optimize(runCtx, extraMonthly, income, opts)
		if err != nil {
			log.Warnf("optimization stopped: %v", err)
		} else if res.Applied {
			log.Infof("best split iv=%s mb=%s dividends=%s saves %s per year (%d evaluations)",
				res.Allocation.IVMonthly.StringFixed(2),
				res.Allocation.MBMonthly.StringFixed(2),
				res.Allocation.MBDividendsMonthly.StringFixed(2),
				res.Savings.StringFixed(2),
				res.Evaluations)
		}
		// release before delivering so the receiver can start the next run
		r.finish(cancel)
		out <- Outcome{Result: res, Err: err}
		close(out)
	}()
	return out, nil
}

// Cancel aborts the active run, if any
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
	}
}

func (r *Runner) finish(cancel context.CancelFunc) {
	cancel()
	r.mu.Lock()
	r.cancel = nil
	r.mu.Unlock()
}
