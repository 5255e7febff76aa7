package optimizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitOutcome(t *testing.T, ch <-chan Outcome) Outcome {
	t.Helper()
	select {
	case o := <-ch:
		return o
	case <-time.After(30 * time.Second):
		t.Fatal("optimization did not finish")
		return Outcome{}
	}
}

func TestRunner_DeliversOneOutcome(t *testing.T) {
	r := NewRunner()
	r.Options = testOptions()

	ch, err := r.Start(context.Background(), d("1000"), baseIncome())
	require.NoError(t, err)

	out := waitOutcome(t, ch)
	require.NoError(t, out.Err)
	require.NotNil(t, out.Result)
	assertDecimal(t, d("1000"), out.Result.Allocation.IVMonthly)

	_, open := <-ch
	assert.False(t, open, "channel is closed after the outcome")
	assert.False(t, r.Running())
}

func TestRunner_RejectsSecondRunAndCancels(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	first := true

	r := NewRunner()
	r.Options = testOptions()
	r.Options.Progress = func(done, total int) {
		if first {
			first = false
			close(started)
			<-release
		}
	}

	ch, err := r.Start(context.Background(), d("1000"), baseIncome())
	require.NoError(t, err)
	<-started

	assert.True(t, r.Running())
	_, err = r.Start(context.Background(), d("500"), baseIncome())
	assert.True(t, errors.Is(err, ErrOptimizationInProgress))

	r.Cancel()
	close(release)

	out := waitOutcome(t, ch)
	assert.Nil(t, out.Result)
	assert.True(t, errors.Is(out.Err, context.Canceled))
	assert.False(t, r.Running())

	// the runner is free again
	r.Options.Progress = nil
	ch, err = r.Start(context.Background(), d("100"), baseIncome())
	require.NoError(t, err)
	assert.NoError(t, waitOutcome(t, ch).Err)
}

func TestRunner_CancelWithoutRun(t *testing.T) {
	r := NewRunner()
	assert.NotPanics(t, r.Cancel)
	assert.False(t, r.Running())
}
